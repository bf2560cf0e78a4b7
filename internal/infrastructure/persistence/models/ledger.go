package models

import (
	"time"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionModel is the persistence model for the Transaction entity.
type TransactionModel struct {
	OwnedModel
	AccountID            uuid.UUID                 `gorm:"type:uuid;not null;index"`
	DestinationAccountID *uuid.UUID                `gorm:"type:uuid;index"`
	CategoryID           *uuid.UUID                `gorm:"type:uuid;index"`
	Type                 ledger.TransactionType    `gorm:"type:varchar(20);not null;index"`
	Amount               decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	Currency             string                    `gorm:"type:varchar(3);not null;default:'USD'"`
	Date                 time.Time                 `gorm:"not null;index"`
	Description          string                    `gorm:"type:varchar(500)"`
	Recurring            bool                      `gorm:"not null;default:false"`
	RecurrenceInterval   ledger.RecurrenceInterval `gorm:"type:varchar(20);not null;default:''"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction entity.
func (m *TransactionModel) ToDomain() *ledger.Transaction {
	return &ledger.Transaction{
		OwnedEntity:          m.ToDomainOwnedEntity(),
		AccountID:            m.AccountID,
		DestinationAccountID: m.DestinationAccountID,
		CategoryID:           m.CategoryID,
		Type:                 m.Type,
		Amount:               m.Amount,
		Currency:             valueobject.Currency(m.Currency),
		Date:                 m.Date,
		Description:          m.Description,
		Recurring:            m.Recurring,
		RecurrenceInterval:   m.RecurrenceInterval,
	}
}

// FromDomain populates the persistence model from a domain Transaction entity.
func (m *TransactionModel) FromDomain(t *ledger.Transaction) {
	m.FromDomainOwnedEntity(t.OwnedEntity)
	m.AccountID = t.AccountID
	m.DestinationAccountID = t.DestinationAccountID
	m.CategoryID = t.CategoryID
	m.Type = t.Type
	m.Amount = t.Amount
	m.Currency = string(t.Currency)
	m.Date = t.Date
	m.Description = t.Description
	m.Recurring = t.Recurring
	m.RecurrenceInterval = t.RecurrenceInterval
}

// TransactionModelFromDomain creates a new persistence model from a domain Transaction.
func TransactionModelFromDomain(t *ledger.Transaction) *TransactionModel {
	m := &TransactionModel{}
	m.FromDomain(t)
	return m
}

// AccountModel is the persistence model for the Account entity.
type AccountModel struct {
	OwnedModel
	Name        string             `gorm:"type:varchar(100);not null"`
	DisplayName string             `gorm:"type:varchar(100);not null"`
	Type        ledger.AccountType `gorm:"type:varchar(20);not null"`
	Balance     decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	BankName    string             `gorm:"type:varchar(100)"`
	IsDefault   bool               `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account entity.
func (m *AccountModel) ToDomain() *ledger.Account {
	return &ledger.Account{
		OwnedEntity: m.ToDomainOwnedEntity(),
		Name:        m.Name,
		DisplayName: m.DisplayName,
		Type:        m.Type,
		Balance:     m.Balance,
		BankName:    m.BankName,
		IsDefault:   m.IsDefault,
	}
}

// FromDomain populates the persistence model from a domain Account entity.
func (m *AccountModel) FromDomain(a *ledger.Account) {
	m.FromDomainOwnedEntity(a.OwnedEntity)
	m.Name = a.Name
	m.DisplayName = a.DisplayName
	m.Type = a.Type
	m.Balance = a.Balance
	m.BankName = a.BankName
	m.IsDefault = a.IsDefault
}

// AccountModelFromDomain creates a new persistence model from a domain Account.
func AccountModelFromDomain(a *ledger.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}

// CategoryModel is the persistence model for the Category entity.
type CategoryModel struct {
	OwnedModel
	Name    string              `gorm:"type:varchar(100);not null"`
	Type    ledger.CategoryType `gorm:"type:varchar(20);not null;index"`
	Icon    string              `gorm:"type:varchar(50)"`
	Visible bool                `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *ledger.Category {
	return &ledger.Category{
		OwnedEntity: m.ToDomainOwnedEntity(),
		Name:        m.Name,
		Type:        m.Type,
		Icon:        m.Icon,
		Visible:     m.Visible,
	}
}

// FromDomain populates the persistence model from a domain Category entity.
func (m *CategoryModel) FromDomain(c *ledger.Category) {
	m.FromDomainOwnedEntity(c.OwnedEntity)
	m.Name = c.Name
	m.Type = c.Type
	m.Icon = c.Icon
	m.Visible = c.Visible
}

// CategoryModelFromDomain creates a new persistence model from a domain Category.
func CategoryModelFromDomain(c *ledger.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}
