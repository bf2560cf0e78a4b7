package models

import (
	"time"

	"github.com/fintrack/backend/internal/domain/budget"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetModel is the persistence model for the Budget entity.
type BudgetModel struct {
	OwnedModel
	Name      string            `gorm:"type:varchar(100)"`
	Amount    decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	StartDate time.Time         `gorm:"not null;index"`
	EndDate   time.Time         `gorm:"not null;index"`
	Recurring bool              `gorm:"not null;default:false"`
	Active    bool              `gorm:"not null;default:true"`
	Lines     []BudgetLineModel `gorm:"foreignKey:BudgetID;references:ID"`
}

// TableName returns the table name for GORM
func (BudgetModel) TableName() string {
	return "budgets"
}

// BudgetLineModel is the persistence model for one category allocation.
// Lines are replaced wholesale with their parent budget, so they carry no
// soft-delete column of their own.
type BudgetLineModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	BudgetID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budget_line_category,priority:1"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budget_line_category,priority:2"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (BudgetLineModel) TableName() string {
	return "budget_lines"
}

// ToDomain converts the persistence model to a domain Budget entity.
func (m *BudgetModel) ToDomain() *budget.Budget {
	lines := make([]budget.BudgetLine, len(m.Lines))
	for i, lm := range m.Lines {
		lines[i] = budget.BudgetLine{
			ID:         lm.ID,
			BudgetID:   lm.BudgetID,
			CategoryID: lm.CategoryID,
			Amount:     lm.Amount,
		}
	}
	return &budget.Budget{
		OwnedEntity: m.ToDomainOwnedEntity(),
		Name:        m.Name,
		Amount:      m.Amount,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Recurring:   m.Recurring,
		Active:      m.Active,
		Lines:       lines,
	}
}

// FromDomain populates the persistence model from a domain Budget entity.
func (m *BudgetModel) FromDomain(b *budget.Budget) {
	m.FromDomainOwnedEntity(b.OwnedEntity)
	m.Name = b.Name
	m.Amount = b.Amount
	m.StartDate = b.StartDate
	m.EndDate = b.EndDate
	m.Recurring = b.Recurring
	m.Active = b.Active
	m.Lines = make([]BudgetLineModel, len(b.Lines))
	for i, l := range b.Lines {
		m.Lines[i] = BudgetLineModel{
			ID:         l.ID,
			BudgetID:   l.BudgetID,
			CategoryID: l.CategoryID,
			Amount:     l.Amount,
		}
	}
}

// BudgetModelFromDomain creates a new persistence model from a domain Budget.
func BudgetModelFromDomain(b *budget.Budget) *BudgetModel {
	m := &BudgetModel{}
	m.FromDomain(b)
	return m
}
