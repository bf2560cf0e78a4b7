package ledger

import (
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType represents the kind of account
type AccountType string

const (
	AccountTypeChecking   AccountType = "CHECKING"
	AccountTypeSavings    AccountType = "SAVINGS"
	AccountTypeCreditCard AccountType = "CREDIT_CARD"
	AccountTypeCash       AccountType = "CASH"
	AccountTypeInvestment AccountType = "INVESTMENT"
)

// IsValid checks if the type is a valid AccountType
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCreditCard,
		AccountTypeCash, AccountTypeInvestment:
		return true
	}
	return false
}

// String returns the string representation of AccountType
func (t AccountType) String() string {
	return string(t)
}

// BalanceSign returns the multiplier an account's stored balance carries in
// aggregate-balance computation. Credit-card balances represent debt, so the
// type inverts the sign.
func (t AccountType) BalanceSign() decimal.Decimal {
	if t == AccountTypeCreditCard {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

// Account represents a financial account owned by a user.
// Balance is a current snapshot; the ledger holds the history.
type Account struct {
	shared.OwnedEntity
	Name        string          `json:"name"`
	DisplayName string          `json:"display_name"`
	Type        AccountType     `json:"type"`
	Balance     decimal.Decimal `json:"balance"`
	BankName    string          `json:"bank_name,omitempty"`
	IsDefault   bool            `json:"is_default"`
}

// NewAccount creates a new account for an owner
func NewAccount(ownerID uuid.UUID, name string, accountType AccountType, balance decimal.Decimal) (*Account, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Account name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Account name cannot exceed 100 characters")
	}
	if !accountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Account type is not valid")
	}

	return &Account{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		Name:        name,
		DisplayName: name,
		Type:        accountType,
		Balance:     balance,
	}, nil
}

// Update changes the mutable fields of an account
func (a *Account) Update(name, displayName string, accountType AccountType, balance decimal.Decimal, bankName string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Account name cannot be empty")
	}
	if !accountType.IsValid() {
		return shared.NewDomainError("INVALID_TYPE", "Account type is not valid")
	}

	a.Name = name
	a.DisplayName = displayName
	if a.DisplayName == "" {
		a.DisplayName = name
	}
	a.Type = accountType
	a.Balance = balance
	a.BankName = bankName
	a.UpdatedAt = time.Now()
	return nil
}

// SetDefault marks this account as the owner's default
func (a *Account) SetDefault(isDefault bool) {
	a.IsDefault = isDefault
	a.UpdatedAt = time.Now()
}
