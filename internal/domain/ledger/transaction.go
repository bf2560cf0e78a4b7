package ledger

import (
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of ledger entry.
// The set is closed; aggregation logic switches exhaustively over it so a
// new type cannot silently fall through income/expense math.
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "INCOME"
	TransactionTypeExpense  TransactionType = "EXPENSE"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// IsValid checks if the type is a valid TransactionType
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
		return true
	}
	return false
}

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// SignedAmount returns the balance effect of an amount under this type.
// Amounts are stored non-negative; the sign is implied by the type.
// Transfers move money between accounts and have no net effect.
func (t TransactionType) SignedAmount(amount decimal.Decimal) decimal.Decimal {
	switch t {
	case TransactionTypeIncome:
		return amount
	case TransactionTypeExpense:
		return amount.Neg()
	case TransactionTypeTransfer:
		return decimal.Zero
	default:
		return decimal.Zero
	}
}

// RecurrenceInterval describes how often a recurring transaction repeats
type RecurrenceInterval string

const (
	RecurrenceNone    RecurrenceInterval = ""
	RecurrenceWeekly  RecurrenceInterval = "WEEKLY"
	RecurrenceMonthly RecurrenceInterval = "MONTHLY"
	RecurrenceYearly  RecurrenceInterval = "YEARLY"
)

// IsValid checks if the interval is a valid RecurrenceInterval
func (r RecurrenceInterval) IsValid() bool {
	switch r {
	case RecurrenceNone, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

// Transaction represents a single ledger entry owned by a user.
// Balance effects are computed on read, never stored.
type Transaction struct {
	shared.OwnedEntity
	AccountID            uuid.UUID            `json:"account_id"`
	DestinationAccountID *uuid.UUID           `json:"destination_account_id,omitempty"`
	CategoryID           *uuid.UUID           `json:"category_id,omitempty"`
	Type                 TransactionType      `json:"type"`
	Amount               decimal.Decimal      `json:"amount"`
	Currency             valueobject.Currency `json:"currency"`
	Date                 time.Time            `json:"date"`
	Description          string               `json:"description"`
	Recurring            bool                 `json:"recurring"`
	RecurrenceInterval   RecurrenceInterval   `json:"recurrence_interval,omitempty"`
}

// NewTransaction creates a new transaction for an owner
func NewTransaction(
	ownerID uuid.UUID,
	accountID uuid.UUID,
	txType TransactionType,
	amount valueobject.Money,
	date time.Time,
	description string,
) (*Transaction, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account is required")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Transaction type is not valid")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if len(description) > 500 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}

	return &Transaction{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		AccountID:   accountID,
		Type:        txType,
		Amount:      amount.Amount(),
		Currency:    amount.Currency(),
		Date:        date,
		Description: description,
	}, nil
}

// SetDestinationAccount sets the destination account for a transfer.
// A transfer must reference both a source and a destination account.
func (t *Transaction) SetDestinationAccount(accountID uuid.UUID) error {
	if t.Type != TransactionTypeTransfer {
		return shared.NewDomainError("INVALID_STATE", "Only transfers have a destination account")
	}
	if accountID == uuid.Nil {
		return shared.NewDomainError("INVALID_ACCOUNT", "Destination account is required")
	}
	if accountID == t.AccountID {
		return shared.NewDomainError("INVALID_ACCOUNT", "Destination account must differ from source account")
	}
	t.DestinationAccountID = &accountID
	t.UpdatedAt = time.Now()
	return nil
}

// SetCategory assigns a category to the transaction
func (t *Transaction) SetCategory(categoryID uuid.UUID) {
	t.CategoryID = &categoryID
	t.UpdatedAt = time.Now()
}

// ClearCategory removes the category assignment
func (t *Transaction) ClearCategory() {
	t.CategoryID = nil
	t.UpdatedAt = time.Now()
}

// SetRecurrence marks the transaction as recurring with the given interval
func (t *Transaction) SetRecurrence(interval RecurrenceInterval) error {
	if !interval.IsValid() {
		return shared.NewDomainError("INVALID_RECURRENCE", "Recurrence interval is not valid")
	}
	t.Recurring = interval != RecurrenceNone
	t.RecurrenceInterval = interval
	t.UpdatedAt = time.Now()
	return nil
}

// Update changes the mutable fields of a transaction
func (t *Transaction) Update(
	accountID uuid.UUID,
	txType TransactionType,
	amount valueobject.Money,
	date time.Time,
	description string,
) error {
	if accountID == uuid.Nil {
		return shared.NewDomainError("INVALID_ACCOUNT", "Account is required")
	}
	if !txType.IsValid() {
		return shared.NewDomainError("INVALID_TYPE", "Transaction type is not valid")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if len(description) > 500 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}

	t.AccountID = accountID
	t.Type = txType
	t.Amount = amount.Amount()
	t.Currency = amount.Currency()
	t.Date = date
	t.Description = description
	if txType != TransactionTypeTransfer {
		t.DestinationAccountID = nil
	}
	t.UpdatedAt = time.Now()
	return nil
}

// Validate checks cross-field invariants before persistence
func (t *Transaction) Validate() error {
	if !t.Type.IsValid() {
		return shared.NewDomainError("INVALID_TYPE", "Transaction type is not valid")
	}
	if t.Amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if t.Type == TransactionTypeTransfer && t.DestinationAccountID == nil {
		return shared.NewDomainError("INVALID_TRANSFER", "Transfer requires a destination account")
	}
	return nil
}
