package ledger

import (
	"time"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/google/uuid"
)

// CreateTransactionRequest is the payload for creating a transaction
type CreateTransactionRequest struct {
	AccountID            uuid.UUID  `json:"account_id" binding:"required"`
	DestinationAccountID *uuid.UUID `json:"destination_account_id,omitempty"`
	CategoryID           *uuid.UUID `json:"category_id,omitempty"`
	Type                 string     `json:"type" binding:"required"`
	Amount               string     `json:"amount" binding:"required"`
	Currency             string     `json:"currency,omitempty"`
	Date                 time.Time  `json:"date" binding:"required"`
	Description          string     `json:"description,omitempty"`
	Recurring            bool       `json:"recurring,omitempty"`
	RecurrenceInterval   string     `json:"recurrence_interval,omitempty"`
}

// UpdateTransactionRequest is the payload for updating a transaction
type UpdateTransactionRequest struct {
	AccountID            uuid.UUID  `json:"account_id" binding:"required"`
	DestinationAccountID *uuid.UUID `json:"destination_account_id,omitempty"`
	CategoryID           *uuid.UUID `json:"category_id,omitempty"`
	Type                 string     `json:"type" binding:"required"`
	Amount               string     `json:"amount" binding:"required"`
	Currency             string     `json:"currency,omitempty"`
	Date                 time.Time  `json:"date" binding:"required"`
	Description          string     `json:"description,omitempty"`
	Recurring            bool       `json:"recurring,omitempty"`
	RecurrenceInterval   string     `json:"recurrence_interval,omitempty"`
}

// TransactionResponse is the wire shape of a transaction
type TransactionResponse struct {
	ID                   uuid.UUID  `json:"id"`
	AccountID            uuid.UUID  `json:"account_id"`
	DestinationAccountID *uuid.UUID `json:"destination_account_id,omitempty"`
	CategoryID           *uuid.UUID `json:"category_id,omitempty"`
	Type                 string     `json:"type"`
	Amount               string     `json:"amount"`
	Currency             string     `json:"currency"`
	Date                 time.Time  `json:"date"`
	Description          string     `json:"description"`
	Recurring            bool       `json:"recurring"`
	RecurrenceInterval   string     `json:"recurrence_interval,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// ToTransactionResponse converts a domain transaction to its wire shape
func ToTransactionResponse(t *ledger.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                   t.ID,
		AccountID:            t.AccountID,
		DestinationAccountID: t.DestinationAccountID,
		CategoryID:           t.CategoryID,
		Type:                 t.Type.String(),
		Amount:               t.Amount.String(),
		Currency:             string(t.Currency),
		Date:                 t.Date,
		Description:          t.Description,
		Recurring:            t.Recurring,
		RecurrenceInterval:   string(t.RecurrenceInterval),
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
}

// TransactionListFilter narrows a transaction listing
type TransactionListFilter struct {
	Type        string
	FromDate    *time.Time
	ToDate      *time.Time
	AccountIDs  []uuid.UUID
	CategoryIDs []uuid.UUID
	SortBy      string
	SortOrder   string
	Page        int
	PageSize    int
}

// CreateAccountRequest is the payload for creating an account
type CreateAccountRequest struct {
	Name        string `json:"name" binding:"required"`
	DisplayName string `json:"display_name,omitempty"`
	Type        string `json:"type" binding:"required"`
	Balance     string `json:"balance,omitempty"`
	BankName    string `json:"bank_name,omitempty"`
	IsDefault   bool   `json:"is_default,omitempty"`
}

// UpdateAccountRequest is the payload for updating an account
type UpdateAccountRequest struct {
	Name        string `json:"name" binding:"required"`
	DisplayName string `json:"display_name,omitempty"`
	Type        string `json:"type" binding:"required"`
	Balance     string `json:"balance,omitempty"`
	BankName    string `json:"bank_name,omitempty"`
	IsDefault   bool   `json:"is_default,omitempty"`
}

// AccountResponse is the wire shape of an account
type AccountResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Type        string    `json:"type"`
	Balance     string    `json:"balance"`
	BankName    string    `json:"bank_name,omitempty"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToAccountResponse converts a domain account to its wire shape
func ToAccountResponse(a *ledger.Account) *AccountResponse {
	return &AccountResponse{
		ID:          a.ID,
		Name:        a.Name,
		DisplayName: a.DisplayName,
		Type:        a.Type.String(),
		Balance:     a.Balance.String(),
		BankName:    a.BankName,
		IsDefault:   a.IsDefault,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// CreateCategoryRequest is the payload for creating a category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
	Icon string `json:"icon,omitempty"`
}

// UpdateCategoryRequest is the payload for updating a category
type UpdateCategoryRequest struct {
	Name    string `json:"name" binding:"required"`
	Type    string `json:"type" binding:"required"`
	Icon    string `json:"icon,omitempty"`
	Visible *bool  `json:"visible,omitempty"`
}

// CategoryResponse is the wire shape of a category
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Icon      string    `json:"icon,omitempty"`
	Visible   bool      `json:"visible"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a domain category to its wire shape
func ToCategoryResponse(c *ledger.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Type:      c.Type.String(),
		Icon:      c.Icon,
		Visible:   c.Visible,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// BalanceResponse reports the owner's aggregate balance. Transactions and
// accounts are counted as independent components and summed.
type BalanceResponse struct {
	TransactionsTotal string `json:"transactions_total"`
	AccountsTotal     string `json:"accounts_total"`
	Total             string `json:"total"`
}
