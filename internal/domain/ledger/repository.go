package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionFilter defines filtering options for transaction queries.
// Owner and not-deleted predicates are applied unconditionally by the
// repository; the filter only narrows further.
type TransactionFilter struct {
	Type        *TransactionType
	FromDate    *time.Time // inclusive
	ToDate      *time.Time // inclusive
	AccountIDs  []uuid.UUID
	CategoryIDs []uuid.UUID
	SortBy      string // column name, validated against a whitelist by the repository
	SortOrder   string // ASC or DESC
	Page        int
	PageSize    int
}

// CategorySpend is one row of a grouped expense-by-category query
type CategorySpend struct {
	CategoryID   *uuid.UUID
	CategoryName string
	CategoryIcon string
	Total        decimal.Decimal
	Count        int64
}

// TransactionRepository defines persistence operations for transactions
type TransactionRepository interface {
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Transaction, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter TransactionFilter) ([]Transaction, error)
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter TransactionFilter) (int64, error)
	// FindInPeriod loads all non-transfer transactions in [from, to) for report aggregation.
	FindInPeriod(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]Transaction, error)
	Save(ctx context.Context, tx *Transaction) error
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
	// SumExpensesByCategory sums expense transactions of one category in [from, to] inclusive.
	SumExpensesByCategory(ctx context.Context, ownerID, categoryID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
	// SumSignedJoinedToAccounts sums signed amounts of all transactions whose account
	// still exists (not soft-deleted); the transactions component of total balance.
	SumSignedJoinedToAccounts(ctx context.Context, ownerID uuid.UUID) (decimal.Decimal, error)
	// GroupExpensesByCategory groups expense spend by category in [from, to) for
	// the month-only category report.
	GroupExpensesByCategory(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]CategorySpend, error)
}

// AccountRepository defines persistence operations for accounts
type AccountRepository interface {
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Account, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]Account, error)
	Save(ctx context.Context, account *Account) error
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
	// SumBalances sums stored balances with credit-card accounts negated;
	// the accounts component of total balance.
	SumBalances(ctx context.Context, ownerID uuid.UUID) (decimal.Decimal, error)
}

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Category, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]Category, error)
	FindByIDsForOwner(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]Category, error)
	Save(ctx context.Context, category *Category) error
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}
