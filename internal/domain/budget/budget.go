package budget

import (
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetLine is one category allocation within a budget.
// Categories are unique per budget.
type BudgetLine struct {
	ID         uuid.UUID       `json:"id"`
	BudgetID   uuid.UUID       `json:"budget_id"`
	CategoryID uuid.UUID       `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// Budget represents a named spending plan over a date window with
// per-category allocations. The total amount is derived from the lines
// when lines exist.
type Budget struct {
	shared.OwnedEntity
	Name      string          `json:"name,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
	Recurring bool            `json:"recurring"`
	Active    bool            `json:"active"`
	Lines     []BudgetLine    `json:"lines"`
}

// NewBudget creates a new budget for an owner
func NewBudget(ownerID uuid.UUID, name string, startDate, endDate time.Time) (*Budget, error) {
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Budget name cannot exceed 100 characters")
	}
	if !endDate.After(startDate) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Budget end date must be after start date")
	}

	return &Budget{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		Name:        name,
		Amount:      decimal.Zero,
		StartDate:   startDate,
		EndDate:     endDate,
		Active:      true,
	}, nil
}

// LineInput is one requested allocation when replacing a budget's line set
type LineInput struct {
	CategoryID uuid.UUID
	Amount     decimal.Decimal
}

// ReplaceLines swaps the full line set. Duplicate categories are rejected;
// the budget total becomes the sum of line amounts.
func (b *Budget) ReplaceLines(inputs []LineInput) error {
	seen := make(map[uuid.UUID]struct{}, len(inputs))
	lines := make([]BudgetLine, 0, len(inputs))
	total := decimal.Zero

	for _, in := range inputs {
		if in.CategoryID == uuid.Nil {
			return shared.NewDomainError("INVALID_CATEGORY", "Budget line category is required")
		}
		if _, dup := seen[in.CategoryID]; dup {
			return shared.NewDomainError("CONFLICT", "Budget lines must have distinct categories")
		}
		if in.Amount.IsNegative() {
			return shared.NewDomainError("INVALID_AMOUNT", "Budget line amount cannot be negative")
		}
		seen[in.CategoryID] = struct{}{}
		lines = append(lines, BudgetLine{
			ID:         uuid.New(),
			BudgetID:   b.ID,
			CategoryID: in.CategoryID,
			Amount:     in.Amount,
		})
		total = total.Add(in.Amount)
	}

	b.Lines = lines
	if len(lines) > 0 {
		b.Amount = total
	}
	b.UpdatedAt = time.Now()
	return nil
}

// SetAmount overrides the budget total. Ignored when lines exist, since the
// total is then derived.
func (b *Budget) SetAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Budget amount cannot be negative")
	}
	if len(b.Lines) == 0 {
		b.Amount = amount
		b.UpdatedAt = time.Now()
	}
	return nil
}

// Update changes the budget header fields
func (b *Budget) Update(name string, startDate, endDate time.Time, recurring, active bool) error {
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Budget name cannot exceed 100 characters")
	}
	if !endDate.After(startDate) {
		return shared.NewDomainError("INVALID_PERIOD", "Budget end date must be after start date")
	}

	b.Name = name
	b.StartDate = startDate
	b.EndDate = endDate
	b.Recurring = recurring
	b.Active = active
	b.UpdatedAt = time.Now()
	return nil
}
