// Package budget contains the application service for budgets and their
// per-category spend annotations.
package budget

import (
	"context"
	"errors"

	"github.com/fintrack/backend/internal/domain/budget"
	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// BudgetService handles budget-related business operations
type BudgetService struct {
	budgetRepo      budget.BudgetRepository
	categoryRepo    ledger.CategoryRepository
	transactionRepo ledger.TransactionRepository
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(
	budgetRepo budget.BudgetRepository,
	categoryRepo ledger.CategoryRepository,
	transactionRepo ledger.TransactionRepository,
) *BudgetService {
	return &BudgetService{
		budgetRepo:      budgetRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
	}
}

// List retrieves all budgets for an owner, each annotated with total spend
// figures computed from the ledger over the budget window.
func (s *BudgetService) List(ctx context.Context, ownerID uuid.UUID) ([]BudgetResponse, error) {
	budgets, err := s.budgetRepo.FindAllForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	responses := make([]BudgetResponse, len(budgets))
	for i := range budgets {
		spent, err := s.totalSpent(ctx, ownerID, &budgets[i])
		if err != nil {
			return nil, err
		}
		responses[i] = annotate(&budgets[i], spent)
	}
	return responses, nil
}

// GetByID retrieves a budget with per-line spend annotations
func (s *BudgetService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*BudgetDetailResponse, error) {
	b, err := s.budgetRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	categoryIDs := make([]uuid.UUID, len(b.Lines))
	for i, line := range b.Lines {
		categoryIDs[i] = line.CategoryID
	}
	categories, err := s.categoryRepo.FindByIDsForOwner(ctx, ownerID, categoryIDs)
	if err != nil {
		return nil, err
	}

	lines := make([]LineResponse, len(b.Lines))
	totalSpent := decimal.Zero
	for i, line := range b.Lines {
		spent, err := s.transactionRepo.SumExpensesByCategory(ctx, ownerID, line.CategoryID, b.StartDate, b.EndDate)
		if err != nil {
			return nil, err
		}
		totalSpent = totalSpent.Add(spent)

		lines[i] = LineResponse{
			ID:                 line.ID,
			CategoryID:         line.CategoryID,
			Amount:             line.Amount.String(),
			Spent:              spent.StringFixed(2),
			Remaining:          line.Amount.Sub(spent).StringFixed(2),
			ProgressPercentage: progress(spent, line.Amount),
		}
		if cat, ok := categories[line.CategoryID]; ok {
			lines[i].CategoryName = cat.Name
		}
	}

	return &BudgetDetailResponse{
		BudgetResponse: annotate(b, totalSpent),
		Lines:          lines,
	}, nil
}

// Upsert creates or replaces a budget. The header and the full line set are
// written in one database transaction so a partially replaced budget is
// never observable.
func (s *BudgetService) Upsert(ctx context.Context, ownerID uuid.UUID, req UpsertBudgetRequest) (*BudgetDetailResponse, error) {
	var b *budget.Budget
	var err error

	if req.ID != nil {
		b, err = s.budgetRepo.FindByIDForOwner(ctx, ownerID, *req.ID)
		if err != nil {
			return nil, err
		}
		active := b.Active
		if req.Active != nil {
			active = *req.Active
		}
		if err := b.Update(req.Name, req.StartDate, req.EndDate, req.Recurring, active); err != nil {
			return nil, err
		}
	} else {
		b, err = budget.NewBudget(ownerID, req.Name, req.StartDate, req.EndDate)
		if err != nil {
			return nil, err
		}
		b.Recurring = req.Recurring
		if req.Active != nil {
			b.Active = *req.Active
		}
	}

	inputs, err := s.resolveLines(ctx, ownerID, req.Lines)
	if err != nil {
		return nil, err
	}
	if err := b.ReplaceLines(inputs); err != nil {
		return nil, err
	}

	if len(inputs) == 0 && req.Amount != "" {
		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Budget amount is not a valid decimal")
		}
		if err := b.SetAmount(amount); err != nil {
			return nil, err
		}
	}

	if err := s.budgetRepo.Upsert(ctx, b); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, ownerID, b.ID)
}

// Delete soft-deletes a budget
func (s *BudgetService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.budgetRepo.DeleteForOwner(ctx, ownerID, id)
}

// resolveLines validates requested allocations against the owner's
// categories. Only expense categories can be budgeted.
func (s *BudgetService) resolveLines(ctx context.Context, ownerID uuid.UUID, lines []LineRequest) ([]budget.LineInput, error) {
	if len(lines) == 0 {
		return nil, nil
	}

	categoryIDs := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		categoryIDs[i] = line.CategoryID
	}
	categories, err := s.categoryRepo.FindByIDsForOwner(ctx, ownerID, categoryIDs)
	if err != nil {
		return nil, err
	}

	inputs := make([]budget.LineInput, len(lines))
	for i, line := range lines {
		cat, ok := categories[line.CategoryID]
		if !ok {
			return nil, shared.NewDomainError("INVALID_REFERENCE", "Budget line category not found")
		}
		if cat.Type != ledger.CategoryTypeExpense {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Budgets can only allocate expense categories")
		}
		amount, err := decimal.NewFromString(line.Amount)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Budget line amount is not a valid decimal")
		}
		inputs[i] = budget.LineInput{CategoryID: line.CategoryID, Amount: amount}
	}
	return inputs, nil
}

// totalSpent sums expense spend across a budget's lines over its window
func (s *BudgetService) totalSpent(ctx context.Context, ownerID uuid.UUID, b *budget.Budget) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, line := range b.Lines {
		spent, err := s.transactionRepo.SumExpensesByCategory(ctx, ownerID, line.CategoryID, b.StartDate, b.EndDate)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return decimal.Zero, err
		}
		total = total.Add(spent)
	}
	return total, nil
}

// annotate fills the aggregate spend fields of a budget response
func annotate(b *budget.Budget, spent decimal.Decimal) BudgetResponse {
	resp := baseResponse(b)
	resp.TotalSpent = spent.StringFixed(2)
	resp.TotalRemaining = b.Amount.Sub(spent).StringFixed(2)
	resp.ProgressPercentage = progress(spent, b.Amount)
	return resp
}

// progress renders spent/allocated as a percentage with two decimals.
// Overspend runs past 100; clamping is left to display. A zero allocation
// reports 0 rather than dividing by zero.
func progress(spent, allocated decimal.Decimal) string {
	if allocated.IsZero() {
		return decimal.Zero.StringFixed(2)
	}
	return spent.Div(allocated).Mul(oneHundred).StringFixed(2)
}
