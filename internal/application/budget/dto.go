package budget

import (
	"time"

	"github.com/fintrack/backend/internal/domain/budget"
	"github.com/google/uuid"
)

// LineRequest is one requested allocation in an upsert
type LineRequest struct {
	CategoryID uuid.UUID `json:"category_id" binding:"required"`
	Amount     string    `json:"amount" binding:"required"`
}

// UpsertBudgetRequest creates or replaces a budget. When ID is set the
// existing budget is updated; its line set is always replaced wholesale.
type UpsertBudgetRequest struct {
	ID        *uuid.UUID    `json:"id,omitempty"`
	Name      string        `json:"name,omitempty"`
	Amount    string        `json:"amount,omitempty"`
	StartDate time.Time     `json:"start_date" binding:"required"`
	EndDate   time.Time     `json:"end_date" binding:"required"`
	Recurring bool          `json:"recurring,omitempty"`
	Active    *bool         `json:"active,omitempty"`
	Lines     []LineRequest `json:"lines"`
}

// LineResponse is one budget line annotated with spend progress
type LineResponse struct {
	ID                 uuid.UUID `json:"id"`
	CategoryID         uuid.UUID `json:"category_id"`
	CategoryName       string    `json:"category_name,omitempty"`
	Amount             string    `json:"amount"`
	Spent              string    `json:"spent"`
	Remaining          string    `json:"remaining"`
	ProgressPercentage string    `json:"progress_percentage"`
}

// BudgetResponse is the wire shape of a budget with aggregate spend figures
type BudgetResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name,omitempty"`
	Amount             string    `json:"amount"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	Recurring          bool      `json:"recurring"`
	Active             bool      `json:"active"`
	TotalSpent         string    `json:"total_spent"`
	TotalRemaining     string    `json:"total_remaining"`
	ProgressPercentage string    `json:"progress_percentage"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// BudgetDetailResponse adds annotated lines to the budget shape
type BudgetDetailResponse struct {
	BudgetResponse
	Lines []LineResponse `json:"lines"`
}

func baseResponse(b *budget.Budget) BudgetResponse {
	return BudgetResponse{
		ID:        b.ID,
		Name:      b.Name,
		Amount:    b.Amount.String(),
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		Recurring: b.Recurring,
		Active:    b.Active,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
