package budget

import (
	"context"

	"github.com/google/uuid"
)

// BudgetRepository defines persistence operations for budgets.
// Upsert must replace the full line set atomically: delete all existing
// lines and insert the new set inside one database transaction, so a
// half-replaced line set is never observable.
type BudgetRepository interface {
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]Budget, error)
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Budget, error)
	Upsert(ctx context.Context, b *Budget) error
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}
