package persistence

import (
	"context"
	"errors"

	"github.com/fintrack/backend/internal/domain/budget"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"github.com/fintrack/backend/internal/infrastructure/persistence/owner"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBudgetRepository implements BudgetRepository using GORM.
// It holds the Database rather than a bare gorm.DB because the write
// paths run through the row-level-security unit of work.
type GormBudgetRepository struct {
	db *Database
}

// NewGormBudgetRepository creates a new GormBudgetRepository
func NewGormBudgetRepository(db *Database) *GormBudgetRepository {
	return &GormBudgetRepository{db: db}
}

// FindAllForOwner finds all budgets for an owner with their lines,
// newest start date first
func (r *GormBudgetRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]budget.Budget, error) {
	var budgetModels []models.BudgetModel
	if err := r.db.DB.WithContext(ctx).
		Preload("Lines").
		Scopes(owner.Scope(ownerID)).
		Order("start_date DESC").
		Find(&budgetModels).Error; err != nil {
		return nil, err
	}
	budgets := make([]budget.Budget, len(budgetModels))
	for i, model := range budgetModels {
		budgets[i] = *model.ToDomain()
	}
	return budgets, nil
}

// FindByIDForOwner finds a budget by ID for a specific owner with its lines
func (r *GormBudgetRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*budget.Budget, error) {
	var model models.BudgetModel
	if err := r.db.DB.WithContext(ctx).
		Preload("Lines").
		Scopes(owner.Scope(ownerID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Upsert saves the budget header and replaces its full line set atomically.
// Existing lines are deleted and the new set inserted inside one transaction
// on a connection pinned to the owner's row-level-security claim, so a
// half-replaced line set is never observable.
func (r *GormBudgetRepository) Upsert(ctx context.Context, b *budget.Budget) error {
	model := models.BudgetModelFromDomain(b)
	lines := model.Lines
	model.Lines = nil

	return r.db.WithOwner(ctx, b.OwnerID, func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(model).Error; err != nil {
				return err
			}
			if err := tx.Where("budget_id = ?", model.ID).
				Delete(&models.BudgetLineModel{}).Error; err != nil {
				return err
			}
			if len(lines) > 0 {
				if err := tx.Create(&lines).Error; err != nil {
					return err
				}
			}
			return nil
		})
	})
}

// DeleteForOwner soft deletes a budget and removes its lines
func (r *GormBudgetRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithOwner(ctx, ownerID, func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			result := tx.Scopes(owner.Scope(ownerID)).
				Where("id = ?", id).
				Delete(&models.BudgetModel{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return shared.ErrNotFound
			}
			return tx.Where("budget_id = ?", id).Delete(&models.BudgetLineModel{}).Error
		})
	})
}
