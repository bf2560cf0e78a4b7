package persistence

import (
	"context"
	"errors"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"github.com/fintrack/backend/internal/infrastructure/persistence/owner"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByIDForOwner finds a category by ID for a specific owner
func (r *GormCategoryRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*ledger.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).
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

// FindAllForOwner finds all categories for an owner, name ascending
func (r *GormCategoryRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]ledger.Category, error) {
	var categoryModels []models.CategoryModel
	if err := r.db.WithContext(ctx).
		Scopes(owner.Scope(ownerID)).
		Order("name ASC").
		Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	categories := make([]ledger.Category, len(categoryModels))
	for i, model := range categoryModels {
		categories[i] = *model.ToDomain()
	}
	return categories, nil
}

// FindByIDsForOwner loads the given categories keyed by ID.
// Missing IDs are simply absent from the result map.
func (r *GormCategoryRepository) FindByIDsForOwner(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]ledger.Category, error) {
	result := make(map[uuid.UUID]ledger.Category, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var categoryModels []models.CategoryModel
	if err := r.db.WithContext(ctx).
		Scopes(owner.Scope(ownerID)).
		Where("id IN ?", ids).
		Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	for _, model := range categoryModels {
		result[model.ID] = *model.ToDomain()
	}
	return result, nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *ledger.Category) error {
	model := models.CategoryModelFromDomain(category)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForOwner soft deletes a category for an owner
func (r *GormCategoryRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Scopes(owner.Scope(ownerID)).
		Where("id = ?", id).
		Delete(&models.CategoryModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
