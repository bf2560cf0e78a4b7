package ledger

import (
	"context"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/google/uuid"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo ledger.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo ledger.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List retrieves all categories for an owner
func (s *CategoryService) List(ctx context.Context, ownerID uuid.UUID) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAllForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = *ToCategoryResponse(&categories[i])
	}
	return responses, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, ownerID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := ledger.NewCategory(ownerID, req.Name, ledger.CategoryType(req.Type), req.Icon)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	return ToCategoryResponse(category), nil
}

// Update updates an existing category
func (s *CategoryService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	visible := category.Visible
	if req.Visible != nil {
		visible = *req.Visible
	}

	if err := category.Update(req.Name, ledger.CategoryType(req.Type), req.Icon, visible); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	return ToCategoryResponse(category), nil
}

// Delete soft-deletes a category. Transactions keep their category_id;
// grouped reports surface them under the uncategorized bucket while the
// category is deleted.
func (s *CategoryService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.categoryRepo.DeleteForOwner(ctx, ownerID, id)
}
