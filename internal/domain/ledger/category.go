package ledger

import (
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CategoryType restricts a category to income or expense transactions.
// Budgets only allocate expense categories.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "INCOME"
	CategoryTypeExpense CategoryType = "EXPENSE"
)

// IsValid checks if the type is a valid CategoryType
func (t CategoryType) IsValid() bool {
	switch t {
	case CategoryTypeIncome, CategoryTypeExpense:
		return true
	}
	return false
}

// String returns the string representation of CategoryType
func (t CategoryType) String() string {
	return string(t)
}

// Category represents a transaction category owned by a user
type Category struct {
	shared.OwnedEntity
	Name    string       `json:"name"`
	Type    CategoryType `json:"type"`
	Icon    string       `json:"icon,omitempty"`
	Visible bool         `json:"visible"`
}

// NewCategory creates a new category for an owner
func NewCategory(ownerID uuid.UUID, name string, categoryType CategoryType, icon string) (*Category, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	if !categoryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Category type is not valid")
	}

	return &Category{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		Name:        name,
		Type:        categoryType,
		Icon:        icon,
		Visible:     true,
	}, nil
}

// Update changes the mutable fields of a category
func (c *Category) Update(name string, categoryType CategoryType, icon string, visible bool) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if !categoryType.IsValid() {
		return shared.NewDomainError("INVALID_TYPE", "Category type is not valid")
	}

	c.Name = name
	c.Type = categoryType
	c.Icon = icon
	c.Visible = visible
	c.UpdatedAt = time.Now()
	return nil
}
