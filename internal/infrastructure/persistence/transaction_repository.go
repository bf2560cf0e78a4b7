package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"github.com/fintrack/backend/internal/infrastructure/persistence/owner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormTransactionRepository implements TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByIDForOwner finds a transaction by ID for a specific owner
func (r *GormTransactionRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*ledger.Transaction, error) {
	var model models.TransactionModel
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

// FindAllForOwner finds all transactions for an owner with filtering,
// newest first by transaction date
func (r *GormTransactionRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter ledger.TransactionFilter) ([]ledger.Transaction, error) {
	var txModels []models.TransactionModel
	query := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Scopes(owner.Scope(ownerID))
	query = r.applyFilter(query, filter)

	if err := query.Find(&txModels).Error; err != nil {
		return nil, err
	}
	txs := make([]ledger.Transaction, len(txModels))
	for i, model := range txModels {
		txs[i] = *model.ToDomain()
	}
	return txs, nil
}

// CountForOwner counts transactions for an owner with filtering
func (r *GormTransactionRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter ledger.TransactionFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Scopes(owner.Scope(ownerID))
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindInPeriod loads all non-transfer transactions in [from, to) for report aggregation
func (r *GormTransactionRepository) FindInPeriod(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]ledger.Transaction, error) {
	var txModels []models.TransactionModel
	if err := r.db.WithContext(ctx).
		Scopes(owner.Scope(ownerID)).
		Where("type <> ? AND date >= ? AND date < ?",
			ledger.TransactionTypeTransfer, from, to).
		Order("date ASC").
		Find(&txModels).Error; err != nil {
		return nil, err
	}
	txs := make([]ledger.Transaction, len(txModels))
	for i, model := range txModels {
		txs[i] = *model.ToDomain()
	}
	return txs, nil
}

// Save creates or updates a transaction
func (r *GormTransactionRepository) Save(ctx context.Context, tx *ledger.Transaction) error {
	model := models.TransactionModelFromDomain(tx)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForOwner soft deletes a transaction for an owner
func (r *GormTransactionRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Scopes(owner.Scope(ownerID)).
		Where("id = ?", id).
		Delete(&models.TransactionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumExpensesByCategory sums expense transactions of one category in [from, to] inclusive
func (r *GormTransactionRepository) SumExpensesByCategory(ctx context.Context, ownerID, categoryID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Scopes(owner.Scope(ownerID)).
		Where("category_id = ? AND type = ? AND date >= ? AND date <= ?",
			categoryID, ledger.TransactionTypeExpense, from, to).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// SumSignedJoinedToAccounts sums the signed amounts of all transactions whose
// account row still exists. Expenses count negative, transfers zero. Rows
// pointing at a soft-deleted account drop out through the join.
func (r *GormTransactionRepository) SumSignedJoinedToAccounts(ctx context.Context, ownerID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Select(`COALESCE(SUM(CASE transactions.type
			WHEN 'INCOME' THEN transactions.amount
			WHEN 'EXPENSE' THEN -transactions.amount
			ELSE 0 END), 0) as total`).
		Joins("JOIN accounts ON accounts.id = transactions.account_id AND accounts.deleted_at IS NULL").
		Where("transactions.owner_id = ?", ownerID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// GroupExpensesByCategory groups expense spend by category in [from, to).
// Uncategorized transactions come back with a nil category ID.
func (r *GormTransactionRepository) GroupExpensesByCategory(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]ledger.CategorySpend, error) {
	var rows []struct {
		CategoryID   *uuid.UUID
		CategoryName *string
		CategoryIcon *string
		Total        decimal.Decimal
		Count        int64
	}
	if err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Select(`transactions.category_id,
			categories.name as category_name,
			categories.icon as category_icon,
			COALESCE(SUM(transactions.amount), 0) as total,
			COUNT(*) as count`).
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id AND categories.deleted_at IS NULL").
		Where("transactions.owner_id = ? AND transactions.type = ? AND transactions.date >= ? AND transactions.date < ?",
			ownerID, ledger.TransactionTypeExpense, from, to).
		Group("transactions.category_id, categories.name, categories.icon").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	spends := make([]ledger.CategorySpend, len(rows))
	for i, row := range rows {
		spend := ledger.CategorySpend{
			CategoryID: row.CategoryID,
			Total:      row.Total,
			Count:      row.Count,
		}
		if row.CategoryName != nil {
			spend.CategoryName = *row.CategoryName
		}
		if row.CategoryIcon != nil {
			spend.CategoryIcon = *row.CategoryIcon
		}
		spends[i] = spend
	}
	return spends, nil
}

// applyFilter applies filter conditions to query
func (r *GormTransactionRepository) applyFilter(query *gorm.DB, filter ledger.TransactionFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.SortBy, TransactionSortFields, "date")
	sortOrder := ValidateSortOrder(filter.SortOrder)
	query = query.Order(sortField + " " + sortOrder + ", created_at DESC")

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}

	return query
}

// applyFilterWithoutPagination applies filter conditions without pagination
func (r *GormTransactionRepository) applyFilterWithoutPagination(query *gorm.DB, filter ledger.TransactionFilter) *gorm.DB {
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.FromDate != nil {
		query = query.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("date <= ?", *filter.ToDate)
	}
	if len(filter.AccountIDs) > 0 {
		query = query.Where("account_id IN ?", filter.AccountIDs)
	}
	if len(filter.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", filter.CategoryIDs)
	}
	return query
}
