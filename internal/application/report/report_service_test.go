package report

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/report"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedTransactionRepo struct {
	transactions []ledger.Transaction
	spends       []ledger.CategorySpend
}

func (r *fixedTransactionRepo) FindByIDForOwner(context.Context, uuid.UUID, uuid.UUID) (*ledger.Transaction, error) {
	return nil, shared.ErrNotFound
}

func (r *fixedTransactionRepo) FindAllForOwner(context.Context, uuid.UUID, ledger.TransactionFilter) ([]ledger.Transaction, error) {
	return nil, nil
}

func (r *fixedTransactionRepo) CountForOwner(context.Context, uuid.UUID, ledger.TransactionFilter) (int64, error) {
	return 0, nil
}

func (r *fixedTransactionRepo) FindInPeriod(_ context.Context, _ uuid.UUID, from, to time.Time) ([]ledger.Transaction, error) {
	var out []ledger.Transaction
	for _, tx := range r.transactions {
		if !tx.Date.Before(from) && tx.Date.Before(to) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *fixedTransactionRepo) Save(context.Context, *ledger.Transaction) error { return nil }

func (r *fixedTransactionRepo) DeleteForOwner(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func (r *fixedTransactionRepo) SumExpensesByCategory(context.Context, uuid.UUID, uuid.UUID, time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *fixedTransactionRepo) SumSignedJoinedToAccounts(context.Context, uuid.UUID) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *fixedTransactionRepo) GroupExpensesByCategory(context.Context, uuid.UUID, time.Time, time.Time) ([]ledger.CategorySpend, error) {
	return r.spends, nil
}

type fixedCategoryRepo struct {
	categories map[uuid.UUID]ledger.Category
}

func (r *fixedCategoryRepo) FindByIDForOwner(context.Context, uuid.UUID, uuid.UUID) (*ledger.Category, error) {
	return nil, shared.ErrNotFound
}

func (r *fixedCategoryRepo) FindAllForOwner(context.Context, uuid.UUID) ([]ledger.Category, error) {
	return nil, nil
}

func (r *fixedCategoryRepo) FindByIDsForOwner(_ context.Context, _ uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]ledger.Category, error) {
	out := make(map[uuid.UUID]ledger.Category)
	for _, id := range ids {
		if cat, ok := r.categories[id]; ok {
			out[id] = cat
		}
	}
	return out, nil
}

func (r *fixedCategoryRepo) Save(context.Context, *ledger.Category) error { return nil }

func (r *fixedCategoryRepo) DeleteForOwner(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func transactionOn(t *testing.T, ownerID uuid.UUID, txType ledger.TransactionType, amount string, date time.Time, categoryID *uuid.UUID) ledger.Transaction {
	t.Helper()
	money, err := valueobject.NewMoneyFromString(amount, valueobject.USD)
	require.NoError(t, err)
	tx, err := ledger.NewTransaction(ownerID, uuid.New(), txType, money, date, "")
	require.NoError(t, err)
	if categoryID != nil {
		tx.SetCategory(*categoryID)
	}
	return *tx
}

func TestReportService_IncomeExpense_MonthSeries(t *testing.T) {
	ownerID := uuid.New()
	june := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	txRepo := &fixedTransactionRepo{transactions: []ledger.Transaction{
		transactionOn(t, ownerID, ledger.TransactionTypeIncome, "1000", time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), nil),
		transactionOn(t, ownerID, ledger.TransactionTypeExpense, "250", time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC), nil),
		transactionOn(t, ownerID, ledger.TransactionTypeExpense, "150", time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC), nil),
	}}
	svc := NewReportService(txRepo, &fixedCategoryRepo{})

	result, err := svc.IncomeExpense(context.Background(), ownerID, june, report.GranularityMonth)
	require.NoError(t, err)

	assert.Equal(t, "2025-06", result.Period)
	assert.Equal(t, "2025-05", result.PreviousPeriod)
	assert.Equal(t, "2025-07", result.NextPeriod)
	assert.Equal(t, "1000", result.TotalIncome.String())
	assert.Equal(t, "400", result.TotalExpenses.String())
	assert.Equal(t, "600", result.Balance.String())
	assert.InDelta(t, 0.6, result.NetSavingsRate, 1e-9)

	// June has 30 days; the series is gap-free and ordered.
	require.Len(t, result.TimeSeries, 30)
	assert.Equal(t, "2025-06-01", result.TimeSeries[0].Label)
	assert.Equal(t, "1000", result.TimeSeries[0].Income.String())
	assert.Equal(t, "400", result.TimeSeries[9].Expenses.String())
	assert.True(t, result.TimeSeries[20].Income.IsZero())
}

func TestReportService_IncomeExpense_YearSeriesHasTwelvePoints(t *testing.T) {
	ownerID := uuid.New()
	svc := NewReportService(&fixedTransactionRepo{}, &fixedCategoryRepo{})

	result, err := svc.IncomeExpense(context.Background(), ownerID, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), report.GranularityYear)
	require.NoError(t, err)

	require.Len(t, result.TimeSeries, 12)
	assert.Equal(t, "2025-01", result.TimeSeries[0].Label)
	assert.Equal(t, "2025-12", result.TimeSeries[11].Label)
	assert.Equal(t, 0.0, result.NetSavingsRate)
}

func TestReportService_IncomeExpense_WeekStartsMonday(t *testing.T) {
	ownerID := uuid.New()
	svc := NewReportService(&fixedTransactionRepo{}, &fixedCategoryRepo{})

	// 2025-06-15 is a Sunday; its week starts Monday 2025-06-09.
	result, err := svc.IncomeExpense(context.Background(), ownerID, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), report.GranularityWeek)
	require.NoError(t, err)

	require.Len(t, result.TimeSeries, 7)
	assert.Equal(t, "2025-06-09", result.TimeSeries[0].Label)
	assert.Equal(t, "2025-06-15", result.TimeSeries[6].Label)
}

func TestReportService_IncomeExpense_CategoryBreakdown(t *testing.T) {
	ownerID := uuid.New()
	groceriesID := uuid.New()
	rentID := uuid.New()
	day := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)

	txRepo := &fixedTransactionRepo{transactions: []ledger.Transaction{
		transactionOn(t, ownerID, ledger.TransactionTypeExpense, "300", day, &groceriesID),
		transactionOn(t, ownerID, ledger.TransactionTypeExpense, "700", day, &rentID),
		transactionOn(t, ownerID, ledger.TransactionTypeExpense, "100", day, nil),
	}}
	groceries, err := ledger.NewCategory(ownerID, "Groceries", ledger.CategoryTypeExpense, "cart")
	require.NoError(t, err)
	groceries.ID = groceriesID
	rent, err := ledger.NewCategory(ownerID, "Rent", ledger.CategoryTypeExpense, "home")
	require.NoError(t, err)
	rent.ID = rentID
	categoryRepo := &fixedCategoryRepo{categories: map[uuid.UUID]ledger.Category{
		groceriesID: *groceries,
		rentID:      *rent,
	}}
	svc := NewReportService(txRepo, categoryRepo)

	result, err := svc.IncomeExpense(context.Background(), ownerID, day, report.GranularityMonth)
	require.NoError(t, err)

	rows := result.ExpenseByCategory
	require.Len(t, rows, 3)

	// Sorted descending by amount, colored by rank.
	assert.Equal(t, "Rent", rows[0].Name)
	assert.Equal(t, report.Palette[0], rows[0].Color)
	assert.Equal(t, "Groceries", rows[1].Name)
	assert.Equal(t, report.Palette[1], rows[1].Color)
	assert.Equal(t, "Uncategorized", rows[2].Name)
	assert.Nil(t, rows[2].CategoryID)

	// Percentages are 0..1 fractions summing to 1.
	assert.InDelta(t, 0.7, rows[0].Percentage, 1e-9)
	assert.InDelta(t, 0.3, rows[1].Percentage, 1e-9)
	sum := rows[0].Percentage + rows[1].Percentage + rows[2].Percentage
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Equal(t, int64(1), rows[0].TransactionCount)
}

func TestReportService_IncomeExpense_InvalidGranularity(t *testing.T) {
	svc := NewReportService(&fixedTransactionRepo{}, &fixedCategoryRepo{})

	_, err := svc.IncomeExpense(context.Background(), uuid.New(), time.Now(), report.Granularity("decade"))
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_GRANULARITY", domainErr.Code)
}

func TestReportService_ExpenseByCategory(t *testing.T) {
	ownerID := uuid.New()
	foodID := uuid.New()
	txRepo := &fixedTransactionRepo{spends: []ledger.CategorySpend{
		{CategoryID: nil, CategoryName: "", Total: decimal.RequireFromString("25"), Count: 1},
		{CategoryID: &foodID, CategoryName: "Food", CategoryIcon: "fork", Total: decimal.RequireFromString("75"), Count: 3},
	}}
	svc := NewReportService(txRepo, &fixedCategoryRepo{})

	result, err := svc.ExpenseByCategory(context.Background(), ownerID, time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "2025-06", result.Period)
	assert.Equal(t, "100", result.Total.String())
	require.Len(t, result.Categories, 2)

	// Percentages here are 0..100, unlike the multi-series report.
	assert.Equal(t, "Food", result.Categories[0].Name)
	assert.InDelta(t, 75.0, result.Categories[0].Percentage, 1e-9)
	assert.Equal(t, report.Palette[0], result.Categories[0].Color)
	assert.Equal(t, "Uncategorized", result.Categories[1].Name)
	assert.InDelta(t, 25.0, result.Categories[1].Percentage, 1e-9)
}
