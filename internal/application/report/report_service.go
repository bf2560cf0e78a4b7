// Package report computes derived income/expense projections from the
// ledger. Reports are never persisted; every request recomputes from the
// transaction rows in the period.
package report

import (
	"context"
	"sort"
	"time"

	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/domain/report"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// uncategorizedName labels transactions with no visible category
const uncategorizedName = "Uncategorized"

// ReportService handles report computation
type ReportService struct {
	transactionRepo ledger.TransactionRepository
	categoryRepo    ledger.CategoryRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	transactionRepo ledger.TransactionRepository,
	categoryRepo ledger.CategoryRepository,
) *ReportService {
	return &ReportService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

type categoryAccumulator struct {
	amount decimal.Decimal
	count  int64
}

type seriesAccumulator struct {
	income   decimal.Decimal
	expenses decimal.Decimal
}

// IncomeExpense computes the income/expense report for the period containing
// periodDate at the given granularity. Transfers never enter the report; the
// repository excludes them at load.
func (s *ReportService) IncomeExpense(ctx context.Context, ownerID uuid.UUID, periodDate time.Time, granularity report.Granularity) (*report.IncomeExpenseReport, error) {
	period, err := report.PeriodFor(periodDate, granularity)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.FindInPeriod(ctx, ownerID, period.Start, period.End)
	if err != nil {
		return nil, err
	}

	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero
	series := make(map[string]*seriesAccumulator)
	incomeByCategory := make(map[report.CategoryKey]*categoryAccumulator)
	expenseByCategory := make(map[report.CategoryKey]*categoryAccumulator)

	for i := range transactions {
		tx := &transactions[i]
		bucket := period.SubPeriodKey(tx.Date)
		point, ok := series[bucket]
		if !ok {
			point = &seriesAccumulator{income: decimal.Zero, expenses: decimal.Zero}
			series[bucket] = point
		}

		key := report.KeyFor(tx.CategoryID)
		switch tx.Type {
		case ledger.TransactionTypeIncome:
			totalIncome = totalIncome.Add(tx.Amount)
			point.income = point.income.Add(tx.Amount)
			accumulate(incomeByCategory, key, tx.Amount)
		case ledger.TransactionTypeExpense:
			totalExpenses = totalExpenses.Add(tx.Amount)
			point.expenses = point.expenses.Add(tx.Amount)
			accumulate(expenseByCategory, key, tx.Amount)
		}
	}

	categories, err := s.resolveCategories(ctx, ownerID, incomeByCategory, expenseByCategory)
	if err != nil {
		return nil, err
	}

	balance := totalIncome.Sub(totalExpenses)
	netSavingsRate := 0.0
	if totalIncome.IsPositive() {
		netSavingsRate = balance.Div(totalIncome).InexactFloat64()
	}

	return &report.IncomeExpenseReport{
		Period:            period.Label,
		Granularity:       granularity,
		PreviousPeriod:    period.Previous,
		NextPeriod:        period.Next,
		TotalIncome:       totalIncome,
		TotalExpenses:     totalExpenses,
		Balance:           balance,
		NetSavingsRate:    netSavingsRate,
		TimeSeries:        fillSeries(period, series),
		IncomeByCategory:  buildBreakdown(incomeByCategory, categories, totalIncome),
		ExpenseByCategory: buildBreakdown(expenseByCategory, categories, totalExpenses),
	}, nil
}

// ExpenseByCategory computes the month-only expense breakdown. Grouping
// happens in SQL; only ordering, percentages and colors are applied here.
func (s *ReportService) ExpenseByCategory(ctx context.Context, ownerID uuid.UUID, periodDate time.Time) (*report.CategoryReport, error) {
	period, err := report.PeriodFor(periodDate, report.GranularityMonth)
	if err != nil {
		return nil, err
	}

	spends, err := s.transactionRepo.GroupExpensesByCategory(ctx, ownerID, period.Start, period.End)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, spend := range spends {
		total = total.Add(spend.Total)
	}

	sort.SliceStable(spends, func(i, j int) bool {
		return spends[i].Total.GreaterThan(spends[j].Total)
	})

	rows := make([]report.CategoryReportRow, len(spends))
	for i, spend := range spends {
		percentage := 0.0
		if total.IsPositive() {
			percentage = spend.Total.Div(total).InexactFloat64() * 100
		}
		name := spend.CategoryName
		if name == "" {
			name = uncategorizedName
		}
		rows[i] = report.CategoryReportRow{
			CategoryID: spend.CategoryID,
			Name:       name,
			Icon:       spend.CategoryIcon,
			Amount:     spend.Total,
			Percentage: percentage,
			Color:      report.ColorForRank(i),
		}
	}

	return &report.CategoryReport{
		Period:         period.Label,
		PreviousPeriod: period.Previous,
		NextPeriod:     period.Next,
		Total:          total,
		Categories:     rows,
	}, nil
}

func accumulate(m map[report.CategoryKey]*categoryAccumulator, key report.CategoryKey, amount decimal.Decimal) {
	acc, ok := m[key]
	if !ok {
		acc = &categoryAccumulator{amount: decimal.Zero}
		m[key] = acc
	}
	acc.amount = acc.amount.Add(amount)
	acc.count++
}

// resolveCategories loads names and icons for every category id that shows
// up in either accumulation map
func (s *ReportService) resolveCategories(
	ctx context.Context,
	ownerID uuid.UUID,
	maps ...map[report.CategoryKey]*categoryAccumulator,
) (map[uuid.UUID]ledger.Category, error) {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, m := range maps {
		for key := range m {
			if key.Uncategorized {
				continue
			}
			if _, ok := seen[key.ID]; !ok {
				seen[key.ID] = struct{}{}
				ids = append(ids, key.ID)
			}
		}
	}
	if len(ids) == 0 {
		return map[uuid.UUID]ledger.Category{}, nil
	}
	return s.categoryRepo.FindByIDsForOwner(ctx, ownerID, ids)
}

// fillSeries expands the sparse accumulation map into the gap-free ordered
// time series: 12 points for a year, days-in-month for a month, 7 for a week.
func fillSeries(period report.Period, series map[string]*seriesAccumulator) []report.TimePoint {
	keys := period.SubPeriods()
	points := make([]report.TimePoint, len(keys))
	for i, key := range keys {
		points[i] = report.TimePoint{
			Label:    key,
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
		}
		if acc, ok := series[key]; ok {
			points[i].Income = acc.income
			points[i].Expenses = acc.expenses
		}
	}
	return points
}

// buildBreakdown orders category buckets descending by amount and assigns
// palette colors by sorted rank. Percentage is a 0..1 fraction of total.
func buildBreakdown(
	m map[report.CategoryKey]*categoryAccumulator,
	categories map[uuid.UUID]ledger.Category,
	total decimal.Decimal,
) []report.CategoryBreakdown {
	rows := make([]report.CategoryBreakdown, 0, len(m))
	for key, acc := range m {
		row := report.CategoryBreakdown{
			Name:             uncategorizedName,
			Amount:           acc.amount,
			TransactionCount: acc.count,
		}
		if !key.Uncategorized {
			id := key.ID
			row.CategoryID = &id
			if cat, ok := categories[id]; ok {
				row.Name = cat.Name
				row.Icon = cat.Icon
			}
		}
		if total.IsPositive() {
			row.Percentage = acc.amount.Div(total).InexactFloat64()
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Amount.Equal(rows[j].Amount) {
			return rows[i].Amount.GreaterThan(rows[j].Amount)
		}
		return rows[i].Name < rows[j].Name
	})
	for i := range rows {
		rows[i].Color = report.ColorForRank(i)
	}
	return rows
}
