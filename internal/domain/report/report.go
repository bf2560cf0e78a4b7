package report

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryKey identifies the category bucket of an aggregation map.
// The uncategorized bucket is a distinct variant rather than a sentinel
// string, so it can never collide with a real category id.
type CategoryKey struct {
	ID            uuid.UUID
	Uncategorized bool
}

// KeyFor returns the bucket key for an optional category id
func KeyFor(categoryID *uuid.UUID) CategoryKey {
	if categoryID == nil {
		return CategoryKey{Uncategorized: true}
	}
	return CategoryKey{ID: *categoryID}
}

// Palette is the fixed 8-color chart palette. Breakdown rows are colored
// by sort-rank index after sorting descending by amount.
var Palette = [8]string{
	"#4E79A7",
	"#F28E2B",
	"#E15759",
	"#76B7B2",
	"#59A14F",
	"#EDC948",
	"#B07AA1",
	"#FF9DA7",
}

// ColorForRank returns the palette color for a sorted rank index
func ColorForRank(rank int) string {
	return Palette[rank%len(Palette)]
}

// TimePoint is one bucket of the income/expense time series
type TimePoint struct {
	Label    string          `json:"label"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// CategoryBreakdown is one category row of a report. Percentage is a 0..1
// fraction of the category total.
type CategoryBreakdown struct {
	CategoryID       *uuid.UUID      `json:"category_id"`
	Name             string          `json:"name"`
	Icon             string          `json:"icon,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	TransactionCount int64           `json:"transaction_count"`
	Percentage       float64         `json:"percentage"`
	Color            string          `json:"color"`
}

// IncomeExpenseReport is the computed projection for a period. It is never
// persisted; every request recomputes it from the ledger.
type IncomeExpenseReport struct {
	Period            string              `json:"period"`
	Granularity       Granularity         `json:"granularity"`
	PreviousPeriod    string              `json:"previous_period"`
	NextPeriod        string              `json:"next_period"`
	TotalIncome       decimal.Decimal     `json:"total_income"`
	TotalExpenses     decimal.Decimal     `json:"total_expenses"`
	Balance           decimal.Decimal     `json:"balance"`
	NetSavingsRate    float64             `json:"net_savings_rate"`
	TimeSeries        []TimePoint         `json:"time_series"`
	IncomeByCategory  []CategoryBreakdown `json:"income_by_category"`
	ExpenseByCategory []CategoryBreakdown `json:"expense_by_category"`
}

// CategoryReportRow is one row of the month-only expense-by-category report.
// Percentage here is 0..100, unlike the fraction-scaled multi-series report;
// the asymmetry is observed product behavior and deliberately preserved.
type CategoryReportRow struct {
	CategoryID *uuid.UUID      `json:"category_id"`
	Name       string          `json:"name"`
	Icon       string          `json:"icon,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
	Color      string          `json:"color"`
}

// CategoryReport is the month-only expense breakdown
type CategoryReport struct {
	Period         string              `json:"period"`
	PreviousPeriod string              `json:"previous_period"`
	NextPeriod     string              `json:"next_period"`
	Total          decimal.Decimal     `json:"total"`
	Categories     []CategoryReportRow `json:"categories"`
}
