package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategorySummary aggregates the valid amounts of one category.
type CategorySummary struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"sum"`
	Mean     decimal.Decimal `json:"mean"`
	Count    int             `json:"count"`
}

// MonthlySummary is the total of one category within one calendar month.
type MonthlySummary struct {
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"amount"`
}

// MonthlyTotal is the total of all categories within one calendar month.
type MonthlyTotal struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Total decimal.Decimal `json:"amount"`
}

// UnusualExpense is a record whose amount exceeds its category mean by the
// detection threshold.
type UnusualExpense struct {
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	CategoryAvg   decimal.Decimal `json:"category_avg"`
	TimesAboveAvg decimal.Decimal `json:"times_above_avg"`
	Row           int             `json:"row,omitempty"`
}

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IsZero reports whether the range is unset.
func (d DateRange) IsZero() bool {
	return d.Start.IsZero() && d.End.IsZero()
}

// Overview summarizes a whole record set.
type Overview struct {
	RecordCount         int             `json:"total_records"`
	ValidCount          int             `json:"valid_records"`
	SkippedCount        int             `json:"skipped_records"`
	DateRange           DateRange       `json:"date_range"`
	GrandTotal          decimal.Decimal `json:"total_expenses"`
	AverageMonthlyTotal decimal.Decimal `json:"average_monthly_expenses"`
	MonthCount          int             `json:"month_count"`
}

// BudgetStatus compares spending in a window against a budget.
type BudgetStatus struct {
	Budget     decimal.Decimal `json:"budget"`
	Total      decimal.Decimal `json:"total"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage decimal.Decimal `json:"percentage"`
	OverBudget bool            `json:"over_budget"`
}

// String returns the range as "YYYY-MM-DD to YYYY-MM-DD", or "" when unset.
func (d DateRange) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Start.Format("2006-01-02") + " to " + d.End.Format("2006-01-02")
}

// Include widens the range to cover t.
func (d DateRange) Include(t time.Time) DateRange {
	if d.Start.IsZero() || t.Before(d.Start) {
		d.Start = t
	}
	if d.End.IsZero() || t.After(d.End) {
		d.End = t
	}
	return d
}

// Merge combines this date range with another, returning the overall range
func (d DateRange) Merge(other DateRange) DateRange {
	if other.IsZero() {
		return d
	}
	return d.Include(other.Start).Include(other.End)
}
