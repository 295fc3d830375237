// Package aggregator computes category, monthly and overall totals over
// categorized expense records.
//
// Every function ignores records whose amount is not a number. Sums are
// exact decimals; rounding happens only when formatting.
package aggregator

import (
	"sort"
	"time"

	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/models"

	"github.com/shopspring/decimal"
)

type monthKey struct {
	year, month int
}

type categoryAcc struct {
	total decimal.Decimal
	count int
}

// CategorySummary returns sum, mean and count per category, ordered by sum
// descending and then by name.
func CategorySummary(records []models.Record) []models.CategorySummary {
	acc := make(map[string]*categoryAcc)
	for _, r := range records {
		if !r.AmountValid {
			continue
		}
		a, ok := acc[r.Category]
		if !ok {
			a = &categoryAcc{total: decimal.Zero}
			acc[r.Category] = a
		}
		a.total = a.total.Add(r.Amount)
		a.count++
	}

	out := make([]models.CategorySummary, 0, len(acc))
	for name, a := range acc {
		out = append(out, models.CategorySummary{
			Category: name,
			Total:    a.total,
			Mean:     a.total.Div(decimal.NewFromInt(int64(a.count))),
			Count:    a.count,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// CategoryMeans returns the mean valid amount per category.
func CategoryMeans(records []models.Record) map[string]decimal.Decimal {
	means := make(map[string]decimal.Decimal)
	for _, s := range CategorySummary(records) {
		means[s.Category] = s.Mean
	}
	return means
}

// MonthlySummary returns one row per (year, month, category) with at least
// one valid record, ordered by year, month and category.
func MonthlySummary(records []models.Record) []models.MonthlySummary {
	type key struct {
		monthKey
		category string
	}
	totals := make(map[key]decimal.Decimal)
	for _, r := range records {
		if !r.AmountValid {
			continue
		}
		k := key{monthKey{r.Year, r.Month}, r.Category}
		totals[k] = totals[k].Add(r.Amount)
	}

	out := make([]models.MonthlySummary, 0, len(totals))
	for k, total := range totals {
		out = append(out, models.MonthlySummary{Year: k.year, Month: k.month, Category: k.category, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// MonthlyTotals returns the all-category total for each month with at least
// one valid record, in chronological order.
func MonthlyTotals(records []models.Record) []models.MonthlyTotal {
	totals := make(map[monthKey]decimal.Decimal)
	for _, r := range records {
		if !r.AmountValid {
			continue
		}
		k := monthKey{r.Year, r.Month}
		totals[k] = totals[k].Add(r.Amount)
	}

	out := make([]models.MonthlyTotal, 0, len(totals))
	for k, total := range totals {
		out = append(out, models.MonthlyTotal{Year: k.year, Month: k.month, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// GrandTotal sums every valid amount.
func GrandTotal(records []models.Record) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		if r.AmountValid {
			total = total.Add(r.Amount)
		}
	}
	return total
}

// Summarize computes record counts, the date span of all records, the grand
// total and the average of the monthly totals.
func Summarize(records []models.Record) models.Overview {
	o := models.Overview{
		RecordCount:         len(records),
		GrandTotal:          decimal.Zero,
		AverageMonthlyTotal: decimal.Zero,
	}
	for _, r := range records {
		o.DateRange = o.DateRange.Include(r.Date)
		if r.AmountValid {
			o.ValidCount++
		} else {
			o.SkippedCount++
		}
	}

	monthly := MonthlyTotals(records)
	o.MonthCount = len(monthly)
	o.GrandTotal = GrandTotal(records)
	if o.MonthCount > 0 {
		o.AverageMonthlyTotal = o.GrandTotal.Div(decimal.NewFromInt(int64(o.MonthCount)))
	}
	return o
}

// TopExpenses returns up to n valid records with the largest amounts. Ties
// keep the earlier date, then the earlier row.
func TopExpenses(records []models.Record, n int) []models.Record {
	if n <= 0 {
		return []models.Record{}
	}
	valid := models.ValidRecords(records)
	sort.SliceStable(valid, func(i, j int) bool {
		if c := valid[i].Amount.Cmp(valid[j].Amount); c != 0 {
			return c > 0
		}
		if c := dateutils.CompareDates(valid[i].Date, valid[j].Date); c != 0 {
			return c < 0
		}
		return valid[i].Row < valid[j].Row
	})
	if len(valid) > n {
		valid = valid[:n]
	}
	return valid
}

// FilterMonth returns the records dated in the given month.
func FilterMonth(records []models.Record, year, month int) []models.Record {
	out := make([]models.Record, 0)
	for _, r := range records {
		if r.Year == year && r.Month == month {
			out = append(out, r)
		}
	}
	return out
}

// Scope selects a time window relative to the current month.
type Scope string

// Scopes accepted by FilterScope.
const (
	ScopePresent Scope = "present"
	ScopePast    Scope = "past"
	ScopeAll     Scope = "all"
)

// ParseScope validates a scope name; an empty name means ScopeAll.
func ParseScope(s string) (Scope, bool) {
	switch Scope(s) {
	case "":
		return ScopeAll, true
	case ScopePresent, ScopePast, ScopeAll:
		return Scope(s), true
	}
	return "", false
}

// FilterScope keeps the records of now's month (present), of every other
// month (past), or everything (all).
func FilterScope(records []models.Record, now time.Time, scope Scope) []models.Record {
	if scope == ScopeAll || scope == "" {
		return models.CloneRecords(records)
	}
	out := make([]models.Record, 0)
	for _, r := range records {
		inMonth := dateutils.SameMonth(r.Date, now)
		if (scope == ScopePresent) == inMonth {
			out = append(out, r)
		}
	}
	return out
}

// Budget compares the valid spending in records with budget. Percentage is
// zero when budget is not positive.
func Budget(records []models.Record, budget decimal.Decimal) models.BudgetStatus {
	total := GrandTotal(records)
	status := models.BudgetStatus{
		Budget:     budget,
		Total:      total,
		Remaining:  budget.Sub(total),
		OverBudget: total.GreaterThan(budget),
	}
	if budget.IsPositive() {
		status.Percentage = total.Div(budget).Mul(decimal.NewFromInt(100))
	}
	return status
}
