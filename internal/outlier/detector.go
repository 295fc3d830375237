// Package outlier flags expenses that are large relative to their category.
package outlier

import (
	"sort"

	"fjacquet/expense-tracker/internal/aggregator"
	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultThreshold is the multiple of the category mean above which an
// expense is unusual.
var DefaultThreshold = decimal.NewFromInt(2)

// Detector flags records whose amount exceeds Threshold times the mean of
// their category. Means are recomputed from the records on every call.
type Detector struct {
	Threshold decimal.Decimal
}

// NewDetector returns a detector; a non-positive threshold selects
// DefaultThreshold.
func NewDetector(threshold decimal.Decimal) *Detector {
	if !threshold.IsPositive() {
		threshold = DefaultThreshold
	}
	return &Detector{Threshold: threshold}
}

// NewDetectorFromFloat is NewDetector for configuration values.
func NewDetectorFromFloat(threshold float64) *Detector {
	return NewDetector(decimal.NewFromFloat(threshold))
}

// Detect returns the unusual expenses among records, most extreme first.
// Ties are ordered by date, then by source row. Categories whose mean is
// zero or negative are never flagged.
func (d *Detector) Detect(records []models.Record) []models.UnusualExpense {
	threshold := d.Threshold
	if !threshold.IsPositive() {
		threshold = DefaultThreshold
	}

	means := aggregator.CategoryMeans(records)
	out := make([]models.UnusualExpense, 0)

	for _, r := range records {
		if !r.AmountValid {
			continue
		}
		mean, ok := means[r.Category]
		if !ok || !mean.IsPositive() {
			continue
		}
		if r.Amount.GreaterThan(mean.Mul(threshold)) {
			out = append(out, models.UnusualExpense{
				Date:          r.Date,
				Description:   r.Description,
				Amount:        r.Amount,
				Category:      r.Category,
				CategoryAvg:   mean,
				TimesAboveAvg: r.Amount.Div(mean),
				Row:           r.Row,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].TimesAboveAvg.Cmp(out[j].TimesAboveAvg); c != 0 {
			return c > 0
		}
		if c := dateutils.CompareDates(out[i].Date, out[j].Date); c != 0 {
			return c < 0
		}
		return out[i].Row < out[j].Row
	})
	return out
}
