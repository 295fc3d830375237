package categorizer

import (
	"time"

	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/rules"
)

// Categorizer applies Assign to record sets and logs what it did.
type Categorizer struct {
	logger logging.Logger
}

// NewCategorizer creates a categorizer.
func NewCategorizer(logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Categorizer{logger: logger.WithField(logging.FieldComponent, "categorizer")}
}

// Categorize returns the category of a single description.
func (c *Categorizer) Categorize(description string, t *rules.Taxonomy) string {
	m := Assign(description, t)
	c.logMatch(description, m)
	return m.Category
}

// CategorizeAll sets Category on every record, overwriting any previous
// value, and returns how many records landed in each category. Running it
// twice with the same taxonomy yields the same assignment.
func (c *Categorizer) CategorizeAll(records []models.Record, t *rules.Taxonomy) map[string]int {
	start := time.Now()
	counts := make(map[string]int)

	for i := range records {
		m := Assign(records[i].Description, t)
		c.logMatch(records[i].Description, m)
		records[i].Category = m.Category
		counts[m.Category]++
	}

	c.logger.Info("Categorized expenses",
		logging.F(logging.FieldCount, len(records)),
		logging.F("categories", len(counts)),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return counts
}

func (c *Categorizer) logMatch(description string, m Match) {
	if !m.Matched() {
		c.logger.Debug("No keyword matched, using fallback category",
			logging.F(logging.FieldDescription, description),
			logging.F(logging.FieldCategory, m.Category))
		return
	}
	c.logger.Debug("Expense categorized using keyword matching",
		logging.F(logging.FieldDescription, description),
		logging.F(logging.FieldKeyword, m.Keyword),
		logging.F(logging.FieldCategory, m.Category))
}
