package categorizer

import (
	"testing"
	"time"

	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/rules"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []models.Record {
	day := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	return []models.Record{
		models.NewRecord(day, decimal.NewFromInt(5), "Corner Cafe"),
		models.NewRecord(day, decimal.NewFromInt(60), "Supermarket run"),
		models.NewRecord(day, decimal.NewFromInt(7), "Mystery charge"),
		{Description: "Bus pass", RawAmount: "n/a"},
	}
}

func TestCategorizeAll(t *testing.T) {
	logger := logging.NewMockLogger()
	c := NewCategorizer(logger)
	records := sampleRecords()

	counts := c.CategorizeAll(records, rules.Default())

	assert.Equal(t, "dining", records[0].Category)
	assert.Equal(t, "groceries", records[1].Category)
	assert.Equal(t, "miscellaneous", records[2].Category)
	assert.Equal(t, "transportation", records[3].Category, "invalid amounts are still categorized")
	assert.Equal(t, map[string]int{"dining": 1, "groceries": 1, "miscellaneous": 1, "transportation": 1}, counts)

	require.True(t, logger.HasEntry("INFO", "Categorized expenses"))
	debug := logger.EntriesByLevel("DEBUG")
	require.Len(t, debug, 4)
	kw, ok := debug[0].FieldValue(logging.FieldKeyword)
	require.True(t, ok)
	assert.Equal(t, "cafe", kw)
	component, _ := debug[0].FieldValue(logging.FieldComponent)
	assert.Equal(t, "categorizer", component)
}

func TestCategorizeAll_Idempotent(t *testing.T) {
	c := NewCategorizer(logging.NewMockLogger())
	tax := rules.Default()
	records := sampleRecords()

	c.CategorizeAll(records, tax)
	first := models.CloneRecords(records)
	c.CategorizeAll(records, tax)
	assert.Equal(t, first, records)
}

func TestCategorizeAll_OverwritesAfterRuleChange(t *testing.T) {
	c := NewCategorizer(logging.NewMockLogger())
	tax := rules.Default()
	records := sampleRecords()
	c.CategorizeAll(records, tax)
	require.Equal(t, "miscellaneous", records[2].Category)

	tax.AddCustomRules([]models.CategoryRule{{Name: "fees", Keywords: []string{"charge"}}})
	c.CategorizeAll(records, tax)
	assert.Equal(t, "fees", records[2].Category)
	assert.Equal(t, "dining", records[0].Category)
}

func TestCategorize_Single(t *testing.T) {
	c := NewCategorizer(nil)
	assert.Equal(t, "travel", c.Categorize("Airbnb Porto", rules.Default()))
}
