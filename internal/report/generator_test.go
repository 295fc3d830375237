package report

import (
	"encoding/json"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func sampleData() *Data {
	jan5 := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	jan10 := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)

	rent := models.NewRecord(jan10, d("1200"), "Monthly Rent")
	rent.Category = "housing"
	food := models.NewRecord(jan5, d("45.2"), "Supermarket run")
	food.Category = "groceries"

	data := NewData()
	data.Overview = models.Overview{
		RecordCount:         2,
		ValidCount:          2,
		DateRange:           models.DateRange{Start: jan5, End: jan10},
		GrandTotal:          d("1245.2"),
		AverageMonthlyTotal: d("1245.2"),
		MonthCount:          1,
	}
	data.Categories = []models.CategorySummary{
		{Category: "housing", Total: d("1200"), Mean: d("1200"), Count: 1},
		{Category: "personal care", Total: d("45.2"), Mean: d("22.6"), Count: 2},
	}
	data.Monthly = []models.MonthlyTotal{{Year: 2024, Month: 1, Total: d("1245.2")}}
	data.TopExpenses = []models.Record{rent, food}
	data.Unusual = []models.UnusualExpense{{
		Date: jan10, Description: "Monthly Rent", Amount: d("1200"),
		Category: "housing", CategoryAvg: d("480"), TimesAboveAvg: d("2.5"),
	}}
	return data
}

func TestGenerateReport_Text(t *testing.T) {
	g := NewReportGenerator(logging.NewMockLogger())
	out, err := g.GenerateReport(sampleData(), FormatText)
	require.NoError(t, err)

	expected := strings.Join([]string{
		"===== EXPENSE ANALYSIS REPORT =====",
		"",
		"OVERALL SUMMARY:",
		"Total Records: 2",
		"Date Range: 2024-01-05 to 2024-01-10",
		"Total Expenses: $1245.20",
		"Average Monthly Expenses: $1245.20",
		"",
		"CATEGORY SUMMARY:",
		"Housing: $1200.00 (1 transactions, avg $1200.00)",
		"Personal care: $45.20 (2 transactions, avg $22.60)",
		"",
		"MONTHLY BREAKDOWN:",
		"January 2024: $1245.20",
		"",
		"TOP 10 LARGEST EXPENSES:",
		"1. $1200.00 - Monthly Rent (2024-01-10) - Housing",
		"2. $45.20 - Supermarket run (2024-01-05) - Groceries",
		"",
		"UNUSUAL EXPENSES (2x+ CATEGORY AVERAGE):",
		"1. $1200.00 - Monthly Rent (2024-01-10) - 2.5x avg",
		"",
	}, "\n")
	assert.Equal(t, expected, string(out))
}

func TestGenerateReport_TextVariants(t *testing.T) {
	g := NewReportGenerator(logging.NewMockLogger())

	data := sampleData()
	data.Unusual = nil
	data.CurrencySymbol = "€"
	data.Overview.SkippedCount = 1
	out, err := g.GenerateReport(data, "")
	require.NoError(t, err)
	text := string(out)
	assert.NotContains(t, text, "UNUSUAL EXPENSES")
	assert.Contains(t, text, "Total Expenses: €1245.20")
	assert.Contains(t, text, "Excluded Records (invalid amount): 1")
}

func TestGenerateReport_HeadersFollowSettings(t *testing.T) {
	g := NewReportGenerator(logging.NewMockLogger())

	data := sampleData()
	data.TopN = 5
	data.Threshold = decimal.RequireFromString("1.5")
	out, err := g.GenerateReport(data, FormatText)
	require.NoError(t, err)
	assert.Contains(t, string(out), "TOP 5 LARGEST EXPENSES:")
	assert.Contains(t, string(out), "UNUSUAL EXPENSES (1.5x+ CATEGORY AVERAGE):")

	defaults := NewData()
	assert.Equal(t, 10, defaults.TopN)
	assert.True(t, decimal.NewFromInt(2).Equal(defaults.Threshold))
}

func TestGenerateReport_NoData(t *testing.T) {
	g := NewReportGenerator(logging.NewMockLogger())
	out, err := g.GenerateReport(NewData(), FormatText)
	require.NoError(t, err)
	assert.Equal(t, "===== EXPENSE ANALYSIS REPORT =====\n\nNo expense data available.\n", string(out))
}

func TestGenerateReport_JSON(t *testing.T) {
	g := NewReportGenerator(logging.NewMockLogger())
	data := sampleData()

	out, err := g.GenerateReport(data, FormatJSON)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, data.ReportID, decoded["report_id"])

	categories, ok := decoded["category_summary"].([]interface{})
	require.True(t, ok)
	require.Len(t, categories, 2)
	first := categories[0].(map[string]interface{})
	assert.Equal(t, "housing", first["category"])
	assert.Equal(t, "1200", first["sum"])

	unusual := decoded["unusual_expenses"].([]interface{})
	assert.Equal(t, "2.5", unusual[0].(map[string]interface{})["times_above_avg"])
}

func TestGenerateReport_XML(t *testing.T) {
	g := NewReportGenerator(logging.NewMockLogger())
	out, err := g.GenerateReport(sampleData(), FormatXML)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(out), xml.Header))
	assert.Contains(t, string(out), "<expense_report report_id=")
	assert.Contains(t, string(out), "<category_summary>")
}

func TestGenerateReport_Errors(t *testing.T) {
	g := NewReportGenerator(logging.NewMockLogger())
	_, err := g.GenerateReport(sampleData(), "html")
	assert.EqualError(t, err, "unsupported report format: html")

	_, err = g.GenerateReport(nil, FormatText)
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	logger := logging.NewMockLogger()
	g := NewReportGenerator(logger)
	path := filepath.Join(t.TempDir(), "reports", "expense_report.txt")

	require.NoError(t, g.WriteFile(path, sampleData(), FormatText))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "===== EXPENSE ANALYSIS REPORT ====="))
	assert.True(t, logger.HasEntry("INFO", "Report generated"))
}

func TestNewData(t *testing.T) {
	a, b := NewData(), NewData()
	_, err := uuid.Parse(a.ReportID)
	require.NoError(t, err)
	assert.NotEqual(t, a.ReportID, b.ReportID)
	assert.Equal(t, 10, a.TopN)
	assert.True(t, decimal.NewFromInt(2).Equal(a.Threshold))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Personal care", Capitalize("personal care"))
	assert.Equal(t, "Groceries", Capitalize("GROCERIES"))
	assert.Equal(t, "Épicerie", Capitalize("épicerie"))
	assert.Equal(t, "", Capitalize(""))
}
