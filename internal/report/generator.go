// Package report renders expense analysis reports.
package report

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatXML  = "xml"
)

// NoDataMessage replaces the report body when there are no records.
const NoDataMessage = "No expense data available."

const title = "===== EXPENSE ANALYSIS REPORT ====="

// ReportGenerator renders report Data in text, JSON or XML.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &ReportGenerator{logger: logger.WithField(logging.FieldComponent, "ReportGenerator")}
}

// GenerateReport renders data in the given format.
func (g *ReportGenerator) GenerateReport(data *Data, format string) ([]byte, error) {
	if data == nil {
		return nil, fmt.Errorf("cannot render nil report")
	}
	switch format {
	case FormatText, "":
		return g.generateTextReport(data), nil
	case FormatJSON:
		return g.generateJSONReport(data)
	case FormatXML:
		return g.generateXMLReport(data)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// WriteFile renders data and writes it to path, creating parent directories.
func (g *ReportGenerator) WriteFile(path string, data *Data, format string) error {
	out, err := g.GenerateReport(data, format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating report directory: %w", err)
	}
	if err := os.WriteFile(path, out, models.PermissionFile); err != nil {
		g.logger.WithError(err).Error("Failed to write report", logging.F(logging.FieldOutputFile, path))
		return fmt.Errorf("error writing report: %w", err)
	}
	g.logger.Info("Report generated",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldFormat, format),
		logging.F("report_id", data.ReportID))
	return nil
}

func (g *ReportGenerator) generateTextReport(data *Data) []byte {
	var b strings.Builder
	b.WriteString(title + "\n\n")

	if data.Overview.RecordCount == 0 {
		b.WriteString(NoDataMessage + "\n")
		return []byte(b.String())
	}

	sym := data.CurrencySymbol
	o := data.Overview

	b.WriteString("OVERALL SUMMARY:\n")
	fmt.Fprintf(&b, "Total Records: %d\n", o.RecordCount)
	if o.SkippedCount > 0 {
		fmt.Fprintf(&b, "Excluded Records (invalid amount): %d\n", o.SkippedCount)
	}
	fmt.Fprintf(&b, "Date Range: %s\n", o.DateRange)
	fmt.Fprintf(&b, "Total Expenses: %s\n", models.FormatMoney(sym, o.GrandTotal))
	fmt.Fprintf(&b, "Average Monthly Expenses: %s\n\n", models.FormatMoney(sym, o.AverageMonthlyTotal))

	b.WriteString("CATEGORY SUMMARY:\n")
	for _, c := range data.Categories {
		fmt.Fprintf(&b, "%s: %s (%d transactions, avg %s)\n",
			Capitalize(c.Category), models.FormatMoney(sym, c.Total), c.Count, models.FormatMoney(sym, c.Mean))
	}
	b.WriteString("\n")

	b.WriteString("MONTHLY BREAKDOWN:\n")
	for _, m := range data.Monthly {
		fmt.Fprintf(&b, "%s: %s\n", dateutils.FormatMonth(m.Year, m.Month), models.FormatMoney(sym, m.Total))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "TOP %d LARGEST EXPENSES:\n", data.TopN)
	for i, r := range data.TopExpenses {
		fmt.Fprintf(&b, "%d. %s - %s (%s) - %s\n",
			i+1, models.FormatMoney(sym, r.Amount), r.Description, dateutils.ToISODate(r.Date), Capitalize(r.Category))
	}
	b.WriteString("\n")

	if len(data.Unusual) > 0 {
		fmt.Fprintf(&b, "UNUSUAL EXPENSES (%sx+ CATEGORY AVERAGE):\n", data.Threshold.String())
		for i, u := range data.Unusual {
			fmt.Fprintf(&b, "%d. %s - %s (%s) - %sx avg\n",
				i+1, models.FormatMoney(sym, u.Amount), u.Description, dateutils.ToISODate(u.Date), u.TimesAboveAvg.StringFixed(1))
		}
	}

	return []byte(b.String())
}

func (g *ReportGenerator) generateJSONReport(data *Data) ([]byte, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return out, nil
}

func (g *ReportGenerator) generateXMLReport(data *Data) ([]byte, error) {
	out, err := xml.MarshalIndent(data, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal XML report")
		return nil, fmt.Errorf("failed to marshal XML report: %w", err)
	}
	return []byte(xml.Header + string(out)), nil
}

// Capitalize upper-cases the first letter and lower-cases the rest, so
// "personal care" becomes "Personal care".
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	lower := []rune(strings.ToLower(s))
	lower[0] = []rune(strings.ToUpper(string(lower[0])))[0]
	return string(lower)
}
