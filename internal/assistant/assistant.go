// Package assistant answers natural-language questions about expenses.
// Month summaries are computed locally; anything else is delegated to an
// AIClient together with the relevant records.
package assistant

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"fjacquet/expense-tracker/internal/aggregator"
	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/loader"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// summaryPattern matches e.g. "give me a summary of my May 2025 expenses".
var summaryPattern = regexp.MustCompile(`summary.*\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+(\d{4})`)

const topCategories = 3

// Assistant answers questions about a set of records.
type Assistant struct {
	client         AIClient
	currencySymbol string
	logger         logging.Logger
	title          cases.Caser
}

// New creates an assistant. client may be nil, in which case only month
// summaries can be answered.
func New(client AIClient, currencySymbol string, logger logging.Logger) *Assistant {
	if currencySymbol == "" {
		currencySymbol = "$"
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Assistant{
		client:         client,
		currencySymbol: currencySymbol,
		logger:         logger.WithField(logging.FieldComponent, "assistant"),
		title:          cases.Title(language.English),
	}
}

// MatchMonthSummary reports whether question asks for a month summary and,
// if so, which month.
func MatchMonthSummary(question string) (year, month int, ok bool) {
	m := summaryPattern.FindStringSubmatch(strings.ToLower(question))
	if m == nil {
		return 0, 0, false
	}
	mon, found := dateutils.ParseMonthName(m[1])
	if !found {
		return 0, 0, false
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, false
	}
	return year, int(mon), true
}

// Ask answers question over records. records should already be categorized.
func (a *Assistant) Ask(ctx context.Context, question string, records []models.Record) (string, error) {
	if year, month, ok := MatchMonthSummary(question); ok {
		a.logger.Debug("Answering month summary locally",
			logging.F("month", dateutils.MonthKey(year, month)))
		return a.MonthSummary(records, year, month), nil
	}

	if a.client == nil {
		return "", ErrAIUnavailable
	}

	prompt, err := BuildPrompt(question, records)
	if err != nil {
		return "", err
	}
	a.logger.Debug("Delegating question to language model", logging.F(logging.FieldCount, len(records)))

	answer, err := a.client.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("language model request failed: %w", err)
	}
	return answer, nil
}

// MonthSummary describes the total and top categories of one month.
func (a *Assistant) MonthSummary(records []models.Record, year, month int) string {
	label := dateutils.FormatMonth(year, month)
	inMonth := models.ValidRecords(aggregator.FilterMonth(records, year, month))
	if len(inMonth) == 0 {
		return fmt.Sprintf("No data found for %s.", label)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Summary for %s\n", label)
	fmt.Fprintf(&b, "- Total expenses: %s\n", models.FormatMoney(a.currencySymbol, aggregator.GrandTotal(inMonth)))
	fmt.Fprintf(&b, "- Top %d categories:\n", topCategories)

	summary := aggregator.CategorySummary(inMonth)
	if len(summary) > topCategories {
		summary = summary[:topCategories]
	}
	for _, s := range summary {
		fmt.Fprintf(&b, "  • %s: %s\n", a.title.String(s.Category), models.FormatMoney(a.currencySymbol, s.Total))
	}
	return b.String()
}

// BuildPrompt embeds records as CSV below the question.
func BuildPrompt(question string, records []models.Record) (string, error) {
	var table bytes.Buffer
	if err := loader.ExportCSV(&table, records, ','); err != nil {
		return "", fmt.Errorf("error preparing expense table: %w", err)
	}

	return fmt.Sprintf(`You are a personal finance assistant. Answer the question using only the expense table below.
Amounts are in the user's currency. Be concise.

Question: %s

Expenses (CSV):
%s`, strings.TrimSpace(question), table.String()), nil
}
