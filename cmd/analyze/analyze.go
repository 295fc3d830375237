// Package analyze prints category, monthly and unusual-expense analysis
package analyze

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"fjacquet/expense-tracker/cmd/common"
	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/aggregator"
	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/outlier"
	"fjacquet/expense-tracker/internal/report"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	format string
	scope  string
	budget string

	now = time.Now
)

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze categorized expenses",
	Long: `Analyze expenses from a CSV file: totals per category, a monthly breakdown
and expenses well above their category average.

Example:
  expense-tracker analyze -i expenses.csv --scope present --budget 1500`,
	RunE: analyzeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text or json)")
	Cmd.Flags().StringVar(&scope, "scope", "all", "Time window: present (this month), past or all")
	Cmd.Flags().StringVar(&budget, "budget", "", "Budget to compare the scoped total against")
}

// Analysis is the JSON shape of the analyze command.
type Analysis struct {
	Scope      string                   `json:"scope"`
	Categories []models.CategorySummary `json:"categories"`
	Monthly    []models.MonthlySummary  `json:"monthly"`
	Unusual    []models.UnusualExpense  `json:"unusual"`
	Budget     *models.BudgetStatus     `json:"budget,omitempty"`
}

func analyzeFunc(cmd *cobra.Command, args []string) error {
	sc, ok := aggregator.ParseScope(scope)
	if !ok {
		return fmt.Errorf("invalid scope %q (must be present, past or all)", scope)
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format %q (must be text or json)", format)
	}

	var limit decimal.Decimal
	if budget != "" {
		var err error
		limit, err = decimal.NewFromString(budget)
		if err != nil {
			return fmt.Errorf("invalid budget %q: %w", budget, err)
		}
	}

	t, err := common.LoadSession(root.SharedFlags.Input)
	if err != nil {
		return err
	}

	records, err := t.ScopedRecords(sc, now())
	if err != nil {
		return err
	}

	cfg := root.GetConfig()
	analysis := Analysis{
		Scope:      string(sc),
		Categories: aggregator.CategorySummary(records),
		Monthly:    aggregator.MonthlySummary(records),
		Unusual:    outlier.NewDetectorFromFloat(cfg.Outliers.ThresholdFactor).Detect(records),
	}
	if budget != "" {
		status, err := t.Budget(sc, now(), limit)
		if err != nil {
			return err
		}
		analysis.Budget = &status
	}

	w, closeOut, err := common.Output(cmd, root.SharedFlags.Output)
	if err != nil {
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(analysis)
	} else {
		writeText(w, analysis, cfg.Report.CurrencySymbol)
	}
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	return err
}

func writeText(w io.Writer, a Analysis, symbol string) {
	money := func(d decimal.Decimal) string { return models.FormatMoney(symbol, d) }

	if len(a.Categories) == 0 {
		fmt.Fprintln(w, report.NoDataMessage)
		return
	}

	fmt.Fprintf(w, "CATEGORY SUMMARY (%s):\n", a.Scope)
	for _, c := range a.Categories {
		fmt.Fprintf(w, "  %-16s %12s  avg %10s  (%d)\n", report.Capitalize(c.Category), money(c.Total), money(c.Mean), c.Count)
	}

	fmt.Fprintln(w, "\nMONTHLY BREAKDOWN:")
	current := ""
	for _, m := range a.Monthly {
		label := dateutils.FormatMonth(m.Year, m.Month)
		if label != current {
			fmt.Fprintf(w, "  %s\n", label)
			current = label
		}
		fmt.Fprintf(w, "    %-14s %12s\n", report.Capitalize(m.Category), money(m.Total))
	}

	if len(a.Unusual) > 0 {
		fmt.Fprintln(w, "\nUNUSUAL EXPENSES:")
		for _, u := range a.Unusual {
			fmt.Fprintf(w, "  %s  %-30s %10s  %sx %s avg\n",
				dateutils.ToISODate(u.Date), truncate(u.Description, 30), money(u.Amount),
				u.TimesAboveAvg.StringFixed(1), u.Category)
		}
	}

	if a.Budget != nil {
		fmt.Fprintln(w, "\nBUDGET:")
		fmt.Fprintf(w, "  Spent %s of %s (%s%%)\n", money(a.Budget.Total), money(a.Budget.Budget), a.Budget.Percentage.StringFixed(1))
		if a.Budget.OverBudget {
			fmt.Fprintf(w, "  Over budget by %s\n", money(a.Budget.Remaining.Neg()))
		} else {
			fmt.Fprintf(w, "  Remaining %s\n", money(a.Budget.Remaining))
		}
	}
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
