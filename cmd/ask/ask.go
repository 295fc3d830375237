// Package ask answers questions about expenses
package ask

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fjacquet/expense-tracker/cmd/common"
	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/assistant"
	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/models"

	"github.com/spf13/cobra"
)

var month string

// Cmd represents the ask command
var Cmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question about your expenses",
	Long: `Ask a question about your expenses.

Questions like "summary of May 2025" are answered locally. Other questions
are sent to Gemini together with the expenses (optionally limited to one
month with --month); this requires ai.enabled and GEMINI_API_KEY.

Example:
  expense-tracker ask -i expenses.csv "Give me a summary of May 2025"
  expense-tracker ask -i expenses.csv --month 2025-05 "Where can I save money?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: askFunc,
}

func init() {
	Cmd.Flags().StringVarP(&month, "month", "m", "", "Limit the expenses sent with the question to one month (YYYY-MM)")
}

func askFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("application not initialized")
	}

	t, err := common.LoadSession(root.SharedFlags.Input)
	if err != nil {
		return err
	}

	var records []models.Record
	if month != "" {
		year, mon, err := dateutils.ParseMonthKey(month)
		if err != nil {
			return err
		}
		if records, err = t.RecordsForMonth(year, mon); err != nil {
			return err
		}
	} else {
		records = t.Records()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	answer, err := c.NewAssistant().Ask(ctx, strings.Join(args, " "), records)
	if errors.Is(err, assistant.ErrAIUnavailable) {
		return fmt.Errorf("%w: enable ai in the configuration and set GEMINI_API_KEY", err)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(answer, "\n"))
	return nil
}
