// Package report writes the full expense report
package report

import (
	"fmt"

	"fjacquet/expense-tracker/cmd/common"
	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/validation"

	"github.com/spf13/cobra"
)

var format string

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Generate an expense report",
	Long: `Generate a report with an overall summary, category totals, a monthly
breakdown, the largest expenses and unusual expenses.

The report is written to --output, or to report.file from the configuration.

Example:
  expense-tracker report -i expenses.csv -o report.txt --format text`,
	RunE: reportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "", "Report format: text, json or xml (default from config)")
}

func reportFunc(cmd *cobra.Command, args []string) error {
	cfg := root.GetConfig()
	if cfg == nil {
		return fmt.Errorf("application not initialized")
	}

	outputFile := root.SharedFlags.Output
	if outputFile == "" {
		outputFile = cfg.Report.File
	}
	reportFormat := format
	if reportFormat == "" {
		reportFormat = cfg.Report.Format
	}
	if err := validation.ReportFormat(reportFormat); err != nil {
		return err
	}

	t, err := common.LoadSession(root.SharedFlags.Input)
	if err != nil {
		return err
	}
	if err := t.GenerateReport(outputFile, reportFormat); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report generated successfully: %s\n", outputFile)
	return nil
}
