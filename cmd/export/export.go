// Package export writes categorized expenses back to CSV
package export

import (
	"fmt"

	"fjacquet/expense-tracker/cmd/common"
	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/loader"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"

	"github.com/spf13/cobra"
)

var month string

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export categorized expenses to CSV",
	Long: `Export categorized expenses to CSV with category, year and month columns.

Example:
  expense-tracker export -i expenses.csv -o categorized.csv --month 2024-01`,
	RunE: exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&month, "month", "m", "", "Only export one month (YYYY-MM)")
}

func exportFunc(cmd *cobra.Command, args []string) error {
	cfg := root.GetConfig()
	if cfg == nil {
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

	delimiter := []rune(cfg.CSV.Delimiter)[0]
	if root.SharedFlags.Output == "" {
		return loader.ExportCSV(cmd.OutOrStdout(), records, delimiter)
	}
	if err := loader.ExportFile(root.SharedFlags.Output, records, delimiter); err != nil {
		return err
	}

	root.GetLogger().Info("Exported expenses",
		logging.F(logging.FieldCount, len(records)),
		logging.F(logging.FieldOutputFile, root.SharedFlags.Output))
	return nil
}
