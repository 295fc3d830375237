// Package batch handles batch processing of files
package batch

import (
	"context"
	"fmt"

	"fjacquet/expense-tracker/cmd/common"
	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/batch"
	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/validation"

	"github.com/spf13/cobra"
)

var format string

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process files from a directory",
	Long: `Batch process expense files from an input directory and write one report
per file to another directory.

Every .csv file in the input directory is analyzed independently; a file
that fails to load is reported and the others are still processed.

Example:
  expense-tracker batch -i input_dir/ -o reports/`,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "", "Report format: text, json or xml (default from config)")
}

func batchFunc(cmd *cobra.Command, args []string) error {
	cfg := root.GetConfig()
	if cfg == nil {
		return fmt.Errorf("application not initialized")
	}
	logger := root.GetLogger()

	inputDir := root.SharedFlags.Input
	outputDir := root.SharedFlags.Output
	if inputDir == "" || outputDir == "" {
		return fmt.Errorf("input and output directories must be specified")
	}

	if err := validation.InputDirectory(inputDir); err != nil {
		return err
	}
	if err := common.PersistRules(); err != nil {
		return err
	}

	reportFormat := format
	if reportFormat == "" {
		reportFormat = cfg.Report.Format
	}
	if err := validation.ReportFormat(reportFormat); err != nil {
		return err
	}

	files, err := batch.FindCSVFiles(inputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Warn("No CSV files found in input directory", logging.F(logging.FieldFile, inputDir))
		return nil
	}
	logger.Info("Found files for processing", logging.F(logging.FieldCount, len(files)))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runner := batch.NewRunner(common.NewTracker, cfg.Batch.Workers, reportFormat, logger)
	summary, err := runner.Run(ctx, files, outputDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, res := range summary.Results {
		if res.Err != nil {
			fmt.Fprintf(out, "FAILED  %s: %v\n", res.Input, res.Err)
			continue
		}
		fmt.Fprintf(out, "OK      %s -> %s (%d records)\n", res.Input, res.Output, res.Records)
	}
	fmt.Fprintf(out, "Batch processing completed. %d succeeded, %d failed.\n", summary.Succeeded, summary.Failed)
	if !summary.DateRange.IsZero() {
		fmt.Fprintf(out, "Period covered: %s (%d month(s))\n", summary.DateRange.String(),
			dateutils.MonthsBetween(summary.DateRange.Start, summary.DateRange.End))
	}
	return nil
}
