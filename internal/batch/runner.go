// Package batch analyzes many expense files concurrently. Each file gets its
// own tracker, so no state is shared between workers.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/tracker"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is used when a Runner is created with a non-positive limit.
const DefaultWorkers = 4

// TrackerFactory returns a fresh tracker for one file.
type TrackerFactory func() (*tracker.Tracker, error)

// FileResult describes the outcome for one input file.
type FileResult struct {
	Input     string
	Output    string
	Records   int
	Skipped   int
	DateRange models.DateRange
	Err       error
}

// Summary aggregates a batch run. Results are in input order.
type Summary struct {
	Results   []FileResult
	Succeeded int
	Failed    int
	DateRange models.DateRange
}

// Runner processes files with a bounded number of workers.
type Runner struct {
	newTracker TrackerFactory
	workers    int
	format     string
	logger     logging.Logger
}

// NewRunner creates a runner. format is the report format passed to the
// tracker ("text", "json" or "xml").
func NewRunner(factory TrackerFactory, workers int, format string, logger logging.Logger) *Runner {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if format == "" {
		format = "text"
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Runner{
		newTracker: factory,
		workers:    workers,
		format:     format,
		logger:     logger.WithField(logging.FieldComponent, "batch"),
	}
}

// Run analyzes every file and writes one report per file into outDir. A
// failing file is recorded in its FileResult and does not stop the others.
// The returned error is non-nil only when the run itself could not proceed.
func (r *Runner) Run(ctx context.Context, files []string, outDir string) (*Summary, error) {
	if err := os.MkdirAll(outDir, models.PermissionDirectory); err != nil {
		return nil, fmt.Errorf("error creating output directory: %w", err)
	}

	start := time.Now()
	results := make([]FileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := r.processFile(file, outDir)
			results[i] = res

			if res.Err != nil {
				r.logger.WithError(res.Err).Error("Failed to process file",
					logging.F(logging.FieldFile, file))
			} else {
				r.logger.Debug("Processed file",
					logging.F(logging.FieldFile, file),
					logging.F(logging.FieldOutputFile, res.Output),
					logging.F(logging.FieldCount, res.Records))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch run interrupted: %w", err)
	}

	summary := &Summary{Results: results}
	for _, res := range results {
		if res.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.DateRange = summary.DateRange.Merge(res.DateRange)
	}

	r.logger.Info("Batch processing completed",
		logging.F("total_files", len(files)),
		logging.F("succeeded", summary.Succeeded),
		logging.F("failed", summary.Failed),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	return summary, nil
}

func (r *Runner) processFile(file, outDir string) FileResult {
	res := FileResult{Input: file, Output: ReportPath(outDir, file, r.format)}

	t, err := r.newTracker()
	if err != nil {
		res.Err = err
		return res
	}
	if _, err := t.Load(file); err != nil {
		res.Err = err
		return res
	}
	if _, err := t.Categorize(); err != nil {
		res.Err = err
		return res
	}
	overview, err := t.Overview()
	if err != nil {
		res.Err = err
		return res
	}
	res.Records = overview.RecordCount
	res.Skipped = overview.SkippedCount
	res.DateRange = overview.DateRange

	if err := t.GenerateReport(res.Output, r.format); err != nil {
		res.Err = err
	}
	return res
}

// ReportPath returns <outDir>/<name>_report.<ext> for input file.
func ReportPath(outDir, file, format string) string {
	base := filepath.Base(file)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	ext := "txt"
	switch format {
	case "json":
		ext = "json"
	case "xml":
		ext = "xml"
	}
	return filepath.Join(outDir, stem+"_report."+ext)
}

// FindCSVFiles lists the .csv files directly inside dir, sorted by name.
func FindCSVFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %s: %w", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}
