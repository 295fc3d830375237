// Package tracker sequences loading, categorization and analysis for one
// expense session.
package tracker

import (
	"io"
	"time"

	"fjacquet/expense-tracker/internal/aggregator"
	"fjacquet/expense-tracker/internal/categorizer"
	"fjacquet/expense-tracker/internal/loader"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/outlier"
	"fjacquet/expense-tracker/internal/report"
	"fjacquet/expense-tracker/internal/rules"
	"fjacquet/expense-tracker/internal/trackererror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Options tune a Tracker. Zero values select the defaults.
type Options struct {
	Delimiter      rune
	Threshold      decimal.Decimal
	CurrencySymbol string
	TopN           int
	UnusualLimit   int
}

// Tracker owns one session's records and taxonomy. It is not safe for
// concurrent use; give each goroutine its own Tracker.
type Tracker struct {
	id          string
	opts        Options
	taxonomy    *rules.Taxonomy
	records     []models.Record
	loaded      bool
	categorized bool
	lastLoad    *loader.Result

	loader      *loader.Loader
	categorizer *categorizer.Categorizer
	generator   *report.ReportGenerator
	logger      logging.Logger
}

// New creates a tracker with the built-in taxonomy.
func New(opts Options, logger logging.Logger) *Tracker {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if !opts.Threshold.IsPositive() {
		opts.Threshold = outlier.DefaultThreshold
	}
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = "$"
	}
	if opts.TopN <= 0 {
		opts.TopN = 10
	}
	if opts.UnusualLimit <= 0 {
		opts.UnusualLimit = 10
	}

	id := uuid.New().String()
	log := logger.WithField(logging.FieldTrackerID, id)
	return &Tracker{
		id:          id,
		opts:        opts,
		taxonomy:    rules.Default(),
		loader:      loader.NewLoader(opts.Delimiter, log),
		categorizer: categorizer.NewCategorizer(log),
		generator:   report.NewReportGenerator(log),
		logger:      log,
	}
}

// ID identifies the session in logs and reports.
func (t *Tracker) ID() string {
	return t.id
}

// Load replaces the current records with the contents of path. On failure
// the previous state is kept. The returned result carries any non-fatal
// amount warning.
func (t *Tracker) Load(path string) (*loader.Result, error) {
	res, err := t.loader.LoadFile(path)
	return t.accept(res, err)
}

// LoadReader is Load for an already-open input.
func (t *Tracker) LoadReader(r io.Reader, source string) (*loader.Result, error) {
	res, err := t.loader.Load(r, source)
	return t.accept(res, err)
}

func (t *Tracker) accept(res *loader.Result, err error) (*loader.Result, error) {
	if err != nil {
		return nil, err
	}
	t.records = res.Records
	t.loaded = true
	t.categorized = false
	t.lastLoad = res
	return res, nil
}

// SetRecords replaces the current records with a copy of records, as if
// they had been loaded. Any category they carry is discarded.
func (t *Tracker) SetRecords(records []models.Record) {
	t.records = models.CloneRecords(records)
	if t.records == nil {
		t.records = []models.Record{}
	}
	for i := range t.records {
		t.records[i].Category = ""
	}
	t.loaded = true
	t.categorized = false
	t.lastLoad = nil
}

// Categorize assigns a category to every loaded record and returns the
// per-category counts.
func (t *Tracker) Categorize() (map[string]int, error) {
	if !t.loaded {
		return map[string]int{}, t.emptyState("categorize", "no data loaded")
	}
	counts := t.categorizer.CategorizeAll(t.records, t.taxonomy)
	t.categorized = true
	return counts, nil
}

// RecategorizeAll re-runs categorization over every record with the current
// taxonomy. It is Categorize under the name used after rule changes.
func (t *Tracker) RecategorizeAll() (map[string]int, error) {
	return t.Categorize()
}

// AddCustomRules merges custom rules into this tracker's taxonomy and, when
// data is loaded, re-categorizes every record so no stale category remains.
func (t *Tracker) AddCustomRules(custom []models.CategoryRule) []string {
	touched := t.taxonomy.AddCustomRules(custom)
	t.logger.Info("Added custom rules",
		logging.F("categories", touched),
		logging.F(logging.FieldCount, len(touched)))
	if t.loaded {
		_, _ = t.Categorize()
	}
	return touched
}

// Taxonomy returns a copy of the current rules.
func (t *Tracker) Taxonomy() *rules.Taxonomy {
	return t.taxonomy.Clone()
}

// Records returns a copy of the loaded records.
func (t *Tracker) Records() []models.Record {
	return models.CloneRecords(t.records)
}

// LastLoad returns the result of the most recent successful load, or nil.
func (t *Tracker) LastLoad() *loader.Result {
	return t.lastLoad
}

// CategorySummary returns per-category totals. Before categorization it
// returns an empty summary and an *trackererror.EmptyStateError.
func (t *Tracker) CategorySummary() ([]models.CategorySummary, error) {
	if err := t.requireCategorized("category summary"); err != nil {
		return []models.CategorySummary{}, err
	}
	return aggregator.CategorySummary(t.records), nil
}

// MonthlySummary returns per-month, per-category totals.
func (t *Tracker) MonthlySummary() ([]models.MonthlySummary, error) {
	if err := t.requireCategorized("monthly summary"); err != nil {
		return []models.MonthlySummary{}, err
	}
	return aggregator.MonthlySummary(t.records), nil
}

// MonthlyTotals returns all-category totals per month.
func (t *Tracker) MonthlyTotals() ([]models.MonthlyTotal, error) {
	if !t.loaded {
		return []models.MonthlyTotal{}, t.emptyState("monthly totals", "no data loaded")
	}
	return aggregator.MonthlyTotals(t.records), nil
}

// Overview summarizes the loaded records.
func (t *Tracker) Overview() (models.Overview, error) {
	if !t.loaded {
		return aggregator.Summarize(nil), t.emptyState("overview", "no data loaded")
	}
	return aggregator.Summarize(t.records), nil
}

// UnusualExpenses flags expenses above threshold times their category mean.
// A non-positive threshold uses the tracker's configured one.
func (t *Tracker) UnusualExpenses(threshold decimal.Decimal) ([]models.UnusualExpense, error) {
	if err := t.requireCategorized("unusual expenses"); err != nil {
		return []models.UnusualExpense{}, err
	}
	if !threshold.IsPositive() {
		threshold = t.opts.Threshold
	}
	return outlier.NewDetector(threshold).Detect(t.records), nil
}

// ScopedRecords returns the categorized records in scope relative to now.
func (t *Tracker) ScopedRecords(scope aggregator.Scope, now time.Time) ([]models.Record, error) {
	if err := t.requireCategorized("scoped records"); err != nil {
		return []models.Record{}, err
	}
	return aggregator.FilterScope(t.records, now, scope), nil
}

// Budget compares the spending in scope with budget.
func (t *Tracker) Budget(scope aggregator.Scope, now time.Time, budget decimal.Decimal) (models.BudgetStatus, error) {
	records, err := t.ScopedRecords(scope, now)
	if err != nil {
		return aggregator.Budget(nil, budget), err
	}
	return aggregator.Budget(records, budget), nil
}

// RecordsForMonth returns the categorized records of one month.
func (t *Tracker) RecordsForMonth(year, month int) ([]models.Record, error) {
	if err := t.requireCategorized("records for month"); err != nil {
		return []models.Record{}, err
	}
	return aggregator.FilterMonth(t.records, year, month), nil
}

// ReportData assembles everything the report shows.
func (t *Tracker) ReportData() (*report.Data, error) {
	data := report.NewData()
	data.CurrencySymbol = t.opts.CurrencySymbol
	data.Threshold = t.opts.Threshold
	data.TopN = t.opts.TopN

	if err := t.requireCategorized("report"); err != nil {
		return data, err
	}

	if t.lastLoad != nil {
		data.Source = t.lastLoad.Source
	}
	data.Overview = aggregator.Summarize(t.records)
	data.Categories = aggregator.CategorySummary(t.records)
	data.Monthly = aggregator.MonthlyTotals(t.records)
	data.TopExpenses = aggregator.TopExpenses(t.records, t.opts.TopN)

	unusual := outlier.NewDetector(t.opts.Threshold).Detect(t.records)
	if len(unusual) > t.opts.UnusualLimit {
		unusual = unusual[:t.opts.UnusualLimit]
	}
	data.Unusual = unusual
	return data, nil
}

// RenderReport renders the report in format without writing it.
func (t *Tracker) RenderReport(format string) ([]byte, error) {
	data, err := t.ReportData()
	if err != nil {
		return nil, err
	}
	return t.generator.GenerateReport(data, format)
}

// GenerateReport writes the report to path in format.
func (t *Tracker) GenerateReport(path, format string) error {
	data, err := t.ReportData()
	if err != nil {
		return err
	}
	return t.generator.WriteFile(path, data, format)
}

func (t *Tracker) requireCategorized(operation string) error {
	if !t.loaded {
		return t.emptyState(operation, "no data loaded")
	}
	if !t.categorized {
		return t.emptyState(operation, "records have not been categorized")
	}
	return nil
}

func (t *Tracker) emptyState(operation, reason string) error {
	t.logger.Warn("Operation requires earlier step",
		logging.F(logging.FieldOperation, operation),
		logging.F("reason", reason))
	return &trackererror.EmptyStateError{Operation: operation, Reason: reason}
}
