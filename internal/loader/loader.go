// Package loader reads expense records from CSV input.
package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/trackererror"

	"github.com/gocarina/gocsv"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvRow maps the required columns; other columns are ignored.
type csvRow struct {
	Date        string `csv:"date"`
	Amount      string `csv:"amount"`
	Description string `csv:"description"`
}

// Result is the outcome of a successful load.
type Result struct {
	Source            string
	Records           []models.Record
	Columns           []string
	InvalidAmountRows []int
}

// Warning returns the non-fatal coercion warning for the load, or nil when
// every amount was numeric.
func (r *Result) Warning() *trackererror.ValueCoercionWarning {
	if len(r.InvalidAmountRows) == 0 {
		return nil
	}
	return &trackererror.ValueCoercionWarning{Field: models.ColumnAmount, Rows: r.InvalidAmountRows}
}

// Loader turns CSV input into validated records.
type Loader struct {
	delimiter rune
	logger    logging.Logger
}

// NewLoader creates a loader reading delimiter-separated input.
func NewLoader(delimiter rune, logger logging.Logger) *Loader {
	if delimiter == 0 {
		delimiter = ','
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Loader{delimiter: delimiter, logger: logger}
}

// LoadFile opens path and loads it.
func (l *Loader) LoadFile(path string) (*Result, error) {
	file, err := os.Open(path) // #nosec G304 -- path is provided by the user
	if err != nil {
		l.logger.WithError(err).Error("Failed to open CSV file", logging.F(logging.FieldFile, path))
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			l.logger.WithError(err).Warn("Failed to close file", logging.F(logging.FieldFile, path))
		}
	}()

	return l.Load(file, path)
}

// Load reads all records from r. source names the input in errors and logs.
//
// A header lacking date, amount or description fails with a
// *trackererror.SchemaError, and any date that cannot be parsed fails with a
// *trackererror.ParseError; in both cases no records are returned. Amounts
// that are not numbers do not fail the load: the record is kept with
// AmountValid == false and its row is listed in Result.InvalidAmountRows.
func (l *Loader) Load(r io.Reader, source string) (*Result, error) {
	start := time.Now()
	logger := l.logger.WithField(logging.FieldSource, source)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", source, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	columns, err := l.readHeader(data)
	if err != nil {
		return nil, fmt.Errorf("error reading header of %s: %w", source, err)
	}
	if missing := missingColumns(columns); len(missing) > 0 {
		logger.Warn("Input is missing required columns",
			logging.F("missing", missing),
			logging.F("found", columns))
		return nil, &trackererror.SchemaError{Source: source, Missing: missing, Found: columns}
	}

	var rows []csvRow
	if err := gocsv.UnmarshalCSV(l.newReader(data), &rows); err != nil {
		logger.WithError(err).Error("Failed to parse CSV rows")
		return nil, fmt.Errorf("error parsing CSV rows of %s: %w", source, err)
	}

	result := &Result{
		Source:  source,
		Columns: columns,
		Records: make([]models.Record, 0, len(rows)),
	}

	for i, row := range rows {
		rowNum := i + 1

		date, _, err := dateutils.ParseDate(row.Date)
		if err != nil {
			logger.WithError(err).Error("Invalid date",
				logging.F(logging.FieldRow, rowNum),
				logging.F(logging.FieldColumn, models.ColumnDate))
			return nil, &trackererror.ParseError{
				Source: source,
				Field:  models.ColumnDate,
				Row:    rowNum,
				Value:  row.Date,
				Err:    err,
			}
		}

		rec := models.Record{
			Description: row.Description,
			RawAmount:   row.Amount,
			Row:         rowNum,
		}
		rec.SetDate(date)

		if amount, err := ParseAmount(row.Amount); err != nil {
			logger.Debug("Amount is not numeric",
				logging.F(logging.FieldRow, rowNum),
				logging.F("value", row.Amount))
			result.InvalidAmountRows = append(result.InvalidAmountRows, rowNum)
		} else {
			rec.Amount = amount
			rec.AmountValid = true
		}

		result.Records = append(result.Records, rec)
	}

	if w := result.Warning(); w != nil {
		logger.Warn(w.Error(), logging.F(logging.FieldSkipped, w.Count()))
	}

	logger.Info("Loaded expense records",
		logging.F(logging.FieldCount, len(result.Records)),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	return result, nil
}

func (l *Loader) newReader(data []byte) *csv.Reader {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = l.delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}

func (l *Loader) readHeader(data []byte) ([]string, error) {
	header, err := l.newReader(data).Read()
	if errors.Is(err, io.EOF) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return header, nil
}

func missingColumns(columns []string) []string {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	var missing []string
	for _, required := range models.RequiredColumns {
		if !present[required] {
			missing = append(missing, required)
		}
	}
	return missing
}
