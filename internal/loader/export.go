package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/models"

	"github.com/gocarina/gocsv"
)

type exportRow struct {
	Date        string `csv:"date"`
	Amount      string `csv:"amount"`
	Description string `csv:"description"`
	Category    string `csv:"category"`
	Year        int    `csv:"year"`
	Month       int    `csv:"month"`
}

// ExportCSV writes records with their category and derived month columns.
// Amounts that were not numeric are written back as read.
func ExportCSV(w io.Writer, records []models.Record, delimiter rune) error {
	rows := make([]exportRow, len(records))
	for i, r := range records {
		amount := r.RawAmount
		if r.AmountValid {
			amount = r.Amount.StringFixed(2)
		}
		rows[i] = exportRow{
			Date:        dateutils.ToISODate(r.Date),
			Amount:      amount,
			Description: r.Description,
			Category:    r.Category,
			Year:        r.Year,
			Month:       r.Month,
		}
	}

	csvWriter := csv.NewWriter(w)
	if delimiter != 0 {
		csvWriter.Comma = delimiter
	}
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// ExportFile writes records to path, creating parent directories.
func ExportFile(path string, records []models.Record, delimiter rune) error {
	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(path) // #nosec G304 -- output path chosen by the user
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}

	if err := ExportCSV(file, records, delimiter); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
