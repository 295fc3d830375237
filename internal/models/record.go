// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Record is one expense transaction.
//
// Year and Month are derived from Date and kept in sync by SetDate. A record
// whose amount could not be read has AmountValid == false; it stays in the
// record set but contributes to no sum, mean, count or outlier test.
type Record struct {
	Date        time.Time       `json:"date"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	Amount      decimal.Decimal `json:"amount"`
	AmountValid bool            `json:"amount_valid"`
	RawAmount   string          `json:"raw_amount,omitempty"`
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
	Row         int             `json:"row,omitempty"`
}

// NewRecord builds a record with a valid amount.
func NewRecord(date time.Time, amount decimal.Decimal, description string) Record {
	r := Record{
		Amount:      amount,
		AmountValid: true,
		RawAmount:   amount.String(),
		Description: description,
	}
	r.SetDate(date)
	return r
}

// SetDate assigns the date and recomputes Year and Month.
func (r *Record) SetDate(date time.Time) {
	r.Date = date
	r.Year = date.Year()
	r.Month = int(date.Month())
}

// MonthKey returns the record's month as YYYY-MM.
func (r Record) MonthKey() string {
	return fmt.Sprintf("%04d-%02d", r.Year, r.Month)
}

// ValidRecords returns the records whose amount is a number.
func ValidRecords(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.AmountValid {
			out = append(out, r)
		}
	}
	return out
}

// CloneRecords returns an independent copy of records.
func CloneRecords(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	copy(out, records)
	return out
}
