// Package dateutils provides the calendar-date parsing and month arithmetic
// shared by the loader, aggregator and assistant.
package dateutils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date layouts accepted in expense files.
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutEuropean  = "02.01.2006"
	DateLayoutUS        = "01/02/2006"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutRFC3339   = time.RFC3339
	DateLayoutWithMonth = "2-Jan-2006"
	MonthLayout         = "January 2006"
	MonthKeyLayout      = "2006-01"
)

// CommonFormats is tried in order; the first layout that parses wins, so
// 03/04/2024 is read as March 4th.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutFull,
	DateLayoutRFC3339,
	"2006-01-02T15:04:05",
	DateLayoutUS,
	"1/2/2006",
	DateLayoutEuropean,
	"2.1.2006",
	"2006/01/02",
	"02-01-2006",
	DateLayoutWithMonth,
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
}

// ErrEmptyDate is returned for blank date cells.
var ErrEmptyDate = errors.New("empty date")

var whitespace = regexp.MustCompile(`\s+`)

var monthNames = map[string]time.Month{}

func init() {
	for m := time.January; m <= time.December; m++ {
		full := strings.ToLower(m.String())
		monthNames[full] = m
		monthNames[full[:3]] = m
	}
	monthNames["sept"] = time.September
}

// ParseDate parses dateStr with CommonFormats and truncates the result to a
// UTC calendar day. It returns the layout that matched.
func ParseDate(dateStr string) (time.Time, string, error) {
	cleaned := CleanDateString(dateStr)
	if cleaned == "" {
		return time.Time{}, "", ErrEmptyDate
	}

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return TruncateToDay(t), format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// CleanDateString trims and collapses internal whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// TruncateToDay drops the time of day and location, keeping the calendar
// date as written.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// MonthKey formats a year and month as YYYY-MM.
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// FormatMonth renders a year and month as "January 2024".
func FormatMonth(year, month int) string {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format(MonthLayout)
}

// ParseMonthName resolves a full or abbreviated English month name,
// case-insensitively.
func ParseMonthName(name string) (time.Month, bool) {
	m, ok := monthNames[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// ParseMonthKey parses YYYY-MM.
func ParseMonthKey(key string) (year, month int, err error) {
	t, err := time.Parse(MonthKeyLayout, strings.TrimSpace(key))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", key, err)
	}
	return t.Year(), int(t.Month()), nil
}

// SameMonth reports whether both dates fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// MonthsBetween counts calendar months from start to end inclusive; it is
// zero when end is before start.
func MonthsBetween(start, end time.Time) int {
	n := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
	if n < 0 {
		return 0
	}
	return n
}

// CompareDates compares two dates by calendar day and returns -1, 0 or 1.
func CompareDates(date1, date2 time.Time) int {
	date1 = TruncateToDay(date1)
	date2 = TruncateToDay(date2)

	switch {
	case date1.Before(date2):
		return -1
	case date1.After(date2):
		return 1
	default:
		return 0
	}
}
