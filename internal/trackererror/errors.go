// Package trackererror defines the typed errors raised while loading and
// analyzing expense data.
package trackererror

import (
	"fmt"
	"strings"
)

// SchemaError reports that required columns are absent from the input header.
type SchemaError struct {
	Source  string
	Missing []string
	Found   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns [%s] (found: [%s])",
		sourceOrInput(e.Source), strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

// ParseError reports a value that could not be converted. Row is the 1-based
// data row, not counting the header.
type ParseError struct {
	Source string
	Field  string
	Row    int
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s' at row %d: %v",
		sourceOrInput(e.Source), e.Field, e.Value, e.Row, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValueCoercionWarning reports amounts that could not be read as numbers.
// The affected records are kept with an invalid amount; it is not fatal.
type ValueCoercionWarning struct {
	Field string
	Rows  []int
}

// Count is the number of affected rows.
func (w *ValueCoercionWarning) Count() int {
	return len(w.Rows)
}

func (w *ValueCoercionWarning) Error() string {
	return fmt.Sprintf("%d %s value(s) could not be converted and were excluded from totals (rows %s)",
		len(w.Rows), w.Field, joinInts(w.Rows))
}

// EmptyStateError reports an operation invoked before its prerequisite step.
type EmptyStateError struct {
	Operation string
	Reason    string
}

func (e *EmptyStateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Operation, e.Reason)
}

func sourceOrInput(source string) string {
	if source == "" {
		return "input"
	}
	return source
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
