package loader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrEmptyAmount is returned for blank amount cells.
var ErrEmptyAmount = errors.New("empty amount")

var amountReplacer = strings.NewReplacer(
	"$", "",
	"€", "",
	"£", "",
	"₹", "",
	"'", "",
	" ", "",
	"\u00a0", "",
)

// ParseAmount converts an amount cell to a decimal. Currency symbols
// ($ € £ ₹), apostrophes and whitespace are stripped first. When both ','
// and '.' appear the last one is the decimal separator, so "$1,234.50" and
// "1.234,50" both read as 1234.50. A lone comma followed by one or two
// digits is a decimal comma ("12,50"). Grouping that cannot be read
// unambiguously ("1,2,3") is an error.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := amountReplacer.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return decimal.Zero, ErrEmptyAmount
	}
	normalized, err := normalizeSeparators(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	amount, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return amount, nil
}

// normalizeSeparators rewrites s so that '.' is the only decimal separator
// and no grouping separator remains.
func normalizeSeparators(s string) (string, error) {
	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	var decimalSep, groupSep string
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			decimalSep, groupSep = ",", "."
		} else {
			decimalSep, groupSep = ".", ","
		}
	case lastComma >= 0:
		if strings.Count(s, ",") == 1 && len(s)-lastComma-1 >= 1 && len(s)-lastComma-1 <= 2 {
			decimalSep = ","
		} else {
			groupSep = ","
		}
	default:
		decimalSep = "."
	}

	intPart, fracPart := s, ""
	if decimalSep != "" {
		if strings.Count(s, decimalSep) > 1 {
			return "", fmt.Errorf("repeated decimal separator %q", decimalSep)
		}
		if i := strings.Index(s, decimalSep); i >= 0 {
			intPart, fracPart = s[:i], s[i+1:]
			if fracPart == "" {
				return "", errors.New("missing digits after decimal separator")
			}
		}
	}

	if groupSep != "" {
		if strings.Contains(fracPart, groupSep) {
			return "", fmt.Errorf("grouping separator %q after decimal separator", groupSep)
		}
		if strings.Contains(intPart, groupSep) {
			if !validGrouping(strings.Split(intPart, groupSep)) {
				return "", fmt.Errorf("ambiguous grouping in %q", s)
			}
			intPart = strings.ReplaceAll(intPart, groupSep, "")
		}
	}

	if fracPart == "" {
		return sign + intPart, nil
	}
	return sign + intPart + "." + fracPart, nil
}

// validGrouping accepts thousands groups (1,234,567) and lakh groups
// (1,23,456): a leading group of 1-3 digits, inner groups of 2 or 3 and a
// final group of exactly 3.
func validGrouping(groups []string) bool {
	if len(groups) < 2 {
		return false
	}
	if n := len(groups[0]); n < 1 || n > 3 {
		return false
	}
	for _, g := range groups[1 : len(groups)-1] {
		if len(g) != 2 && len(g) != 3 {
			return false
		}
	}
	return len(groups[len(groups)-1]) == 3
}
