package models

import (
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount with two decimals behind a currency symbol,
// e.g. "$1234.50".
func FormatMoney(symbol string, amount decimal.Decimal) string {
	return symbol + amount.StringFixed(2)
}
