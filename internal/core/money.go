// Package core holds the domain model shared by every other package:
// transactions, categories, budgets, fixed payments and the money helpers
// used to parse and render amounts.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseMoney converts free-form user input to a decimal amount.
//
// It accepts both dot (12.50) and comma (12,50) decimal separators and trims
// surrounding whitespace. Anything that does not parse, including the empty
// string, coerces to zero. Form handling treats zero as "not provided", so
// this function never returns an error.
//
// Examples:
//
//	ParseMoney("12.50")   -> 12.5
//	ParseMoney("12,50")   -> 12.5
//	ParseMoney(" 12.50 ") -> 12.5
//	ParseMoney("abc")     -> 0
func ParseMoney(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatMoney renders an amount with the fixed 2-decimal display used
// everywhere in the app.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
