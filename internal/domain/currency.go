// Package domain defines the core data structures of the normalization layer.
package domain

import "regexp"

// CurrencyCode is a fully-normalized, exchange-agnostic asset symbol such as
// "BTC" or "USD". Codes are uppercase and never contain the operation
// separator.
type CurrencyCode string

var currencyRegexp = regexp.MustCompile(`^[A-Z0-9]+$`)

// ValidCurrency reports whether s is a well-formed currency code.
func ValidCurrency(s string) bool {
	return currencyRegexp.MatchString(s)
}

func (c CurrencyCode) String() string {
	return string(c)
}
