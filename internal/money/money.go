// Package money provides the fixed-point decimal helpers the pricing engine
// and storage layer need. Floating-point binary arithmetic is forbidden for
// money; everything here is built on shopspring/decimal.
package money

import "github.com/shopspring/decimal"

// Zero is the canonical zero-value money amount.
var Zero = decimal.Zero

// RoundHalfUp rounds d to two fractional digits. decimal.Decimal.Round
// rounds half away from zero, which is HALF_UP for the non-negative amounts
// this domain deals in (prices, totals, deposits are never negative).
func RoundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FromFloat is a convenience constructor for literal amounts in tests and
// seed data; production code paths should parse decimal strings instead.
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}

// NonNegative reports whether d >= 0.
func NonNegative(d decimal.Decimal) bool {
	return !d.IsNegative()
}
