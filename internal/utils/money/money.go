// Package money isolates currency rounding and formatting so the ledger core
// stays representation-agnostic. All amounts are shopspring decimals; the
// assumed currency has two minor-unit digits.
package money

import "github.com/shopspring/decimal"

// MinorUnitDigits is the number of decimal places of the ledger currency.
const MinorUnitDigits = 2

// RoundCurrency rounds a decimal half-up to the currency's minor unit.
// Ledger amounts are always positive, so decimal's round-half-away-from-zero
// is exactly half-up here.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(MinorUnitDigits)
}

// Format renders an amount with a fixed number of decimal places for
// documents and exports.
func Format(d decimal.Decimal) string {
	return d.StringFixed(MinorUnitDigits)
}

// PercentageOf computes value*pct/100 rounded to the currency minor unit.
// Used for commission derivation from a contract value.
func PercentageOf(value decimal.Decimal, pct decimal.Decimal) decimal.Decimal {
	return RoundCurrency(value.Mul(pct).Div(decimal.NewFromInt(100)))
}
