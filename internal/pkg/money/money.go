// Package money holds the rounding and percentage helpers shared by the
// billing calculators. All functions are pure.
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Round rounds amount to scale decimal places, half away from zero.
func Round(amount decimal.Decimal, scale int32) decimal.Decimal {
	return amount.Round(scale)
}

// Percent returns amount × rate / 100 without rounding.
func Percent(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Div(hundred)
}

// RateOf returns part / whole × 100, or zero when whole is zero.
func RateOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).DivRound(whole, 16)
}

// IsPositive reports whether amount > 0.
func IsPositive(amount decimal.Decimal) bool {
	return amount.Sign() > 0
}

// IsNegative reports whether amount < 0.
func IsNegative(amount decimal.Decimal) bool {
	return amount.Sign() < 0
}

// ValidRate reports whether rate lies in [0, 100].
func ValidRate(rate decimal.Decimal) bool {
	return !IsNegative(rate) && rate.LessThanOrEqual(hundred)
}
