// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/time-value/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Halfway cases round away from zero. NaN and infinities pass through.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// Cents converts an amount to a whole number of cents, rounding half away
// from zero. The second return is false when the amount is not finite or
// does not fit in an int64.
func Cents(val float64) (int64, bool) {
	if IsNonFinite(val) {
		return 0, false
	}
	cents := math.Round(val * constants.DecimalPrecision)
	if cents >= math.MaxInt64 || cents <= math.MinInt64 {
		return 0, false
	}
	return int64(cents), true
}

// IsNonFinite reports whether val is NaN or an infinity.
func IsNonFinite(val float64) bool {
	return math.IsNaN(val) || math.IsInf(val, 0)
}

// IsPositive checks if a value is strictly positive and finite.
func IsPositive(val float64) bool {
	return val > 0 && !math.IsInf(val, 1)
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// WithinCent checks if two currency values differ by at most one cent.
func WithinCent(val1, val2 float64) bool {
	// Small slack absorbs representation error in values like 0.1 + 0.2.
	return WithinTolerance(val1, val2, constants.CurrencyTolerance+1e-9)
}

// PercentToDecimal converts a percentage such as 3.875 to 0.03875.
func PercentToDecimal(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}

// DecimalToPercent converts a decimal fraction such as 0.03875 to 3.875.
func DecimalToPercent(fraction float64) float64 {
	return fraction * constants.PercentageMultiplier
}
