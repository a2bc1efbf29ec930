// Package format renders monetary amounts for display.
package format

import (
	"fmt"
	"math"
	"strconv"

	"github.com/iwvelando/time-value/pkg/constants"
	"github.com/iwvelando/time-value/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Amount returns a number with thousands separators and two-digit cents
// (e.g., "1,307.89", "-42.00"). The amount is split on whole cents, so a
// fractional remainder can never render as 100 cents. NaN renders as "NaN";
// infinities and amounts beyond the int64 range of cents render as "+Inf" or
// "-Inf".
func Amount(amount float64) string {
	cents, ok := mathutil.Cents(amount)
	if !ok {
		return nonFinite(amount)
	}

	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	if cents == 0 {
		sign = ""
	}

	dollars := cents / constants.DecimalPrecision
	remainder := cents % constants.DecimalPrecision
	return sign + printer.Sprintf("%d", dollars) + fmt.Sprintf(".%02d", remainder)
}

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	if _, ok := mathutil.Cents(amount); !ok {
		return nonFinite(amount)
	}
	formatted := Amount(math.Abs(amount))
	if amount < 0 && formatted != "0.00" {
		return "-$" + formatted
	}
	return "$" + formatted
}

// Percent renders a decimal fraction as a percentage with three decimals,
// e.g. 0.03875 becomes "3.875%".
func Percent(fraction float64) string {
	return fmt.Sprintf("%.3f%%", mathutil.DecimalToPercent(fraction))
}

// Number renders a plain value without trailing zeros, e.g. 7 or 1000.5.
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func nonFinite(amount float64) string {
	switch {
	case math.IsNaN(amount):
		return "NaN"
	case amount > 0:
		return "+Inf"
	default:
		return "-Inf"
	}
}
