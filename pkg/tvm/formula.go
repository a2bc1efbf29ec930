// Package tvm computes the time value of a single lump sum: the future value
// of money invested today and the present value of money received later.
package tvm

import (
	"math"

	"github.com/iwvelando/time-value/pkg/mathutil"
)

// TruncateToCents rounds an amount to two decimal places. It is applied only
// to final dollar amounts, never to intermediate rate or period arithmetic.
func TruncateToCents(x float64) float64 {
	return mathutil.Round(x)
}

// growth returns (1 + r/n)^(n*t).
func growth(annualRate, periodsPerYear, years float64) float64 {
	nt := periodsPerYear * years
	rate := 1 + annualRate/periodsPerYear
	return math.Pow(rate, nt)
}

// FutureValue computes P * (1 + r/n)^(n*t), rounded to cents.
//
// The function is total: a zero periodsPerYear or a compound rate of zero
// yields NaN or an infinity instead of an error. Callers that need a domain
// check should use Input.Validate or ComputeFutureValue.
func FutureValue(principal, annualRate, periodsPerYear, years float64) float64 {
	return TruncateToCents(principal * growth(annualRate, periodsPerYear, years))
}

// PresentValue computes FV / (1 + r/n)^(n*t), rounded to cents. Like
// FutureValue it never fails; invalid domains surface as NaN or infinities.
func PresentValue(futureValue, annualRate, periodsPerYear, years float64) float64 {
	return TruncateToCents(futureValue / growth(annualRate, periodsPerYear, years))
}
