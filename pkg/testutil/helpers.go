// Package testutil provides common utility functions for testing.
package testutil

import (
	"fmt"

	"github.com/iwvelando/time-value/pkg/mathutil"
	"github.com/iwvelando/time-value/pkg/tvm"
)

// FindComparison finds the comparison for a frequency token.
// Returns a pointer to the comparison if found, nil otherwise.
func FindComparison(results []tvm.Comparison, token string) *tvm.Comparison {
	for i := range results {
		if results[i].Frequency.Token() == token {
			return &results[i]
		}
	}
	return nil
}

// CurrencyMismatch returns a description of the difference between want and
// got when they are more than a cent apart, or "" when they agree.
func CurrencyMismatch(want, got float64) string {
	if mathutil.WithinCent(want, got) {
		return ""
	}
	return fmt.Sprintf("want %.2f, got %.2f (off by %.4f)", want, got, got-want)
}
