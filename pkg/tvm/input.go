package tvm

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/time-value/pkg/compounding"
	"github.com/iwvelando/time-value/pkg/mathutil"
)

// Domain errors returned by Input.Validate.
var (
	ErrInvalidPeriods   = errors.New("periods per year must be a finite number greater than zero")
	ErrZeroCompoundRate = errors.New("compound rate per period is zero")
	ErrInvalidAmount    = errors.New("amount must be a finite number greater than zero")
	ErrInvalidYears     = errors.New("years must be a finite number")
	ErrInvalidRate      = errors.New("annual rate must be a finite number")
)

// Input is a single calculation request. For future value Amount is the
// principal; for present value it is the future sum being discounted.
type Input struct {
	Amount     float64
	AnnualRate float64
	Frequency  compounding.Frequency
	Years      float64
}

// Validate checks that the input lies in the domain where the formulas
// produce a finite amount.
func (in Input) Validate() error {
	if !mathutil.IsPositive(in.Amount) {
		return fmt.Errorf("%w, got %v", ErrInvalidAmount, in.Amount)
	}
	if mathutil.IsNonFinite(in.AnnualRate) {
		return fmt.Errorf("%w, got %v", ErrInvalidRate, in.AnnualRate)
	}
	if mathutil.IsNonFinite(in.Years) {
		return fmt.Errorf("%w, got %v", ErrInvalidYears, in.Years)
	}
	if err := in.Frequency.Validate(); err != nil {
		return fmt.Errorf("%w: %s frequency", ErrInvalidPeriods, in.Frequency)
	}
	if 1+in.AnnualRate/in.Frequency.PeriodsPerYear() == 0 {
		return fmt.Errorf("%w: annual rate %v with %v periods per year",
			ErrZeroCompoundRate, in.AnnualRate, in.Frequency.PeriodsPerYear())
	}
	return nil
}

// ComputeFutureValue validates the input and returns its future value.
func ComputeFutureValue(in Input) (float64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	return checked(FutureValue(in.Amount, in.AnnualRate, in.Frequency.PeriodsPerYear(), in.Years))
}

// ComputePresentValue validates the input and returns the present value of
// the future sum in in.Amount.
func ComputePresentValue(in Input) (float64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	return checked(PresentValue(in.Amount, in.AnnualRate, in.Frequency.PeriodsPerYear(), in.Years))
}

// ErrOverflow is returned when a valid input still produces a result too
// large to represent.
var ErrOverflow = errors.New("result is not representable")

func checked(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %v", ErrOverflow, v)
	}
	return v, nil
}

// Comparison is the future value of one principal under one frequency.
type Comparison struct {
	Frequency compounding.Frequency
	Value     float64
}

// Compare computes the future value of principal under every named
// frequency, in selection order. It fails on the first frequency whose
// input is invalid or whose result overflows.
func Compare(principal, annualRate, years float64) ([]Comparison, error) {
	options := compounding.Options()
	results := make([]Comparison, 0, len(options))
	for _, opt := range options {
		in := Input{Amount: principal, AnnualRate: annualRate, Frequency: opt.Frequency, Years: years}
		v, err := ComputeFutureValue(in)
		if err != nil {
			return nil, fmt.Errorf("%s compounding: %w", opt.Frequency.DisplayName(), err)
		}
		results = append(results, Comparison{Frequency: opt.Frequency, Value: v})
	}
	return results, nil
}
