package tvm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwvelando/time-value/pkg/compounding"
)

func TestInputValidate(t *testing.T) {
	annual := compounding.Named(compounding.Annual)

	tests := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{"valid", Input{Amount: 1000, AnnualRate: 0.03875, Frequency: annual, Years: 7}, nil},
		{"zero rate is valid", Input{Amount: 1000, AnnualRate: 0, Frequency: annual, Years: 7}, nil},
		{"negative years is valid", Input{Amount: 1000, AnnualRate: 0.02, Frequency: annual, Years: -2}, nil},
		{"zero amount", Input{Amount: 0, AnnualRate: 0.02, Frequency: annual, Years: 1}, ErrInvalidAmount},
		{"negative amount", Input{Amount: -5, AnnualRate: 0.02, Frequency: annual, Years: 1}, ErrInvalidAmount},
		{"NaN rate", Input{Amount: 5, AnnualRate: math.NaN(), Frequency: annual, Years: 1}, ErrInvalidRate},
		{"infinite years", Input{Amount: 5, AnnualRate: 0.1, Frequency: annual, Years: math.Inf(1)}, ErrInvalidYears},
		{"zero custom periods", Input{Amount: 5, AnnualRate: 0.1, Frequency: compounding.NewCustom(0), Years: 1}, ErrInvalidPeriods},
		{"negative custom periods", Input{Amount: 5, AnnualRate: 0.1, Frequency: compounding.NewCustom(-4), Years: 1}, ErrInvalidPeriods},
		{"zero compound rate", Input{Amount: 5, AnnualRate: -12, Frequency: compounding.Named(compounding.Monthly), Years: 1}, ErrZeroCompoundRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestComputeFutureValue(t *testing.T) {
	v, err := ComputeFutureValue(Input{
		Amount:     1000.00,
		AnnualRate: 0.03875,
		Frequency:  compounding.Named(compounding.Annual),
		Years:      7,
	})
	require.NoError(t, err)
	assert.InDelta(t, 1304.90, v, 1e-9)

	_, err = ComputeFutureValue(Input{Amount: 1000, AnnualRate: 0.05, Frequency: compounding.NewCustom(0), Years: 1})
	assert.ErrorIs(t, err, ErrInvalidPeriods)
}

func TestComputePresentValue(t *testing.T) {
	v, err := ComputePresentValue(Input{
		Amount:     1304.90,
		AnnualRate: 0.03875,
		Frequency:  compounding.Named(compounding.Annual),
		Years:      7,
	})
	require.NoError(t, err)
	assert.InDelta(t, 1000.00, v, 1e-9)

	_, err = ComputePresentValue(Input{Amount: 1000, AnnualRate: -1, Frequency: compounding.Named(compounding.Annual), Years: 2})
	assert.ErrorIs(t, err, ErrZeroCompoundRate)
}

func TestComputeOverflow(t *testing.T) {
	_, err := ComputeFutureValue(Input{
		Amount:     1e300,
		AnnualRate: 1,
		Frequency:  compounding.Named(compounding.Daily),
		Years:      100,
	})
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestCompareReportsOverflow(t *testing.T) {
	results, err := Compare(1e300, 0.5, 1000)
	assert.ErrorIs(t, err, ErrOverflow)
	assert.Contains(t, err.Error(), "Annually compounding")
	assert.Nil(t, results)
}

func TestCompareRejectsInvalidInput(t *testing.T) {
	_, err := Compare(0, 0.05, 10)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	// -1 is a zero compound rate only for annual compounding.
	_, err = Compare(1000, -1, 10)
	assert.ErrorIs(t, err, ErrZeroCompoundRate)
}
