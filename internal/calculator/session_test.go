package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwvelando/time-value/internal/config"
	"github.com/iwvelando/time-value/pkg/compounding"
	"github.com/iwvelando/time-value/pkg/field"
	"github.com/iwvelando/time-value/pkg/tvm"
)

func defaultSession() Session {
	return NewSession(config.Default().Defaults)
}

func TestDefaultSessionResult(t *testing.T) {
	s := defaultSession()

	r := s.Result()
	require.NoError(t, r.Err)
	assert.InDelta(t, 1304.90, r.Value, 1e-9)
	assert.Equal(t, "1,304.90", r.Formatted)
	assert.Equal(t, "Annually Future value of 1000 at 3.875% for 7 years:", r.Description)
	assert.Empty(t, r.FieldErrors)
}

func TestNewSessionFromDefaults(t *testing.T) {
	s := NewSession(config.Defaults{
		Principal:  "2,500",
		AnnualRate: 5,
		Frequency:  "monthly",
		Years:      "10",
	})

	assert.Equal(t, "2,500", s.Amount.State.RawText)
	assert.Equal(t, 2500.0, s.Amount.Value())
	assert.InDelta(t, 0.05, s.Rate, 1e-12)
	assert.Equal(t, compounding.Named(compounding.Monthly), s.Frequency)
	assert.Equal(t, 10.0, s.Years.Value())
}

func TestNewSessionFallsBackOnBadDefaults(t *testing.T) {
	s := NewSession(config.Defaults{Principal: "-1", AnnualRate: 3.875, Frequency: "hourly", Years: "x"})

	assert.Equal(t, 1000.0, s.Amount.Value())
	assert.Equal(t, 7.0, s.Years.Value())
	assert.Equal(t, compounding.Named(compounding.Annual), s.Frequency)
}

func TestNewSessionCustomDefault(t *testing.T) {
	s := NewSession(config.Defaults{AnnualRate: 4, Frequency: "annual", CustomPeriods: 6})
	assert.Equal(t, compounding.NewCustom(6), s.Frequency)
	assert.Equal(t, "6", s.CustomPeriods.State.RawText)
}

func TestInvalidEditKeepsLastResult(t *testing.T) {
	s := defaultSession()
	before := s.Result()

	s = s.EditAmount("12a")
	r := s.Result()
	require.NoError(t, r.Err)
	assert.Equal(t, before.Value, r.Value, "rejected text must not change the result")
	require.Len(t, r.FieldErrors, 1)
	assert.Equal(t, "amount", r.FieldErrors[0].Field)
	assert.Equal(t, field.MsgNotANumber, r.FieldErrors[0].Message)

	s = s.EditAmount("")
	r = s.Result()
	assert.Equal(t, before.Value, r.Value)
	assert.Empty(t, r.FieldErrors, "empty field shows no error")

	s = s.EditAmount("2,000")
	r = s.Result()
	assert.InDelta(t, 2609.80, r.Value, 1e-9)
}

func TestYearsErrorMessage(t *testing.T) {
	s := defaultSession().EditYears("-5")
	errs := s.FieldErrors()
	require.Len(t, errs, 1)
	assert.Equal(t, "years", errs[0].Field)
	assert.Equal(t, "Number of years must be greater than zero", errs[0].Message)
	assert.Equal(t, 7.0, s.Input().Years)
}

func TestSelectFrequency(t *testing.T) {
	s := defaultSession().SelectFrequency("monthly")
	assert.Equal(t, compounding.Named(compounding.Monthly), s.Frequency)

	s = s.SelectFrequency("not-a-token")
	assert.Equal(t, compounding.Named(compounding.Monthly), s.Frequency)
	assert.Contains(t, s.Result().Description, "Monthly Future value")
}

func TestCustomPeriods(t *testing.T) {
	s := defaultSession().EditCustomPeriods("6")
	assert.Equal(t, compounding.NewCustom(6), s.Frequency)
	assert.Contains(t, s.Result().Description, "Custom Future value")

	// Rejected period counts never reach the formulas.
	s = s.EditCustomPeriods("0")
	assert.Equal(t, compounding.NewCustom(6), s.Frequency)
	require.Len(t, s.FieldErrors(), 1)
	assert.Equal(t, "Periods per year must be greater than zero", s.FieldErrors()[0].Message)
	assert.NoError(t, s.Result().Err)
}

func TestSetFrequencyDomainError(t *testing.T) {
	s := defaultSession().SetFrequency(compounding.NewCustom(0))
	r := s.Result()
	assert.ErrorIs(t, r.Err, tvm.ErrInvalidPeriods)
	assert.Empty(t, r.Formatted)
}

func TestRate(t *testing.T) {
	s := defaultSession().SetRatePercent(5)
	assert.InDelta(t, 0.05, s.Rate, 1e-12)

	s = s.NudgeRate(1)
	assert.InDelta(t, 0.0501, s.Rate, 1e-12)

	s = s.NudgeRate(-10000)
	assert.Equal(t, 0.0, s.Rate)

	s = s.NudgeRate(100000)
	assert.InDelta(t, 0.5, s.Rate, 1e-12)

	s = s.SetRate(0)
	assert.InDelta(t, 1000.00, s.Result().Value, 1e-9)
}

func TestPresentValueMode(t *testing.T) {
	s := defaultSession().SetMode(PresentValue).EditAmount("1304.90")
	r := s.Result()
	require.NoError(t, r.Err)
	assert.InDelta(t, 1000.00, r.Value, 1e-9)
	assert.Equal(t, "Annually Present value of 1304.9 at 3.875% for 7 years:", r.Description)

	s = s.EditAmount("-1")
	assert.Equal(t, "Future amount must be greater than zero", s.FieldErrors()[0].Message)

	s = s.SetMode(FutureValue)
	assert.Equal(t, LabelPrincipal, s.Amount.Label)
}

func TestParseMode(t *testing.T) {
	for _, in := range []string{"fv", "future", "future-value"} {
		m, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, FutureValue, m)
	}
	for _, in := range []string{"pv", "present", "present-value"} {
		m, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, PresentValue, m)
	}
	_, err := ParseMode("npv")
	assert.Error(t, err)
}

func TestResultIsIdempotent(t *testing.T) {
	s := defaultSession().SelectFrequency("daily").EditYears("30")
	assert.Equal(t, s.Result(), s.Result())
}
