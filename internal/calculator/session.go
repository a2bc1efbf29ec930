// Package calculator holds the state behind a time-value calculator view.
//
// A Session is an immutable value. Every user action is a method returning
// the next Session, and Result derives everything a view renders from the
// current one, so rendering twice from the same session yields the same
// output.
package calculator

import (
	"fmt"
	"math"

	"github.com/iwvelando/time-value/internal/config"
	"github.com/iwvelando/time-value/pkg/compounding"
	"github.com/iwvelando/time-value/pkg/constants"
	"github.com/iwvelando/time-value/pkg/field"
	"github.com/iwvelando/time-value/pkg/format"
	"github.com/iwvelando/time-value/pkg/mathutil"
	"github.com/iwvelando/time-value/pkg/tvm"
)

// Mode selects which value the session computes.
type Mode int

const (
	FutureValue Mode = iota
	PresentValue
)

// String returns the label used in descriptions.
func (m Mode) String() string {
	if m == PresentValue {
		return "Present value"
	}
	return "Future value"
}

// Token returns the short form accepted by ParseMode.
func (m Mode) Token() string {
	if m == PresentValue {
		return "pv"
	}
	return "fv"
}

// ParseMode maps "fv"/"future" and "pv"/"present" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "fv", "future", "future-value":
		return FutureValue, nil
	case "pv", "present", "present-value":
		return PresentValue, nil
	default:
		return FutureValue, fmt.Errorf("unknown mode %q", s)
	}
}

// Field labels used in error messages.
const (
	LabelPrincipal     = "Principal amount"
	LabelFutureAmount  = "Future amount"
	LabelYears         = "Number of years"
	LabelCustomPeriods = "Periods per year"
)

// Session is the complete input state of one calculator view.
type Session struct {
	Mode          Mode
	Amount        field.Field
	Years         field.Field
	CustomPeriods field.Field
	Rate          float64 // decimal fraction
	Frequency     compounding.Frequency
}

// NewSession returns a session seeded from configured defaults, normally
// config.Default().Defaults or a loaded configuration's. Principal, years and
// frequency values that fail validation fall back to the built-in defaults.
func NewSession(defaults config.Defaults) Session {
	s := Session{
		Amount: field.Field{
			Label:       LabelPrincipal,
			Prompt:      "Principal Amount ($):",
			Placeholder: "Enter initial principal amount (e.g., 10000.00)",
			State:       field.New(constants.DefaultPrincipalText, constants.DefaultPrincipal),
		},
		Years: field.Field{
			Label:       LabelYears,
			Prompt:      "Number of Years:",
			Placeholder: "Enter number of years (e.g. 5.0)",
			State:       field.New(constants.DefaultYearsText, constants.DefaultYears),
		},
		CustomPeriods: field.Field{
			Label:       LabelCustomPeriods,
			Prompt:      "Custom Periods per Year:",
			Placeholder: "e.g. 6",
			State:       field.New("", 0),
		},
		Rate:      constants.DefaultAnnualRate,
		Frequency: compounding.Named(compounding.Annual),
	}

	if st := field.Edit(s.Amount.State, defaults.Principal); st.Status() == field.Valid {
		s.Amount.State = st
	}
	if st := field.Edit(s.Years.State, defaults.Years); st.Status() == field.Valid {
		s.Years.State = st
	}
	s = s.SetRatePercent(defaults.AnnualRate)
	if f, err := defaults.ResolveFrequency(); err == nil {
		s.Frequency = f
		if f.IsCustom() {
			s.CustomPeriods.State = field.New(format.Number(f.PeriodsPerYear()), f.PeriodsPerYear())
		}
	}
	return s
}

// EditAmount applies raw text to the principal (or future amount) field.
func (s Session) EditAmount(text string) Session {
	s.Amount = s.Amount.Edit(text)
	return s
}

// EditYears applies raw text to the years field.
func (s Session) EditYears(text string) Session {
	s.Years = s.Years.Edit(text)
	return s
}

// SetRate sets the annual rate as a decimal fraction.
func (s Session) SetRate(rate float64) Session {
	if mathutil.IsNonFinite(rate) {
		return s
	}
	s.Rate = rate
	return s
}

// SetRatePercent sets the annual rate from a slider position in percent.
func (s Session) SetRatePercent(percent float64) Session {
	return s.SetRate(mathutil.PercentToDecimal(percent))
}

// RatePercent returns the rate as a slider position in percent.
func (s Session) RatePercent() float64 {
	// Drop binary noise such as 3.8750000000000004.
	return math.Round(mathutil.DecimalToPercent(s.Rate)*1e6) / 1e6
}

// NudgeRate moves the rate by steps slider increments, staying within the
// slider range.
func (s Session) NudgeRate(steps int) Session {
	percent := s.RatePercent() + float64(steps)*constants.RateSliderStep
	percent = math.Round(percent*1e6) / 1e6
	if percent < constants.RateSliderMin {
		percent = constants.RateSliderMin
	}
	if percent > constants.RateSliderMax {
		percent = constants.RateSliderMax
	}
	return s.SetRatePercent(percent)
}

// SelectFrequency switches to the named frequency for token. Unknown tokens
// leave the session unchanged.
func (s Session) SelectFrequency(token string) Session {
	s.Frequency = compounding.Select(s.Frequency, token)
	return s
}

// SetFrequency replaces the frequency wholesale.
func (s Session) SetFrequency(f compounding.Frequency) Session {
	s.Frequency = f
	return s
}

// EditCustomPeriods applies raw text to the custom periods field. Once the
// text is accepted the session switches to a custom frequency; rejected text
// leaves the current frequency alone, so a non-positive period count never
// reaches the formulas.
func (s Session) EditCustomPeriods(text string) Session {
	s.CustomPeriods = s.CustomPeriods.Edit(text)
	if s.CustomPeriods.State.Status() == field.Valid {
		s.Frequency = compounding.NewCustom(s.CustomPeriods.Value())
	}
	return s
}

// SetMode switches between future and present value. The amount field keeps
// its text; only its label changes.
func (s Session) SetMode(m Mode) Session {
	s.Mode = m
	if m == PresentValue {
		s.Amount.Label = LabelFutureAmount
		s.Amount.Prompt = "Future Amount ($):"
		s.Amount.Placeholder = "Enter the future amount (e.g., 10000.00)"
	} else {
		s.Amount.Label = LabelPrincipal
		s.Amount.Prompt = "Principal Amount ($):"
		s.Amount.Placeholder = "Enter initial principal amount (e.g., 10000.00)"
	}
	return s
}

// Input returns the calculation input built from the last accepted values.
func (s Session) Input() tvm.Input {
	return tvm.Input{
		Amount:     s.Amount.Value(),
		AnnualRate: s.Rate,
		Frequency:  s.Frequency,
		Years:      s.Years.Value(),
	}
}
