package calculator

import (
	"fmt"

	"github.com/iwvelando/time-value/pkg/field"
	"github.com/iwvelando/time-value/pkg/format"
	"github.com/iwvelando/time-value/pkg/tvm"
)

// FieldError is an inline message for one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is everything a view needs to render the current session.
type Result struct {
	Mode        Mode
	Input       tvm.Input
	Value       float64
	Formatted   string
	Description string
	FieldErrors []FieldError
	// Err is set when the last accepted inputs are outside the formula
	// domain. Value and Formatted are empty in that case.
	Err error
}

// Result computes the value for the session's last accepted inputs. Fields
// holding rejected text contribute their previous value and an inline
// message.
func (s Session) Result() Result {
	in := s.Input()
	r := Result{
		Mode:        s.Mode,
		Input:       in,
		Description: Describe(s.Mode, in),
		FieldErrors: s.FieldErrors(),
	}

	var err error
	if s.Mode == PresentValue {
		r.Value, err = tvm.ComputePresentValue(in)
	} else {
		r.Value, err = tvm.ComputeFutureValue(in)
	}
	if err != nil {
		r.Err = err
		return r
	}
	r.Formatted = format.Amount(r.Value)
	return r
}

// FieldErrors returns the messages to show under each field, in display
// order.
func (s Session) FieldErrors() []FieldError {
	var errs []FieldError
	add := func(name string, f field.Field) {
		if msg := f.Error(); msg != "" {
			errs = append(errs, FieldError{Field: name, Message: msg})
		}
	}
	add("amount", s.Amount)
	add("years", s.Years)
	add("customPeriods", s.CustomPeriods)
	return errs
}

// Describe renders the heading shown above a result, e.g.
// "Annually Future value of 1000 at 3.875% for 7 years:".
func Describe(mode Mode, in tvm.Input) string {
	return fmt.Sprintf("%s %s of %s at %s for %s years:",
		in.Frequency.DisplayName(), mode, format.Number(in.Amount), format.Percent(in.AnnualRate), format.Number(in.Years))
}
