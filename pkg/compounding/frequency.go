// Package compounding defines how often interest is applied within a year.
package compounding

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies a compounding variant.
type Kind int

const (
	Annual Kind = iota
	Semiannual
	Quarterly
	Monthly
	Weekly
	Daily
	Custom
)

// Frequency is a named compounding frequency or a custom number of periods
// per year. The zero value is Annual. Frequency values are comparable with ==;
// two values are equal iff they share a Kind and, for Custom, the same
// periods.
type Frequency struct {
	kind    Kind
	periods float64
}

type variant struct {
	periods float64
	name    string
	token   string
	label   string
}

var variants = map[Kind]variant{
	Annual:     {periods: 1, name: "Annually", token: "annual", label: "Annual"},
	Semiannual: {periods: 2, name: "Semi-annually", token: "semiannual", label: "Semi-annually"},
	Quarterly:  {periods: 4, name: "Quarterly", token: "quarterly", label: "Quarterly"},
	Monthly:    {periods: 12, name: "Monthly", token: "monthly", label: "Monthly"},
	Weekly:     {periods: 52, name: "Weekly", token: "weekly", label: "Weekly"},
	Daily:      {periods: 365, name: "Daily", token: "daily", label: "Daily"},
}

// CustomToken is the token reported by Custom frequencies. Parse does not
// accept it; custom frequencies are built with NewCustom.
const CustomToken = "custom"

// Named returns the frequency for a named kind. Custom yields a custom
// frequency with zero periods.
func Named(kind Kind) Frequency {
	return Frequency{kind: kind}
}

// NewCustom returns a custom frequency carrying the given periods per year.
// The value is not validated; see Validate.
func NewCustom(periodsPerYear float64) Frequency {
	return Frequency{kind: Custom, periods: periodsPerYear}
}

// Kind returns the variant tag.
func (f Frequency) Kind() Kind {
	return f.kind
}

// PeriodsPerYear returns the number of compounding periods in one year.
func (f Frequency) PeriodsPerYear() float64 {
	if f.kind == Custom {
		return f.periods
	}
	return variants[f.kind].periods
}

// DisplayName returns the adverbial label used in result descriptions.
func (f Frequency) DisplayName() string {
	if f.kind == Custom {
		return "Custom"
	}
	return variants[f.kind].name
}

// Token returns the selection token for the frequency.
func (f Frequency) Token() string {
	if f.kind == Custom {
		return CustomToken
	}
	return variants[f.kind].token
}

// Equal reports whether two frequencies are the same variant with the same
// periods per year.
func (f Frequency) Equal(other Frequency) bool {
	return f == other
}

// IsCustom reports whether the frequency carries caller-supplied periods.
func (f Frequency) IsCustom() bool {
	return f.kind == Custom
}

// Validate returns an error if the frequency cannot be used in a
// calculation. Named frequencies always validate.
func (f Frequency) Validate() error {
	p := f.PeriodsPerYear()
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return fmt.Errorf("periods per year must be finite, got %v", p)
	}
	if p <= 0 {
		return fmt.Errorf("periods per year must be greater than zero, got %v", p)
	}
	return nil
}

// String implements fmt.Stringer.
func (f Frequency) String() string {
	if f.kind == Custom {
		return "Custom(" + strconv.FormatFloat(f.periods, 'g', -1, 64) + ")"
	}
	return f.DisplayName()
}

// Option is one entry of a frequency selection control.
type Option struct {
	Frequency Frequency
	Token     string
	Label     string
}

var order = []Kind{Annual, Semiannual, Quarterly, Monthly, Weekly, Daily}

// Options returns the named frequencies in display order.
func Options() []Option {
	options := make([]Option, 0, len(order))
	for _, kind := range order {
		v := variants[kind]
		options = append(options, Option{Frequency: Frequency{kind: kind}, Token: v.token, Label: v.label})
	}
	return options
}

// Parse maps a selection token to its named frequency. The second return is
// false for unrecognized tokens.
func Parse(token string) (Frequency, bool) {
	for _, kind := range order {
		if variants[kind].token == token {
			return Frequency{kind: kind}, true
		}
	}
	return Frequency{}, false
}

// Select returns the frequency for token, or current when the token is not
// recognized.
func Select(current Frequency, token string) Frequency {
	if f, ok := Parse(token); ok {
		return f
	}
	return current
}

// Next returns the named frequency after f in display order, wrapping
// around. Custom frequencies advance to the first named option.
func Next(f Frequency) Frequency {
	return step(f, 1)
}

// Previous returns the named frequency before f in display order, wrapping
// around.
func Previous(f Frequency) Frequency {
	return step(f, -1)
}

func step(f Frequency, delta int) Frequency {
	if f.kind == Custom {
		return Frequency{kind: order[0]}
	}
	for i, kind := range order {
		if kind == f.kind {
			idx := (i + delta + len(order)) % len(order)
			return Frequency{kind: order[idx]}
		}
	}
	return Frequency{kind: order[0]}
}
