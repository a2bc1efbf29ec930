// Package field implements the edit rules for numeric text inputs.
//
// A field keeps the literal text the user typed next to the last number that
// was accepted from it. Edits that do not parse as a positive number mark the
// field invalid but never overwrite the accepted value, and an empty field is
// treated as "still typing" rather than as an error.
package field

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Messages shown for rejected input.
const (
	MsgNotANumber    = "Please enter a valid number (digits and decimal point only)"
	MsgInvalidFormat = "Invalid number format"
	msgNotPositive   = " must be greater than zero"
)

// State is the state of one numeric text field.
type State struct {
	RawText string  `json:"rawText"`
	Value   float64 `json:"value"`
	Valid   bool    `json:"valid"`
}

// Status names the three observable situations of a field.
type Status int

const (
	// Valid means the raw text parsed to an accepted value.
	Valid Status = iota
	// Empty means the raw text is blank; the value is stale but no error is shown.
	Empty
	// PendingInvalidText means the raw text was rejected; the value is stale.
	PendingInvalidText
)

func (s Status) String() string {
	switch s {
	case Valid:
		return "valid"
	case Empty:
		return "empty"
	case PendingInvalidText:
		return "invalid"
	default:
		return "unknown"
	}
}

// New returns the state of a freshly mounted field.
func New(rawText string, value float64) State {
	return State{RawText: rawText, Value: value, Valid: true}
}

// Edit applies a new raw text to the field and returns the resulting state.
func Edit(s State, text string) State {
	s.RawText = text
	if strings.TrimSpace(text) == "" {
		s.Valid = true
		return s
	}

	v, err := parse(text)
	if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		s.Valid = false
		return s
	}

	s.Valid = true
	s.Value = v
	return s
}

// Status derives the field's situation from its raw text and validity.
func (s State) Status() Status {
	switch {
	case strings.TrimSpace(s.RawText) == "":
		return Empty
	case s.Valid:
		return Valid
	default:
		return PendingInvalidText
	}
}

// ShowError reports whether an error message should be displayed for s.
func ShowError(s State) bool {
	return !s.Valid && strings.TrimSpace(s.RawText) != ""
}

// ErrorMessage derives the message to show for rawText in a field labeled
// label. It depends only on its arguments, so views can recompute it at
// render time. Text that would be accepted yields "".
func ErrorMessage(rawText, label string) string {
	if strings.TrimSpace(rawText) == "" {
		return ""
	}
	v, err := parse(rawText)
	switch {
	case err != nil:
		return MsgNotANumber
	case v <= 0:
		return label + msgNotPositive
	case math.IsInf(v, 0) || math.IsNaN(v):
		return MsgInvalidFormat
	default:
		return ""
	}
}

// Message returns the error message for s, or "" when none should show.
func Message(s State, label string) string {
	if !ShowError(s) {
		return ""
	}
	if msg := ErrorMessage(s.RawText, label); msg != "" {
		return msg
	}
	return MsgInvalidFormat
}

// ErrNotFinite is returned by Parse for infinite, NaN or out-of-range text.
var ErrNotFinite = errors.New("number is not finite")

// Parse reads text with the grammar Edit accepts but without the positivity
// rule, for values such as rates that may be zero or negative. Blank text is
// a syntax error.
func Parse(text string) (float64, error) {
	v, err := parse(text)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrNotFinite
	}
	return v, nil
}

var canonicalizer = strings.NewReplacer(",", "", " ", "")

// Canonical strips thousands separators and spaces from text.
func Canonical(text string) string {
	return canonicalizer.Replace(text)
}

// parse accepts decimal notation with an optional sign and exponent, plus the
// special values "inf", "infinity" and "nan" so that they can be rejected
// with a specific message. strconv alone would also accept hex floats and
// underscores, which do not belong in a currency field.
func parse(text string) (float64, error) {
	c := Canonical(text)
	if special(c) {
		return strconv.ParseFloat(c, 64)
	}
	if !isDecimal(c) {
		return 0, strconv.ErrSyntax
	}
	v, err := strconv.ParseFloat(c, 64)
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
		// Out-of-range input parses to ±Inf or ±0; the caller rejects both.
		return v, nil
	}
	return v, err
}

func special(s string) bool {
	s = strings.TrimLeft(strings.ToLower(s), "+-")
	return s == "inf" || s == "infinity" || s == "nan"
}

func isDecimal(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits, dots := 0, 0
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
			if dots > 1 {
				return false
			}
		case c == 'e' || c == 'E':
			return digits > 0 && isExponent(s[i+1:])
		default:
			return false
		}
	}
	return digits > 0
}

func isExponent(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if i == len(s) {
		return false
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
