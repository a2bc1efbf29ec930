package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditSequence(t *testing.T) {
	s := New("", 0)

	steps := []struct {
		text      string
		valid     bool
		value     float64
		showError bool
		status    Status
	}{
		{"1000", true, 1000, false, Valid},
		{"", true, 1000, false, Empty},
		{"abc", false, 1000, true, PendingInvalidText},
		{"2000", true, 2000, false, Valid},
	}

	for _, step := range steps {
		s = Edit(s, step.text)
		assert.Equal(t, step.text, s.RawText)
		assert.Equal(t, step.valid, s.Valid, "valid after %q", step.text)
		assert.Equal(t, step.value, s.Value, "value after %q", step.text)
		assert.Equal(t, step.showError, ShowError(s), "show error after %q", step.text)
		assert.Equal(t, step.status, s.Status(), "status after %q", step.text)
	}
}

func TestEditAcceptsGroupedNumbers(t *testing.T) {
	tests := []struct {
		text     string
		expected float64
	}{
		{"1,000", 1000},
		{"1,000.50", 1000.5},
		{"10 000", 10000},
		{"  42  ", 42},
		{".5", 0.5},
		{"5.", 5},
		{"+7", 7},
		{"1e3", 1000},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			s := Edit(New("1", 1), tt.text)
			require.True(t, s.Valid)
			assert.Equal(t, tt.expected, s.Value)
		})
	}
}

func TestEditRejectsKeepsLastValue(t *testing.T) {
	rejected := []string{"-5", "0", "0.00", "12a", "1.2.3", "$100", "0x10", "1_000", "inf", "NaN", "-inf", "1e400", "1e-400", "e5", "-", "."}

	for _, text := range rejected {
		t.Run(text, func(t *testing.T) {
			s := Edit(New("250", 250), text)
			assert.False(t, s.Valid)
			assert.Equal(t, 250.0, s.Value)
			assert.Equal(t, text, s.RawText)
			assert.True(t, ShowError(s))
		})
	}
}

func TestWhitespaceIsEmpty(t *testing.T) {
	s := Edit(New("12", 12), "   \t")
	assert.True(t, s.Valid)
	assert.Equal(t, 12.0, s.Value)
	assert.Equal(t, Empty, s.Status())
	assert.False(t, ShowError(s))
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		label    string
		expected string
	}{
		{"negative", "-5", "Principal amount", "Principal amount must be greater than zero"},
		{"zero", "0", "Number of years", "Number of years must be greater than zero"},
		{"trailing letter", "12a", "Principal amount", MsgNotANumber},
		{"letters", "abc", "Principal amount", MsgNotANumber},
		{"infinity", "inf", "Principal amount", MsgInvalidFormat},
		{"nan", "nan", "Principal amount", MsgInvalidFormat},
		{"overflow", "1e999", "Principal amount", MsgInvalidFormat},
		{"negative infinity", "-inf", "Principal amount", "Principal amount must be greater than zero"},
		{"accepted", "1,000", "Principal amount", ""},
		{"empty", "  ", "Principal amount", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorMessage(tt.raw, tt.label))
		})
	}
}

func TestMessageOnlyWhenShown(t *testing.T) {
	s := Edit(New("1", 1), "12a")
	assert.Equal(t, MsgNotANumber, Message(s, "Principal amount"))

	s = Edit(s, "")
	assert.Equal(t, "", Message(s, "Principal amount"))
}

func TestFieldBundle(t *testing.T) {
	f := Field{Label: "Principal amount", State: New("1000.00", 1000)}

	f = f.Edit("-5")
	assert.Equal(t, 1000.0, f.Value())
	assert.Equal(t, "Principal amount must be greater than zero", f.Error())

	f = f.Edit("1,500")
	assert.Equal(t, 1500.0, f.Value())
	assert.Empty(t, f.Error())
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, "1234567.89", Canonical("1,234, 567.89"))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "valid", Valid.String())
	assert.Equal(t, "empty", Empty.String())
	assert.Equal(t, "invalid", PendingInvalidText.String())
}

func TestParse(t *testing.T) {
	accepted := map[string]float64{"0": 0, "-0.5": -0.5, "1,000": 1000, "0.03875": 0.03875, " 2e1 ": 20}
	for text, expected := range accepted {
		v, err := Parse(text)
		require.NoError(t, err, text)
		assert.Equal(t, expected, v, text)
	}

	for _, text := range []string{"", "abc", "0x1p-4", "1_000", "$5"} {
		_, err := Parse(text)
		assert.Error(t, err, text)
	}
	for _, text := range []string{"inf", "-Infinity", "nan", "1e400"} {
		_, err := Parse(text)
		assert.ErrorIs(t, err, ErrNotFinite, text)
	}
}
