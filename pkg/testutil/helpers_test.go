package testutil

import (
	"strings"
	"testing"

	"github.com/iwvelando/time-value/pkg/tvm"
)

func TestFindComparison(t *testing.T) {
	results, err := tvm.Compare(1000, 0.05, 10)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	tests := []struct {
		name     string
		token    string
		expected float64
		found    bool
	}{
		{"Find annual", "annual", 1628.89, true},
		{"Find monthly", "monthly", 1647.01, true},
		{"Find daily", "daily", 1648.66, true},
		{"Custom is never compared", "custom", 0, false},
		{"Unknown token", "hourly", 0, false},
		{"Empty token", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindComparison(results, tt.token)
			if !tt.found {
				if result != nil {
					t.Errorf("FindComparison(%q) = %v, want nil", tt.token, result)
				}
				return
			}
			if result == nil {
				t.Fatalf("FindComparison(%q) = nil, want a result", tt.token)
			}
			if msg := CurrencyMismatch(tt.expected, result.Value); msg != "" {
				t.Errorf("FindComparison(%q): %s", tt.token, msg)
			}
		})
	}
}

func TestFindComparisonReturnsPointerIntoSlice(t *testing.T) {
	results, err := tvm.Compare(1000, 0.05, 10)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	result := FindComparison(results, "quarterly")
	if result != &results[2] {
		t.Error("expected a pointer to the original element")
	}
}

func TestFindComparisonEmpty(t *testing.T) {
	if FindComparison(nil, "annual") != nil {
		t.Error("expected nil for empty results")
	}
}

func TestCurrencyMismatch(t *testing.T) {
	tests := []struct {
		name  string
		want  float64
		got   float64
		match bool
	}{
		{"Equal", 1304.90, 1304.90, true},
		{"One cent", 1304.90, 1304.91, true},
		{"Representation error", 0.3, 0.1 + 0.2, true},
		{"Two cents", 1304.90, 1304.92, false},
		{"Far off", 1307.89, 1304.90, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := CurrencyMismatch(tt.want, tt.got)
			if tt.match && msg != "" {
				t.Errorf("expected match, got %q", msg)
			}
			if !tt.match && !strings.Contains(msg, "want") {
				t.Errorf("expected mismatch message, got %q", msg)
			}
		})
	}
}
