package integration

import (
	"os"
	"testing"
	"time"

	"github.com/iwvelando/time-value/internal/calculator"
	"github.com/iwvelando/time-value/internal/config"
	"github.com/iwvelando/time-value/pkg/tvm"
)

// TestMain runs the package tests.
func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}

// TestEditLatency checks that a full edit-and-recompute cycle stays well under
// a keystroke interval.
func TestEditLatency(t *testing.T) {
	conf, err := config.LoadConfiguration(testConfig)
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}

	s := calculator.NewSession(conf.Defaults)
	texts := []string{"1", "10", "100", "1000", "1000.", "1000.5", "1000.50", "abc", ""}

	start := time.Now()
	const rounds = 1000
	for i := 0; i < rounds; i++ {
		for _, text := range texts {
			s = s.EditAmount(text)
			_ = s.Result()
		}
	}
	perEdit := time.Since(start) / time.Duration(rounds*len(texts))

	if perEdit > 5*time.Millisecond {
		t.Errorf("edit cycle took %v, expected under 5ms", perEdit)
	}
	t.Logf("edit cycle: %v", perEdit)
}

func BenchmarkFutureValue(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = tvm.FutureValue(1000, 0.03875, 365, 30)
	}
}

func BenchmarkCompare(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = tvm.Compare(1000, 0.05, 10)
	}
}

func BenchmarkSessionResult(b *testing.B) {
	s := calculator.NewSession(config.Default().Defaults)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.EditAmount("2,500.00").Result()
	}
}
