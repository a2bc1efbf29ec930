// Package cache stores computed calculation results keyed by their inputs.
//
// The formulas are deterministic, so a cached entry never goes stale; the
// cache only saves recomputation and formatting for repeated requests from
// the HTTP API.
package cache

import (
	"context"
	"strconv"
	"strings"

	"github.com/iwvelando/time-value/internal/config"
	"github.com/iwvelando/time-value/pkg/constants"
	"github.com/iwvelando/time-value/pkg/tvm"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Entry is a cached calculation result.
type Entry struct {
	Value       float64 `json:"value"`
	Formatted   string  `json:"formatted"`
	Description string  `json:"description"`
}

// Cache stores entries by key.
type Cache interface {
	Get(ctx context.Context, key string) (Entry, bool)
	Set(ctx context.Context, key string, entry Entry) error
}

// Key returns the cache key for a calculation of kind ("fv" or "pv").
func Key(kind string, in tvm.Input) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return strings.Join([]string{
		"tvm", kind,
		f(in.Amount),
		f(in.AnnualRate),
		in.Frequency.Token(),
		f(in.Frequency.PeriodsPerYear()),
		f(in.Years),
	}, ":")
}

// New builds the cache selected by cfg. An unknown backend falls back to
// memory with a warning.
func New(cfg config.CacheConfig, logger *zap.Logger) (Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Backend {
	case constants.CacheBackendNone:
		return Noop{}, nil
	case constants.CacheBackendRedis:
		if cfg.RedisAddr == "" {
			return nil, eris.New("cache: redis backend requires redisAddr")
		}
		return NewRedis(cfg.RedisAddr, cfg.RedisDB, cfg.TTL(), logger), nil
	case constants.CacheBackendMemory, "":
		return NewMemory(cfg.MaxEntries), nil
	default:
		logger.Warn("unknown cache backend, using memory",
			zap.String("op", "cache.New"),
			zap.String("backend", cfg.Backend),
		)
		return NewMemory(cfg.MaxEntries), nil
	}
}

// Noop never stores anything.
type Noop struct{}

// Get always misses.
func (Noop) Get(context.Context, string) (Entry, bool) { return Entry{}, false }

// Set discards the entry.
func (Noop) Set(context.Context, string, Entry) error { return nil }
