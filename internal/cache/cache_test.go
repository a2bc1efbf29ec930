package cache

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iwvelando/time-value/internal/config"
	"github.com/iwvelando/time-value/pkg/compounding"
	"github.com/iwvelando/time-value/pkg/tvm"
)

func TestKeyDistinguishesInputs(t *testing.T) {
	base := tvm.Input{Amount: 1000, AnnualRate: 0.03875, Frequency: compounding.Named(compounding.Annual), Years: 7}

	assert.Equal(t, Key("fv", base), Key("fv", base))
	assert.Equal(t, "tvm:fv:1000:0.03875:annual:1:7", Key("fv", base))
	assert.NotEqual(t, Key("fv", base), Key("pv", base))

	custom := base
	custom.Frequency = compounding.NewCustom(12)
	monthly := base
	monthly.Frequency = compounding.Named(compounding.Monthly)
	assert.NotEqual(t, Key("fv", custom), Key("fv", monthly))
}

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(4)

	_, ok := m.Get(ctx, "missing")
	assert.False(t, ok)

	entry := Entry{Value: 1304.9, Formatted: "1,304.90"}
	require.NoError(t, m.Set(ctx, "a", entry))

	got, ok := m.Get(ctx, "a")
	require.True(t, ok)
	assert.Equal(t, entry, got)

	require.NoError(t, m.Set(ctx, "a", Entry{Value: 1}))
	got, _ = m.Get(ctx, "a")
	assert.Equal(t, 1.0, got.Value)
	assert.Equal(t, 1, m.Len())
}

func TestMemoryEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(2)

	require.NoError(t, m.Set(ctx, "a", Entry{Value: 1}))
	require.NoError(t, m.Set(ctx, "b", Entry{Value: 2}))
	_, _ = m.Get(ctx, "a")
	require.NoError(t, m.Set(ctx, "c", Entry{Value: 3}))

	_, ok := m.Get(ctx, "b")
	assert.False(t, ok, "b was least recently used")
	_, ok = m.Get(ctx, "a")
	assert.True(t, ok)
	_, ok = m.Get(ctx, "c")
	assert.True(t, ok)
	assert.Equal(t, 2, m.Len())
}

func TestMemoryConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(16)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (i+j)%32)
				_ = m.Set(ctx, key, Entry{Value: float64(j)})
				_, _ = m.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, m.Len(), 16)
}

func TestNew(t *testing.T) {
	c, err := New(config.CacheConfig{Backend: "memory", MaxEntries: 3}, nil)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, c)

	c, err = New(config.CacheConfig{Backend: "none"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, Noop{}, c)

	c, err = New(config.CacheConfig{Backend: "bogus"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, c)

	_, err = New(config.CacheConfig{Backend: "redis"}, zap.NewNop())
	assert.Error(t, err)

	c, err = New(config.CacheConfig{Backend: "redis", RedisAddr: "localhost:6379", TTLSeconds: 5}, zap.NewNop())
	require.NoError(t, err)
	r, ok := c.(*Redis)
	require.True(t, ok)
	assert.Equal(t, 5*time.Second, r.ttl)
	_ = r.Close()
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, Noop{}.Set(ctx, "a", Entry{Value: 1}))
	_, ok := Noop{}.Get(ctx, "a")
	assert.False(t, ok)
}

func TestRedisUnreachableIsAMiss(t *testing.T) {
	r := NewRedis("127.0.0.1:1", 0, time.Minute, zap.NewNop())
	defer func() { _ = r.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, ok := r.Get(ctx, "anything")
	assert.False(t, ok)
	assert.Error(t, r.Set(ctx, "anything", Entry{Value: 1}))
}

// TestRedisRoundTrip runs against a live server when TVM_TEST_REDIS_ADDR is set.
func TestRedisRoundTrip(t *testing.T) {
	addr := os.Getenv("TVM_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TVM_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	r := NewRedis(addr, 0, time.Minute, zap.NewNop())
	defer func() { _ = r.Close() }()
	require.NoError(t, r.Ping(ctx))

	key := fmt.Sprintf("tvm:test:%d", time.Now().UnixNano())
	entry := Entry{Value: 1304.9, Formatted: "1,304.90", Description: "Annually Future value"}
	require.NoError(t, r.Set(ctx, key, entry))

	got, ok := r.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, entry, got)
}
