package regioncache_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/unkn0wn-root/regioncache"
	"github.com/unkn0wn-root/regioncache/engine/standard"
	"github.com/unkn0wn-root/regioncache/provider"
)

// harness wires a full stack: facade over the bundled engine over the memory
// provider, with two regions and a counting compute function per region.
type harness struct {
	cache regioncache.Cache
	hour  *regioncache.Func
	day   *regioncache.Func

	hourCalls atomic.Int64
	dayCalls  atomic.Int64
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	eng, err := standard.New(standard.Options{
		Backends: map[string]standard.Factory{"memory": standard.MemoryBackend()},
	})
	if err != nil {
		t.Fatalf("standard.New: %v", err)
	}

	cfg := regioncache.Config{
		GlobalBackend:   "memory",
		GlobalEndpoints: []string{"local"},
		Regions: []regioncache.RegionConfig{
			{Name: "hour", Timeout: time.Hour},
			{Name: "day", Timeout: 24 * time.Hour},
		},
	}
	c, err := regioncache.New(context.Background(), regioncache.Options{
		Engine: eng,
		Config: &cfg,
	})
	if err != nil {
		t.Fatalf("regioncache.New: %v", err)
	}
	t.Cleanup(func() { _ = c.Close(context.Background()) })

	h := &harness{cache: c}
	h.hour = c.Region("hour")(func(args ...any) (any, error) {
		return fmt.Sprintf("hour-%d", h.hourCalls.Add(1)), nil
	})
	h.day = c.Region("day")(func(args ...any) (any, error) {
		return fmt.Sprintf("day-%d", h.dayCalls.Add(1)), nil
	})
	return h
}

func (h *harness) call(t *testing.T, f *regioncache.Func, args ...any) any {
	t.Helper()
	v, err := f.Call(context.Background(), args...)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	return v
}

func TestEndToEndCaching(t *testing.T) {
	h := newHarness(t)

	v := h.call(t, h.hour)
	if v != "hour-1" {
		t.Fatalf("first call = %v", v)
	}
	if got := h.call(t, h.hour); got != "hour-1" {
		t.Fatalf("second call = %v, want the cached hour-1", got)
	}
	if h.hourCalls.Load() != 1 {
		t.Fatalf("compute ran %d times, want 1", h.hourCalls.Load())
	}

	// different argument sets cache independently
	a := h.call(t, h.hour, "a")
	b := h.call(t, h.hour, "b")
	if a == b {
		t.Fatalf("distinct args shared an entry: %v", a)
	}
	if got := h.call(t, h.hour, "a"); got != a {
		t.Fatalf("per-arg entry lost: %v, want %v", got, a)
	}
}

func TestEndToEndSetAndInvalidate(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	if err := h.cache.Set(ctx, h.hour, "custom"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v := h.call(t, h.hour); v != "custom" {
		t.Fatalf("call after Set = %v, want custom without compute", v)
	}
	if h.hourCalls.Load() != 0 {
		t.Fatal("Set must bypass the bound function")
	}

	if err := h.cache.Invalidate(ctx, h.hour); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if v := h.call(t, h.hour); v != "hour-1" {
		t.Fatalf("call after Invalidate = %v, want fresh computation", v)
	}
}

func TestEndToEndRefresh(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	if v := h.call(t, h.hour); v != "hour-1" {
		t.Fatalf("first call = %v", v)
	}
	v, err := h.cache.Refresh(ctx, h.hour)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if v != "hour-2" {
		t.Fatalf("Refresh = %v, want recomputed hour-2", v)
	}
	if got := h.call(t, h.hour); got != "hour-2" {
		t.Fatalf("call after Refresh = %v, want hour-2", got)
	}
}

func TestEndToEndRegionIsolation(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	if err := h.cache.Set(ctx, h.hour, "hour-custom"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := h.cache.Set(ctx, h.day, "day-custom"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := h.cache.InvalidateRegion(ctx, "hour", true); err != nil {
		t.Fatalf("InvalidateRegion: %v", err)
	}

	if v := h.call(t, h.hour); v != "hour-1" {
		t.Fatalf("invalidated region served %v, want recompute", v)
	}
	if v := h.call(t, h.day); v != "day-custom" {
		t.Fatalf("untouched region lost its entry: %v", v)
	}
}

func TestEndToEndSoftRegionInvalidation(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	if err := h.cache.Set(ctx, h.hour, "custom"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := h.cache.InvalidateRegion(ctx, "hour", false); err != nil {
		t.Fatalf("InvalidateRegion soft: %v", err)
	}
	// stale entries are never served; the read regenerates
	if v := h.call(t, h.hour); v != "hour-1" {
		t.Fatalf("soft-invalidated entry served: %v", v)
	}
}

func TestEndToEndInvalidateAllRegions(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	if err := h.cache.Set(ctx, h.hour, "hour-custom"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := h.cache.Set(ctx, h.day, "day-custom"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := h.cache.InvalidateAllRegions(ctx, true); err != nil {
		t.Fatalf("InvalidateAllRegions: %v", err)
	}

	if v := h.call(t, h.hour); v != "hour-1" {
		t.Fatalf("hour region survived invalidate-all: %v", v)
	}
	if v := h.call(t, h.day); v != "day-1" {
		t.Fatalf("day region survived invalidate-all: %v", v)
	}
}

func TestEndToEndWrapperInstrumentsStorage(t *testing.T) {
	var sets atomic.Int64
	wrap := standard.Wrap(func(p provider.Provider) provider.Provider {
		return &countingProvider{Provider: p, sets: &sets}
	})

	eng, err := standard.New(standard.Options{
		Backends: map[string]standard.Factory{"memory": standard.MemoryBackend()},
	})
	if err != nil {
		t.Fatalf("standard.New: %v", err)
	}
	cfg := regioncache.Config{
		GlobalBackend:   "memory",
		GlobalEndpoints: []string{"local"},
		Regions:         []regioncache.RegionConfig{{Name: "hour", Timeout: time.Hour}},
	}
	c, err := regioncache.New(context.Background(), regioncache.Options{
		Engine:       eng,
		Config:       &cfg,
		Debug:        true,
		DebugWrapper: wrap,
	})
	if err != nil {
		t.Fatalf("regioncache.New: %v", err)
	}

	f := c.Region("hour")(func(args ...any) (any, error) { return "v", nil })
	if _, err := f.Call(context.Background()); err != nil {
		t.Fatalf("Call: %v", err)
	}
	if sets.Load() != 1 {
		t.Fatalf("wrapper observed %d writes, want 1", sets.Load())
	}
}

type countingProvider struct {
	provider.Provider
	sets *atomic.Int64
}

func (p *countingProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	p.sets.Add(1)
	return p.Provider.Set(ctx, key, value, ttl)
}
