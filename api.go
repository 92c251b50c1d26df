package regioncache

import (
	"context"

	"github.com/unkn0wn-root/regioncache/engine"
)

// Cache is the region facade. Region binding is legal at any time; every
// other method requires a completed initialization and returns ErrNotReady
// before that.
type Cache interface {
	// Ready reports whether initialization has completed.
	Ready() bool

	// Init validates cfg, configures every declared region through the
	// engine, and transitions the facade to Ready. It succeeds at most once;
	// a second call returns ErrInitialized. On failure nothing is registered
	// and Init may be retried with a corrected configuration.
	Init(ctx context.Context, cfg Config) error

	// Region returns a binding decorator for the named region. Applying it
	// to a function records the function-to-region binding and returns the
	// bound handle; the region's existence is checked when the handle is
	// invoked, not at bind time.
	Region(name string) func(fn engine.ComputeFunc) *Func

	// Invalidate drops the cached entry keyed by args for f's region.
	Invalidate(ctx context.Context, f *Func, args ...any) error

	// Refresh recomputes and stores the value for args unconditionally, even
	// if a valid cached entry exists, and returns the recomputed value.
	Refresh(ctx context.Context, f *Func, args ...any) (any, error)

	// Set writes value directly into the cache for key args, bypassing the
	// bound function entirely.
	Set(ctx context.Context, f *Func, value any, args ...any) error

	// InvalidateRegion drops (hard) or soft-expires all entries of the named
	// region.
	InvalidateRegion(ctx context.Context, name string, hard bool) error

	// InvalidateAllRegions applies InvalidateRegion to every region in
	// declaration order. A failing region does not stop the sweep; the first
	// error encountered is returned.
	InvalidateAllRegions(ctx context.Context, hard bool) error

	// Regions returns the configured region names in declaration order.
	Regions() ([]string, error)

	// GetRegion returns the engine handle for the named region.
	GetRegion(name string) (engine.Region, error)

	// Close tears down every configured region handle.
	Close(ctx context.Context) error
}

// Options configure a facade. Engine is required; everything else has a
// usable zero value.
type Options struct {
	// Engine configures region handles. Required.
	Engine engine.Engine

	// Config, when set, is applied immediately: New validates it, builds the
	// registry, and returns a Ready facade. When nil the facade starts
	// Uninitialized and expects a later Init.
	Config *Config

	// Debug selects DebugWrapper over ProductionWrapper when configuring
	// regions.
	Debug bool

	// DebugWrapper and ProductionWrapper are opaque transport decorators
	// passed through to the engine, letting debug and production environments
	// instrument the storage path differently without changing call-through
	// semantics. Either may be nil.
	DebugWrapper      engine.Wrapper
	ProductionWrapper engine.Wrapper

	// Logger defaults to NopLogger.
	Logger Logger
}

// New builds a facade. With Options.Config set the returned facade is Ready;
// otherwise it stays Uninitialized until Init succeeds.
func New(ctx context.Context, opts Options) (Cache, error) {
	c, err := newFacade(opts)
	if err != nil {
		return nil, err
	}
	if opts.Config != nil {
		if err := c.Init(ctx, *opts.Config); err != nil {
			return nil, err
		}
	}
	return c, nil
}
