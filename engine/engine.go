// Package engine defines the contract between the regioncache facade and the
// cache engine that does the actual storage work. The facade never hashes keys,
// talks to a backend, or serializes values itself; it resolves a region and
// delegates to the Region handle the engine produced for it.
//
// Implementations MUST be safe for concurrent use: the facade calls a single
// Region handle from many goroutines. A Region handle lives for the lifetime
// of the facade that configured it.
package engine

import (
	"context"
	"time"
)

// ComputeFunc is a cacheable computation. The engine derives the cache key
// from the call arguments; argument equality, not function identity, decides
// whether two calls share an entry.
type ComputeFunc func(args ...any) (any, error)

// Wrapper is an opaque storage-transport decorator applied when a region is
// configured (typically one flavor for debug, another for production). Its
// concrete type is defined by the Engine implementation; the facade passes it
// through uninspected and must not depend on what it does.
type Wrapper any

// Spec is a validated region definition handed to Configure. Arguments always
// carries the resolved "endpoints" entry alongside any caller-supplied
// arguments (caller entries win on key collision).
type Spec struct {
	Name      string
	Timeout   time.Duration
	Backend   string
	Endpoints []string
	Arguments map[string]any
}

// Engine configures regions. Configure must fail rather than return a handle
// that cannot serve traffic; the facade treats any error as fatal for the
// whole initialization.
type Engine interface {
	Configure(ctx context.Context, spec Spec, wrap Wrapper) (Region, error)
}

// Region is the per-region handle the facade dispatches lifecycle calls to.
type Region interface {
	// CallThrough returns the cached value for args, computing and storing it
	// via fn on a miss.
	CallThrough(ctx context.Context, fn ComputeFunc, args []any) (any, error)

	// Refresh recomputes and stores the value for args unconditionally, even
	// if a valid entry exists, and returns the recomputed value.
	Refresh(ctx context.Context, fn ComputeFunc, args []any) (any, error)

	// Set writes value directly under the key derived from args.
	Set(ctx context.Context, args []any, value any) error

	// InvalidateFor drops (hard) or marks stale (soft) the entry for args.
	InvalidateFor(ctx context.Context, args []any, hard bool) error

	// Invalidate drops (hard) or marks stale (soft) every entry in the region.
	Invalidate(ctx context.Context, hard bool) error

	// Close releases region resources. Called once when the facade is torn down.
	Close(ctx context.Context) error
}
