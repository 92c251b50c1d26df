package regioncache

import (
	"context"
	"fmt"

	"github.com/unkn0wn-root/regioncache/engine"
)

// dispatchFunc is a region's call-through entry point, derived once at
// registry construction.
type dispatchFunc func(ctx context.Context, fn engine.ComputeFunc, args []any) (any, error)

// regionRegistry holds the configured region handles keyed by name, plus a
// call-through dispatcher per region. Immutable after buildRegistry returns.
type regionRegistry struct {
	names       []string // declaration order
	regions     map[string]engine.Region
	dispatchers map[string]dispatchFunc
}

// buildRegistry configures one region handle per spec. Construction is
// all-or-nothing: on any failure the already-configured handles are closed
// best-effort and no registry is returned.
func buildRegistry(
	ctx context.Context,
	eng engine.Engine,
	specs []RegionSpec,
	debug bool,
	debugWrap, prodWrap engine.Wrapper,
	log Logger,
) (*regionRegistry, error) {
	wrap := prodWrap
	if debug {
		wrap = debugWrap
	}

	r := &regionRegistry{
		names:       make([]string, 0, len(specs)),
		regions:     make(map[string]engine.Region, len(specs)),
		dispatchers: make(map[string]dispatchFunc, len(specs)),
	}
	for _, spec := range specs {
		h, err := eng.Configure(ctx, spec, wrap)
		if err != nil {
			for _, name := range r.names {
				if cerr := r.regions[name].Close(ctx); cerr != nil {
					log.Warn("closing region after failed init", Fields{"region": name, "err": cerr})
				}
			}
			return nil, fmt.Errorf("regioncache: configure region %q: %w", spec.Name, err)
		}
		r.names = append(r.names, spec.Name)
		r.regions[spec.Name] = h
		r.dispatchers[spec.Name] = func(ctx context.Context, fn engine.ComputeFunc, args []any) (any, error) {
			return h.CallThrough(ctx, fn, args)
		}
		log.Debug("region configured", Fields{
			"region":  spec.Name,
			"backend": spec.Backend,
			"timeout": spec.Timeout,
		})
	}
	return r, nil
}

func (r *regionRegistry) get(name string) (engine.Region, bool) {
	h, ok := r.regions[name]
	return h, ok
}

func (r *regionRegistry) dispatcher(name string) (dispatchFunc, bool) {
	d, ok := r.dispatchers[name]
	return d, ok
}

// closeAll tears down every handle, attempting all of them and returning the
// first error encountered.
func (r *regionRegistry) closeAll(ctx context.Context) error {
	var first error
	for _, name := range r.names {
		if err := r.regions[name].Close(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}
