package regioncache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/regioncache/engine"
)

// Func is a function bound to a cache region. Handles are produced only by
// Cache.Region; the zero value is not bound and every operation on it fails
// with ErrNotBound.
type Func struct {
	c  *facade
	fn engine.ComputeFunc
}

// Call invokes the bound function through its region's call-through path:
// cached value on hit, compute-and-store on miss. The cache key derives from
// args, so equal argument sets share an entry.
func (f *Func) Call(ctx context.Context, args ...any) (any, error) {
	if f == nil || f.c == nil {
		return nil, ErrNotBound
	}
	return f.c.callThrough(ctx, f, args)
}

// facade implements Cache. The registry pointer doubles as the readiness
// flag: nil means Uninitialized. Publishing it atomically after construction
// gives the happens-before edge between Init and concurrent lifecycle calls;
// no caller can observe a partially built registry.
type facade struct {
	eng       engine.Engine
	log       Logger
	debug     bool
	debugWrap engine.Wrapper
	prodWrap  engine.Wrapper

	initMu sync.Mutex
	reg    atomic.Pointer[regionRegistry]

	binder *funcBinder
}

var _ Cache = (*facade)(nil)

func newFacade(opts Options) (*facade, error) {
	if opts.Engine == nil {
		return nil, errors.New("regioncache: engine is required")
	}
	return &facade{
		eng:       opts.Engine,
		log:       coalesce[Logger](opts.Logger, NopLogger{}),
		debug:     opts.Debug,
		debugWrap: opts.DebugWrapper,
		prodWrap:  opts.ProductionWrapper,
		binder:    newFuncBinder(),
	}, nil
}

func (c *facade) Ready() bool { return c.reg.Load() != nil }

func (c *facade) Init(ctx context.Context, cfg Config) error {
	c.initMu.Lock()
	defer c.initMu.Unlock()

	if c.reg.Load() != nil {
		return ErrInitialized
	}
	specs, err := cfg.validate()
	if err != nil {
		return err
	}
	reg, err := buildRegistry(ctx, c.eng, specs, c.debug, c.debugWrap, c.prodWrap, c.log)
	if err != nil {
		return err
	}
	c.reg.Store(reg)
	c.log.Info("cache regions configured", Fields{"regions": len(specs), "debug": c.debug})
	return nil
}

// ready returns the registry or ErrNotReady.
func (c *facade) ready() (*regionRegistry, error) {
	reg := c.reg.Load()
	if reg == nil {
		return nil, ErrNotReady
	}
	return reg, nil
}

func (c *facade) Region(name string) func(fn engine.ComputeFunc) *Func {
	return func(fn engine.ComputeFunc) *Func {
		f := &Func{c: c, fn: fn}
		c.binder.bind(f, name)
		return f
	}
}

func (c *facade) callThrough(ctx context.Context, f *Func, args []any) (any, error) {
	reg, err := c.ready()
	if err != nil {
		return nil, err
	}
	name, err := c.binder.resolve(f)
	if err != nil {
		return nil, err
	}
	dispatch, ok := reg.dispatcher(name)
	if !ok {
		return nil, &UnboundRegionError{Name: name}
	}
	return dispatch(ctx, f.fn, args)
}

// resolveRegion maps a bound function to its region handle for a lifecycle
// call. ErrNotBound when f never went through Region; UnboundRegionError when
// the recorded name is absent from the registry.
func (c *facade) resolveRegion(reg *regionRegistry, f *Func) (engine.Region, error) {
	name, err := c.binder.resolve(f)
	if err != nil {
		return nil, err
	}
	h, ok := reg.get(name)
	if !ok {
		return nil, &UnboundRegionError{Name: name}
	}
	return h, nil
}

func (c *facade) Invalidate(ctx context.Context, f *Func, args ...any) error {
	reg, err := c.ready()
	if err != nil {
		return err
	}
	h, err := c.resolveRegion(reg, f)
	if err != nil {
		return err
	}
	return h.InvalidateFor(ctx, args, true)
}

func (c *facade) Refresh(ctx context.Context, f *Func, args ...any) (any, error) {
	reg, err := c.ready()
	if err != nil {
		return nil, err
	}
	h, err := c.resolveRegion(reg, f)
	if err != nil {
		return nil, err
	}
	return h.Refresh(ctx, f.fn, args)
}

func (c *facade) Set(ctx context.Context, f *Func, value any, args ...any) error {
	reg, err := c.ready()
	if err != nil {
		return err
	}
	h, err := c.resolveRegion(reg, f)
	if err != nil {
		return err
	}
	return h.Set(ctx, args, value)
}

func (c *facade) InvalidateRegion(ctx context.Context, name string, hard bool) error {
	reg, err := c.ready()
	if err != nil {
		return err
	}
	h, ok := reg.get(name)
	if !ok {
		return &UnknownRegionError{Name: name}
	}
	return h.Invalidate(ctx, hard)
}

func (c *facade) InvalidateAllRegions(ctx context.Context, hard bool) error {
	reg, err := c.ready()
	if err != nil {
		return err
	}
	var first error
	for _, name := range reg.names {
		if err := reg.regions[name].Invalidate(ctx, hard); err != nil {
			c.log.Error("region invalidation failed", Fields{"region": name, "err": err})
			if first == nil {
				first = err
			}
		}
	}
	return first
}

func (c *facade) Regions() ([]string, error) {
	reg, err := c.ready()
	if err != nil {
		return nil, err
	}
	return append([]string(nil), reg.names...), nil
}

func (c *facade) GetRegion(name string) (engine.Region, error) {
	reg, err := c.ready()
	if err != nil {
		return nil, err
	}
	h, ok := reg.get(name)
	if !ok {
		return nil, &UnknownRegionError{Name: name}
	}
	return h, nil
}

func (c *facade) Close(ctx context.Context) error {
	reg := c.reg.Load()
	if reg == nil {
		return nil
	}
	return reg.closeAll(ctx)
}
