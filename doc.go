// Package regioncache lets application code declare named, time-bounded cache
// regions and bind ordinary functions to a region, so that calling the bound
// function reads and writes a cache instead of recomputing on every call.
//
// Components:
//   - Config: per-region definitions (name, timeout, backend, endpoints,
//     arguments) with global defaults; validated into RegionSpecs.
//   - Engine: the collaborator doing key derivation, storage IO and
//     serialization (see engine, engine/standard).
//   - Cache: the facade. Region(name) binds functions; Invalidate, Refresh,
//     Set, InvalidateRegion and InvalidateAllRegions manage cached entries.
//
// Keys derive from call arguments: two calls with equal arguments share an
// entry, two calls with different arguments do not.
//
// Usage:
//
//	eng, _ := standard.New(standard.Options{
//	    Backends: map[string]standard.Factory{"memory": standard.MemoryBackend()},
//	})
//	cache, _ := regioncache.New(ctx, regioncache.Options{
//	    Engine: eng,
//	    Config: &regioncache.Config{
//	        GlobalBackend:   "memory",
//	        GlobalEndpoints: []string{"local"},
//	        Regions: []regioncache.RegionConfig{
//	            {Name: "hour", Timeout: time.Hour},
//	            {Name: "day", Timeout: 24 * time.Hour},
//	        },
//	    },
//	})
//
//	hourly := cache.Region("hour")(func(args ...any) (any, error) {
//	    return loadReport(args[0].(string))
//	})
//	v, err := hourly.Call(ctx, "2024-01")  // cached for an hour per argument set
//	_ = cache.Invalidate(ctx, hourly, "2024-01")
package regioncache
