package standard

import (
	"context"

	"github.com/unkn0wn-root/regioncache/engine"
	"github.com/unkn0wn-root/regioncache/provider"
	bigcacheprov "github.com/unkn0wn-root/regioncache/provider/bigcache"
	memoryprov "github.com/unkn0wn-root/regioncache/provider/memory"
	redisprov "github.com/unkn0wn-root/regioncache/provider/redis"
	ristrettoprov "github.com/unkn0wn-root/regioncache/provider/ristretto"
)

// MemoryBackend returns a factory producing an in-process map provider per
// region. Endpoints are ignored.
func MemoryBackend() Factory {
	return func(engine.Spec) (provider.Provider, error) {
		return memoryprov.New(), nil
	}
}

// RedisBackend returns a factory that dials the region's resolved endpoints.
// Each region owns its client; the handle closes it on teardown.
func RedisBackend() Factory {
	return func(spec engine.Spec) (provider.Provider, error) {
		return redisprov.NewFromEndpoints(spec.Endpoints)
	}
}

// RistrettoBackend returns a factory producing one ristretto cache per
// region with the given sizing.
func RistrettoBackend(cfg ristrettoprov.Config) Factory {
	return func(engine.Spec) (provider.Provider, error) {
		return ristrettoprov.New(cfg)
	}
}

// BigCacheBackend returns a factory producing one BigCache instance per
// region. The region timeout becomes the LifeWindow when cfg leaves it zero.
func BigCacheBackend(cfg bigcacheprov.Config) Factory {
	return func(spec engine.Spec) (provider.Provider, error) {
		if cfg.LifeWindow <= 0 {
			cfg.LifeWindow = spec.Timeout
		}
		return bigcacheprov.New(context.Background(), cfg)
	}
}
