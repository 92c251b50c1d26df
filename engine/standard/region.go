package standard

import (
	"context"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/unkn0wn-root/regioncache"
	"github.com/unkn0wn-root/regioncache/codec"
	"github.com/unkn0wn-root/regioncache/engine"
	"github.com/unkn0wn-root/regioncache/internal/keys"
	"github.com/unkn0wn-root/regioncache/provider"
)

// envelope wraps a stored value with its creation time so entry age can be
// checked independently of provider TTL support (BigCache has none) and so
// soft invalidation can backdate an entry without touching the value.
type envelope struct {
	CreatedAt int64  `msgpack:"c"` // unix nanos
	Payload   []byte `msgpack:"p"`
}

type region struct {
	name    string
	timeout time.Duration
	prov    provider.Provider
	codec   codec.Codec
	epochs  EpochStore
	log     regioncache.Logger
}

var _ engine.Region = (*region)(nil)

func (r *region) CallThrough(ctx context.Context, fn engine.ComputeFunc, args []any) (any, error) {
	k := keys.Derive(r.name, args)
	if v, ok, err := r.lookup(ctx, k); err != nil {
		return nil, err
	} else if ok {
		return v, nil
	}
	val, err := fn(args...)
	if err != nil {
		return nil, err
	}
	if err := r.store(ctx, k, val); err != nil {
		return nil, err
	}
	return val, nil
}

func (r *region) Refresh(ctx context.Context, fn engine.ComputeFunc, args []any) (any, error) {
	val, err := fn(args...)
	if err != nil {
		return nil, err
	}
	if err := r.store(ctx, keys.Derive(r.name, args), val); err != nil {
		return nil, err
	}
	return val, nil
}

func (r *region) Set(ctx context.Context, args []any, value any) error {
	return r.store(ctx, keys.Derive(r.name, args), value)
}

func (r *region) InvalidateFor(ctx context.Context, args []any, hard bool) error {
	k := keys.Derive(r.name, args)
	if hard {
		return r.prov.Del(ctx, k)
	}
	raw, ok, err := r.prov.Get(ctx, k)
	if err != nil || !ok {
		return err
	}
	var env envelope
	if err := msgpack.Unmarshal(raw, &env); err != nil {
		return r.prov.Del(ctx, k)
	}
	// push creation back past the timeout so the next read regenerates
	env.CreatedAt = time.Now().Add(-r.timeout).UnixNano() - 1
	return r.storeEnvelope(ctx, k, env)
}

func (r *region) Invalidate(ctx context.Context, hard bool) error {
	return r.epochs.Bump(ctx, r.name, hard)
}

func (r *region) Close(ctx context.Context) error {
	return r.prov.Close(ctx)
}

// lookup returns a live cached value. Corrupt entries are deleted and miss
// (self-heal); entries behind the hard epoch are deleted; entries behind the
// soft epoch or past the region timeout miss without deletion and are
// overwritten by the recompute.
func (r *region) lookup(ctx context.Context, k string) (any, bool, error) {
	raw, ok, err := r.prov.Get(ctx, k)
	if err != nil || !ok {
		return nil, false, err
	}
	var env envelope
	if err := msgpack.Unmarshal(raw, &env); err != nil {
		_ = r.prov.Del(ctx, k) // self-heal corrupt
		r.log.Debug("dropped corrupt entry", regioncache.Fields{"region": r.name, "key": k})
		return nil, false, nil
	}
	ep, err := r.epochs.Snapshot(ctx, r.name)
	if err != nil {
		return nil, false, err
	}
	if env.CreatedAt <= ep.Hard {
		_ = r.prov.Del(ctx, k)
		return nil, false, nil
	}
	age := time.Now().UnixNano() - env.CreatedAt
	if env.CreatedAt <= ep.Soft || age >= int64(r.timeout) {
		return nil, false, nil
	}
	v, err := r.codec.Decode(env.Payload)
	if err != nil {
		_ = r.prov.Del(ctx, k) // self-heal
		r.log.Debug("dropped undecodable entry", regioncache.Fields{"region": r.name, "key": k})
		return nil, false, nil
	}
	return v, true, nil
}

func (r *region) store(ctx context.Context, k string, v any) error {
	payload, err := r.codec.Encode(v)
	if err != nil {
		return err
	}
	return r.storeEnvelope(ctx, k, envelope{
		CreatedAt: time.Now().UnixNano(),
		Payload:   payload,
	})
}

func (r *region) storeEnvelope(ctx context.Context, k string, env envelope) error {
	raw, err := msgpack.Marshal(env)
	if err != nil {
		return err
	}
	return r.prov.Set(ctx, k, raw, r.timeout)
}
