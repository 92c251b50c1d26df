// Package standard is the bundled regioncache engine. It derives cache keys
// from call arguments, stores codec-encoded values in a pluggable byte-store
// provider, and models region-wide invalidation as hard/soft epochs.
//
// Storage is delegated entirely to providers over existing clients; the
// engine implements no backend of its own. There is deliberately no
// regeneration lock: a read that finds a stale (soft-invalidated or expired)
// entry recomputes synchronously.
package standard

import (
	"context"
	"errors"
	"fmt"

	"github.com/unkn0wn-root/regioncache"
	"github.com/unkn0wn-root/regioncache/codec"
	"github.com/unkn0wn-root/regioncache/engine"
	"github.com/unkn0wn-root/regioncache/provider"
)

// Factory builds the provider for a region from its validated spec. The spec
// carries the resolved endpoints and arguments, so one factory can serve many
// regions with different targets.
type Factory func(spec engine.Spec) (provider.Provider, error)

// Wrap is the wrapper type this engine accepts: a storage-transport
// decorator applied to a region's provider at configure time. Configure
// rejects wrappers of any other type.
type Wrap func(provider.Provider) provider.Provider

// Options tune the engine. At least one backend factory is required.
type Options struct {
	// Backends maps backend identifiers (RegionSpec.Backend) to provider
	// factories.
	Backends map[string]Factory

	// Default serves backend identifiers absent from Backends. Optional.
	Default Factory

	// Codec serializes cached values; nil => codec.Msgpack{}.
	Codec codec.Codec

	// Epochs stores region invalidation epochs; nil => NewLocalEpochs().
	// Use RedisEpochs to share region invalidation across replicas.
	Epochs EpochStore

	// Logger defaults to regioncache.NopLogger.
	Logger regioncache.Logger
}

type Engine struct {
	backends map[string]Factory
	fallback Factory
	codec    codec.Codec
	epochs   EpochStore
	log      regioncache.Logger
}

var _ engine.Engine = (*Engine)(nil)

func New(opts Options) (*Engine, error) {
	if len(opts.Backends) == 0 && opts.Default == nil {
		return nil, errors.New("standard: at least one backend factory is required")
	}
	e := &Engine{
		backends: opts.Backends,
		fallback: opts.Default,
		codec:    opts.Codec,
		epochs:   opts.Epochs,
		log:      opts.Logger,
	}
	if e.codec == nil {
		e.codec = codec.Msgpack{}
	}
	if e.epochs == nil {
		e.epochs = NewLocalEpochs()
	}
	if e.log == nil {
		e.log = regioncache.NopLogger{}
	}
	return e, nil
}

// Configure builds the region handle: provider from the backend factory,
// decorated by wrap when one is given. Fails fast on unknown backends and
// foreign wrapper types so no broken handle escapes.
func (e *Engine) Configure(ctx context.Context, spec engine.Spec, wrap engine.Wrapper) (engine.Region, error) {
	factory, ok := e.backends[spec.Backend]
	if !ok {
		factory = e.fallback
	}
	if factory == nil {
		return nil, fmt.Errorf("standard: unknown backend %q for region %q", spec.Backend, spec.Name)
	}
	prov, err := factory(spec)
	if err != nil {
		return nil, fmt.Errorf("standard: backend %q for region %q: %w", spec.Backend, spec.Name, err)
	}
	if wrap != nil {
		w, ok := wrap.(Wrap)
		if !ok {
			_ = prov.Close(ctx)
			return nil, fmt.Errorf("standard: unsupported wrapper type %T", wrap)
		}
		if wrapped := w(prov); wrapped != nil {
			prov = wrapped
		}
	}
	return &region{
		name:    spec.Name,
		timeout: spec.Timeout,
		prov:    prov,
		codec:   e.codec,
		epochs:  e.epochs,
		log:     e.log,
	}, nil
}
