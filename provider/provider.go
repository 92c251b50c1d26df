// Package provider defines the byte-store abstraction used by the bundled
// regioncache engine.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the same []byte that was previously passed to Set for a key. If a store
// performs internal transforms (e.g., compression), they MUST be fully
// reversed before Get returns.
//
// The engine owns the keyspace it writes under; external code must not write
// values under engine-derived keys. Foreign writes may be treated as
// corruption and deleted.
package provider

import (
	"context"
	"time"
)

// Provider is a minimal byte store with per-entry TTLs. Must be safe for
// concurrent use.
//
// Stores without native per-entry expiry (e.g., BigCache) may ignore ttl;
// the engine independently enforces entry age, so a longer-lived raw entry is
// only wasted space, never a stale read.
type Provider interface {
	// Get returns (value, true, nil) on hit and (nil, false, nil) on miss.
	// IO/remote errors are returned as (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Del removes a key. Deleting a missing key is not an error.
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
