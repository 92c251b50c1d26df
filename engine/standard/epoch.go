package standard

import (
	"context"
	"sync"
	"time"
)

// Epochs are a region's invalidation markers in unix nanos; zero means the
// region was never invalidated that way. An entry created at or before the
// hard epoch is dead; one created at or before the soft epoch is stale and
// regenerates on the next read.
type Epochs struct {
	Hard int64
	Soft int64
}

// EpochStore abstracts where region epochs live. Use LocalEpochs (default)
// for in-process epochs, or RedisEpochs to share region invalidation across
// replicas.
type EpochStore interface {
	// Snapshot returns the region's current epochs; never-bumped => zero.
	Snapshot(ctx context.Context, region string) (Epochs, error)
	// Bump moves the hard or soft epoch to now.
	Bump(ctx context.Context, region string, hard bool) error
	// Close releases resources (no-op ok).
	Close(ctx context.Context) error
}

// LocalEpochs keeps region epochs in-process (default). The map is bounded
// by the number of configured regions, so there is no cleanup loop.
type LocalEpochs struct {
	mu sync.RWMutex
	m  map[string]Epochs
}

var _ EpochStore = (*LocalEpochs)(nil)

func NewLocalEpochs() *LocalEpochs {
	return &LocalEpochs{m: make(map[string]Epochs)}
}

func (s *LocalEpochs) Snapshot(_ context.Context, region string) (Epochs, error) {
	s.mu.RLock()
	e := s.m[region] // zero value if missing
	s.mu.RUnlock()
	return e, nil
}

func (s *LocalEpochs) Bump(_ context.Context, region string, hard bool) error {
	now := time.Now().UnixNano()
	s.mu.Lock()
	e := s.m[region]
	if hard {
		e.Hard = now
	} else {
		e.Soft = now
	}
	s.m[region] = e
	s.mu.Unlock()
	return nil
}

func (s *LocalEpochs) Close(context.Context) error { return nil }
