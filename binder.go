package regioncache

import "sync"

// funcBinder is the side table mapping a bound function's identity to its
// region name. Entries are append-only: a binding is set once at bind time
// and never changed or removed, so concurrent readers only need the RLock.
type funcBinder struct {
	mu       sync.RWMutex
	bindings map[*Func]string
}

func newFuncBinder() *funcBinder {
	return &funcBinder{bindings: make(map[*Func]string)}
}

func (b *funcBinder) bind(f *Func, region string) {
	b.mu.Lock()
	b.bindings[f] = region
	b.mu.Unlock()
}

// resolve returns the region the function was bound to, or ErrNotBound for a
// handle that never went through bind.
func (b *funcBinder) resolve(f *Func) (string, error) {
	if f == nil {
		return "", ErrNotBound
	}
	b.mu.RLock()
	region, ok := b.bindings[f]
	b.mu.RUnlock()
	if !ok {
		return "", ErrNotBound
	}
	return region, nil
}
