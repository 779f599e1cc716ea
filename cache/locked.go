package cache

import "sync"

// LockedCache is a [BoundedCache] guarded by a mutex.
//
// Values should be immutable, since they are shared between callers.
type LockedCache[K comparable, V any] struct {
	mu sync.Mutex
	c  *BoundedCache[K, V]
}

// NewLockedCache returns a new locked cache with the given capacity.
// If capacity is not positive, the cache is effectively unbounded.
func NewLockedCache[K comparable, V any](capacity int) *LockedCache[K, V] {
	return &LockedCache[K, V]{
		c: NewBoundedCache[K, V](capacity),
	}
}

// Len returns the number of entries in the cache.
func (lc *LockedCache[K, V]) Len() int {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.c.Len()
}

// Get returns the value associated with key.
func (lc *LockedCache[K, V]) Get(key K) (value V, ok bool) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.c.Get(key)
}

// Set inserts or updates the value associated with key.
func (lc *LockedCache[K, V]) Set(key K, value V) {
	lc.mu.Lock()
	lc.c.Set(key, value)
	lc.mu.Unlock()
}

// GetOrCompute returns the cached value for key, or calls compute and caches its result.
// The lock is not held while compute runs, so concurrent misses on the same key
// may each call compute. The last result stored wins.
func (lc *LockedCache[K, V]) GetOrCompute(key K, compute func() V) (value V, hit bool) {
	if value, ok := lc.Get(key); ok {
		return value, true
	}
	value = compute()
	lc.Set(key, value)
	return value, false
}

// Clear removes all entries from the cache.
func (lc *LockedCache[K, V]) Clear() {
	lc.mu.Lock()
	lc.c.Clear()
	lc.mu.Unlock()
}
