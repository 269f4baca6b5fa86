// Package cache provides time-boxed key/value caching for pricing results.
package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is a TTL-bound key/value store. Expired entries behave as misses.
// Implementations must be safe for concurrent use; last-writer-wins on
// duplicate Set calls for the same key.
type Cache[T any] interface {
	Get(ctx context.Context, key string) (T, bool)
	Set(ctx context.Context, key string, value T, ttl time.Duration)
	Clear(ctx context.Context)
}

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// Memory is the in-process Cache implementation. Eviction is lazy: an
// expired entry is removed on the read that observes it, no background
// sweeper runs.
type Memory[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]

	// now is overridable for expiry tests.
	now func() time.Time
}

// NewMemory creates an empty in-process cache.
func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{
		entries: make(map[string]entry[T]),
		now:     time.Now,
	}
}

// Get returns the live value for key. An entry whose deadline has passed
// is treated as absent and evicted before returning.
func (m *Memory[T]) Get(_ context.Context, key string) (T, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	var zero T
	if !ok {
		return zero, false
	}
	if !m.now().Before(e.expiresAt) {
		m.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have
		// replaced the entry with a fresh one.
		if cur, ok := m.entries[key]; ok && !m.now().Before(cur.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

// Set stores value under key for ttl. A non-positive ttl stores an entry
// that is already expired.
func (m *Memory[T]) Set(_ context.Context, key string, value T, ttl time.Duration) {
	m.mu.Lock()
	m.entries[key] = entry[T]{value: value, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
}

// Clear removes all entries.
func (m *Memory[T]) Clear(_ context.Context) {
	m.mu.Lock()
	m.entries = make(map[string]entry[T])
	m.mu.Unlock()
}

// Len reports the number of stored entries, live or expired.
func (m *Memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
