// Package store provides revocation marker stores: an in-process map for
// single-node use and tests, and a Redis-backed store for shared deployments.
// Every marker is an independent key with its own expiry; no cross-key
// invariant exists, so neither store takes locks beyond its own map.
package store

import (
	"context"
	"sync"
	"time"
)

// sweepEvery bounds how many writes may land between full expiry sweeps.
const sweepEvery = 128

type memoryEntry struct {
	value     int64
	expiresAt time.Time
}

// Memory is an in-process RevocationStore. Expired markers are dropped
// lazily on read and swept in bulk every sweepEvery writes, so the map does
// not grow unbounded under a write-heavy workload.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	writes  int
	now     func() time.Time
}

// NewMemory returns an empty in-process store.
func NewMemory() *Memory {
	return NewMemoryWithClock(time.Now)
}

// NewMemoryWithClock returns a store reading time from now. Tests inject a
// fixed clock to make marker expiry deterministic.
func NewMemoryWithClock(now func() time.Time) *Memory {
	return &Memory{entries: make(map[string]memoryEntry), now: now}
}

// Contains reports whether a live marker exists for key.
func (m *Memory) Contains(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if !e.expiresAt.After(m.now()) {
		m.mu.Lock()
		// Re-check under the write lock; another goroutine may have
		// overwritten the marker meanwhile.
		if cur, ok := m.entries[key]; ok && !cur.expiresAt.After(m.now()) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return false, nil
	}
	return true, nil
}

// Save writes a marker for key that expires ttl from now, replacing any
// existing marker.
func (m *Memory) Save(_ context.Context, key string, value int64, ttl time.Duration) error {
	now := m.now()
	m.mu.Lock()
	m.entries[key] = memoryEntry{value: value, expiresAt: now.Add(ttl)}
	m.writes++
	if m.writes >= sweepEvery {
		m.writes = 0
		for k, e := range m.entries {
			if !e.expiresAt.After(now) {
				delete(m.entries, k)
			}
		}
	}
	m.mu.Unlock()
	return nil
}

// Delete removes the marker for key. Absence is not an error.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Len reports the number of markers currently held, including any that have
// expired but not yet been swept.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
