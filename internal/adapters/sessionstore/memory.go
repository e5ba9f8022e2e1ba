package sessionstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mirall/archetype/internal/domain/session"
)

// MemoryOption applies a configuration option to the in-memory store.
type MemoryOption func(*MemoryStore)

// WithTTL overrides the resumability window.
func WithTTL(ttl time.Duration) MemoryOption {
	return func(m *MemoryStore) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithClock injects the time source, for deterministic expiry tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryStore) {
		if now != nil {
			m.now = now
		}
	}
}

// MemoryStore keeps snapshots in a map with lazy TTL enforcement on
// load. Suitable for single-process deployments and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]session.Snapshot
	ttl  time.Duration
	now  func() time.Time
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{
		data: make(map[string]session.Snapshot),
		ttl:  DefaultTTL,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Save implements Store. Last writer wins; divergent in-flight copies of
// the same session are never merged.
func (m *MemoryStore) Save(_ context.Context, snap session.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[snap.ID] = snap
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(_ context.Context, id string) (session.Snapshot, error) {
	m.mu.RLock()
	snap, ok := m.data[id]
	m.mu.RUnlock()
	if !ok {
		return session.Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if snap.Expired(m.now(), m.ttl) {
		m.mu.Lock()
		delete(m.data, id)
		m.mu.Unlock()
		return session.Snapshot{}, fmt.Errorf("%w: %s", ErrExpired, id)
	}
	return snap, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	return nil
}

// Len returns the number of stored records, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
