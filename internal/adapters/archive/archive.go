// Package archive stores completed assessment submissions.
package archive

import (
	"context"
	"fmt"
	"sync"

	"github.com/mirall/archetype/internal/domain/model"
)

// Store persists finished submissions keyed by session id.
type Store interface {
	// Put writes a submission. Re-archiving the same session id
	// overwrites the record, so replayed submissions converge.
	Put(ctx context.Context, sub model.Submission) error

	// Get returns the archived submission for a session id.
	Get(ctx context.Context, sessionID string) (model.Submission, error)

	// Count returns the number of archived submissions.
	Count(ctx context.Context) int
}

// MemoryStore implements Store in memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]model.Submission
}

// NewMemoryStore creates an empty in-memory archive.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]model.Submission),
	}
}

// Put implements Store.
func (m *MemoryStore) Put(_ context.Context, sub model.Submission) error {
	if sub.SessionID == "" {
		return fmt.Errorf("%w: missing session id", ErrInvalidSubmission)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[sub.SessionID] = sub
	return nil
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, sessionID string) (model.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sub, ok := m.data[sessionID]
	if !ok {
		return model.Submission{}, fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}
	return sub, nil
}

// Count implements Store.
func (m *MemoryStore) Count(_ context.Context) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
