// Package sessionstore persists session snapshots for resumability. The
// engine itself never touches storage; it only produces and accepts
// snapshots. Stores are last-writer-wins with a hard TTL: an expired
// record is discarded, never silently resumed.
package sessionstore

import (
	"context"
	"time"

	"github.com/mirall/archetype/internal/domain/session"
)

// DefaultTTL is the resumability window for saved sessions.
const DefaultTTL = 7 * 24 * time.Hour

// Store persists session snapshots keyed by session id.
type Store interface {
	// Save writes a snapshot, replacing any prior record for the id.
	Save(ctx context.Context, snap session.Snapshot) error

	// Load returns the snapshot for id. ErrNotFound when absent,
	// ErrExpired when the record aged past the TTL (the record is
	// dropped); both are recoverable by starting fresh.
	Load(ctx context.Context, id string) (session.Snapshot, error)

	// Delete removes the record for id; deleting a missing id is a
	// no-op.
	Delete(ctx context.Context, id string) error

	// Close releases store resources.
	Close() error
}
