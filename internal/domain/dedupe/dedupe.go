// Package dedupe tracks already-submitted session ids so a retried
// submission is acknowledged instead of archived twice.
package dedupe

import (
	"context"
	"sync"
)

// defaultMaxSize bounds the in-memory id window.
const defaultMaxSize = 100_000

// Deduper records seen submission ids for at-most-once archiving.
type Deduper interface {
	// SeenAndRecord atomically checks whether id was seen and records it
	// if not. Returns true when id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord forgets an id so it can be retried, used when a
	// submission was marked seen but failed to enqueue.
	Unrecord(ctx context.Context, id string)

	// Size returns the number of tracked ids.
	Size() int64
}

// Option applies a configuration option to the in-memory deduper.
type Option func(*inMemory)

// WithMaxSize bounds how many ids are remembered; zero or negative means
// unbounded.
func WithMaxSize(n int) Option {
	return func(d *inMemory) {
		d.maxSize = n
	}
}

// inMemory implements Deduper with a map plus FIFO eviction: once the
// window fills, the oldest recorded id is forgotten first.
type inMemory struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string
	maxSize int
}

// NewInMemory creates an in-memory deduper.
func NewInMemory(opts ...Option) Deduper {
	d := &inMemory{
		seen:    make(map[string]struct{}),
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *inMemory) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}
	if d.maxSize > 0 && len(d.seen) >= d.maxSize {
		oldest := d.order[0]
		d.order = d.order[1:]
		delete(d.seen, oldest)
	}
	d.seen[id] = struct{}{}
	d.order = append(d.order, id)
	return false
}

func (d *inMemory) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; !ok {
		return
	}
	delete(d.seen, id)
	for i, v := range d.order {
		if v == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

func (d *inMemory) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}
