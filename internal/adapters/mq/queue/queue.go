// Package queue buffers accepted submissions between the HTTP boundary
// and the archiver workers.
package queue

import (
	"context"
	"sync"

	"github.com/mirall/archetype/internal/domain/model"
	"github.com/mirall/archetype/pkg/metrics"
)

// defaultCapacity bounds the in-memory submission buffer.
const defaultCapacity = 10_000

// Queue provides non-blocking enqueue and channel-based dequeue.
type Queue interface {
	// Enqueue adds a submission. Returns false on backpressure: the
	// queue is full or closed and the submission was not accepted.
	Enqueue(ctx context.Context, sub model.Submission) bool

	// Dequeue returns the channel workers range over. Closed when the
	// queue closes.
	Dequeue(ctx context.Context) <-chan model.Submission

	// Len returns the number of buffered submissions.
	Len(ctx context.Context) int

	// Close stops accepting new submissions and closes the dequeue
	// channel once drained.
	Close() error
}

// Option applies a configuration option to the in-memory queue.
type Option func(*InMemoryQueue)

// WithCapacity bounds the submission buffer.
func WithCapacity(n int) Option {
	return func(q *InMemoryQueue) {
		if n > 0 {
			q.capacity = n
		}
	}
}

// InMemoryQueue implements Queue over a buffered channel.
type InMemoryQueue struct {
	subs     chan model.Submission
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a bounded in-memory queue.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.subs = make(chan model.Submission, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	return q
}

// Enqueue implements Queue.
func (q *InMemoryQueue) Enqueue(_ context.Context, sub model.Submission) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return false
	}
	select {
	case q.subs <- sub:
		metrics.RecordQueueEnqueue()
		metrics.UpdateQueueSize(len(q.subs))
		return true
	default:
		metrics.RecordQueueEnqueueError()
		return false
	}
}

// Dequeue implements Queue.
func (q *InMemoryQueue) Dequeue(_ context.Context) <-chan model.Submission {
	return q.subs
}

// Len implements Queue.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return len(q.subs)
}

// Close implements Queue. Buffered submissions remain readable until
// drained.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	q.closed = true
	close(q.subs)
	return nil
}

// IsClosed reports whether the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
