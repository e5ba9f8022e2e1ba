// Package worker drains the submission queue into the archive.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/mirall/archetype/internal/domain/model"
	"github.com/mirall/archetype/pkg/logger"
	"github.com/mirall/archetype/pkg/metrics"
)

// defaultWorkerCount is the pool size when none is configured.
const defaultWorkerCount = 4

// Queue defines how workers receive submissions.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.Submission
}

// Archiver persists a submission.
type Archiver interface {
	Put(ctx context.Context, sub model.Submission) error
}

// Pool runs a fixed set of archiver workers over one queue.
type Pool struct {
	queue    Queue
	archiver Archiver
	count    int
	log      logger.Logger

	wg      sync.WaitGroup
	cancel  context.CancelFunc
	started bool
	mu      sync.Mutex
}

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.count = n
		}
	}
}

// WithLogger sets the pool logger.
func WithLogger(log logger.Logger) Option {
	return func(p *Pool) {
		if log != nil {
			p.log = log
		}
	}
}

// NewPool creates a worker pool.
func NewPool(queue Queue, archiver Archiver, opts ...Option) *Pool {
	p := &Pool{
		queue:    queue,
		archiver: archiver,
		count:    defaultWorkerCount,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start launches the workers. Idempotent.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	if p.log == nil {
		p.log = logger.Get().Named("worker")
	}

	runCtx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	for i := 0; i < p.count; i++ {
		p.wg.Add(1)
		go p.run(runCtx)
	}
	p.started = true
	metrics.UpdateWorkerCount(p.count)
	p.log.Info(ctx, "archiver pool started", logger.Int("workers", p.count))
}

// Stop cancels the workers and waits for them to finish.
func (p *Pool) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	p.cancel()
	p.wg.Wait()
	p.started = false
	metrics.UpdateWorkerCount(0)
	p.log.Info(context.Background(), "archiver pool stopped")
}

func (p *Pool) run(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case sub, ok := <-p.queue.Dequeue(ctx):
			if !ok {
				return
			}
			start := time.Now()
			if err := p.archiver.Put(ctx, sub); err != nil {
				metrics.RecordWorkerError()
				p.log.Error(ctx, "archive failed",
					logger.String("sessionID", sub.SessionID),
					logger.Error(err),
				)
				continue
			}
			metrics.RecordArchiveLatency(float64(time.Since(start).Milliseconds()))
			metrics.RecordSubmissionArchived()
			p.log.Debug(ctx, "submission archived",
				logger.String("sessionID", sub.SessionID),
				logger.String("primary", sub.PrimaryID),
			)
		}
	}
}
