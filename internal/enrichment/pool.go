package enrichment

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Pool runs enrichment tasks on a fixed set of workers fed by a
// bounded queue. Submission never blocks: when the queue is full the
// task is dropped and the movie stays PENDING.
type Pool struct {
	queue   chan uuid.UUID
	workers int
	log     *zap.Logger

	wg       sync.WaitGroup
	shutdown sync.Once
}

func NewPool(workers, queueSize int, log *zap.Logger) *Pool {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 100
	}

	return &Pool{
		queue:   make(chan uuid.UUID, queueSize),
		workers: workers,
		log:     log.With(zap.String("component", "enrichment_pool")),
	}
}

// Start spins up the workers. The handler runs one enrichment task and
// must never panic the pool; it owns all its error handling.
func (p *Pool) Start(handler func(ctx context.Context, id uuid.UUID)) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func(worker int) {
			defer p.wg.Done()
			for id := range p.queue {
				handler(context.Background(), id)
			}
		}(i)
	}

	p.log.Info("Enrichment pool started",
		zap.Int("workers", p.workers),
		zap.Int("queue_size", cap(p.queue)),
	)
}

// TryDispatch enqueues a movie id without blocking. Returns false when
// the queue is saturated.
func (p *Pool) TryDispatch(id uuid.UUID) bool {
	select {
	case p.queue <- id:
		return true
	default:
		p.log.Warn("Enrichment queue saturated, dropping task",
			zap.String("movie_id", id.String()),
		)
		return false
	}
}

// Shutdown stops accepting work and waits for in-flight tasks until
// ctx expires.
func (p *Pool) Shutdown(ctx context.Context) {
	p.shutdown.Do(func() {
		close(p.queue)
	})

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.log.Info("Enrichment pool drained")
	case <-ctx.Done():
		p.log.Warn("Enrichment pool shutdown timed out, abandoning tasks")
	}
}
