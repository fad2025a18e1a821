package memory

import (
	"context"
	"sync"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/mentor-boot/metrics"
	"go.uber.org/zap"
)

const (
	DefaultQueueSize = 256
	extractTimeout   = 10 * time.Second
)

// Queue hands exchanges to the extractor off the request path.
// A single worker drains it; enqueueing never blocks.
type Queue struct {
	extractor *Extractor
	jobs      chan Exchange

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewQueue(extractor *Extractor, size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{extractor: extractor, jobs: make(chan Exchange, size)}
}

func (q *Queue) Start() {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		for ex := range q.jobs {
			q.process(ex)
		}
	}()
}

// Enqueue reports whether the exchange was accepted. Exchanges are dropped
// when ctx is already done, the queue is full or the queue is closed.
func (q *Queue) Enqueue(ctx context.Context, ex Exchange) bool {
	if ctx.Err() != nil {
		return false
	}

	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.MemoryQueueDropped.Inc()
		return false
	}

	select {
	case q.jobs <- ex:
		return true
	default:
		metrics.MemoryQueueDropped.Inc()
		logger.Error("Memory queue full, dropping exchange", zap.String("childId", ex.ChildID))
		return false
	}
}

// Close stops accepting exchanges and waits for queued ones to be processed.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	q.wg.Wait()
}

func (q *Queue) process(ex Exchange) {
	ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			metrics.MemoryFailures.Inc()
			logger.Error("Memory extraction panicked", zap.Any("panic", r))
		}
	}()

	q.extractor.MaybeExtract(ctx, ex)
}
