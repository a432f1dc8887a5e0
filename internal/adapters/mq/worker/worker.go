// Package worker values batches of items on a fixed pool of workers fed by
// the job queue.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skyforge/networth/internal/adapters/mq/queue"
	"github.com/skyforge/networth/internal/domain/catalog"
	"github.com/skyforge/networth/internal/domain/model"
	"github.com/skyforge/networth/internal/domain/networth"
	"github.com/skyforge/networth/internal/domain/types"
	"github.com/skyforge/networth/pkg/logger"
	"github.com/skyforge/networth/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultQueueCapacity = 4096
	poolShutdownTimeout  = 30 * time.Second
)

// Valuer values one item against a catalog snapshot.
type Valuer interface {
	Valuate(ctx context.Context, item *model.Item, snap *catalog.Snapshot) networth.Result
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Job is one item of a batch waiting for a worker.
type Job struct {
	batch *batch
	index int
}

// batch tracks the jobs of one Value call. Workers write only their own
// result slot, so results need no lock.
type batch struct {
	ctx     context.Context //nolint:containedctx // jobs carry the submitter's cancellation
	items   []*model.Item
	snap    *catalog.Snapshot
	results []networth.Result
	wg      sync.WaitGroup
}

// Worker processes jobs from a queue.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown stops the worker after the job in progress.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for valuation jobs.
type InMemoryWorker struct {
	queue  Queue
	valuer Valuer
	name   string

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, valuer Valuer, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		valuer:   valuer,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop. It returns when ctx is done, Shutdown is
// called or the queue is closed and drained.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			w.process(job)
		}
	}
}

// Shutdown stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process values one job. Jobs of a cancelled batch are skipped.
func (w *InMemoryWorker) process(job Job) {
	b := job.batch
	defer b.wg.Done()

	if b.ctx.Err() != nil {
		return
	}

	metrics.IncWorkerActive()
	defer metrics.DecWorkerActive()

	start := time.Now()
	b.results[job.index] = w.valuer.Valuate(b.ctx, b.items[job.index], b.snap)
	metrics.RecordValuation("batch", float64(time.Since(start).Microseconds())/1000)
}

// Pool manages multiple workers sharing one job queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   *queue.InMemoryQueue[Job]

	logger logger.Logger
}

// NewPool creates a worker pool. A workerCount below 1 uses one worker per CPU.
func NewPool(workerCount int, valuer Valuer, opts ...PoolOption) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	cfg := poolSettings{queueCapacity: defaultQueueCapacity, logger: logger.Get().Named("worker-pool")}
	for _, opt := range opts {
		opt(&cfg)
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   queue.NewInMemoryQueue[Job](queue.WithCapacity(cfg.queueCapacity)),
		logger:  cfg.logger,
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			pool.queue,
			valuer,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Value values items against snap on the pool and returns their results in
// input order. It fails when ctx ends before every item is valued or when
// the pool has been shut down.
func (p *Pool) Value(ctx context.Context, items []*model.Item, snap *catalog.Snapshot) (*types.BatchResult, error) {
	id := uuid.NewString()
	if p.queue.IsClosed() {
		return nil, ErrStopped
	}
	if len(items) == 0 {
		return types.NewBatchResult(id, snap.Generation(), nil), nil
	}

	start := time.Now()
	b := &batch{
		ctx:     ctx,
		items:   items,
		snap:    snap,
		results: make([]networth.Result, len(items)),
	}

	b.wg.Add(len(items))
	for i := range items {
		if err := p.queue.Submit(ctx, Job{batch: b, index: i}); err != nil {
			b.wg.Add(i - len(items))
			metrics.RecordErrorByComponent("worker", "submit")
			if errors.Is(err, queue.ErrClosed) {
				return nil, ErrStopped
			}
			return nil, fmt.Errorf("batch %s: %w", id, err)
		}
	}

	finished := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-ctx.Done():
		return nil, fmt.Errorf("batch %s: %w", id, ctx.Err())
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch %s: %w", id, err)
	}

	metrics.RecordBatch(len(items), float64(time.Since(start).Microseconds())/1000)
	p.logger.Debug(ctx, "batch valued",
		logger.String("batchId", id),
		logger.Int("items", len(items)),
		logger.Duration("took", time.Since(start)),
	)

	return types.NewBatchResult(id, snap.Generation(), b.results), nil
}

// Shutdown stops accepting batches, lets the workers drain queued jobs and
// waits for them to exit.
func (p *Pool) Shutdown(ctx context.Context) error {
	if err := p.queue.Close(); err != nil {
		p.logger.Error(ctx, "error closing queue", logger.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			return fmt.Errorf("pool shutdown: %w", shutdownCtx.Err())
		}
	}

	return nil
}
