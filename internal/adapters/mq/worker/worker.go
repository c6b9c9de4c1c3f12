// Package worker runs batch calculation jobs on a pool of goroutines.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/fairwage/internal/domain/model"
	"github.com/okian/fairwage/pkg/logger"
	"github.com/okian/fairwage/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	poolShutdownTimeout     = 30 * time.Second
)

// Job and Result are what workers read and write.
type (
	Job    = model.Job
	Result = model.JobResult
)

// Processor computes the output of a job.
type Processor interface {
	Process(ctx context.Context, j Job) (any, error)
}

// Sink receives job results. Implementations must be safe for concurrent use.
type Sink interface {
	Collect(ctx context.Context, r Result)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes jobs and hands their results to a Sink.
type Worker interface {
	// Run starts the worker loop until ctx is canceled or the queue drains.
	Run(ctx context.Context)

	// Shutdown stops the worker after the job in progress.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue     Queue
	processor Processor
	sink      Sink
	name      string
	processed *atomic.Int64

	// Shutdown control
	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, p Processor, sink Sink, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     q,
		processor: p,
		sink:      sink,
		name:      "worker",
		processed: &atomic.Int64{},
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Nop(),
	}

	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.Named(w.name)

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			w.process(ctx, j)
		}
	}
}

// Shutdown gracefully stops the worker.
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

// process runs one job. A panicking processor fails the job, not the worker.
func (w *InMemoryWorker) process(ctx context.Context, j Job) {
	start := time.Now()
	out, err := w.safeProcess(ctx, j)
	latency := float64(time.Since(start).Microseconds()) / 1000

	res := Result{Seq: j.Seq, Kind: j.Kind}
	if err != nil {
		res.Error = err.Error()
		metrics.RecordBatchJob("failed", latency)
		metrics.RecordErrorByComponent("worker", "job_failed")
		w.logger.Debug(ctx, "job failed",
			logger.Int("seq", j.Seq),
			logger.String("kind", j.Kind),
			logger.Error(err),
		)
	} else {
		res.Output = out
		metrics.RecordBatchJob("ok", latency)
	}
	w.processed.Add(1)
	w.sink.Collect(ctx, res)
}

func (w *InMemoryWorker) safeProcess(ctx context.Context, j Job) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error(ctx, "job panicked", logger.Int("seq", j.Seq), logger.Any("panic", r))
			err = fmt.Errorf("job %d panicked: %v", j.Seq, r)
		}
	}()
	return w.processor.Process(ctx, j)
}

// Pool manages multiple workers over one queue.
type Pool struct {
	workers   []*InMemoryWorker
	queue     Queue
	processed atomic.Int64
	wg        sync.WaitGroup

	logger logger.Logger
}

// NewPool creates a new worker pool. workerCount < 1 selects a default from
// the number of CPUs.
func NewPool(workerCount int, q Queue, p Processor, sink Sink, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	probe := &InMemoryWorker{logger: logger.Nop()}
	for _, opt := range opts {
		opt(probe)
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		logger:  probe.logger.Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		w := NewInMemoryWorker(q, p, sink, append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)...)
		w.processed = &pool.processed
		pool.workers[i] = w
	}

	metrics.UpdateBatchWorkers(workerCount)

	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Processed returns how many jobs have completed.
func (p *Pool) Processed() int64 { return p.processed.Load() }

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		p.wg.Add(1)
		go func(w *InMemoryWorker) {
			defer p.wg.Done()
			w.Run(ctx)
		}(w)
	}
}

// Wait blocks until every worker has returned, normally because the queue
// was closed and drained.
func (p *Pool) Wait() {
	p.wg.Wait()
	metrics.UpdateBatchWorkers(0)
}

// Shutdown closes the queue and waits for the workers to drain it.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			for _, rest := range p.workers {
				_ = rest.Shutdown(ctx)
			}
			return fmt.Errorf("pool shutdown: %w", shutdownCtx.Err())
		}
	}
	metrics.UpdateBatchWorkers(0)
	return nil
}

// Collector is a Sink that keeps every result in memory.
type Collector struct {
	mu      sync.Mutex
	results []Result
}

// Collect records r.
func (c *Collector) Collect(_ context.Context, r Result) {
	c.mu.Lock()
	c.results = append(c.results, r)
	c.mu.Unlock()
}

// Results returns the collected results ordered by Seq.
func (c *Collector) Results() []Result {
	c.mu.Lock()
	out := make([]Result, len(c.results))
	copy(out, c.results)
	c.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}
