package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// workerPool runs file and symlink jobs on a fixed set of goroutines. The
// first job error cancels the pool's context with that error as the cause,
// which stops the other workers and anything else polling the context.
type workerPool struct {
	jobs    chan Job
	ctx     context.Context
	cancel  context.CancelCauseFunc
	run     func(Job) error
	wg      sync.WaitGroup
	live    atomic.Int32
	stopped chan struct{} // closed when the last worker exits
}

// newWorkerPool returns a pool with no workers yet. Its context is derived
// from ctx and is available before start is called.
func newWorkerPool(ctx context.Context, queue int, run func(Job) error) *workerPool {
	ctx, cancel := context.WithCancelCause(ctx)
	return &workerPool{
		jobs:    make(chan Job, queue),
		ctx:     ctx,
		cancel:  cancel,
		run:     run,
		stopped: make(chan struct{}),
	}
}

// start launches the workers. It must be called exactly once, with at least
// one worker.
func (p *workerPool) start(workers int) {
	p.live.Store(int32(workers))
	for range workers {
		p.wg.Add(1)
		go p.work()
	}
}

func (p *workerPool) work() {
	defer p.wg.Done()
	defer func() {
		if p.live.Add(-1) == 0 {
			close(p.stopped)
		}
	}()
	for job := range p.jobs {
		if p.ctx.Err() != nil {
			return
		}
		if err := p.run(job); err != nil {
			p.cancel(err)
			return
		}
	}
}

// push queues a job, blocking while the queue is full. It fails once every
// worker has exited or the pool is cancelled.
func (p *workerPool) push(job Job) error {
	select {
	case <-p.stopped:
		return p.exhausted()
	case <-p.ctx.Done():
		return context.Cause(p.ctx)
	default:
	}
	select {
	case p.jobs <- job:
		return nil
	case <-p.stopped:
		return p.exhausted()
	case <-p.ctx.Done():
		return context.Cause(p.ctx)
	}
}

func (p *workerPool) exhausted() error {
	if cause := context.Cause(p.ctx); cause != nil {
		return fmt.Errorf("%w: %w", ErrWorkersExhausted, cause)
	}
	return ErrWorkersExhausted
}

// join stops accepting jobs, waits for the queue to drain and returns the
// first job error, if any.
func (p *workerPool) join() error {
	close(p.jobs)
	p.wg.Wait()
	cause := context.Cause(p.ctx)
	p.cancel(nil)
	if cause == nil || errors.Is(cause, context.Canceled) || errors.Is(cause, context.DeadlineExceeded) {
		return nil
	}
	return cause
}
