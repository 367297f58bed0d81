// Package pool implements a fixed-size, core-pinned worker pool with a
// block-range submission primitive and multi-future join.
package pool

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/xuyanwen2012/splinetree-substrate/affinity"
)

// Kind categorizes pool failures; callers reach it through errors.As on
// *Error.
type Kind int

const (
	// KindPoolShutDown means submit was called after Stop.
	KindPoolShutDown Kind = iota
	// KindTaskFailed means a worker task returned an error.
	KindTaskFailed
)

// Error is returned by pool operations and wraps worker/task failures.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("pool: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// ErrPoolShutDown is the sentinel wrapped by Error when Submit is called
// after the pool has stopped.
var ErrPoolShutDown = fmt.Errorf("pool shut down")

type task func()

// ThreadPool owns one worker goroutine per core in its CoreList, each
// pinned to that core before it processes any task. Tasks are FIFO within
// one submitter goroutine; no order is guaranteed across submitters. A
// worker whose pinning fails logs the error and runs its tasks unpinned.
type ThreadPool struct {
	log zerolog.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []task
	stopped bool
	wg      sync.WaitGroup
	workers int
}

// New spawns len(cores) workers, each bound to its corresponding logical
// core via affinity.PinCurrentThread before it dequeues any task. If
// pinning fails, the worker logs the error and processes tasks unpinned.
func New(cores affinity.CoreList, log zerolog.Logger) *ThreadPool {
	p := &ThreadPool{
		log:     log.With().Str("component", "pool").Logger(),
		workers: len(cores),
	}
	p.cond = sync.NewCond(&p.mu)

	p.wg.Add(len(cores))
	for _, core := range cores {
		go p.worker(core)
	}
	p.log.Info().Int("workers", len(cores)).Ints("cores", cores).Msg("thread pool started")
	return p
}

func (p *ThreadPool) worker(core int) {
	defer p.wg.Done()

	unlock, err := affinity.PinCurrentThread(core, p.log)
	if err != nil {
		p.log.Error().Err(err).Int("core", core).Msg("worker failed to pin, running unpinned")
	} else {
		defer unlock()
	}

	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.stopped {
			p.cond.Wait()
		}
		if p.stopped && len(p.queue) == 0 {
			p.mu.Unlock()
			return
		}
		t := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		t()
	}
}

// ThreadCount reports the number of worker goroutines owned by the pool.
func (p *ThreadPool) ThreadCount() int {
	return p.workers
}

// Stop signals every worker to exit once its remaining queued tasks drain,
// then blocks until all workers have exited. Tasks already running finish
// normally, and tasks still queued at the time of the call run before the
// workers exit.
func (p *ThreadPool) Stop() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()
	p.cond.Broadcast()
	p.wg.Wait()
	p.log.Info().Msg("thread pool stopped")
}

// SubmitTask enqueues fn and returns a Future that resolves with its
// return value, or its error if fn itself failed.
func SubmitTask[R any](p *ThreadPool, fn func() (R, error)) (*Future[R], error) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return nil, newError("submit_task", KindPoolShutDown, ErrPoolShutDown)
	}

	f := newFuture[R]()
	p.queue = append(p.queue, func() {
		v, err := fn()
		if err != nil {
			var zero R
			f.resolve(zero, newError("submit_task", KindTaskFailed, err))
			return
		}
		f.resolve(v, nil)
	})
	p.mu.Unlock()
	p.cond.Signal()
	return f, nil
}

// SubmitBlocks partitions [first, last) into m contiguous half-open
// sub-ranges of ceil((last-first)/m) elements (the last may be shorter),
// where m is desiredBlocks, or the pool's worker count when desiredBlocks
// <= 0, and never less than 1. It submits one task per non-empty
// sub-range, returning their collective MultiFuture. If last <= first the
// result is an empty MultiFuture and no tasks are submitted.
func SubmitBlocks[R any](p *ThreadPool, first, last int, desiredBlocks int, block func(start, end int) (R, error)) (*MultiFuture[R], error) {
	mf := NewMultiFuture[R]()
	if last <= first {
		return mf, nil
	}

	m := desiredBlocks
	if m <= 0 {
		m = p.workers
	}
	if m <= 0 {
		m = 1
	}

	blockSize := (last - first + m - 1) / m
	for i := 0; i < m; i++ {
		start := first + i*blockSize
		if start >= last {
			break
		}
		end := start + blockSize
		if end > last {
			end = last
		}

		f, err := SubmitTask(p, func() (R, error) {
			return block(start, end)
		})
		if err != nil {
			return mf, err
		}
		mf.Add(f)
	}
	return mf, nil
}
