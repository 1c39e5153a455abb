// Copyright 2025 The go-pstl Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for parallel
// algorithms. Unlike per-call goroutine spawning, a Pool is created once and
// reused across many operations, eliminating allocation and spawn overhead.
//
// The pool supports two shapes of work. Flat loops (ParallelFor and friends)
// split an index range over the workers. Fork-join (Join) submits one side of
// a binary split and runs the other on the calling goroutine; a task that no
// worker has started yet is claimed back and run inline by its waiter, so
// nested Join calls from inside workers never deadlock.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	err := pool.Join(
//	    func() error { return sortLeft() },
//	    func() error { return sortRight() },
//	)
package workerpool

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/ajroetker/go-pstl/par"
)

// ErrClosed is reported by Err after Close.
var ErrClosed = errors.New("workerpool: pool is closed")

var (
	_ par.Scheduler = (*Pool)(nil)
	_ par.Looper    = (*Pool)(nil)
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan *task

	// mu guards sends on workC against a concurrent Close.
	mu        sync.RWMutex
	closeOnce sync.Once
	closed    atomic.Bool
}

const (
	taskPending int32 = iota
	taskClaimed
)

// task is a unit of work that runs exactly once, either on a worker or on
// the goroutine waiting for it.
type task struct {
	fn    func() error
	state atomic.Int32
	done  chan struct{}
	err   error
}

func newTask(fn func() error) *task {
	return &task{fn: fn, done: make(chan struct{})}
}

// run executes the task if nobody has claimed it yet.
func (t *task) run() bool {
	if !t.state.CompareAndSwap(taskPending, taskClaimed) {
		return false
	}
	t.err = par.Protect(t.fn)
	close(t.done)
	return true
}

// wait runs the task inline if it is still pending, otherwise blocks until
// the worker that claimed it finishes.
func (t *task) wait() error {
	if !t.run() {
		<-t.done
	}
	return t.err
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		// Buffer enough for all workers to have pending work
		workC: make(chan *task, numWorkers*4),
	}

	// Spawn persistent workers
	for range numWorkers {
		go p.worker()
	}

	return p
}

// worker is the main loop for each persistent worker goroutine.
func (p *Pool) worker() {
	for t := range p.workC {
		t.run()
	}
}

// submit offers t to the workers without blocking. A task that could not be
// queued is left pending and will be run by its waiter.
func (p *Pool) submit(t *task) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed.Load() {
		return
	}
	select {
	case p.workC <- t:
	default:
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.numWorkers
}

// Err returns ErrClosed once the pool has been closed.
func (p *Pool) Err() error {
	if p.closed.Load() {
		return ErrClosed
	}
	return nil
}

// Close shuts down the worker pool. All queued work will complete.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed.Store(true)
		close(p.workC)
		p.mu.Unlock()
	})
}

// Join runs left and right, possibly in parallel, and returns when both are
// done. Panics in either function are recovered into a *par.PanicError.
// If both fail, the error from left is returned.
//
// On a closed pool both functions run sequentially on the caller.
func (p *Pool) Join(left, right func() error) error {
	t := newTask(right)
	p.submit(t)
	errL := par.Protect(left)
	errR := t.wait()
	if errL != nil {
		return errL
	}
	return errR
}

// ParallelFor executes fn for each index in [0, n) using the worker pool.
// Each worker processes a contiguous range of indices.
// Blocks until all work completes and returns the first recovered panic.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelFor(n int, fn func(start, end int)) error {
	if n <= 0 {
		return nil
	}

	// Determine number of workers to use (don't use more workers than items)
	workers := min(p.numWorkers, n)

	if workers == 1 || p.closed.Load() {
		return par.Protect(func() error {
			fn(0, n)
			return nil
		})
	}

	// Calculate chunk size (ensure all items are covered)
	chunkSize := (n + workers - 1) / workers

	var tasks []*task
	for i := 1; i < workers; i++ {
		start := i * chunkSize
		if start >= n {
			break
		}
		end := min(start+chunkSize, n)
		t := newTask(func() error {
			fn(start, end)
			return nil
		})
		p.submit(t)
		tasks = append(tasks, t)
	}

	// The caller takes the first chunk.
	err := par.Protect(func() error {
		fn(0, min(chunkSize, n))
		return nil
	})
	return waitAll(err, tasks)
}

// ParallelForAtomic executes fn for each index in [0, n) using atomic work
// stealing. This provides better load balancing when work per item varies.
// Blocks until all work completes.
//
// fn receives the index to process.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) error {
	return p.ParallelForAtomicBatched(n, 1, func(start, end int) {
		for i := start; i < end; i++ {
			fn(i)
		}
	})
}

// ParallelForAtomicBatched executes fn for batches of indices using atomic
// work stealing. Combines the load balancing of atomic distribution with
// reduced atomic operation overhead by processing multiple items per grab.
//
// fn receives (start, end) indices where work should process [start, end).
// batchSize controls how many items are grabbed per atomic operation.
func (p *Pool) ParallelForAtomicBatched(n int, batchSize int, fn func(start, end int)) error {
	if n <= 0 {
		return nil
	}

	if batchSize <= 0 {
		batchSize = 1
	}

	// Calculate number of batches
	numBatches := (n + batchSize - 1) / batchSize
	workers := min(p.numWorkers, numBatches)

	if workers == 1 || p.closed.Load() {
		return par.Protect(func() error {
			fn(0, n)
			return nil
		})
	}

	var nextBatch atomic.Int64
	loop := func() error {
		for {
			batch := int(nextBatch.Add(1)) - 1
			start := batch * batchSize
			if start >= n {
				return nil
			}
			fn(start, min(start+batchSize, n))
		}
	}

	tasks := make([]*task, 0, workers-1)
	for range workers - 1 {
		t := newTask(loop)
		p.submit(t)
		tasks = append(tasks, t)
	}

	return waitAll(par.Protect(loop), tasks)
}

// waitAll waits for every task and returns first, or the first task error.
func waitAll(first error, tasks []*task) error {
	for _, t := range tasks {
		if err := t.wait(); first == nil {
			first = err
		}
	}
	return first
}
