// Copyright 2025 go-pstl Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package par implements the divide-and-conquer primitives parallel
// algorithms are assembled from: For, Reduce, StrictScan, Or, First,
// StableSort and Merge.
//
// The primitives do not own goroutines. They split their index range in
// halves and hand both halves to a Scheduler's Join until pieces reach the
// leaf size, then run the caller's brick on each leaf. All primitives block
// until every leaf has finished or been skipped.
// For is the exception: a scheduler that implements Looper runs it as one
// flat batched loop.
//
// Cancellation is cooperative: a leaf checks the context before it starts
// and is skipped once the context is done. Leaves already running are never
// interrupted.
package par

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable reports that the scheduler cannot accept work. It is
// returned before any brick has run, so callers may fall back to serial
// execution safely.
var ErrUnavailable = errors.New("par: scheduler unavailable")

// Scheduler is the task-scheduling runtime beneath every primitive.
type Scheduler interface {
	// Workers returns the number of goroutines that may run work concurrently.
	Workers() int

	// Join runs left and right, possibly in parallel, and returns after both
	// have returned. Panics are recovered into *PanicError. When both fail
	// the left error wins.
	Join(left, right func() error) error
}

// serial runs both sides of every Join on the calling goroutine.
type serial struct{}

// Serial is a Scheduler without concurrency.
var Serial Scheduler = serial{}

func (serial) Workers() int { return 1 }

func (serial) Join(left, right func() error) error {
	errL := Protect(left)
	errR := Protect(right)
	if errL != nil {
		return errL
	}
	return errR
}

const (
	// DefaultGrain is the smallest leaf an Executor creates by default.
	DefaultGrain = 1024

	// oversubscribe is the number of leaves created per worker for large
	// inputs, giving the scheduler room to balance uneven leaves.
	oversubscribe = 4
)

// Executor pairs a Scheduler with a leaf-size policy.
type Executor struct {
	sched Scheduler
	grain int
}

// NewExecutor returns an Executor over s. A nil s means Serial and a
// non-positive grain means DefaultGrain.
func NewExecutor(s Scheduler, grain int) *Executor {
	if s == nil {
		s = Serial
	}
	if grain <= 0 {
		grain = DefaultGrain
	}
	return &Executor{sched: s, grain: grain}
}

// Scheduler returns the underlying scheduler.
func (e *Executor) Scheduler() Scheduler { return e.sched }

// Workers returns the scheduler's concurrency.
func (e *Executor) Workers() int { return max(e.sched.Workers(), 1) }

// Grain returns the minimum leaf size.
func (e *Executor) Grain() int { return e.grain }

// Err returns an error wrapping ErrUnavailable when the scheduler reports
// that it cannot run work (for example a closed pool).
func (e *Executor) Err() error {
	if h, ok := e.sched.(interface{ Err() error }); ok {
		if err := h.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
	}
	return nil
}

// leafSize returns the leaf length used to split a range of n elements.
func (e *Executor) leafSize(n int) int {
	parts := e.Workers() * oversubscribe
	return max(e.grain, (n+parts-1)/parts, 1)
}

// split recursively halves [first, last) down to leaf length and runs fn on
// each leaf through Protect. Leaves are skipped once ctx is done. The first
// leaf error cancels ctx with that error as cause.
func (e *Executor) split(ctx context.Context, cancel context.CancelCauseFunc, first, last, leaf int, fn func(i, j int) error) error {
	if last-first <= leaf {
		if ctx.Err() != nil {
			return nil
		}
		if err := Protect(func() error { return fn(first, last) }); err != nil {
			cancel(err)
			return err
		}
		return nil
	}
	mid := first + (last-first)/2
	return e.sched.Join(
		func() error { return e.split(ctx, cancel, first, mid, leaf, fn) },
		func() error { return e.split(ctx, cancel, mid, last, leaf, fn) },
	)
}

// errFound is the cancellation cause used by early-exit primitives.
var errFound = errors.New("par: result found")

// episode runs one divide-and-conquer pass over [first, last) and reports
// the first failure, or the parent context's error when the pass was cut
// short by the caller.
func (e *Executor) episode(parent context.Context, first, last int, fn func(ctx context.Context, cancel context.CancelCauseFunc, i, j int) error) error {
	if first >= last {
		return nil
	}
	if err := e.Err(); err != nil {
		return err
	}
	if err := parent.Err(); err != nil {
		return err
	}
	ctx, cancel := context.WithCancelCause(parent)
	defer cancel(nil)

	leaf := e.leafSize(last - first)
	err := e.split(ctx, cancel, first, last, leaf, func(i, j int) error {
		return fn(ctx, cancel, i, j)
	})
	if err != nil {
		return err
	}
	return parent.Err()
}
