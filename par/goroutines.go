package par

import (
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Goroutines is a Scheduler that forks a goroutine per Join while a slot
// is free and runs both sides inline once all slots are taken.
type Goroutines struct {
	workers int
	slots   *semaphore.Weighted
}

// NewGoroutines returns a Goroutines scheduler allowing workers concurrent
// goroutines, counting the caller. If workers <= 0, uses GOMAXPROCS.
func NewGoroutines(workers int) *Goroutines {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Goroutines{
		workers: workers,
		slots:   semaphore.NewWeighted(int64(max(workers-1, 0))),
	}
}

// Workers returns the configured concurrency.
func (g *Goroutines) Workers() int { return g.workers }

// Join runs right on a new goroutine when a slot is free and left on the
// caller, then waits for both.
func (g *Goroutines) Join(left, right func() error) error {
	if !g.slots.TryAcquire(1) {
		return Serial.Join(left, right)
	}

	var eg errgroup.Group
	eg.Go(func() error {
		defer g.slots.Release(1)
		return Protect(right)
	})
	errL := Protect(left)
	errR := eg.Wait()
	if errL != nil {
		return errL
	}
	return errR
}
