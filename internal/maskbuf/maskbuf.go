// Package maskbuf hands out the per-element flag buffers used by two-pass
// filtering algorithms, charged against an optional byte budget.
package maskbuf

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Allocator reserves mask buffers. The zero value is not usable; use New.
type Allocator struct {
	limit int64
	sem   *semaphore.Weighted // nil if unlimited
	inUse atomic.Int64
}

// New returns an Allocator that never holds more than limitBytes of mask
// buffers at once. If limitBytes <= 0, the budget is unlimited.
func New(limitBytes int64) *Allocator {
	a := &Allocator{limit: max(limitBytes, 0)}
	if limitBytes > 0 {
		a.sem = semaphore.NewWeighted(limitBytes)
	}
	return a
}

// Acquire returns a zeroed buffer with n flags. It never blocks: when the
// budget cannot cover n bytes it returns false and the caller is expected
// to run its serial path instead.
func (a *Allocator) Acquire(n int) (*Buffer, bool) {
	bytes := int64(n)
	if a.sem != nil && !a.sem.TryAcquire(bytes) {
		return nil, false
	}
	a.inUse.Add(bytes)
	return &Buffer{Mask: make([]bool, n), a: a, bytes: bytes}, true
}

// InUse returns the number of bytes currently reserved.
func (a *Allocator) InUse() int64 {
	return a.inUse.Load()
}

// Limit returns the configured budget in bytes (0 if unlimited).
func (a *Allocator) Limit() int64 {
	return a.limit
}

// Buffer is a mask owned by one algorithm invocation.
type Buffer struct {
	// Mask holds one flag per input element.
	Mask []bool

	a     *Allocator
	bytes int64
	once  sync.Once
}

// Release returns the buffer's bytes to the allocator. It is safe to call
// more than once; only the first call has an effect.
func (b *Buffer) Release() {
	b.once.Do(func() {
		if b.a.sem != nil {
			b.a.sem.Release(b.bytes)
		}
		b.a.inUse.Add(-b.bytes)
		b.Mask = nil
	})
}
