package par

import (
	"context"
	"sync/atomic"
)

// Or reports whether brick(i, j) returns true for some leaf [i, j) of
// [first, last). Once a leaf reports a hit, leaves that have not started
// are skipped; leaves already running finish normally.
func Or(ctx context.Context, ex *Executor, first, last int, brick func(i, j int) bool) (bool, error) {
	var found atomic.Bool
	err := ex.episode(ctx, first, last, func(_ context.Context, cancel context.CancelCauseFunc, i, j int) error {
		if found.Load() {
			return nil
		}
		if brick(i, j) {
			found.Store(true)
			cancel(errFound)
		}
		return nil
	})
	return found.Load(), err
}

// First returns the smallest position reported by brick over the leaves of
// [first, last). brick(i, j) must return a position in [i, j), or j when the
// leaf holds no match. First returns last when no leaf matches.
//
// A leaf whose start lies right of an already confirmed match is skipped,
// since it cannot improve the result.
func First(ctx context.Context, ex *Executor, first, last int, brick func(i, j int) int) (int, error) {
	var best atomic.Int64
	best.Store(int64(last))
	err := ex.episode(ctx, first, last, func(_ context.Context, _ context.CancelCauseFunc, i, j int) error {
		if int64(i) >= best.Load() {
			return nil
		}
		res := int64(brick(i, j))
		if res == int64(j) {
			return nil
		}
		for old := best.Load(); res < old; old = best.Load() {
			if best.CompareAndSwap(old, res) {
				break
			}
		}
		return nil
	})
	if err != nil {
		return last, err
	}
	return int(best.Load()), nil
}
