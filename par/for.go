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

package par

import "context"

// For partitions [first, last) into leaves and calls body(i, j) on each.
// Leaves run in no particular order. For returns when every leaf is done,
// with the first recovered panic if any.
func For(ctx context.Context, ex *Executor, first, last int, body func(i, j int)) error {
	if l, ok := ex.sched.(Looper); ok {
		return flatFor(ctx, ex, l, first, last, body)
	}
	return ex.episode(ctx, first, last, func(_ context.Context, _ context.CancelCauseFunc, i, j int) error {
		body(i, j)
		return nil
	})
}

// Looper is implemented by schedulers with a native flat loop. For hands
// the whole range to it in leaf-sized batches instead of splitting.
type Looper interface {
	ParallelForAtomicBatched(n, batchSize int, fn func(start, end int)) error
}

func flatFor(ctx context.Context, ex *Executor, l Looper, first, last int, body func(i, j int)) error {
	if first >= last {
		return nil
	}
	if err := ex.Err(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	err := l.ParallelForAtomicBatched(last-first, ex.leafSize(last-first), func(i, j int) {
		if ctx.Err() == nil {
			body(first+i, first+j)
		}
	})
	if err != nil {
		return err
	}
	return ctx.Err()
}

// Reduce partitions [first, last) into leaves, folds each leaf with
// body(i, j, identity) and combines the partial results pairwise. The left
// operand of every combine covers the lower indices, so combine only needs
// to be associative.
func Reduce[V any](ctx context.Context, ex *Executor, first, last int, identity V, body func(i, j int, acc V) V, combine func(a, b V) V) (V, error) {
	if first >= last {
		return identity, nil
	}
	if err := ex.Err(); err != nil {
		return identity, err
	}
	if err := ctx.Err(); err != nil {
		return identity, err
	}
	leaf := ex.leafSize(last - first)

	var rec func(i, j int) (V, error)
	rec = func(i, j int) (V, error) {
		if j-i <= leaf {
			if ctx.Err() != nil {
				return identity, nil
			}
			return body(i, j, identity), nil
		}
		mid := i + (j-i)/2
		var lv, rv V
		err := ex.sched.Join(
			func() (err error) { lv, err = rec(i, mid); return err },
			func() (err error) { rv, err = rec(mid, j); return err },
		)
		if err != nil {
			return identity, err
		}
		return combine(lv, rv), nil
	}

	var result V
	err := Protect(func() (err error) {
		result, err = rec(first, last)
		return err
	})
	if err != nil {
		return identity, err
	}
	if err := ctx.Err(); err != nil {
		return identity, err
	}
	return result, nil
}
