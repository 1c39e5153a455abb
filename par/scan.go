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

// scanSlack is the number of tiles per worker StrictScan creates.
const scanSlack = 4

// splitPow2 returns the largest power of two strictly less than m.
func splitPow2(m int) int {
	k := 1
	for 2*k < m {
		k *= 2
	}
	return k
}

// StrictScan computes an exclusive prefix over n elements in two passes.
//
// The range is cut into tiles. The up-sweep calls reduce(i, length) once
// per tile and combines sibling sums along a power-of-two tree. apex then
// receives combine(initial, total). The down-sweep calls scan(i, length,
// offset) exactly once per tile, where offset is initial combined with the
// reduce values of every tile to its left. Tiles partition [0, n).
//
// StrictScan does not skip tiles on cancellation; ctx is only consulted
// before any work starts.
func StrictScan[V any](ctx context.Context, ex *Executor, n int, initial V,
	reduce func(i, length int) V,
	combine func(a, b V) V,
	scan func(i, length int, offset V),
	apex func(total V),
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n > 1 {
		if err := ex.Err(); err != nil {
			return err
		}
	}

	return Protect(func() error {
		if n < 2 {
			// Fewer than 2 elements: handle as a single tile.
			sum := initial
			if n > 0 {
				sum = combine(sum, reduce(0, n))
			}
			apex(sum)
			if n > 0 {
				scan(0, n, initial)
			}
			return nil
		}

		p := ex.Workers()
		tilesize := (n-1)/(scanSlack*p) + 1
		m := (n - 1) / tilesize
		lastsize := n - m*tilesize
		r := make([]V, m+1)

		var upsweep func(i, m int, r []V, lastsize int) error
		upsweep = func(i, m int, r []V, lastsize int) error {
			if m == 1 {
				r[0] = reduce(i*tilesize, lastsize)
				return nil
			}
			k := splitPow2(m)
			err := ex.sched.Join(
				func() error { return upsweep(i, k, r, tilesize) },
				func() error { return upsweep(i+k, m-k, r[k:], lastsize) },
			)
			if err != nil {
				return err
			}
			if m == 2*k {
				r[m-1] = combine(r[k-1], r[m-1])
			}
			return nil
		}

		var downsweep func(i, m int, r []V, lastsize int, initial V) error
		downsweep = func(i, m int, r []V, lastsize int, initial V) error {
			if m == 1 {
				scan(i*tilesize, lastsize, initial)
				return nil
			}
			k := splitPow2(m)
			return ex.sched.Join(
				func() error { return downsweep(i, k, r, tilesize, initial) },
				func() error { return downsweep(i+k, m-k, r[k:], lastsize, combine(initial, r[k-1])) },
			)
		}

		if err := upsweep(0, m+1, r, lastsize); err != nil {
			return err
		}

		// Combine the roots of the complete subtrees left of the apex.
		k := m + 1
		t := r[k-1]
		for k &= k - 1; k != 0; k &= k - 1 {
			t = combine(r[k-1], t)
		}
		apex(combine(initial, t))

		return downsweep(0, m+1, r, lastsize, initial)
	})
}
