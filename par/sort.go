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

import (
	"context"
	"slices"
	"sort"
)

// StableSort sorts data with a recursive merge sort. Leaves are sorted with
// leaf (slices.SortStableFunc when nil) and adjacent runs are combined with
// the stable parallel Merge, so equal elements keep their input order.
func StableSort[T any](ctx context.Context, ex *Executor, data []T, cmp func(a, b T) int, leaf func([]T)) error {
	n := len(data)
	if n < 2 {
		return nil
	}
	if err := ex.Err(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if leaf == nil {
		leaf = func(s []T) { slices.SortStableFunc(s, cmp) }
	}
	cutoff := ex.leafSize(n)
	buf := make([]T, n)

	// mergeSort sorts xs. The result lands in xs when inplace is set and in
	// zs otherwise; zs is scratch of the same length.
	var mergeSort func(xs, zs []T, inplace bool) error
	mergeSort = func(xs, zs []T, inplace bool) error {
		if len(xs) <= cutoff {
			leaf(xs)
			if !inplace {
				copy(zs, xs)
			}
			return nil
		}
		mid := len(xs) / 2
		err := ex.sched.Join(
			func() error { return mergeSort(xs[:mid], zs[:mid], !inplace) },
			func() error { return mergeSort(xs[mid:], zs[mid:], !inplace) },
		)
		if err != nil {
			return err
		}
		if inplace {
			return merge(ex, zs[:mid], zs[mid:], xs, cmp, cutoff)
		}
		return merge(ex, xs[:mid], xs[mid:], zs, cmp, cutoff)
	}

	return Protect(func() error { return mergeSort(data, buf, true) })
}

// Merge merges the sorted runs a and b into dst, which must have room for
// len(a)+len(b) elements. On ties elements of a come first.
func Merge[T any](ctx context.Context, ex *Executor, a, b, dst []T, cmp func(x, y T) int) error {
	n := len(a) + len(b)
	if n == 0 {
		return nil
	}
	if err := ex.Err(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return Protect(func() error { return merge(ex, a, b, dst[:n], cmp, ex.leafSize(n)) })
}

func merge[T any](ex *Executor, a, b, dst []T, cmp func(x, y T) int, cutoff int) error {
	n := len(a) + len(b)
	if n <= max(cutoff, 2) || len(a) == 0 || len(b) == 0 {
		SerialMoveMerge(a, b, dst, cmp)
		return nil
	}

	// Split the longer run in half and cut the other run so that every
	// element equal to the pivot stays on the side that keeps a before b.
	var ma, mb int
	if len(a) >= len(b) {
		ma = len(a) / 2
		x := a[ma]
		mb, _ = slices.BinarySearchFunc(b, x, cmp) // first b >= x
	} else {
		mb = len(b) / 2
		y := b[mb]
		ma = sort.Search(len(a), func(i int) bool { return cmp(a[i], y) > 0 }) // first a > y
	}
	k := ma + mb
	return ex.sched.Join(
		func() error { return merge(ex, a[:ma], b[:mb], dst[:k], cmp, cutoff) },
		func() error { return merge(ex, a[ma:], b[mb:], dst[k:], cmp, cutoff) },
	)
}

// SerialMoveMerge merges sorted a and b into dst. Elements of b are taken
// only when strictly less than the current element of a.
func SerialMoveMerge[T any](a, b, dst []T, cmp func(x, y T) int) {
	i, j, k := 0, 0, 0
	for i < len(a) && j < len(b) {
		if cmp(b[j], a[i]) < 0 {
			dst[k] = b[j]
			j++
		} else {
			dst[k] = a[i]
			i++
		}
		k++
	}
	k += copy(dst[k:], a[i:])
	copy(dst[k:], b[j:])
}
