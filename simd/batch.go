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

// Package simd provides lane-blocked batch primitives over Go slices.
//
// Every primitive walks its input in blocks of Lanes[T]() elements, evaluates
// one block into a Mask, and consumes the mask with bit operations. The
// results are identical to the plain element-by-element loop; only the
// iteration structure differs. Index based primitives take the block size
// explicitly so callers can batch over several slices at once.
//
// Usage:
//
//	lanes := simd.Lanes[int32]()
//	i := simd.First(len(s), lanes, func(i int) bool { return s[i] < 0 })
package simd

import "math/bits"

// Walk1 applies f to every element of s.
func Walk1[T any](s []T, f func(*T)) {
	lanes := Lanes[T]()
	n := len(s)
	i := 0
	for ; i+lanes <= n; i += lanes {
		blk := s[i : i+lanes]
		for j := range blk {
			f(&blk[j])
		}
	}
	for ; i < n; i++ {
		f(&s[i])
	}
}

// Walk2 applies f to a[i], b[i] for every i in [0, len(a)).
// b must be at least as long as a.
func Walk2[T, U any](a []T, b []U, f func(*T, *U)) {
	lanes := min(Lanes[T](), Lanes[U]())
	n := len(a)
	b = b[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		ba, bb := a[i:i+lanes], b[i:i+lanes]
		for j := range ba {
			f(&ba[j], &bb[j])
		}
	}
	for ; i < n; i++ {
		f(&a[i], &b[i])
	}
}

// Walk3 applies f to a[i], b[i], c[i] for every i in [0, len(a)).
func Walk3[T, U, W any](a []T, b []U, c []W, f func(*T, *U, *W)) {
	lanes := min(Lanes[T](), Lanes[U](), Lanes[W]())
	n := len(a)
	b, c = b[:n], c[:n]
	i := 0
	for ; i+lanes <= n; i += lanes {
		ba, bb, bc := a[i:i+lanes], b[i:i+lanes], c[i:i+lanes]
		for j := range ba {
			f(&ba[j], &bb[j], &bc[j])
		}
	}
	for ; i < n; i++ {
		f(&a[i], &b[i], &c[i])
	}
}

// Fill sets all elements in dst to value.
// Uses a doubling pattern that leverages Go's optimized memmove.
func Fill[T any](dst []T, value T) {
	n := len(dst)
	if n == 0 {
		return
	}

	dst[0] = value

	// Double the filled region each iteration
	for filled := 1; filled < n; filled *= 2 {
		copy(dst[filled:], dst[:filled])
	}
}

// Generate assigns gen() to every element of dst in order.
func Generate[T any](dst []T, gen func() T) {
	Walk1(dst, func(p *T) { *p = gen() })
}

// Copy copies src into dst and returns the number of elements copied.
func Copy[T any](dst, src []T) int {
	return copy(dst, src)
}

// First returns the smallest i in [0, n) for which pred(i) is true, or n.
func First(n, lanes int, pred func(i int) bool) int {
	lanes = min(max(lanes, 1), MaxBlock)
	for base := 0; base < n; base += lanes {
		if m := evalMask(base, min(lanes, n-base), pred); m.AnyTrue() {
			return base + m.FindFirstTrue()
		}
	}
	return n
}

// Or reports whether pred(i) holds for any i in [0, n).
// It stops at the first block containing a hit.
func Or(n, lanes int, pred func(i int) bool) bool {
	return First(n, lanes, pred) < n
}

// Count returns how many i in [0, n) satisfy pred.
func Count(n, lanes int, pred func(i int) bool) int {
	lanes = min(max(lanes, 1), MaxBlock)
	count := 0
	for base := 0; base < n; base += lanes {
		count += evalMask(base, min(lanes, n-base), pred).CountTrue()
	}
	return count
}

// CalcMask stores pred(i) into mask[i] for i in [first, last) and returns
// the number of true flags written.
func CalcMask(first, last, lanes int, mask []bool, pred func(i int) bool) int {
	lanes = min(max(lanes, 1), MaxBlock)
	count := 0
	for base := first; base < last; base += lanes {
		w := min(lanes, last-base)
		m := evalMask(base, w, pred)
		for l := range w {
			mask[base+l] = m&(1<<uint(l)) != 0
		}
		count += m.CountTrue()
	}
	return count
}

// CopyByMask writes src[i] to consecutive positions of dst for every i with
// mask[i] set, preserving order. It returns the number of elements written.
func CopyByMask[T any](dst, src []T, mask []bool) int {
	lanes := Lanes[T]()
	n := len(src)
	k := 0
	for base := 0; base < n; base += lanes {
		w := min(lanes, n-base)
		mk := loadMask(mask, base, w)
		if mk == FirstN(w) {
			k += copy(dst[k:], src[base:base+w])
			continue
		}
		m := uint64(mk)
		for m != 0 {
			l := bits.TrailingZeros64(m)
			dst[k] = src[base+l]
			k++
			m &= m - 1
		}
	}
	return k
}

// PartitionByMask writes src[i] to outTrue when mask[i] is set and to
// outFalse otherwise, preserving order in both outputs.
func PartitionByMask[T any](outTrue, outFalse, src []T, mask []bool) (nt, nf int) {
	lanes := Lanes[T]()
	n := len(src)
	for base := 0; base < n; base += lanes {
		w := min(lanes, n-base)
		m := loadMask(mask, base, w)
		for l := range w {
			if m&(1<<uint(l)) != 0 {
				outTrue[nt] = src[base+l]
				nt++
			} else {
				outFalse[nf] = src[base+l]
				nf++
			}
		}
	}
	return nt, nf
}

// Reduce folds f(0..n) into init with per-lane accumulators.
// op must be associative and commutative: lanes are combined in lane order
// after the main loop, which reorders operands relative to a plain fold.
func Reduce[V any](n, lanes int, init V, op func(a, b V) V, f func(i int) V) V {
	lanes = min(max(lanes, 1), MaxBlock)
	if 2*lanes >= n {
		for i := range n {
			init = op(init, f(i))
		}
		return init
	}

	acc := make([]V, lanes)
	for l := range acc {
		acc[l] = f(l)
	}
	i := lanes
	for ; i+lanes <= n; i += lanes {
		for l := range acc {
			acc[l] = op(acc[l], f(i+l))
		}
	}
	for l := 0; i+l < n; l++ {
		acc[l] = op(acc[l], f(i+l))
	}
	for _, v := range acc {
		init = op(init, v)
	}
	return init
}

// MinIndex returns the index of the first smallest element in [0, n)
// according to less, or -1 when n is 0.
func MinIndex(n, lanes int, less func(i, j int) bool) int {
	lanes = min(max(lanes, 1), MaxBlock)
	if n == 0 {
		return -1
	}
	if 2*lanes >= n {
		best := 0
		for i := 1; i < n; i++ {
			if less(i, best) {
				best = i
			}
		}
		return best
	}

	var cand [MaxBlock]int
	for l := range lanes {
		cand[l] = l
	}
	i := lanes
	for ; i+lanes <= n; i += lanes {
		for l := range lanes {
			if less(i+l, cand[l]) {
				cand[l] = i + l
			}
		}
	}
	for l := 0; i+l < n; l++ {
		if less(i+l, cand[l]) {
			cand[l] = i + l
		}
	}

	best := cand[0]
	for _, c := range cand[1:lanes] {
		if less(c, best) || (!less(best, c) && c < best) {
			best = c
		}
	}
	return best
}

// MinMaxIndex returns the first smallest and the last largest element in
// [0, n) according to less, or (-1, -1) when n is 0.
func MinMaxIndex(n, lanes int, less func(i, j int) bool) (lo, hi int) {
	lanes = min(max(lanes, 1), MaxBlock)
	if n == 0 {
		return -1, -1
	}
	if 2*lanes >= n {
		for i := 1; i < n; i++ {
			if less(i, lo) {
				lo = i
			}
			if !less(i, hi) {
				hi = i
			}
		}
		return lo, hi
	}

	var mins, maxs [MaxBlock]int
	for l := range lanes {
		mins[l], maxs[l] = l, l
	}
	i := lanes
	for ; i+lanes <= n; i += lanes {
		for l := range lanes {
			if less(i+l, mins[l]) {
				mins[l] = i + l
			}
			if !less(i+l, maxs[l]) {
				maxs[l] = i + l
			}
		}
	}
	for l := 0; i+l < n; l++ {
		if less(i+l, mins[l]) {
			mins[l] = i + l
		}
		if !less(i+l, maxs[l]) {
			maxs[l] = i + l
		}
	}

	lo, hi = mins[0], maxs[0]
	for l := 1; l < lanes; l++ {
		if c := mins[l]; less(c, lo) || (!less(lo, c) && c < lo) {
			lo = c
		}
		if c := maxs[l]; less(hi, c) || (!less(c, hi) && c > hi) {
			hi = c
		}
	}
	return lo, hi
}
