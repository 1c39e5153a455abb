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

// Package brick holds the single-mode building blocks the algorithms are
// made of. A brick works on exactly the slices it is given and never
// touches elements outside them, so a parallel caller can hand disjoint
// subslices to concurrent bricks.
//
// Bricks with a vectorized form take a vec flag; vec selects the lane
// batched primitives of package simd, otherwise the plain loop (or the
// slices / lo equivalent) runs. Both forms produce the same result.
//
// Searches return positions relative to the slice they were given and
// report "not found" as the slice length.
package brick

import "github.com/ajroetker/go-pstl/simd"

// Walk1 applies f to every element of s.
func Walk1[T any](s []T, f func(*T), vec bool) {
	if vec {
		simd.Walk1(s, f)
		return
	}
	for i := range s {
		f(&s[i])
	}
}

// Walk2 applies f to a[i], b[i] for every i in [0, len(a)).
func Walk2[T, U any](a []T, b []U, f func(*T, *U), vec bool) {
	if vec {
		simd.Walk2(a, b, f)
		return
	}
	for i := range a {
		f(&a[i], &b[i])
	}
}

// Walk3 applies f to a[i], b[i], c[i] for every i in [0, len(a)).
func Walk3[T, U, W any](a []T, b []U, c []W, f func(*T, *U, *W), vec bool) {
	if vec {
		simd.Walk3(a, b, c, f)
		return
	}
	for i := range a {
		f(&a[i], &b[i], &c[i])
	}
}

// Fill sets every element of s to v.
func Fill[T any](s []T, v T, vec bool) {
	if vec {
		simd.Fill(s, v)
		return
	}
	for i := range s {
		s[i] = v
	}
}

// Generate assigns gen() to every element of s in order.
func Generate[T any](s []T, gen func() T, vec bool) {
	if vec {
		simd.Generate(s, gen)
		return
	}
	for i := range s {
		s[i] = gen()
	}
}

// Copy copies src into dst and returns the number of elements copied.
func Copy[T any](dst, src []T, vec bool) int {
	if vec {
		return simd.Copy(dst, src)
	}
	return copy(dst, src)
}

// ReplaceIf sets every element satisfying pred to v.
func ReplaceIf[T any](s []T, pred func(T) bool, v T, vec bool) {
	Walk1(s, func(p *T) {
		if pred(*p) {
			*p = v
		}
	}, vec)
}

// SwapRanges exchanges a[i] and b[i] for every i in [0, len(a)).
func SwapRanges[T any](a, b []T, vec bool) {
	Walk2(a, b, func(x, y *T) { *x, *y = *y, *x }, vec)
}

// ReverseBlock swaps front[k] with back[len(back)-1-k] for every k. front
// and back have the same length and mirror each other within the slice
// being reversed.
func ReverseBlock[T any](front, back []T) {
	n := len(front)
	for k := range n {
		front[k], back[n-1-k] = back[n-1-k], front[k]
	}
}

// ReverseCopy writes src to dst in reverse order.
func ReverseCopy[T any](dst, src []T) {
	n := len(src)
	for k, v := range src {
		dst[n-1-k] = v
	}
}

// RotateCopy writes src rotated left by mid into dst:
// dst = src[mid:] followed by src[:mid].
func RotateCopy[T any](dst, src []T, mid int) int {
	k := copy(dst, src[mid:])
	return k + copy(dst[k:], src[:mid])
}
