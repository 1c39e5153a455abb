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

package brick

import (
	"slices"

	"github.com/ajroetker/go-pstl/par"
)

// Sort sorts s by cmp. It is not stable.
func Sort[T any](s []T, cmp func(a, b T) int) {
	slices.SortFunc(s, cmp)
}

// StableSort sorts s by cmp keeping equal elements in order.
func StableSort[T any](s []T, cmp func(a, b T) int) {
	slices.SortStableFunc(s, cmp)
}

// IsSortedUntil returns the length of the longest sorted prefix of s.
func IsSortedUntil[T any](s []T, cmp func(a, b T) int, vec bool) int {
	i := AdjacentFind(s, func(a, b T) bool { return cmp(b, a) < 0 }, vec)
	if i == len(s) {
		return i
	}
	return i + 1
}

// PartialSort rearranges s so that s[:middle] holds the middle smallest
// elements in sorted order. The order of s[middle:] is unspecified.
func PartialSort[T any](s []T, middle int, cmp func(a, b T) int) {
	if middle <= 0 {
		return
	}
	if middle >= len(s) {
		slices.SortFunc(s, cmp)
		return
	}
	h := s[:middle]
	makeHeap(h, cmp)
	for i := middle; i < len(s); i++ {
		if cmp(s[i], h[0]) < 0 {
			h[0], s[i] = s[i], h[0]
			siftDown(h, 0, cmp)
		}
	}
	sortHeap(h, cmp)
}

// PartialSortCopy copies the smallest min(len(src), len(dst)) elements of
// src into dst in sorted order and returns their count.
func PartialSortCopy[T any](dst, src []T, cmp func(a, b T) int) int {
	k := min(len(src), len(dst))
	if k == 0 {
		return 0
	}
	h := dst[:k]
	copy(h, src[:k])
	makeHeap(h, cmp)
	for _, v := range src[k:] {
		if cmp(v, h[0]) < 0 {
			h[0] = v
			siftDown(h, 0, cmp)
		}
	}
	sortHeap(h, cmp)
	return k
}

// NthElement rearranges s so that s[nth] holds the element a full sort
// would put there, with no greater element before it and no smaller one
// after it.
func NthElement[T any](s []T, nth int, cmp func(a, b T) int) {
	if nth < 0 || nth >= len(s) {
		return
	}
	lo, hi := 0, len(s)
	for hi-lo > 16 {
		m := lo + (hi-lo)/2
		// Median of three into s[lo].
		if cmp(s[m], s[lo]) < 0 {
			s[m], s[lo] = s[lo], s[m]
		}
		if cmp(s[hi-1], s[m]) < 0 {
			s[hi-1], s[m] = s[m], s[hi-1]
			if cmp(s[m], s[lo]) < 0 {
				s[m], s[lo] = s[lo], s[m]
			}
		}
		s[lo], s[m] = s[m], s[lo]
		pivot := s[lo]

		// Three-way partition of s[lo+1:hi] around pivot.
		lt, i, gt := lo, lo+1, hi
		for i < gt {
			switch c := cmp(s[i], pivot); {
			case c < 0:
				s[lt], s[i] = s[i], s[lt]
				lt++
				i++
			case c > 0:
				gt--
				s[i], s[gt] = s[gt], s[i]
			default:
				i++
			}
		}
		switch {
		case nth < lt:
			hi = lt
		case nth >= gt:
			lo = gt
		default:
			return
		}
	}
	slices.SortFunc(s[lo:hi], cmp)
}

// IsHeapUntil returns the length of the longest prefix of s that is a
// max-heap under cmp.
func IsHeapUntil[T any](s []T, cmp func(a, b T) int) int {
	for i := 1; i < len(s); i++ {
		if cmp(s[(i-1)/2], s[i]) < 0 {
			return i
		}
	}
	return len(s)
}

func makeHeap[T any](h []T, cmp func(a, b T) int) {
	for i := len(h)/2 - 1; i >= 0; i-- {
		siftDown(h, i, cmp)
	}
}

func sortHeap[T any](h []T, cmp func(a, b T) int) {
	for end := len(h) - 1; end > 0; end-- {
		h[0], h[end] = h[end], h[0]
		siftDown(h[:end], 0, cmp)
	}
}

// siftDown restores the max-heap property below i.
func siftDown[T any](h []T, i int, cmp func(a, b T) int) {
	n := len(h)
	for {
		c := 2*i + 1
		if c >= n {
			return
		}
		if c+1 < n && cmp(h[c], h[c+1]) < 0 {
			c++
		}
		if cmp(h[i], h[c]) >= 0 {
			return
		}
		h[i], h[c] = h[c], h[i]
		i = c
	}
}

// Merge merges sorted a and b into dst and returns len(a)+len(b). On ties
// elements of a come first.
func Merge[T any](dst, a, b []T, cmp func(x, y T) int) int {
	par.SerialMoveMerge(a, b, dst, cmp)
	return len(a) + len(b)
}

// InplaceMerge merges the sorted runs s[:mid] and s[mid:] in place, stably.
func InplaceMerge[T any](s []T, mid int, cmp func(a, b T) int) {
	if mid <= 0 || mid >= len(s) {
		return
	}
	left := slices.Clone(s[:mid])
	par.SerialMoveMerge(left, s[mid:], s, cmp)
}
