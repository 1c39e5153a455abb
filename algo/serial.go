// Copyright 2025 The go-pstl Authors. SPDX-License-Identifier: Apache-2.0

package algo

import (
	"github.com/ajroetker/go-pstl/execution"
	"github.com/ajroetker/go-pstl/internal/brick"
)

// The algorithms below only have a serial scalar path. Other policies are
// accepted and recorded as degraded.

// Unique removes consecutive elements equal under eq from s in place and
// returns the new length. Elements past it are zeroed.
func Unique[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, eq func(a, b T) bool) int {
	serialOnly(pol, "unique")
	return brick.Unique(s, eq)
}

// RemoveIf removes the elements satisfying pred from s in place, keeping
// the order of the rest, and returns the new length.
func RemoveIf[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, pred func(T) bool) int {
	serialOnly(pol, "remove_if")
	return brick.RemoveIf(s, pred)
}

// Rotate rotates s left by mid and returns the new index of the element
// that was first.
func Rotate[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, mid int) int {
	serialOnly(pol, "rotate")
	return brick.Rotate(s, mid)
}

// Partition moves the elements satisfying pred to the front of s and
// returns their count.
func Partition[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, pred func(T) bool) int {
	serialOnly(pol, "partition")
	return brick.Partition(s, pred)
}

// StablePartition is Partition keeping the relative order of both groups.
func StablePartition[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, pred func(T) bool) int {
	serialOnly(pol, "stable_partition")
	return brick.StablePartition(s, pred)
}

// IsPartitioned reports whether every element satisfying pred precedes
// every element that does not.
func IsPartitioned[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, pred func(T) bool) bool {
	serialOnly(pol, "is_partitioned")
	return brick.IsPartitioned(s, pred)
}

// PartialSort places the middle smallest elements of s, sorted, in
// s[:middle].
func PartialSort[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, middle int, cmp func(a, b T) int) {
	serialOnly(pol, "partial_sort")
	brick.PartialSort(s, middle, cmp)
}

// PartialSortCopy fills dst with the smallest elements of src in sorted
// order and returns how many were written.
func PartialSortCopy[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], dst, src []T, cmp func(a, b T) int) int {
	serialOnly(pol, "partial_sort_copy")
	return brick.PartialSortCopy(dst, src, cmp)
}

// NthElement puts in s[nth] the element a full sort would place there and
// partitions the rest around it.
func NthElement[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, nth int, cmp func(a, b T) int) {
	serialOnly(pol, "nth_element")
	brick.NthElement(s, nth, cmp)
}

// InplaceMerge merges the sorted runs s[:mid] and s[mid:] stably.
func InplaceMerge[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, mid int, cmp func(a, b T) int) {
	serialOnly(pol, "inplace_merge")
	brick.InplaceMerge(s, mid, cmp)
}

// Includes reports whether sorted a contains every element of sorted b,
// counting multiplicity.
func Includes[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], a, b []T, cmp func(x, y T) int) bool {
	serialOnly(pol, "includes")
	return brick.Includes(a, b, cmp)
}

// SetUnion writes the union of sorted a and b to dst and returns its
// length.
func SetUnion[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], dst, a, b []T, cmp func(x, y T) int) int {
	serialOnly(pol, "set_union")
	return brick.SetUnion(dst, a, b, cmp)
}

// SetIntersection writes the intersection of sorted a and b to dst and
// returns its length.
func SetIntersection[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], dst, a, b []T, cmp func(x, y T) int) int {
	serialOnly(pol, "set_intersection")
	return brick.SetIntersection(dst, a, b, cmp)
}

// SetDifference writes the elements of sorted a not in sorted b to dst and
// returns how many were written.
func SetDifference[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], dst, a, b []T, cmp func(x, y T) int) int {
	serialOnly(pol, "set_difference")
	return brick.SetDifference(dst, a, b, cmp)
}

// SetSymmetricDifference writes the elements found in exactly one of
// sorted a and b to dst and returns how many were written.
func SetSymmetricDifference[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], dst, a, b []T, cmp func(x, y T) int) int {
	serialOnly(pol, "set_symmetric_difference")
	return brick.SetSymmetricDifference(dst, a, b, cmp)
}

// IsHeapUntil returns the length of the longest prefix of s that is a
// max-heap under cmp.
func IsHeapUntil[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, cmp func(a, b T) int) int {
	serialOnly(pol, "is_heap_until")
	return brick.IsHeapUntil(s, cmp)
}

// IsHeap reports whether s is a max-heap under cmp.
func IsHeap[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, cmp func(a, b T) int) bool {
	serialOnly(pol, "is_heap")
	return brick.IsHeapUntil(s, cmp) == len(s)
}

// Search returns the index of the first occurrence of sub in s, or -1. An
// empty sub is found at 0.
func Search[V execution.VectorTag, P execution.ParallelTag, T, U any](pol execution.Policy[V, P], s []T, sub []U, eq func(T, U) bool) int {
	serialOnly(pol, "search")
	if len(sub) == 0 {
		return 0
	}
	return notFound(brick.Search(s, sub, eq), len(s))
}

// SearchN returns the index of the first run of count elements equal under
// eq to v, or -1. A count of zero or less is found at 0.
func SearchN[V execution.VectorTag, P execution.ParallelTag, T, U any](pol execution.Policy[V, P], s []T, count int, v U, eq func(T, U) bool) int {
	serialOnly(pol, "search_n")
	if count <= 0 {
		return 0
	}
	return notFound(brick.SearchN(s, count, v, eq), len(s))
}

// FindEnd returns the index of the last occurrence of sub in s, or -1.
func FindEnd[V execution.VectorTag, P execution.ParallelTag, T, U any](pol execution.Policy[V, P], s []T, sub []U, eq func(T, U) bool) int {
	serialOnly(pol, "find_end")
	if len(sub) == 0 {
		return -1
	}
	return notFound(brick.FindEnd(s, sub, eq), len(s))
}
