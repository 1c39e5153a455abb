// Copyright 2025 The go-pstl Authors. SPDX-License-Identifier: Apache-2.0

package algo

import (
	"github.com/ajroetker/go-pstl/execution"
	"github.com/ajroetker/go-pstl/internal/brick"
	"github.com/ajroetker/go-pstl/par"
)

var (
	forEachAlg     = execution.Algorithm{Name: "for_each", Vector: true, Parallel: true}
	transformAlg   = execution.Algorithm{Name: "transform", Vector: true, Parallel: true}
	fillAlg        = execution.Algorithm{Name: "fill", Vector: true, Parallel: true}
	generateAlg    = execution.Algorithm{Name: "generate", Vector: true, Parallel: true}
	copyAlg        = execution.Algorithm{Name: "copy", Vector: true, Parallel: true}
	replaceAlg     = execution.Algorithm{Name: "replace", Vector: true, Parallel: true}
	reverseAlg     = execution.Algorithm{Name: "reverse", Parallel: true}
	reverseCopyAlg = execution.Algorithm{Name: "reverse_copy", Parallel: true}
	rotateCopyAlg  = execution.Algorithm{Name: "rotate_copy", Vector: true, Parallel: true}
	swapRangesAlg  = execution.Algorithm{Name: "swap_ranges", Vector: true, Parallel: true}
)

// walk runs leaf over [0, n) either directly or split across the runtime's
// executor.
func walk(rt *execution.Runtime, name string, parallel bool, n int, leaf func(i, j int)) {
	if !parallel {
		leaf(0, n)
		return
	}
	execution.Run(rt, name,
		func() error { return par.For(bg, rt.Executor(), 0, n, leaf) },
		func() { leaf(0, n) },
	)
}

// ForEach calls f on a pointer to every element of s.
func ForEach[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, f func(*T)) {
	rt, vec, parallel := resolve(pol, forEachAlg)
	walk(rt, forEachAlg.Name, parallel, len(s), func(i, j int) {
		brick.Walk1(s[i:j], f, vec)
	})
}

// ForEachN calls f on the first n elements of s and returns n.
func ForEachN[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, n int, f func(*T)) int {
	if n <= 0 {
		return 0
	}
	ForEach(pol, s[:n], f)
	return n
}

// Transform stores f(src[i]) into dst[i] and returns len(src).
func Transform[V execution.VectorTag, P execution.ParallelTag, T, U any](pol execution.Policy[V, P], dst []U, src []T, f func(T) U) int {
	rt, vec, parallel := resolve(pol, transformAlg)
	dst = dst[:len(src)]
	walk(rt, transformAlg.Name, parallel, len(src), func(i, j int) {
		brick.Walk2(src[i:j], dst[i:j], func(x *T, y *U) { *y = f(*x) }, vec)
	})
	return len(src)
}

// TransformBinary stores f(a[i], b[i]) into dst[i] and returns len(a).
func TransformBinary[V execution.VectorTag, P execution.ParallelTag, T, U, W any](pol execution.Policy[V, P], dst []W, a []T, b []U, f func(T, U) W) int {
	rt, vec, parallel := resolve(pol, transformAlg)
	n := len(a)
	b, dst = b[:n], dst[:n]
	walk(rt, transformAlg.Name, parallel, n, func(i, j int) {
		brick.Walk3(a[i:j], b[i:j], dst[i:j], func(x *T, y *U, z *W) { *z = f(*x, *y) }, vec)
	})
	return n
}

// Fill sets every element of s to v.
func Fill[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, v T) {
	rt, vec, parallel := resolve(pol, fillAlg)
	walk(rt, fillAlg.Name, parallel, len(s), func(i, j int) {
		brick.Fill(s[i:j], v, vec)
	})
}

// FillN sets the first n elements of s to v and returns n.
func FillN[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, n int, v T) int {
	if n <= 0 {
		return 0
	}
	Fill(pol, s[:n], v)
	return n
}

// Generate assigns the results of successive gen calls to s. Under a
// parallel policy gen is called concurrently and the order of calls is
// unspecified.
func Generate[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, gen func() T) {
	rt, vec, parallel := resolve(pol, generateAlg)
	walk(rt, generateAlg.Name, parallel, len(s), func(i, j int) {
		brick.Generate(s[i:j], gen, vec)
	})
}

// GenerateN generates the first n elements of s and returns n.
func GenerateN[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, n int, gen func() T) int {
	if n <= 0 {
		return 0
	}
	Generate(pol, s[:n], gen)
	return n
}

// Copy copies src into dst and returns len(src). dst and src must not
// overlap.
func Copy[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], dst, src []T) int {
	rt, vec, parallel := resolve(pol, copyAlg)
	dst = dst[:len(src)]
	walk(rt, copyAlg.Name, parallel, len(src), func(i, j int) {
		brick.Copy(dst[i:j], src[i:j], vec)
	})
	return len(src)
}

// CopyN copies the first n elements of src into dst and returns n.
func CopyN[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], dst, src []T, n int) int {
	if n <= 0 {
		return 0
	}
	return Copy(pol, dst, src[:n])
}

// Replace sets every element equal to old to v.
func Replace[V execution.VectorTag, P execution.ParallelTag, T comparable](pol execution.Policy[V, P], s []T, old, v T) {
	ReplaceIf(pol, s, func(x T) bool { return x == old }, v)
}

// ReplaceIf sets every element satisfying pred to v.
func ReplaceIf[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, pred func(T) bool, v T) {
	rt, vec, parallel := resolve(pol, replaceAlg)
	walk(rt, replaceAlg.Name, parallel, len(s), func(i, j int) {
		brick.ReplaceIf(s[i:j], pred, v, vec)
	})
}

// Reverse reverses s in place.
func Reverse[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T) {
	rt, _, parallel := resolve(pol, reverseAlg)
	n := len(s)
	walk(rt, reverseAlg.Name, parallel, n/2, func(i, j int) {
		brick.ReverseBlock(s[i:j], s[n-j:n-i])
	})
}

// ReverseCopy writes src to dst in reverse order and returns len(src).
func ReverseCopy[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], dst, src []T) int {
	rt, _, parallel := resolve(pol, reverseCopyAlg)
	n := len(src)
	dst = dst[:n]
	walk(rt, reverseCopyAlg.Name, parallel, n, func(i, j int) {
		brick.ReverseCopy(dst[n-j:n-i], src[i:j])
	})
	return n
}

// RotateCopy writes src[mid:] followed by src[:mid] to dst and returns
// len(src).
func RotateCopy[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], dst, src []T, mid int) int {
	rt, vec, parallel := resolve(pol, rotateCopyAlg)
	n := len(src)
	mid = min(max(mid, 0), n)
	if !parallel {
		return brick.RotateCopy(dst, src, mid)
	}
	// dst[o] = src[(o+mid) mod n]; the wrap point in dst is n-mid.
	wrap := n - mid
	dst = dst[:n]
	walk(rt, rotateCopyAlg.Name, true, n, func(i, j int) {
		if i < wrap {
			e := min(j, wrap)
			brick.Copy(dst[i:e], src[i+mid:e+mid], vec)
		}
		if j > wrap {
			b := max(i, wrap)
			brick.Copy(dst[b:j], src[b-wrap:j-wrap], vec)
		}
	})
	return n
}

// SwapRanges exchanges a[i] and b[i] for every i below len(a) and returns
// len(a).
func SwapRanges[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], a, b []T) int {
	rt, vec, parallel := resolve(pol, swapRangesAlg)
	b = b[:len(a)]
	walk(rt, swapRangesAlg.Name, parallel, len(a), func(i, j int) {
		brick.SwapRanges(a[i:j], b[i:j], vec)
	})
	return len(a)
}
