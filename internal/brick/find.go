package brick

import (
	"slices"

	"github.com/samber/lo"

	"github.com/ajroetker/go-pstl/simd"
)

// FindIf returns the index of the first element satisfying pred, or len(s).
func FindIf[T any](s []T, pred func(T) bool, vec bool) int {
	if vec {
		return simd.First(len(s), simd.Lanes[T](), func(i int) bool { return pred(s[i]) })
	}
	if i := slices.IndexFunc(s, pred); i >= 0 {
		return i
	}
	return len(s)
}

// AnyOf reports whether some element satisfies pred.
func AnyOf[T any](s []T, pred func(T) bool, vec bool) bool {
	if vec {
		return simd.Or(len(s), simd.Lanes[T](), func(i int) bool { return pred(s[i]) })
	}
	return lo.SomeBy(s, pred)
}

// AllOf reports whether every element satisfies pred.
func AllOf[T any](s []T, pred func(T) bool, vec bool) bool {
	if vec {
		return !simd.Or(len(s), simd.Lanes[T](), func(i int) bool { return !pred(s[i]) })
	}
	return lo.EveryBy(s, pred)
}

// CountIf returns the number of elements satisfying pred.
func CountIf[T any](s []T, pred func(T) bool, vec bool) int {
	if vec {
		return simd.Count(len(s), simd.Lanes[T](), func(i int) bool { return pred(s[i]) })
	}
	return lo.CountBy(s, pred)
}

// Mismatch returns the first index i < min(len(a), len(b)) where
// eq(a[i], b[i]) is false, or min(len(a), len(b)).
func Mismatch[T, U any](a []T, b []U, eq func(T, U) bool, vec bool) int {
	n := min(len(a), len(b))
	if vec {
		return simd.First(n, min(simd.Lanes[T](), simd.Lanes[U]()), func(i int) bool { return !eq(a[i], b[i]) })
	}
	for i := range n {
		if !eq(a[i], b[i]) {
			return i
		}
	}
	return n
}

// Equal reports whether a and b have the same length and eq holds
// element-wise.
func Equal[T, U any](a []T, b []U, eq func(T, U) bool, vec bool) bool {
	return len(a) == len(b) && Mismatch(a, b, eq, vec) == len(a)
}

// AdjacentFind returns the first i with pred(s[i], s[i+1]), or len(s).
func AdjacentFind[T any](s []T, pred func(a, b T) bool, vec bool) int {
	n := len(s)
	if n < 2 {
		return n
	}
	if vec {
		i := simd.First(n-1, simd.Lanes[T](), func(i int) bool { return pred(s[i], s[i+1]) })
		if i < n-1 {
			return i
		}
		return n
	}
	for i := 0; i+1 < n; i++ {
		if pred(s[i], s[i+1]) {
			return i
		}
	}
	return n
}

// FindFirstOf returns the index of the first element of s equal to any
// element of set, or len(s).
func FindFirstOf[T, U any](s []T, set []U, eq func(T, U) bool, vec bool) int {
	return FindIf(s, func(v T) bool {
		return slices.ContainsFunc(set, func(u U) bool { return eq(v, u) })
	}, vec)
}

// Search returns the start of the first occurrence of sub in s, or len(s).
// An empty sub matches at 0.
func Search[T, U any](s []T, sub []U, eq func(T, U) bool) int {
	n, m := len(s), len(sub)
	if m == 0 {
		return 0
	}
	for i := 0; i+m <= n; i++ {
		if Mismatch(s[i:i+m], sub, eq, false) == m {
			return i
		}
	}
	return n
}

// SearchN returns the start of the first run of count elements equal to v,
// or len(s). A non-positive count matches at 0.
func SearchN[T, U any](s []T, count int, v U, eq func(T, U) bool) int {
	if count <= 0 {
		return 0
	}
	run := 0
	for i, x := range s {
		if !eq(x, v) {
			run = 0
			continue
		}
		run++
		if run == count {
			return i - count + 1
		}
	}
	return len(s)
}

// FindEnd returns the start of the last occurrence of sub in s, or len(s).
// An empty sub never matches.
func FindEnd[T, U any](s []T, sub []U, eq func(T, U) bool) int {
	n, m := len(s), len(sub)
	if m == 0 || m > n {
		return n
	}
	for i := n - m; i >= 0; i-- {
		if Mismatch(s[i:i+m], sub, eq, false) == m {
			return i
		}
	}
	return n
}

// LexicographicalCompare reports whether a orders before b.
func LexicographicalCompare[T any](a, b []T, less func(x, y T) bool) bool {
	n := min(len(a), len(b))
	for i := range n {
		switch {
		case less(a[i], b[i]):
			return true
		case less(b[i], a[i]):
			return false
		}
	}
	return len(a) < len(b)
}

// IsPartitioned reports whether every element satisfying pred precedes
// every element that does not.
func IsPartitioned[T any](s []T, pred func(T) bool) bool {
	i := 0
	for i < len(s) && pred(s[i]) {
		i++
	}
	for ; i < len(s); i++ {
		if pred(s[i]) {
			return false
		}
	}
	return true
}
