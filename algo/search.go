package algo

import (
	"github.com/ajroetker/go-pstl/execution"
	"github.com/ajroetker/go-pstl/internal/brick"
	"github.com/ajroetker/go-pstl/par"
)

var (
	anyOfAlg       = execution.Algorithm{Name: "any_of", Vector: true, Parallel: true, EarlyExit: true}
	allOfAlg       = execution.Algorithm{Name: "all_of", Vector: true, Parallel: true, EarlyExit: true}
	noneOfAlg      = execution.Algorithm{Name: "none_of", Vector: true, Parallel: true, EarlyExit: true}
	findAlg        = execution.Algorithm{Name: "find_if", Vector: true, Parallel: true, EarlyExit: true}
	findFirstOfAlg = execution.Algorithm{Name: "find_first_of", Vector: true, Parallel: true, EarlyExit: true}
	countAlg       = execution.Algorithm{Name: "count_if", Vector: true, Parallel: true}
	adjacentAlg    = execution.Algorithm{Name: "adjacent_find", Vector: true, Parallel: true, EarlyExit: true}
	isSortedAlg    = execution.Algorithm{Name: "is_sorted", Vector: true, Parallel: true, EarlyExit: true}
	mismatchAlg    = execution.Algorithm{Name: "mismatch", Vector: true, Parallel: true, EarlyExit: true}
	equalAlg       = execution.Algorithm{Name: "equal", Vector: true, Parallel: true, EarlyExit: true}
	lexCompareAlg  = execution.Algorithm{Name: "lexicographical_compare", Vector: true, Parallel: true, EarlyExit: true}
)

// anyLeaf reports whether some leaf of [0, n) satisfies hit.
func anyLeaf(rt *execution.Runtime, name string, n int, hit func(i, j int) bool) bool {
	return execution.Handle(rt, name,
		func() (bool, error) { return par.Or(bg, rt.Executor(), 0, n, hit) },
		func() bool { return hit(0, n) },
	)
}

// firstLeaf returns the smallest position reported by at over the leaves of
// [0, n), or n.
func firstLeaf(rt *execution.Runtime, name string, n int, at func(i, j int) int) int {
	return execution.Handle(rt, name,
		func() (int, error) { return par.First(bg, rt.Executor(), 0, n, at) },
		func() int { return at(0, n) },
	)
}

// AnyOf reports whether some element of s satisfies pred.
func AnyOf[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, pred func(T) bool) bool {
	rt, vec, parallel := resolve(pol, anyOfAlg)
	if !parallel {
		return brick.AnyOf(s, pred, vec)
	}
	return anyLeaf(rt, anyOfAlg.Name, len(s), func(i, j int) bool {
		return brick.AnyOf(s[i:j], pred, vec)
	})
}

// AllOf reports whether every element of s satisfies pred. It is true for
// an empty s.
func AllOf[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, pred func(T) bool) bool {
	rt, vec, parallel := resolve(pol, allOfAlg)
	if !parallel {
		return brick.AllOf(s, pred, vec)
	}
	return !anyLeaf(rt, allOfAlg.Name, len(s), func(i, j int) bool {
		return !brick.AllOf(s[i:j], pred, vec)
	})
}

// NoneOf reports whether no element of s satisfies pred.
func NoneOf[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, pred func(T) bool) bool {
	rt, vec, parallel := resolve(pol, noneOfAlg)
	if !parallel {
		return !brick.AnyOf(s, pred, vec)
	}
	return !anyLeaf(rt, noneOfAlg.Name, len(s), func(i, j int) bool {
		return brick.AnyOf(s[i:j], pred, vec)
	})
}

// Find returns the index of the first element equal to v, or -1.
func Find[V execution.VectorTag, P execution.ParallelTag, T comparable](pol execution.Policy[V, P], s []T, v T) int {
	return FindIf(pol, s, func(x T) bool { return x == v })
}

// FindIf returns the index of the first element satisfying pred, or -1.
func FindIf[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, pred func(T) bool) int {
	rt, vec, parallel := resolve(pol, findAlg)
	if !parallel {
		return notFound(brick.FindIf(s, pred, vec), len(s))
	}
	return notFound(firstLeaf(rt, findAlg.Name, len(s), func(i, j int) int {
		return i + brick.FindIf(s[i:j], pred, vec)
	}), len(s))
}

// FindIfNot returns the index of the first element not satisfying pred, or
// -1.
func FindIfNot[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, pred func(T) bool) int {
	return FindIf(pol, s, func(x T) bool { return !pred(x) })
}

// FindFirstOf returns the index of the first element of s equal under eq
// to some element of set, or -1.
func FindFirstOf[V execution.VectorTag, P execution.ParallelTag, T, U any](pol execution.Policy[V, P], s []T, set []U, eq func(T, U) bool) int {
	rt, vec, parallel := resolve(pol, findFirstOfAlg)
	if !parallel {
		return notFound(brick.FindFirstOf(s, set, eq, vec), len(s))
	}
	return notFound(firstLeaf(rt, findFirstOfAlg.Name, len(s), func(i, j int) int {
		return i + brick.FindFirstOf(s[i:j], set, eq, vec)
	}), len(s))
}

// Count returns the number of elements equal to v.
func Count[V execution.VectorTag, P execution.ParallelTag, T comparable](pol execution.Policy[V, P], s []T, v T) int {
	return CountIf(pol, s, func(x T) bool { return x == v })
}

// CountIf returns the number of elements satisfying pred.
func CountIf[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, pred func(T) bool) int {
	rt, vec, parallel := resolve(pol, countAlg)
	if !parallel {
		return brick.CountIf(s, pred, vec)
	}
	return execution.Handle(rt, countAlg.Name,
		func() (int, error) {
			return par.Reduce(bg, rt.Executor(), 0, len(s), 0,
				func(i, j, acc int) int { return acc + brick.CountIf(s[i:j], pred, vec) },
				func(a, b int) int { return a + b },
			)
		},
		func() int { return brick.CountIf(s, pred, vec) },
	)
}

// adjacentFind returns the first i with pred(s[i], s[i+1]), or len(s).
// Each leaf looks one element past its end so pairs straddling two leaves
// are seen by the left one.
func adjacentFind[T any](rt *execution.Runtime, name string, vec, parallel bool, s []T, pred func(a, b T) bool) int {
	n := len(s)
	if n < 2 {
		return n
	}
	if !parallel {
		return brick.AdjacentFind(s, pred, vec)
	}
	return firstLeaf(rt, name, n, func(i, j int) int {
		k := brick.AdjacentFind(s[i:min(j+1, n)], pred, vec)
		if k >= j-i {
			return j
		}
		return i + k
	})
}

// AdjacentFind returns the first index i with pred(s[i], s[i+1]), or -1.
func AdjacentFind[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, pred func(a, b T) bool) int {
	if len(s) < 2 {
		return -1
	}
	rt, vec, parallel := resolve(pol, adjacentAlg)
	return notFound(adjacentFind(rt, adjacentAlg.Name, vec, parallel, s, pred), len(s))
}

// IsSorted reports whether s is sorted by cmp.
func IsSorted[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, cmp func(a, b T) int) bool {
	n := len(s)
	if n < 2 {
		return true
	}
	rt, vec, parallel := resolve(pol, isSortedAlg)
	descent := func(a, b T) bool { return cmp(b, a) < 0 }
	if !parallel {
		return brick.AdjacentFind(s, descent, vec) == n
	}
	return !anyLeaf(rt, isSortedAlg.Name, n, func(i, j int) bool {
		e := min(j+1, n)
		return brick.AdjacentFind(s[i:e], descent, vec) != e-i
	})
}

// IsSortedUntil returns the length of the longest sorted prefix of s.
func IsSortedUntil[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, cmp func(a, b T) int) int {
	n := len(s)
	if n < 2 {
		return n
	}
	rt, vec, parallel := resolve(pol, isSortedAlg)
	i := adjacentFind(rt, isSortedAlg.Name, vec, parallel, s, func(a, b T) bool { return cmp(b, a) < 0 })
	if i == n {
		return n
	}
	return i + 1
}

// Mismatch returns the first index where a and b differ under eq, or the
// shorter length when they agree on it.
func Mismatch[V execution.VectorTag, P execution.ParallelTag, T, U any](pol execution.Policy[V, P], a []T, b []U, eq func(T, U) bool) int {
	rt, vec, parallel := resolve(pol, mismatchAlg)
	return mismatch(rt, mismatchAlg.Name, vec, parallel, a, b, eq)
}

func mismatch[T, U any](rt *execution.Runtime, name string, vec, parallel bool, a []T, b []U, eq func(T, U) bool) int {
	n := min(len(a), len(b))
	if !parallel {
		return brick.Mismatch(a, b, eq, vec)
	}
	return firstLeaf(rt, name, n, func(i, j int) int {
		return i + brick.Mismatch(a[i:j], b[i:j], eq, vec)
	})
}

// Equal reports whether a and b have the same length and eq holds for
// every pair of elements.
func Equal[V execution.VectorTag, P execution.ParallelTag, T, U any](pol execution.Policy[V, P], a []T, b []U, eq func(T, U) bool) bool {
	if len(a) != len(b) {
		return false
	}
	rt, vec, parallel := resolve(pol, equalAlg)
	if !parallel {
		return brick.Equal(a, b, eq, vec)
	}
	return !anyLeaf(rt, equalAlg.Name, len(a), func(i, j int) bool {
		return !brick.Equal(a[i:j], b[i:j], eq, vec)
	})
}

// LexicographicalCompare reports whether a orders before b: at the first
// position where one element is less than the other, or, when one is a
// prefix of the other, if a is the shorter.
func LexicographicalCompare[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], a, b []T, less func(x, y T) bool) bool {
	rt, vec, parallel := resolve(pol, lexCompareAlg)
	if !parallel && !vec {
		return brick.LexicographicalCompare(a, b, less)
	}
	k := mismatch(rt, lexCompareAlg.Name, vec, parallel, a, b, func(x, y T) bool {
		return !less(x, y) && !less(y, x)
	})
	if k < min(len(a), len(b)) {
		return less(a[k], b[k])
	}
	return len(a) < len(b)
}
