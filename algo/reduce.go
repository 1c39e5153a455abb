// Copyright 2025 The go-pstl Authors. SPDX-License-Identifier: Apache-2.0

package algo

import (
	"github.com/ajroetker/go-pstl/execution"
	"github.com/ajroetker/go-pstl/internal/brick"
	"github.com/ajroetker/go-pstl/par"
)

var (
	minElementAlg    = execution.Algorithm{Name: "min_element", Vector: true, Parallel: true}
	maxElementAlg    = execution.Algorithm{Name: "max_element", Vector: true, Parallel: true}
	minMaxElementAlg = execution.Algorithm{Name: "minmax_element", Vector: true, Parallel: true}
	reduceAlg        = execution.Algorithm{Name: "reduce", Vector: true, Parallel: true}
	transformRedAlg  = execution.Algorithm{Name: "transform_reduce", Vector: true, Parallel: true}
)

// extremum reduces [0, n) to one index with leaf picking the best index of
// a leaf and better reporting whether index b beats index a, where a lies
// left of b. -1 is the empty value.
func extremum(rt *execution.Runtime, name string, n int, leaf func(i, j int) int, better func(a, b int) bool) int {
	return execution.Handle(rt, name,
		func() (int, error) {
			return par.Reduce(bg, rt.Executor(), 0, n, -1,
				func(i, j, _ int) int { return i + leaf(i, j) },
				func(a, b int) int {
					if a < 0 || (b >= 0 && better(a, b)) {
						return b
					}
					return a
				},
			)
		},
		func() int { return leaf(0, n) },
	)
}

// MinElement returns the index of the first smallest element of s, or -1
// when s is empty.
func MinElement[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, cmp func(a, b T) int) int {
	rt, vec, parallel := resolve(pol, minElementAlg)
	if !parallel || len(s) < 2 {
		return brick.MinElement(s, cmp, vec)
	}
	return extremum(rt, minElementAlg.Name, len(s),
		func(i, j int) int { return brick.MinElement(s[i:j], cmp, vec) },
		func(a, b int) bool { return cmp(s[b], s[a]) < 0 },
	)
}

// MaxElement returns the index of the first largest element of s, or -1
// when s is empty.
func MaxElement[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, cmp func(a, b T) int) int {
	rt, vec, parallel := resolve(pol, maxElementAlg)
	if !parallel || len(s) < 2 {
		return brick.MaxElement(s, cmp, vec)
	}
	return extremum(rt, maxElementAlg.Name, len(s),
		func(i, j int) int { return brick.MaxElement(s[i:j], cmp, vec) },
		func(a, b int) bool { return cmp(s[a], s[b]) < 0 },
	)
}

type minMax struct{ lo, hi int }

// MinMaxElement returns the index of the first smallest and of the last
// largest element of s, or (-1, -1) when s is empty.
func MinMaxElement[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, cmp func(a, b T) int) (lo, hi int) {
	rt, vec, parallel := resolve(pol, minMaxElementAlg)
	if !parallel || len(s) < 2 {
		return brick.MinMaxElement(s, cmp, vec)
	}
	leaf := func(i, j int) minMax {
		lo, hi := brick.MinMaxElement(s[i:j], cmp, vec)
		return minMax{i + lo, i + hi}
	}
	r := execution.Handle(rt, minMaxElementAlg.Name,
		func() (minMax, error) {
			return par.Reduce(bg, rt.Executor(), 0, len(s), minMax{-1, -1},
				func(i, j int, _ minMax) minMax { return leaf(i, j) },
				func(a, b minMax) minMax {
					if a.lo < 0 {
						return b
					}
					if b.lo < 0 {
						return a
					}
					r := a
					if cmp(s[b.lo], s[a.lo]) < 0 {
						r.lo = b.lo
					}
					if cmp(s[b.hi], s[a.hi]) >= 0 {
						r.hi = b.hi
					}
					return r
				},
			)
		},
		func() minMax { return leaf(0, len(s)) },
	)
	return r.lo, r.hi
}

// Reduce folds s into init with op. op must be associative; under a
// vectorized policy it must also be commutative.
func Reduce[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, init T, op func(a, b T) T) T {
	return transformReduce(pol, reduceAlg, s, init, op, func(v T) T { return v })
}

// TransformReduce folds f(s[i]) into init with op. op must be associative;
// under a vectorized policy it must also be commutative.
func TransformReduce[V execution.VectorTag, P execution.ParallelTag, T, R any](pol execution.Policy[V, P], s []T, init R, op func(a, b R) R, f func(T) R) R {
	return transformReduce(pol, transformRedAlg, s, init, op, f)
}

func transformReduce[V execution.VectorTag, P execution.ParallelTag, T, R any](pol execution.Policy[V, P], alg execution.Algorithm, s []T, init R, op func(a, b R) R, f func(T) R) R {
	rt, vec, parallel := resolve(pol, alg)
	if !parallel || len(s) < 2 {
		return brick.TransformReduce(s, init, op, f, vec)
	}
	r := execution.Handle(rt, alg.Name,
		func() (partial[R], error) {
			return par.Reduce(bg, rt.Executor(), 0, len(s), partial[R]{},
				func(i, j int, _ partial[R]) partial[R] {
					return partial[R]{brick.TransformReduce(s[i+1:j], f(s[i]), op, f, vec), true}
				},
				joinPartial(op),
			)
		},
		func() partial[R] { return partial[R]{brick.TransformReduce(s, init, op, f, vec), false} },
	)
	// A serial fallback result already includes init.
	if !r.ok {
		return r.v
	}
	return op(init, r.v)
}

// TransformReduceBinary folds f(a[i], b[i]) into init with op, for every i
// below len(a). op must be associative; under a vectorized policy it must
// also be commutative.
func TransformReduceBinary[V execution.VectorTag, P execution.ParallelTag, T, U, R any](pol execution.Policy[V, P], a []T, b []U, init R, op func(x, y R) R, f func(T, U) R) R {
	rt, vec, parallel := resolve(pol, transformRedAlg)
	b = b[:len(a)]
	if !parallel || len(a) < 2 {
		return brick.TransformReduce2(a, b, init, op, f, vec)
	}
	r := execution.Handle(rt, transformRedAlg.Name,
		func() (partial[R], error) {
			return par.Reduce(bg, rt.Executor(), 0, len(a), partial[R]{},
				func(i, j int, _ partial[R]) partial[R] {
					return partial[R]{brick.TransformReduce2(a[i+1:j], b[i+1:j], f(a[i], b[i]), op, f, vec), true}
				},
				joinPartial(op),
			)
		},
		func() partial[R] { return partial[R]{brick.TransformReduce2(a, b, init, op, f, vec), false} },
	)
	if !r.ok {
		return r.v
	}
	return op(init, r.v)
}
