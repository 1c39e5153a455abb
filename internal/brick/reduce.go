package brick

import "github.com/ajroetker/go-pstl/simd"

// MinElement returns the index of the first smallest element, or -1 when
// s is empty.
func MinElement[T any](s []T, cmp func(a, b T) int, vec bool) int {
	if vec {
		return simd.MinIndex(len(s), simd.Lanes[T](), func(i, j int) bool { return cmp(s[i], s[j]) < 0 })
	}
	if len(s) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(s); i++ {
		if cmp(s[i], s[best]) < 0 {
			best = i
		}
	}
	return best
}

// MaxElement returns the index of the first largest element, or -1 when
// s is empty.
func MaxElement[T any](s []T, cmp func(a, b T) int, vec bool) int {
	if vec {
		return simd.MinIndex(len(s), simd.Lanes[T](), func(i, j int) bool { return cmp(s[j], s[i]) < 0 })
	}
	if len(s) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(s); i++ {
		if cmp(s[best], s[i]) < 0 {
			best = i
		}
	}
	return best
}

// MinMaxElement returns the index of the first smallest and of the last
// largest element, or (-1, -1) when s is empty.
func MinMaxElement[T any](s []T, cmp func(a, b T) int, vec bool) (lo, hi int) {
	if vec {
		return simd.MinMaxIndex(len(s), simd.Lanes[T](), func(i, j int) bool { return cmp(s[i], s[j]) < 0 })
	}
	if len(s) == 0 {
		return -1, -1
	}
	for i := 1; i < len(s); i++ {
		if cmp(s[i], s[lo]) < 0 {
			lo = i
		}
		if cmp(s[i], s[hi]) >= 0 {
			hi = i
		}
	}
	return lo, hi
}

// TransformReduce folds f over s into init with op. The vectorized form
// reorders operands and requires op to be commutative.
func TransformReduce[T, V any](s []T, init V, op func(a, b V) V, f func(T) V, vec bool) V {
	if vec {
		return simd.Reduce(len(s), simd.Lanes[T](), init, op, func(i int) V { return f(s[i]) })
	}
	for _, v := range s {
		init = op(init, f(v))
	}
	return init
}

// TransformReduce2 folds f over the pairs a[i], b[i] into init with op.
func TransformReduce2[T, U, V any](a []T, b []U, init V, op func(x, y V) V, f func(T, U) V, vec bool) V {
	b = b[:len(a)]
	if vec {
		return simd.Reduce(len(a), min(simd.Lanes[T](), simd.Lanes[U]()), init, op, func(i int) V { return f(a[i], b[i]) })
	}
	for i := range a {
		init = op(init, f(a[i], b[i]))
	}
	return init
}

// TransformScan writes the running fold of f over src, started at init,
// into dst and returns the final accumulator. An inclusive scan stores
// the accumulator after each element, an exclusive one before it.
func TransformScan[T, V any](dst []V, src []T, init V, op func(a, b V) V, f func(T) V, inclusive bool) V {
	dst = dst[:len(src)]
	for i, v := range src {
		if inclusive {
			init = op(init, f(v))
			dst[i] = init
		} else {
			dst[i] = init
			init = op(init, f(v))
		}
	}
	return init
}
