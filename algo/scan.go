package algo

import (
	"github.com/ajroetker/go-pstl/execution"
	"github.com/ajroetker/go-pstl/internal/brick"
	"github.com/ajroetker/go-pstl/par"
)

var (
	inclusiveScanAlg = execution.Algorithm{Name: "inclusive_scan", Parallel: true}
	exclusiveScanAlg = execution.Algorithm{Name: "exclusive_scan", Parallel: true}
)

// InclusiveScan stores op(src[0], ..., src[i]) into dst[i] and returns
// len(src). op must be associative.
func InclusiveScan[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], dst, src []T, op func(a, b T) T) int {
	return TransformInclusiveScan(pol, dst, src, op, func(v T) T { return v })
}

// ExclusiveScan stores op(init, src[0], ..., src[i-1]) into dst[i] and
// returns len(src). op must be associative.
func ExclusiveScan[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], dst, src []T, init T, op func(a, b T) T) int {
	return TransformExclusiveScan(pol, dst, src, init, op, func(v T) T { return v })
}

// TransformInclusiveScan is InclusiveScan over f(src[i]).
func TransformInclusiveScan[V execution.VectorTag, P execution.ParallelTag, T, R any](pol execution.Policy[V, P], dst []R, src []T, op func(a, b R) R, f func(T) R) int {
	rt, _, parallel := resolve(pol, inclusiveScanAlg)
	n := len(src)
	if n == 0 {
		return 0
	}
	dst[0] = f(src[0])
	scan(rt, inclusiveScanAlg.Name, parallel, dst[1:n], src[1:], dst[0], op, f, true)
	return n
}

// TransformExclusiveScan is ExclusiveScan over f(src[i]).
func TransformExclusiveScan[V execution.VectorTag, P execution.ParallelTag, T, R any](pol execution.Policy[V, P], dst []R, src []T, init R, op func(a, b R) R, f func(T) R) int {
	rt, _, parallel := resolve(pol, exclusiveScanAlg)
	scan(rt, exclusiveScanAlg.Name, parallel, dst[:len(src)], src, init, op, f, false)
	return len(src)
}

// scan writes the running fold of f over src, started at init, to dst.
// Tiles are folded independently, their sums prefixed by the strict scan,
// and each tile is then rescanned from its offset.
func scan[T, R any](rt *execution.Runtime, name string, parallel bool, dst []R, src []T, init R, op func(a, b R) R, f func(T) R, inclusive bool) {
	if !parallel || len(src) < 2 {
		brick.TransformScan(dst, src, init, op, f, inclusive)
		return
	}
	execution.Run(rt, name,
		func() error {
			return par.StrictScan(bg, rt.Executor(), len(src), init,
				func(i, l int) R {
					return brick.TransformReduce(src[i+1:i+l], f(src[i]), op, f, false)
				},
				op,
				func(i, l int, off R) {
					brick.TransformScan(dst[i:i+l], src[i:i+l], off, op, f, inclusive)
				},
				func(R) {},
			)
		},
		func() { brick.TransformScan(dst, src, init, op, f, inclusive) },
	)
}
