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

package algo

import (
	"github.com/ajroetker/go-pstl/execution"
	"github.com/ajroetker/go-pstl/internal/brick"
	"github.com/ajroetker/go-pstl/internal/maskbuf"
	"github.com/ajroetker/go-pstl/par"
	"github.com/ajroetker/go-pstl/simd"
)

// Filters run in two passes over a mask with one flag per input element.
// The first pass computes the flags of each tile and counts them; the
// strict scan turns the counts into output offsets, and the second pass
// copies the flagged elements of each tile to its offset.

var (
	copyIfAlg        = execution.Algorithm{Name: "copy_if", Vector: true, Parallel: true, Monotonic: true}
	removeCopyIfAlg  = execution.Algorithm{Name: "remove_copy_if", Vector: true, Parallel: true, Monotonic: true}
	uniqueCopyAlg    = execution.Algorithm{Name: "unique_copy", Vector: true, Parallel: true, Monotonic: true}
	partitionCopyAlg = execution.Algorithm{Name: "partition_copy", Vector: true, Parallel: true, Monotonic: true}
)

// maskFor returns a mask buffer for n elements when a parallel filter is
// worth running: n must exceed threshold and the budget must cover it.
// Otherwise it records why the run stays serial and returns nil.
func maskFor(rt *execution.Runtime, name string, n, threshold int) *maskbuf.Buffer {
	if n <= threshold {
		rt.Degrade(name, execution.AxisParallel, execution.ReasonTrivial)
		return nil
	}
	buf, ok := rt.Masks().Acquire(n)
	if !ok {
		rt.Degrade(name, execution.AxisParallel, execution.ReasonExhausted)
		return nil
	}
	return buf
}

// CopyIf writes the elements of src satisfying pred to dst, keeping their
// order, and returns how many were written.
func CopyIf[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], dst, src []T, pred func(T) bool) int {
	return copyIf(pol, copyIfAlg, dst, src, pred)
}

// RemoveCopyIf writes the elements of src not satisfying pred to dst,
// keeping their order, and returns how many were written.
func RemoveCopyIf[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], dst, src []T, pred func(T) bool) int {
	return copyIf(pol, removeCopyIfAlg, dst, src, func(v T) bool { return !pred(v) })
}

func copyIf[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], alg execution.Algorithm, dst, src []T, pred func(T) bool) int {
	rt, vec, parallel := resolve(pol, alg)
	n := len(src)
	if !parallel {
		return brick.CopyIf(dst, src, pred, vec)
	}
	buf := maskFor(rt, alg.Name, n, 1)
	if buf == nil {
		return brick.CopyIf(dst, src, pred, vec)
	}
	defer buf.Release()
	mask := buf.Mask

	return execution.Handle(rt, alg.Name,
		func() (int, error) {
			var total int
			err := par.StrictScan(bg, rt.Executor(), n, 0,
				func(i, l int) int { return brick.CalcMask1(src[i:i+l], mask[i:i+l], pred, vec) },
				func(a, b int) int { return a + b },
				func(i, l, off int) { brick.CopyByMask(dst[off:], src[i:i+l], mask[i:i+l], vec) },
				func(t int) { total = t },
			)
			return total, err
		},
		func() int { return brick.CopyIf(dst, src, pred, vec) },
	)
}

// UniqueCopy writes src to dst, skipping every element equal under eq to
// the one before it in src, and returns how many were written.
func UniqueCopy[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], dst, src []T, eq func(a, b T) bool) int {
	rt, vec, parallel := resolve(pol, uniqueCopyAlg)
	n := len(src)
	if !parallel {
		return brick.UniqueCopy(dst, src, eq, vec)
	}
	buf := maskFor(rt, uniqueCopyAlg.Name, n, 2)
	if buf == nil {
		return brick.UniqueCopy(dst, src, eq, vec)
	}
	defer buf.Release()
	mask := buf.Mask

	return execution.Handle(rt, uniqueCopyAlg.Name,
		func() (int, error) {
			var total int
			err := par.StrictScan(bg, rt.Executor(), n, 0,
				func(i, l int) int {
					if i == 0 {
						mask[0] = true
						return 1 + brick.CalcMask2(src, 1, l, mask, eq, vec)
					}
					return brick.CalcMask2(src, i, i+l, mask, eq, vec)
				},
				func(a, b int) int { return a + b },
				func(i, l, off int) { brick.CopyByMask(dst[off:], src[i:i+l], mask[i:i+l], vec) },
				func(t int) { total = t },
			)
			return total, err
		},
		func() int { return brick.UniqueCopy(dst, src, eq, vec) },
	)
}

type split struct{ t, f int }

// PartitionCopy writes the elements of src satisfying pred to outTrue and
// the others to outFalse, keeping their order, and returns both counts.
func PartitionCopy[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], outTrue, outFalse, src []T, pred func(T) bool) (nt, nf int) {
	rt, vec, parallel := resolve(pol, partitionCopyAlg)
	n := len(src)
	if !parallel {
		return partitionCopy(outTrue, outFalse, src, pred, vec)
	}
	buf := maskFor(rt, partitionCopyAlg.Name, n, 1)
	if buf == nil {
		return partitionCopy(outTrue, outFalse, src, pred, vec)
	}
	defer buf.Release()
	mask := buf.Mask

	r := execution.Handle(rt, partitionCopyAlg.Name,
		func() (split, error) {
			var total split
			err := par.StrictScan(bg, rt.Executor(), n, split{},
				func(i, l int) split {
					t := brick.CalcMask1(src[i:i+l], mask[i:i+l], pred, vec)
					return split{t, l - t}
				},
				func(a, b split) split { return split{a.t + b.t, a.f + b.f} },
				func(i, l int, off split) {
					brick.PartitionByMask(outTrue[off.t:], outFalse[off.f:], src[i:i+l], mask[i:i+l], vec)
				},
				func(t split) { total = t },
			)
			return total, err
		},
		func() split {
			t, f := partitionCopy(outTrue, outFalse, src, pred, vec)
			return split{t, f}
		},
	)
	return r.t, r.f
}

// partitionCopy is the serial path. The vectorized form stages flags in a
// stack block through the mask bricks.
func partitionCopy[T any](outTrue, outFalse, src []T, pred func(T) bool, vec bool) (nt, nf int) {
	if !vec {
		return brick.PartitionCopy(outTrue, outFalse, src, pred)
	}
	var block [simd.MaxBlock]bool
	for i := 0; i < len(src); i += len(block) {
		s := src[i:min(i+len(block), len(src))]
		m := block[:len(s)]
		brick.CalcMask1(s, m, pred, true)
		t, f := brick.PartitionByMask(outTrue[nt:], outFalse[nf:], s, m, true)
		nt += t
		nf += f
	}
	return nt, nf
}
