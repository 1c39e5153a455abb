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
	"github.com/ajroetker/go-pstl/par"
)

var (
	sortAlg       = execution.Algorithm{Name: "sort", Parallel: true}
	stableSortAlg = execution.Algorithm{Name: "stable_sort", Parallel: true}
	mergeAlg      = execution.Algorithm{Name: "merge", Parallel: true}
)

// sortParallel reports whether a sort of T may take its parallel path. Pinned
// element types cannot be moved through the merge buffers.
func sortParallel[T any](rt *execution.Runtime, name string, parallel bool, n int) bool {
	if !parallel || n < 2 {
		return false
	}
	if execution.IsPinned[T]() {
		rt.Degrade(name, execution.AxisParallel, execution.ReasonUnimplemented)
		return false
	}
	return true
}

// Sort sorts s by cmp. Equal elements may be reordered.
func Sort[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, cmp func(a, b T) int) {
	rt, _, parallel := resolve(pol, sortAlg)
	if !sortParallel[T](rt, sortAlg.Name, parallel, len(s)) {
		brick.Sort(s, cmp)
		return
	}
	execution.Run(rt, sortAlg.Name,
		func() error {
			return par.StableSort(bg, rt.Executor(), s, cmp, func(leaf []T) { brick.Sort(leaf, cmp) })
		},
		func() { brick.Sort(s, cmp) },
	)
}

// StableSort sorts s by cmp keeping equal elements in their original
// order.
func StableSort[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], s []T, cmp func(a, b T) int) {
	rt, _, parallel := resolve(pol, stableSortAlg)
	if !sortParallel[T](rt, stableSortAlg.Name, parallel, len(s)) {
		brick.StableSort(s, cmp)
		return
	}
	execution.Run(rt, stableSortAlg.Name,
		func() error {
			return par.StableSort(bg, rt.Executor(), s, cmp, func(leaf []T) { brick.StableSort(leaf, cmp) })
		},
		func() { brick.StableSort(s, cmp) },
	)
}

// Merge merges the sorted slices a and b into dst and returns
// len(a)+len(b). Equal elements of a come before those of b. dst must not
// overlap the inputs.
func Merge[V execution.VectorTag, P execution.ParallelTag, T any](pol execution.Policy[V, P], dst, a, b []T, cmp func(x, y T) int) int {
	rt, _, parallel := resolve(pol, mergeAlg)
	if !parallel {
		return brick.Merge(dst, a, b, cmp)
	}
	execution.Run(rt, mergeAlg.Name,
		func() error { return par.Merge(bg, rt.Executor(), a, b, dst, cmp) },
		func() { brick.Merge(dst, a, b, cmp) },
	)
	return len(a) + len(b)
}
