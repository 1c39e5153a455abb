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

// Package algo provides the classic sequence algorithms over Go slices,
// each dispatched on an execution policy.
//
// Every function takes the policy as its first argument:
//
//	n := algo.CopyIf(execution.ParUnseq, dst, src, isOdd)
//	algo.StableSort(execution.Par.On(rt), records, byKey)
//
// The policy's tags select one of four paths: serial or parallel, scalar
// or vectorized. A path the algorithm or the runtime does not provide is
// dropped for the weaker one and counted in the runtime's diagnostics; the
// result never depends on the path taken.
//
// Results follow the slice conventions of the standard library: searches
// return an index or -1, output algorithms return the number of elements
// written. Destination slices must be large enough; lengths are not
// checked beyond Go's own bounds checks.
//
// A panic raised by a user function during a parallel run is re-raised
// on the calling goroutine as a *execution.Failure after all parallel work
// has stopped. Use execution.Catch to turn it into an error.
package algo

import (
	"context"

	"github.com/ajroetker/go-pstl/execution"
)

// bg is the context of every parallel run. Algorithms are not cancelable
// from outside; early-exit searches derive their own cancellation.
var bg = context.Background()

// resolve returns the runtime of pol and the effective vector and parallel
// flags for alg. The sequential policy needs no runtime and gets nil.
func resolve[V execution.VectorTag, P execution.ParallelTag](pol execution.Policy[V, P], alg execution.Algorithm) (rt *execution.Runtime, vec, parallel bool) {
	m := pol.Mode()
	if m == execution.SerialScalar {
		return nil, false, false
	}
	rt = pol.Runtime()
	m = rt.Resolve(alg, m)
	return rt, m.Vectorized(), m.Parallel()
}

// serialOnly resolves an algorithm that only has a serial scalar brick,
// recording every dropped axis.
func serialOnly[V execution.VectorTag, P execution.ParallelTag](pol execution.Policy[V, P], name string) {
	if pol.Mode() != execution.SerialScalar {
		pol.Runtime().Resolve(execution.Algorithm{Name: name}, pol.Mode())
	}
}

// notFound maps the brick convention for a missed search, n, to -1.
func notFound(i, n int) int {
	if i >= n {
		return -1
	}
	return i
}

// partial is a reduction value that may still be empty, for folds whose
// operator has no known identity.
type partial[V any] struct {
	v  V
	ok bool
}

func joinPartial[V any](op func(a, b V) V) func(a, b partial[V]) partial[V] {
	return func(a, b partial[V]) partial[V] {
		switch {
		case !a.ok:
			return b
		case !b.ok:
			return a
		}
		return partial[V]{op(a.v, b.v), true}
	}
}
