package algo_test

import (
	"errors"
	"slices"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-pstl/algo"
	"github.com/ajroetker/go-pstl/execution"
)

func TestCopyIfOdd(t *testing.T) {
	rt := newRuntime(t)
	src := []int{3, 1, 4, 1, 5, 9, 2, 6}
	for _, b := range policies(rt) {
		dst := make([]int, len(src))
		k := b.copyIf(dst, src, isOdd)
		assert.Equal(t, 5, k, b.name)
		assert.Equal(t, []int{3, 1, 1, 5, 9}, dst[:k], b.name)
	}
}

func TestAnyOfNonzero(t *testing.T) {
	rt := newRuntime(t)
	nonzero := func(v int) bool { return v != 0 }
	for _, b := range policies(rt) {
		assert.True(t, b.anyOf([]int{0, 0, 0, 1, 0}, nonzero), b.name)
		assert.False(t, b.anyOf([]int{0, 0, 0, 0, 0}, nonzero), b.name)
	}
}

func TestAnyOfFindsLateHit(t *testing.T) {
	rt := newRuntime(t)
	const n = 10000
	s := make([]int, n)
	s[n-1] = 1
	for _, b := range policies(rt) {
		assert.True(t, b.anyOf(s, func(v int) bool { return v == 1 }), b.name)
		assert.False(t, b.anyOf(s, func(v int) bool { return v == 2 }), b.name)
		assert.True(t, b.noneOf(s, func(v int) bool { return v == 2 }), b.name)
		assert.False(t, b.allOf(s, func(v int) bool { return v == 0 }), b.name)
		assert.Equal(t, n-1, b.find(s, 1), b.name)
		assert.Equal(t, -1, b.find(s, 2), b.name)
	}
}

func TestAnyOfSkipsLeavesAfterHit(t *testing.T) {
	rt := newRuntime(t, execution.WithWorkers(1))
	const n = 1 << 14
	s := make([]int, n)
	var calls atomic.Int64
	hit := algo.AnyOf(execution.Par.On(rt), s, func(v int) bool {
		calls.Add(1)
		return true
	})
	assert.True(t, hit)
	// With a single worker the first leaf reports the hit and every later
	// leaf is skipped.
	assert.Less(t, calls.Load(), int64(n))
}

func TestLeftmostWinsOnTies(t *testing.T) {
	rt := newRuntime(t)
	const n = 1000
	s := make([]int, n)
	for _, b := range policies(rt) {
		assert.Equal(t, 0, b.minElement(s), b.name)
		assert.Equal(t, 0, b.maxElement(s), b.name)
		lo, hi := b.minMaxElement(s)
		assert.Equal(t, 0, lo, b.name)
		assert.Equal(t, n-1, hi, b.name)
		assert.Equal(t, 0, b.adjacentFind(s), b.name)
		assert.Equal(t, 0, b.find(s, 0), b.name)
		assert.Equal(t, n, b.mismatch(s, s), b.name)
	}
}

func TestEmptyInputs(t *testing.T) {
	rt := newRuntime(t)
	for _, b := range policies(rt) {
		assert.Equal(t, -1, b.minElement(nil), b.name)
		lo, hi := b.minMaxElement(nil)
		assert.Equal(t, [2]int{-1, -1}, [2]int{lo, hi}, b.name)
		assert.Equal(t, -1, b.adjacentFind([]int{1}), b.name)
		assert.True(t, b.isSorted(nil), b.name)
		assert.True(t, b.allOf(nil, isOdd), b.name)
		assert.Equal(t, 0, b.copyIf(nil, nil, isOdd), b.name)
		assert.Equal(t, 9, b.reduce(nil, 9), b.name)
	}
}

func TestStableSortKeepsInputOrder(t *testing.T) {
	rt := newRuntime(t)
	const n = 5000
	recs := make([]record, n)
	for i := range recs {
		recs[i] = record{Key: (i * 7919) % 13, Index: i}
	}
	for _, b := range policies(rt) {
		got := slices.Clone(recs)
		b.stableSort(got)
		for i := 1; i < n; i++ {
			prev, cur := got[i-1], got[i]
			require.True(t, prev.Key < cur.Key || (prev.Key == cur.Key && prev.Index < cur.Index),
				"%s: %v before %v", b.name, prev, cur)
		}
	}
}

func TestReduceIsOrdered(t *testing.T) {
	rt := newRuntime(t)
	words := strings.Fields("the quick brown fox jumps over the lazy dog again and again")
	concat := func(a, b string) string { return a + b }
	got := algo.Reduce(execution.Par.On(rt), words, ">", concat)
	assert.Equal(t, ">"+strings.Join(words, ""), got)

	scanned := make([]string, len(words))
	algo.InclusiveScan(execution.Par.On(rt), scanned, words, concat)
	assert.Equal(t, strings.Join(words, ""), scanned[len(words)-1])
	assert.Equal(t, words[0]+words[1], scanned[1])
}

func TestFailurePropagates(t *testing.T) {
	rt := newRuntime(t)
	const n = 1000
	src := make([]int, n)
	for i := range src {
		src[i] = i
	}
	dst := make([]int, n)

	err := execution.Catch(func() {
		algo.CopyIf(execution.ParUnseq.On(rt), dst, src, func(v int) bool {
			if v == 500 {
				panic("boom")
			}
			return isOdd(v)
		})
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, execution.ErrExecution)

	var f *execution.Failure
	require.True(t, errors.As(err, &f))
	assert.Equal(t, "copy_if", f.Algorithm)
	assert.Equal(t, "boom", f.Value)
	assert.Zero(t, rt.Masks().InUse())

	sentinel := errors.New("bad comparator")
	err = execution.Catch(func() {
		algo.Sort(execution.Par.On(rt), slices.Clone(src), func(a, b int) int {
			if a == 700 || b == 700 {
				panic(sentinel)
			}
			return a - b
		})
	})
	assert.ErrorIs(t, err, sentinel)
	assert.ErrorIs(t, err, execution.ErrExecution)
}

func TestMaskBudgetFallsBack(t *testing.T) {
	rt := newRuntime(t, execution.WithMaskBudget(64))
	src := make([]int, 1000)
	for i := range src {
		src[i] = i
	}
	dst := make([]int, len(src))

	k := algo.CopyIf(execution.Par.On(rt), dst, src, isOdd)
	assert.Equal(t, 500, k)
	assert.Equal(t, 999, dst[k-1])
	assert.Contains(t, rt.Diagnostics(), execution.Diagnostic{
		Algorithm: "copy_if",
		Axis:      execution.AxisParallel,
		Reason:    execution.ReasonExhausted,
		Count:     1,
	})

	k = algo.CopyIf(execution.Par.On(rt), dst, src[:1], isOdd)
	assert.Equal(t, 0, k)
	assert.Contains(t, rt.Diagnostics(), execution.Diagnostic{
		Algorithm: "copy_if",
		Axis:      execution.AxisParallel,
		Reason:    execution.ReasonTrivial,
		Count:     1,
	})
	assert.Zero(t, rt.Masks().InUse())
}

func TestDegradedPaths(t *testing.T) {
	rt := newRuntime(t)
	s := []int{4, 1, 3, 2}

	algo.InclusiveScan(execution.Unseq.On(rt), make([]int, len(s)), s, add)
	assert.EqualValues(t, 1, rt.Degraded("inclusive_scan", execution.AxisVector))
	assert.Zero(t, rt.Degraded("inclusive_scan", execution.AxisParallel))

	k := algo.Partition(execution.ParUnseq.On(rt), slices.Clone(s), isOdd)
	assert.Equal(t, 2, k)
	assert.EqualValues(t, 1, rt.Degraded("partition", execution.AxisVector))
	assert.EqualValues(t, 1, rt.Degraded("partition", execution.AxisParallel))

	algo.Sort(execution.Seq.On(rt), slices.Clone(s), func(a, b int) int { return a - b })
	assert.Zero(t, rt.Degraded("sort", execution.AxisParallel))
}

func TestDisabledCapabilities(t *testing.T) {
	rt := newRuntime(t, execution.WithCapabilities(execution.Capabilities{Workers: 4}))
	src := []int{3, 1, 4, 1, 5, 9, 2, 6}
	dst := make([]int, len(src))

	k := algo.CopyIf(execution.ParUnseq.On(rt), dst, src, isOdd)
	assert.Equal(t, []int{3, 1, 1, 5, 9}, dst[:k])
	assert.Contains(t, rt.Diagnostics(), execution.Diagnostic{
		Algorithm: "copy_if", Axis: execution.AxisVector, Reason: execution.ReasonDisabled, Count: 1,
	})
	assert.Contains(t, rt.Diagnostics(), execution.Diagnostic{
		Algorithm: "copy_if", Axis: execution.AxisParallel, Reason: execution.ReasonDisabled, Count: 1,
	})
}

func TestUniqueCopyVectorized(t *testing.T) {
	// Runs of three cross every vector window boundary.
	src := make([]int, 200)
	for i := range src {
		src[i] = i / 3
	}
	want := make([]int, 67)
	for i := range want {
		want[i] = i
	}
	eq := func(a, b int) bool { return a == b }
	dst := make([]int, len(src))

	rt := newRuntime(t)
	k := algo.UniqueCopy(execution.Unseq.On(rt), dst, src, eq)
	assert.Equal(t, want, dst[:k])
	assert.Zero(t, rt.Degraded("unique_copy", execution.AxisVector))
	assert.False(t, rt.Started(), "serial policies must not start the backend")

	rt = newRuntime(t, execution.WithCapabilities(execution.Capabilities{Vector: true, Workers: 4}))
	clear(dst)
	k = algo.UniqueCopy(execution.Unseq.On(rt), dst, src, eq)
	assert.Equal(t, want, dst[:k])
	assert.Contains(t, rt.Diagnostics(), execution.Diagnostic{
		Algorithm: "unique_copy", Axis: execution.AxisVector, Reason: execution.ReasonDisabled, Count: 1,
	})
}

func TestClosedRuntimeRunsSerially(t *testing.T) {
	rt := newRuntime(t)
	rt.Close()

	src := []int{3, 1, 4, 1, 5, 9, 2, 6}
	dst := make([]int, len(src))
	k := algo.CopyIf(execution.Par.On(rt), dst, src, isOdd)
	assert.Equal(t, []int{3, 1, 1, 5, 9}, dst[:k])
	assert.Contains(t, rt.Diagnostics(), execution.Diagnostic{
		Algorithm: "copy_if", Axis: execution.AxisParallel, Reason: execution.ReasonUnavailable, Count: 1,
	})
	assert.Zero(t, rt.Masks().InUse())
}

type pinned struct {
	Key int
}

func (*pinned) Pinned() {}

func TestPinnedTypesSortSerially(t *testing.T) {
	rt := newRuntime(t)
	s := make([]pinned, 100)
	for i := range s {
		s[i].Key = (i * 37) % 100
	}
	algo.StableSort(execution.Par.On(rt), s, func(a, b pinned) int { return a.Key - b.Key })
	for i := range s {
		require.Equal(t, i, s[i].Key)
	}
	assert.EqualValues(t, 1, rt.Degraded("stable_sort", execution.AxisParallel))
}

func TestSerialOnlyAlgorithms(t *testing.T) {
	pol := execution.Par.On(newRuntime(t))
	cmpInt := func(a, b int) int { return a - b }

	s := []int{1, 1, 2, 2, 3, 1}
	assert.Equal(t, 4, algo.Unique(pol, s, eq))
	assert.Equal(t, []int{1, 2, 3, 1}, s[:4])

	s = []int{1, 2, 3, 4, 5, 6}
	assert.Equal(t, 3, algo.RemoveIf(pol, s, isOdd))
	assert.Equal(t, []int{2, 4, 6}, s[:3])

	s = []int{1, 2, 3, 4, 5}
	assert.Equal(t, 3, algo.Rotate(pol, s, 2))
	assert.Equal(t, []int{3, 4, 5, 1, 2}, s)

	s = []int{5, 2, 8, 1, 9, 3}
	algo.PartialSort(pol, s, 3, cmpInt)
	assert.Equal(t, []int{1, 2, 3}, s[:3])

	s = []int{5, 2, 8, 1, 9, 3}
	algo.NthElement(pol, s, 2, cmpInt)
	assert.Equal(t, 3, s[2])

	s = []int{1, 3, 5, 2, 4, 6}
	algo.InplaceMerge(pol, s, 3, cmpInt)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, s)
	assert.True(t, algo.IsHeap(pol, []int{9, 5, 8, 1, 2}, cmpInt))
	assert.True(t, algo.Includes(pol, s, []int{2, 4}, cmpInt))

	assert.Equal(t, 2, algo.Search(pol, []int{1, 2, 3, 4}, []int{3, 4}, eq))
	assert.Equal(t, -1, algo.Search(pol, []int{1, 2, 3, 4}, []int{4, 5}, eq))
	assert.Equal(t, 3, algo.FindEnd(pol, []int{1, 2, 1, 1, 2}, []int{1, 2}, eq))
	assert.Equal(t, 1, algo.SearchN(pol, []int{1, 2, 2, 2}, 2, 2, eq))

	dst := make([]int, 8)
	k := algo.SetIntersection(pol, dst, []int{1, 2, 3, 4}, []int{2, 4, 6}, cmpInt)
	assert.Equal(t, []int{2, 4}, dst[:k])
}
