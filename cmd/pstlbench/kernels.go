// Copyright 2025 The go-pstl Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"cmp"
	"slices"

	"github.com/ajroetker/go-pstl/algo"
	"github.com/ajroetker/go-pstl/execution"
)

// kernels are the benchmarked algorithms bound to one policy, specialized
// to int64 elements.
type kernels struct {
	forEach         func(s []int64, f func(*int64))
	transform       func(dst, src []int64, f func(int64) int64) int
	fill            func(s []int64, v int64)
	copy            func(dst, src []int64) int
	reverse         func(s []int64)
	countIf         func(s []int64, pred func(int64) bool) int
	findIf          func(s []int64, pred func(int64) bool) int
	anyOf           func(s []int64, pred func(int64) bool) bool
	adjacentFind    func(s []int64) int
	isSorted        func(s []int64) bool
	equal           func(a, b []int64) bool
	minElement      func(s []int64) int
	minMaxElement   func(s []int64) (int, int)
	reduce          func(s []int64) int64
	transformReduce func(a, b []int64) int64
	copyIf          func(dst, src []int64, pred func(int64) bool) int
	uniqueCopy      func(dst, src []int64) int
	partitionCopy   func(outTrue, outFalse, src []int64, pred func(int64) bool) (int, int)
	inclusiveScan   func(dst, src []int64) int
	exclusiveScan   func(dst, src []int64) int
	sort            func(s []int64)
	stableSort      func(s []int64)
	merge           func(dst, a, b []int64) int
}

func sum(a, b int64) int64 { return a + b }

func bindKernels[V execution.VectorTag, P execution.ParallelTag](pol execution.Policy[V, P]) kernels {
	eq := func(a, b int64) bool { return a == b }
	return kernels{
		forEach:       func(s []int64, f func(*int64)) { algo.ForEach(pol, s, f) },
		transform:     func(dst, src []int64, f func(int64) int64) int { return algo.Transform(pol, dst, src, f) },
		fill:          func(s []int64, v int64) { algo.Fill(pol, s, v) },
		copy:          func(dst, src []int64) int { return algo.Copy(pol, dst, src) },
		reverse:       func(s []int64) { algo.Reverse(pol, s) },
		countIf:       func(s []int64, pred func(int64) bool) int { return algo.CountIf(pol, s, pred) },
		findIf:        func(s []int64, pred func(int64) bool) int { return algo.FindIf(pol, s, pred) },
		anyOf:         func(s []int64, pred func(int64) bool) bool { return algo.AnyOf(pol, s, pred) },
		adjacentFind:  func(s []int64) int { return algo.AdjacentFind(pol, s, eq) },
		isSorted:      func(s []int64) bool { return algo.IsSorted(pol, s, cmp.Compare[int64]) },
		equal:         func(a, b []int64) bool { return algo.Equal(pol, a, b, eq) },
		minElement:    func(s []int64) int { return algo.MinElement(pol, s, cmp.Compare[int64]) },
		minMaxElement: func(s []int64) (int, int) { return algo.MinMaxElement(pol, s, cmp.Compare[int64]) },
		reduce:        func(s []int64) int64 { return algo.Reduce(pol, s, 0, sum) },
		transformReduce: func(a, b []int64) int64 {
			return algo.TransformReduceBinary(pol, a, b, 0, sum, func(x, y int64) int64 { return x * y })
		},
		copyIf:     func(dst, src []int64, pred func(int64) bool) int { return algo.CopyIf(pol, dst, src, pred) },
		uniqueCopy: func(dst, src []int64) int { return algo.UniqueCopy(pol, dst, src, eq) },
		partitionCopy: func(outTrue, outFalse, src []int64, pred func(int64) bool) (int, int) {
			return algo.PartitionCopy(pol, outTrue, outFalse, src, pred)
		},
		inclusiveScan: func(dst, src []int64) int { return algo.InclusiveScan(pol, dst, src, sum) },
		exclusiveScan: func(dst, src []int64) int { return algo.ExclusiveScan(pol, dst, src, 0, sum) },
		sort:          func(s []int64) { algo.Sort(pol, s, cmp.Compare[int64]) },
		stableSort:    func(s []int64) { algo.StableSort(pol, s, cmp.Compare[int64]) },
		merge:         func(dst, a, b []int64) int { return algo.Merge(pol, dst, a, b, cmp.Compare[int64]) },
	}
}

// kernelsFor binds the kernels to the policy of mode on rt.
func kernelsFor(mode execution.Mode, rt *execution.Runtime) kernels {
	switch mode {
	case execution.SerialVector:
		return bindKernels(execution.Unseq.On(rt))
	case execution.ParallelScalar:
		return bindKernels(execution.Par.On(rt))
	case execution.ParallelVector:
		return bindKernels(execution.ParUnseq.On(rt))
	default:
		return bindKernels(execution.Seq.On(rt))
	}
}

// input is the data one benchmark run works on. Values lie in [0, 1000),
// so runs of equal neighbors and ties in sorts are common.
type input struct {
	src    []int64
	other  []int64
	sorted []int64
}

func isEven(v int64) bool { return v%2 == 0 }

// benchmark runs one algorithm and returns a value that is compared
// against the sequential run.
type benchmark struct {
	name string
	run  func(k kernels, in *input) any
}

var benchmarks = []benchmark{
	{"for_each", func(k kernels, in *input) any {
		s := slices.Clone(in.src)
		k.forEach(s, func(p *int64) { *p = *p*3 + 1 })
		return s
	}},
	{"transform", func(k kernels, in *input) any {
		dst := make([]int64, len(in.src))
		k.transform(dst, in.src, func(v int64) int64 { return v * v })
		return dst
	}},
	{"fill", func(k kernels, in *input) any {
		dst := make([]int64, len(in.src))
		k.fill(dst, 7)
		return dst
	}},
	{"copy", func(k kernels, in *input) any {
		dst := make([]int64, len(in.src))
		k.copy(dst, in.src)
		return dst
	}},
	{"reverse", func(k kernels, in *input) any {
		s := slices.Clone(in.src)
		k.reverse(s)
		return s
	}},
	{"count_if", func(k kernels, in *input) any {
		return k.countIf(in.src, isEven)
	}},
	{"find_if", func(k kernels, in *input) any {
		return k.findIf(in.src, func(v int64) bool { return v == 999 })
	}},
	{"any_of", func(k kernels, in *input) any {
		return k.anyOf(in.src, func(v int64) bool { return v < 0 })
	}},
	{"adjacent_find", func(k kernels, in *input) any {
		return k.adjacentFind(in.sorted[len(in.sorted)/2:])
	}},
	{"is_sorted", func(k kernels, in *input) any {
		return k.isSorted(in.sorted)
	}},
	{"equal", func(k kernels, in *input) any {
		return k.equal(in.src, in.other)
	}},
	{"min_element", func(k kernels, in *input) any {
		return k.minElement(in.src)
	}},
	{"minmax_element", func(k kernels, in *input) any {
		lo, hi := k.minMaxElement(in.src)
		return [2]int{lo, hi}
	}},
	{"reduce", func(k kernels, in *input) any {
		return k.reduce(in.src)
	}},
	{"transform_reduce", func(k kernels, in *input) any {
		return k.transformReduce(in.src, in.other)
	}},
	{"copy_if", func(k kernels, in *input) any {
		dst := make([]int64, len(in.src))
		return dst[:k.copyIf(dst, in.src, isEven)]
	}},
	{"unique_copy", func(k kernels, in *input) any {
		dst := make([]int64, len(in.sorted))
		return dst[:k.uniqueCopy(dst, in.sorted)]
	}},
	{"partition_copy", func(k kernels, in *input) any {
		t, f := make([]int64, len(in.src)), make([]int64, len(in.src))
		nt, nf := k.partitionCopy(t, f, in.src, isEven)
		return [2][]int64{t[:nt], f[:nf]}
	}},
	{"inclusive_scan", func(k kernels, in *input) any {
		dst := make([]int64, len(in.src))
		k.inclusiveScan(dst, in.src)
		return dst
	}},
	{"exclusive_scan", func(k kernels, in *input) any {
		dst := make([]int64, len(in.src))
		k.exclusiveScan(dst, in.src)
		return dst
	}},
	{"sort", func(k kernels, in *input) any {
		s := slices.Clone(in.src)
		k.sort(s)
		return s
	}},
	{"stable_sort", func(k kernels, in *input) any {
		s := slices.Clone(in.src)
		k.stableSort(s)
		return s
	}},
	{"merge", func(k kernels, in *input) any {
		half := len(in.sorted) / 2
		dst := make([]int64, len(in.sorted))
		k.merge(dst, in.sorted[:half], in.sorted[half:])
		return dst
	}},
}

func findBenchmark(name string) (benchmark, bool) {
	i := slices.IndexFunc(benchmarks, func(b benchmark) bool { return b.name == name })
	if i < 0 {
		return benchmark{}, false
	}
	return benchmarks[i], true
}
