package brick

import (
	"cmp"
	"math/rand"
	"slices"
	"testing"

	gocmp "github.com/google/go-cmp/cmp"
)

var sizes = []int{0, 1, 2, 5, 16, 33, 64, 100, 257}

func randInts(rng *rand.Rand, n, limit int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = rng.Intn(limit)
	}
	return s
}

func isOdd(v int) bool { return v%2 != 0 }

func TestVectorMatchesScalar(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range sizes {
		s := randInts(rng, n, 8)
		eq := func(a, b int) bool { return a == b }

		if a, b := FindIf(s, isOdd, false), FindIf(s, isOdd, true); a != b {
			t.Errorf("n=%d FindIf: %d vs %d", n, a, b)
		}
		if a, b := AnyOf(s, func(v int) bool { return v == 7 }, false), AnyOf(s, func(v int) bool { return v == 7 }, true); a != b {
			t.Errorf("n=%d AnyOf: %v vs %v", n, a, b)
		}
		if a, b := AllOf(s, func(v int) bool { return v < 7 }, false), AllOf(s, func(v int) bool { return v < 7 }, true); a != b {
			t.Errorf("n=%d AllOf: %v vs %v", n, a, b)
		}
		if a, b := CountIf(s, isOdd, false), CountIf(s, isOdd, true); a != b {
			t.Errorf("n=%d CountIf: %d vs %d", n, a, b)
		}
		if a, b := AdjacentFind(s, eq, false), AdjacentFind(s, eq, true); a != b {
			t.Errorf("n=%d AdjacentFind: %d vs %d", n, a, b)
		}
		if a, b := MinElement(s, cmp.Compare, false), MinElement(s, cmp.Compare, true); a != b {
			t.Errorf("n=%d MinElement: %d vs %d", n, a, b)
		}
		if a, b := MaxElement(s, cmp.Compare, false), MaxElement(s, cmp.Compare, true); a != b {
			t.Errorf("n=%d MaxElement: %d vs %d", n, a, b)
		}
		lo1, hi1 := MinMaxElement(s, cmp.Compare, false)
		lo2, hi2 := MinMaxElement(s, cmp.Compare, true)
		if lo1 != lo2 || hi1 != hi2 {
			t.Errorf("n=%d MinMaxElement: (%d,%d) vs (%d,%d)", n, lo1, hi1, lo2, hi2)
		}
		add := func(a, b int) int { return a + b }
		id := func(v int) int { return v }
		if a, b := TransformReduce(s, 3, add, id, false), TransformReduce(s, 3, add, id, true); a != b {
			t.Errorf("n=%d TransformReduce: %d vs %d", n, a, b)
		}

		other := slices.Clone(s)
		if n > 0 {
			other[n/2]++
		}
		if a, b := Mismatch(s, other, eq, false), Mismatch(s, other, eq, true); a != b {
			t.Errorf("n=%d Mismatch: %d vs %d", n, a, b)
		}

		d1 := make([]int, n)
		d2 := make([]int, n)
		k1 := CopyIf(d1, s, isOdd, false)
		k2 := CopyIf(d2, s, isOdd, true)
		if diff := gocmp.Diff(d1[:k1], d2[:k2]); diff != "" {
			t.Errorf("n=%d CopyIf mismatch (-scalar +vector):\n%s", n, diff)
		}

		// Few distinct values, so runs cross the vector windows.
		runs := randInts(rng, n, 2)
		k1 = UniqueCopy(d1, runs, eq, false)
		k2 = UniqueCopy(d2, runs, eq, true)
		if diff := gocmp.Diff(d1[:k1], d2[:k2]); diff != "" {
			t.Errorf("n=%d UniqueCopy mismatch (-scalar +vector):\n%s", n, diff)
		}
	}
}

func TestCopyIfScenario(t *testing.T) {
	src := []int{3, 1, 4, 1, 5, 9, 2, 6}
	for _, vec := range []bool{false, true} {
		dst := make([]int, len(src))
		k := CopyIf(dst, src, isOdd, vec)
		if diff := gocmp.Diff([]int{3, 1, 1, 5, 9}, dst[:k]); diff != "" {
			t.Errorf("vec=%v CopyIf (-want +got):\n%s", vec, diff)
		}
	}
}

func TestMasks(t *testing.T) {
	src := []int{1, 1, 2, 2, 2, 3, 1, 1}
	mask := make([]bool, len(src))
	mask[0] = true
	count := CalcMask2(src, 1, len(src), mask, func(a, b int) bool { return a == b }, true) + 1
	dst := make([]int, len(src))
	k := CopyByMask(dst, src, mask, false)
	if count != 4 || k != 4 {
		t.Fatalf("count = %d, k = %d, want 4", count, k)
	}
	if diff := gocmp.Diff([]int{1, 2, 3, 1}, dst[:k]); diff != "" {
		t.Errorf("unique by mask (-want +got):\n%s", diff)
	}

	for _, vec := range []bool{false, true} {
		k = UniqueCopy(dst, src, func(a, b int) bool { return a == b }, vec)
		if diff := gocmp.Diff([]int{1, 2, 3, 1}, dst[:k]); diff != "" {
			t.Errorf("vec=%v UniqueCopy (-want +got):\n%s", vec, diff)
		}
	}

	CalcMask1(src, mask, isOdd, false)
	outT := make([]int, len(src))
	outF := make([]int, len(src))
	nt, nf := PartitionByMask(outT, outF, src, mask, true)
	if diff := gocmp.Diff([]int{1, 1, 3, 1, 1}, outT[:nt]); diff != "" {
		t.Errorf("PartitionByMask true side (-want +got):\n%s", diff)
	}
	if diff := gocmp.Diff([]int{2, 2, 2}, outF[:nf]); diff != "" {
		t.Errorf("PartitionByMask false side (-want +got):\n%s", diff)
	}
}

func TestPartitions(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, n := range sizes {
		s := randInts(rng, n, 100)

		p := slices.Clone(s)
		k := Partition(p, isOdd)
		if !IsPartitioned(p, isOdd) || k != CountIf(s, isOdd, false) {
			t.Errorf("n=%d Partition not partitioned at %d: %v", n, k, p)
		}

		sp := slices.Clone(s)
		k = StablePartition(sp, isOdd)
		var want []int
		for _, v := range s {
			if isOdd(v) {
				want = append(want, v)
			}
		}
		for _, v := range s {
			if !isOdd(v) {
				want = append(want, v)
			}
		}
		if !slices.Equal(want, sp) || k != len(slices.DeleteFunc(slices.Clone(s), func(v int) bool { return !isOdd(v) })) {
			t.Errorf("n=%d StablePartition = %v (%d), want %v", n, sp, k, want)
		}

		r := slices.Clone(s)
		k = RemoveIf(r, isOdd)
		if !slices.Equal(r[:k], slices.DeleteFunc(slices.Clone(s), isOdd)) {
			t.Errorf("n=%d RemoveIf = %v", n, r[:k])
		}
	}
}

func TestSorting(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, n := range sizes {
		s := randInts(rng, n, 50)
		sorted := slices.Clone(s)
		slices.Sort(sorted)

		for _, mid := range []int{0, n / 3, n} {
			p := slices.Clone(s)
			PartialSort(p, mid, cmp.Compare)
			if !slices.Equal(p[:mid], sorted[:mid]) {
				t.Errorf("n=%d mid=%d PartialSort prefix = %v", n, mid, p[:mid])
			}

			dst := make([]int, mid)
			k := PartialSortCopy(dst, s, cmp.Compare)
			if !slices.Equal(dst[:k], sorted[:k]) {
				t.Errorf("n=%d mid=%d PartialSortCopy = %v", n, mid, dst[:k])
			}
		}

		for _, nth := range []int{0, n / 2, n - 1} {
			if n == 0 {
				break
			}
			p := slices.Clone(s)
			NthElement(p, nth, cmp.Compare)
			if p[nth] != sorted[nth] {
				t.Fatalf("n=%d NthElement(%d) = %d, want %d", n, nth, p[nth], sorted[nth])
			}
			for i := range nth {
				if p[i] > p[nth] {
					t.Fatalf("n=%d NthElement: p[%d]=%d > p[nth]=%d", n, i, p[i], p[nth])
				}
			}
			for i := nth + 1; i < n; i++ {
				if p[i] < p[nth] {
					t.Fatalf("n=%d NthElement: p[%d]=%d < p[nth]=%d", n, i, p[i], p[nth])
				}
			}
		}

		if got := IsSortedUntil(sorted, cmp.Compare, true); got != n {
			t.Errorf("n=%d IsSortedUntil(sorted) = %d", n, got)
		}
		if got := IsHeapUntil([]int{9, 5, 8, 1, 2, 7, 10}, cmp.Compare); got != 6 {
			t.Errorf("IsHeapUntil = %d, want 6", got)
		}
	}
}

func TestMerges(t *testing.T) {
	a := []int{1, 3, 3, 5, 7}
	b := []int{2, 3, 4, 8}
	dst := make([]int, len(a)+len(b))
	Merge(dst, a, b, cmp.Compare)
	if diff := gocmp.Diff([]int{1, 2, 3, 3, 3, 4, 5, 7, 8}, dst); diff != "" {
		t.Errorf("Merge (-want +got):\n%s", diff)
	}

	s := []int{1, 4, 6, 2, 3, 5, 7}
	InplaceMerge(s, 3, cmp.Compare)
	if diff := gocmp.Diff([]int{1, 2, 3, 4, 5, 6, 7}, s); diff != "" {
		t.Errorf("InplaceMerge (-want +got):\n%s", diff)
	}
}

func TestSetOperations(t *testing.T) {
	a := []int{1, 2, 2, 2, 4, 6}
	b := []int{2, 2, 3, 6, 6}
	dst := make([]int, len(a)+len(b))

	tests := []struct {
		name string
		op   func(dst, a, b []int, cmp func(x, y int) int) int
		want []int
	}{
		{"union", SetUnion[int], []int{1, 2, 2, 2, 3, 4, 6, 6}},
		{"intersection", SetIntersection[int], []int{2, 2, 6}},
		{"difference", SetDifference[int], []int{1, 2, 4}},
		{"symmetric_difference", SetSymmetricDifference[int], []int{1, 2, 3, 4, 6}},
	}
	for _, tt := range tests {
		k := tt.op(dst, a, b, cmp.Compare)
		if diff := gocmp.Diff(tt.want, dst[:k]); diff != "" {
			t.Errorf("%s (-want +got):\n%s", tt.name, diff)
		}
	}

	if !Includes(a, []int{2, 2, 6}, cmp.Compare) {
		t.Errorf("Includes(a, [2 2 6]) = false")
	}
	if Includes(a, []int{2, 2, 2, 2}, cmp.Compare) {
		t.Errorf("Includes(a, [2 2 2 2]) = true")
	}
}

func TestSearches(t *testing.T) {
	s := []int{1, 2, 3, 1, 2, 3, 3, 3, 4}
	eq := func(a, b int) bool { return a == b }

	if got := Search(s, []int{2, 3}, eq); got != 1 {
		t.Errorf("Search = %d, want 1", got)
	}
	if got := FindEnd(s, []int{2, 3}, eq); got != 4 {
		t.Errorf("FindEnd = %d, want 4", got)
	}
	if got := SearchN(s, 3, 3, eq); got != 5 {
		t.Errorf("SearchN = %d, want 5", got)
	}
	if got := FindFirstOf(s, []int{9, 4, 3}, eq, true); got != 2 {
		t.Errorf("FindFirstOf = %d, want 2", got)
	}
	if got := Search(s, []int{5}, eq); got != len(s) {
		t.Errorf("Search missing = %d, want %d", got, len(s))
	}
	if !LexicographicalCompare([]int{1, 2}, []int{1, 2, 0}, func(a, b int) bool { return a < b }) {
		t.Errorf("LexicographicalCompare prefix = false")
	}
}

func TestRotateAndReverse(t *testing.T) {
	s := []int{0, 1, 2, 3, 4, 5, 6}
	r := slices.Clone(s)
	if k := Rotate(r, 3); k != 4 {
		t.Errorf("Rotate returned %d, want 4", k)
	}
	if diff := gocmp.Diff([]int{3, 4, 5, 6, 0, 1, 2}, r); diff != "" {
		t.Errorf("Rotate (-want +got):\n%s", diff)
	}

	dst := make([]int, len(s))
	RotateCopy(dst, s, 3)
	if !slices.Equal(dst, r) {
		t.Errorf("RotateCopy = %v, want %v", dst, r)
	}

	ReverseCopy(dst, s)
	if diff := gocmp.Diff([]int{6, 5, 4, 3, 2, 1, 0}, dst); diff != "" {
		t.Errorf("ReverseCopy (-want +got):\n%s", diff)
	}

	ReverseBlock(s[:3], s[4:])
	if diff := gocmp.Diff([]int{6, 5, 4, 3, 2, 1, 0}, s); diff != "" {
		t.Errorf("ReverseBlock (-want +got):\n%s", diff)
	}
}
