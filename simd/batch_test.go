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

package simd

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"
)

var testSizes = []int{0, 1, 3, 7, 8, 15, 16, 17, 63, 64, 65, 100, 1000}

func TestLanes(t *testing.T) {
	tests := []struct {
		size, width, want int
	}{
		{4, 32, 8},
		{8, 32, 4},
		{1, 64, 64},
		{1, 128, 64},
		{24, 16, 1},
		{0, 16, MaxBlock},
	}
	for _, tt := range tests {
		if got := lanesFor(tt.size, tt.width); got != tt.want {
			t.Errorf("lanesFor(%d, %d) = %d, want %d", tt.size, tt.width, got, tt.want)
		}
	}
	if got := Lanes[int32](); got < 1 || got > MaxBlock {
		t.Errorf("Lanes[int32]() = %d, out of range", got)
	}
}

func TestMask(t *testing.T) {
	m := FirstN(5)
	if m.CountTrue() != 5 {
		t.Errorf("FirstN(5).CountTrue() = %d, want 5", m.CountTrue())
	}
	if !m.AllTrue(5) || m.AllTrue(6) {
		t.Errorf("FirstN(5).AllTrue mismatch")
	}
	if FirstN(64) != ^Mask(0) {
		t.Errorf("FirstN(64) = %x, want all ones", FirstN(64))
	}
	if Mask(0).FindFirstTrue() != -1 {
		t.Errorf("empty mask FindFirstTrue() != -1")
	}
	if got := Mask(0b10100).FindFirstTrue(); got != 2 {
		t.Errorf("FindFirstTrue() = %d, want 2", got)
	}
	if got := Mask(0b10100).FindLastTrue(); got != 4 {
		t.Errorf("FindLastTrue() = %d, want 4", got)
	}
}

func TestFill(t *testing.T) {
	for _, n := range testSizes {
		dst := make([]float32, n)
		Fill(dst, 2.5)
		for i, v := range dst {
			if v != 2.5 {
				t.Fatalf("n=%d: dst[%d] = %v, want 2.5", n, i, v)
			}
		}
	}
}

func TestWalk(t *testing.T) {
	for _, n := range testSizes {
		a := make([]int, n)
		b := make([]int, n)
		c := make([]int, n)
		for i := range a {
			a[i] = i
		}
		Walk2(a, b, func(x, y *int) { *y = *x * 2 })
		Walk3(a, b, c, func(x, y, z *int) { *z = *x + *y })
		Walk1(c, func(z *int) { *z++ })
		for i := range c {
			if c[i] != 3*i+1 {
				t.Fatalf("n=%d: c[%d] = %d, want %d", n, i, c[i], 3*i+1)
			}
		}
	}
}

func TestFirstAndCount(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range testSizes {
		s := make([]int, n)
		for i := range s {
			s[i] = rng.Intn(10)
		}
		pred := func(i int) bool { return s[i] == 7 }

		wantFirst := slices.Index(s, 7)
		if wantFirst < 0 {
			wantFirst = n
		}
		wantCount := 0
		for _, v := range s {
			if v == 7 {
				wantCount++
			}
		}

		for _, lanes := range []int{1, 4, 8, 64} {
			if got := First(n, lanes, pred); got != wantFirst {
				t.Errorf("n=%d lanes=%d: First = %d, want %d", n, lanes, got, wantFirst)
			}
			if got := Count(n, lanes, pred); got != wantCount {
				t.Errorf("n=%d lanes=%d: Count = %d, want %d", n, lanes, got, wantCount)
			}
			if got := Or(n, lanes, pred); got != (wantCount > 0) {
				t.Errorf("n=%d lanes=%d: Or = %v", n, lanes, got)
			}
		}
	}
}

func TestCopyByMask(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, n := range testSizes {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			src := make([]int64, n)
			for i := range src {
				src[i] = rng.Int63n(100)
			}
			mask := make([]bool, n)
			count := CalcMask(0, n, 8, mask, func(i int) bool { return src[i]%2 == 0 })

			var want []int64
			for _, v := range src {
				if v%2 == 0 {
					want = append(want, v)
				}
			}
			if count != len(want) {
				t.Fatalf("CalcMask count = %d, want %d", count, len(want))
			}

			dst := make([]int64, n)
			k := CopyByMask(dst, src, mask)
			if k != len(want) || !slices.Equal(dst[:k], want) {
				t.Errorf("CopyByMask = %v, want %v", dst[:k], want)
			}

			outT := make([]int64, n)
			outF := make([]int64, n)
			nt, nf := PartitionByMask(outT, outF, src, mask)
			if nt+nf != n || !slices.Equal(outT[:nt], want) {
				t.Errorf("PartitionByMask = %v / %v", outT[:nt], outF[:nf])
			}
		})
	}
}

func TestReduce(t *testing.T) {
	for _, n := range testSizes {
		s := make([]int, n)
		want := 10
		for i := range s {
			s[i] = i
			want += i
		}
		got := Reduce(n, 8, 10, func(a, b int) int { return a + b }, func(i int) int { return s[i] })
		if got != want {
			t.Errorf("n=%d: Reduce = %d, want %d", n, got, want)
		}
	}
}

func TestMinMaxIndexTies(t *testing.T) {
	for _, n := range testSizes {
		s := make([]int, n)
		less := func(i, j int) bool { return s[i] < s[j] }
		wantLo, wantHi := -1, -1
		if n > 0 {
			wantLo, wantHi = 0, n-1
		}
		if got := MinIndex(n, 4, less); got != wantLo {
			t.Errorf("n=%d: MinIndex = %d, want %d", n, got, wantLo)
		}
		lo, hi := MinMaxIndex(n, 4, less)
		if lo != wantLo || hi != wantHi {
			t.Errorf("n=%d: MinMaxIndex = (%d, %d), want (%d, %d)", n, lo, hi, wantLo, wantHi)
		}
	}

	s := []int{5, 1, 9, 1, 9, 3, 1, 9, 2, 0, 0, 9, 4, 4, 4, 4, 4, 4, 4}
	less := func(i, j int) bool { return s[i] < s[j] }
	lo, hi := MinMaxIndex(len(s), 2, less)
	if lo != 9 || hi != 11 {
		t.Errorf("MinMaxIndex = (%d, %d), want (9, 11)", lo, hi)
	}
}
