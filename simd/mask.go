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

import "math/bits"

// Mask holds one bit per lane of a batch. Lane i is active when bit i is set.
type Mask uint64

// FirstN returns a mask with the first n lanes active.
func FirstN(n int) Mask {
	if n >= MaxBlock {
		return ^Mask(0)
	}
	if n <= 0 {
		return 0
	}
	return Mask(1)<<uint(n) - 1
}

// FindFirstTrue returns the index of the first active lane, or -1 if none.
func (m Mask) FindFirstTrue() int {
	if m == 0 {
		return -1
	}
	return bits.TrailingZeros64(uint64(m))
}

// FindLastTrue returns the index of the last active lane, or -1 if none.
func (m Mask) FindLastTrue() int {
	if m == 0 {
		return -1
	}
	return 63 - bits.LeadingZeros64(uint64(m))
}

// CountTrue returns the number of active lanes.
func (m Mask) CountTrue() int {
	return bits.OnesCount64(uint64(m))
}

// AllTrue reports whether the first n lanes are all active.
func (m Mask) AllTrue(n int) bool {
	want := FirstN(n)
	return m&want == want
}

// AnyTrue reports whether any lane is active.
func (m Mask) AnyTrue() bool {
	return m != 0
}

// evalMask evaluates pred on lanes [base, base+n) and packs the results.
func evalMask(base, n int, pred func(i int) bool) Mask {
	var m Mask
	for l := range n {
		if pred(base + l) {
			m |= 1 << uint(l)
		}
	}
	return m
}

// loadMask packs flags[base:base+n] into a Mask.
func loadMask(flags []bool, base, n int) Mask {
	var m Mask
	for l, f := range flags[base : base+n] {
		if f {
			m |= 1 << uint(l)
		}
	}
	return m
}
