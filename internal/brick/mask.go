package brick

import (
	"slices"

	"github.com/ajroetker/go-pstl/simd"
)

// CalcMask1 stores pred(s[i]) into mask[i] and returns the number of true
// flags.
func CalcMask1[T any](s []T, mask []bool, pred func(T) bool, vec bool) int {
	if vec {
		return simd.CalcMask(0, len(s), simd.Lanes[T](), mask, func(i int) bool { return pred(s[i]) })
	}
	count := 0
	for i, v := range s {
		mask[i] = pred(v)
		if mask[i] {
			count++
		}
	}
	return count
}

// CalcMask2 flags s[k] for k in [lo, hi) when it starts a new run, that is
// when eq(s[k-1], s[k]) is false, and returns the number of flags set.
// lo must be at least 1.
func CalcMask2[T any](s []T, lo, hi int, mask []bool, eq func(a, b T) bool, vec bool) int {
	if vec {
		return simd.CalcMask(lo, hi, simd.Lanes[T](), mask, func(k int) bool { return !eq(s[k-1], s[k]) })
	}
	count := 0
	for k := lo; k < hi; k++ {
		mask[k] = !eq(s[k-1], s[k])
		if mask[k] {
			count++
		}
	}
	return count
}

// CopyByMask writes the flagged elements of src to dst in order and
// returns how many were written.
func CopyByMask[T any](dst, src []T, mask []bool, vec bool) int {
	if vec {
		return simd.CopyByMask(dst, src, mask)
	}
	k := 0
	for i, v := range src {
		if mask[i] {
			dst[k] = v
			k++
		}
	}
	return k
}

// PartitionByMask writes flagged elements of src to outTrue and the rest
// to outFalse, both in order.
func PartitionByMask[T any](outTrue, outFalse, src []T, mask []bool, vec bool) (nt, nf int) {
	if vec {
		return simd.PartitionByMask(outTrue, outFalse, src, mask)
	}
	for i, v := range src {
		if mask[i] {
			outTrue[nt] = v
			nt++
		} else {
			outFalse[nf] = v
			nf++
		}
	}
	return nt, nf
}

// CopyIf writes the elements of src satisfying pred to dst in order and
// returns how many were written.
func CopyIf[T any](dst, src []T, pred func(T) bool, vec bool) int {
	if vec {
		var mask [simd.MaxBlock]bool
		lanes := simd.Lanes[T]()
		k := 0
		for base := 0; base < len(src); base += simd.MaxBlock {
			blk := src[base:min(base+simd.MaxBlock, len(src))]
			m := mask[:len(blk)]
			simd.CalcMask(0, len(blk), lanes, m, func(i int) bool { return pred(blk[i]) })
			k += simd.CopyByMask(dst[k:], blk, m)
		}
		return k
	}
	k := 0
	for _, v := range src {
		if pred(v) {
			dst[k] = v
			k++
		}
	}
	return k
}

// UniqueCopy writes src to dst, dropping every element for which eq holds
// with its predecessor in src, and returns how many were written.
func UniqueCopy[T any](dst, src []T, eq func(a, b T) bool, vec bool) int {
	if len(src) == 0 {
		return 0
	}
	dst[0] = src[0]
	k := 1
	if vec {
		// Each window carries its predecessor at index 0, so the flags of
		// a window start at 1.
		var mask [simd.MaxBlock + 1]bool
		for base := 1; base < len(src); base += simd.MaxBlock {
			blk := src[base-1 : min(base+simd.MaxBlock, len(src))]
			m := mask[:len(blk)]
			CalcMask2(blk, 1, len(blk), m, eq, true)
			k += CopyByMask(dst[k:], blk[1:], m[1:], true)
		}
		return k
	}
	for i := 1; i < len(src); i++ {
		if !eq(src[i-1], src[i]) {
			dst[k] = src[i]
			k++
		}
	}
	return k
}

// PartitionCopy writes elements satisfying pred to outTrue and the rest to
// outFalse, both in order.
func PartitionCopy[T any](outTrue, outFalse, src []T, pred func(T) bool) (nt, nf int) {
	for _, v := range src {
		if pred(v) {
			outTrue[nt] = v
			nt++
		} else {
			outFalse[nf] = v
			nf++
		}
	}
	return nt, nf
}

// Unique removes consecutive elements equal under eq in place and returns
// the new length. Elements past it are zeroed.
func Unique[T any](s []T, eq func(a, b T) bool) int {
	return len(slices.CompactFunc(s, eq))
}

// RemoveIf removes the elements satisfying pred in place, keeping the
// order of the rest, and returns the new length. Elements past it are
// zeroed.
func RemoveIf[T any](s []T, pred func(T) bool) int {
	return len(slices.DeleteFunc(s, pred))
}

// Partition reorders s so that elements satisfying pred come first and
// returns their count. Relative order is not kept.
func Partition[T any](s []T, pred func(T) bool) int {
	i, j := 0, len(s)
	for {
		for i < j && pred(s[i]) {
			i++
		}
		for i < j && !pred(s[j-1]) {
			j--
		}
		if i >= j {
			return i
		}
		j--
		s[i], s[j] = s[j], s[i]
		i++
	}
}

// StablePartition reorders s so that elements satisfying pred come first,
// keeping relative order in both groups, and returns their count.
func StablePartition[T any](s []T, pred func(T) bool) int {
	rest := make([]T, 0, len(s))
	k := 0
	for _, v := range s {
		if pred(v) {
			s[k] = v
			k++
		} else {
			rest = append(rest, v)
		}
	}
	copy(s[k:], rest)
	return k
}
