package brick

// Set operations over sorted inputs with multiset semantics: an element
// that appears m times in a and n times in b is counted min(m, n) times
// as common. All of them write to dst and return the number written.

// Includes reports whether every element of sorted b appears in sorted a.
func Includes[T any](a, b []T, cmp func(x, y T) int) bool {
	i := 0
	for _, v := range b {
		for i < len(a) && cmp(a[i], v) < 0 {
			i++
		}
		if i == len(a) || cmp(v, a[i]) < 0 {
			return false
		}
		i++
	}
	return true
}

// SetUnion writes the sorted union of a and b to dst. Common elements are
// taken from a.
func SetUnion[T any](dst, a, b []T, cmp func(x, y T) int) int {
	i, j, k := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch c := cmp(a[i], b[j]); {
		case c < 0:
			dst[k] = a[i]
			i++
		case c > 0:
			dst[k] = b[j]
			j++
		default:
			dst[k] = a[i]
			i++
			j++
		}
		k++
	}
	k += copy(dst[k:], a[i:])
	return k + copy(dst[k:], b[j:])
}

// SetIntersection writes the elements common to a and b to dst, taken
// from a.
func SetIntersection[T any](dst, a, b []T, cmp func(x, y T) int) int {
	i, j, k := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch c := cmp(a[i], b[j]); {
		case c < 0:
			i++
		case c > 0:
			j++
		default:
			dst[k] = a[i]
			k++
			i++
			j++
		}
	}
	return k
}

// SetDifference writes the elements of a not matched in b to dst.
func SetDifference[T any](dst, a, b []T, cmp func(x, y T) int) int {
	i, j, k := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch c := cmp(a[i], b[j]); {
		case c < 0:
			dst[k] = a[i]
			k++
			i++
		case c > 0:
			j++
		default:
			i++
			j++
		}
	}
	return k + copy(dst[k:], a[i:])
}

// SetSymmetricDifference writes the elements of a not matched in b and of
// b not matched in a to dst, in sorted order.
func SetSymmetricDifference[T any](dst, a, b []T, cmp func(x, y T) int) int {
	i, j, k := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch c := cmp(a[i], b[j]); {
		case c < 0:
			dst[k] = a[i]
			k++
			i++
		case c > 0:
			dst[k] = b[j]
			k++
			j++
		default:
			i++
			j++
		}
	}
	k += copy(dst[k:], a[i:])
	return k + copy(dst[k:], b[j:])
}

// Rotate rotates s left by mid in place and returns the new position of
// the element that was first, len(s)-mid.
func Rotate[T any](s []T, mid int) int {
	n := len(s)
	if mid <= 0 || mid >= n {
		if mid <= 0 {
			return n
		}
		return 0
	}
	reverse(s[:mid])
	reverse(s[mid:])
	reverse(s)
	return n - mid
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
