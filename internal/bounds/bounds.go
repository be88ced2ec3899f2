// Package bounds holds overflow-safe arithmetic for cursor and capacity checks.
package bounds

import "math"

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// Fits reports whether [off, off+n) lies within [0, size).
func Fits(size, off, n int) bool {
	if off < 0 || n < 0 || off > size {
		return false
	}
	end, ok := AddOverflowSafe(off, n)
	return ok && end <= size
}

// IsPow2 reports whether x is a positive power of two.
func IsPow2(x int) bool {
	return x > 0 && x&(x-1) == 0
}

// ScaleFloor returns floor(x * ratio), ok = false when the product does not fit in int.
func ScaleFloor(x int, ratio float64) (int, bool) {
	f := math.Floor(float64(x) * ratio)
	if math.IsNaN(f) || f >= math.MaxInt || f < math.MinInt {
		return 0, false
	}
	return int(f), true
}
