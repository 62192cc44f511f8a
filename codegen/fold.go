package codegen

import "math"

// Checked 64-bit integer arithmetic used by constant folding. Each helper
// reports ok=false when the exact result does not fit in an int64.

func addInt(a, b int64) (int64, bool) {
	r := a + b
	if (a > 0 && b > 0 && r < 0) || (a < 0 && b < 0 && r >= 0) {
		return 0, false
	}
	return r, true
}

func subInt(a, b int64) (int64, bool) {
	r := a - b
	if (a >= 0 && b < 0 && r < 0) || (a < 0 && b > 0 && r >= 0) {
		return 0, false
	}
	return r, true
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	r := a * b
	if r/b != a {
		return 0, false
	}
	return r, true
}

// divInt is floored division. b must be non-zero and the pair must not be
// MinInt64 / -1.
func divInt(a, b int64) int64 {
	q := a / b
	if (a^b) < 0 && q*b != a {
		q--
	}
	return q
}

// modInt is the floored modulo, taking the sign of b. b must be non-zero.
func modInt(a, b int64) int64 {
	if a == math.MinInt64 && b == -1 {
		return 0
	}
	m := a % b
	if (a < 0) != (b < 0) && m != 0 {
		m += b
	}
	return m
}

// shiftInt shifts val left by width bits, or right when width is negative.
// A right shift saturates to 0 or -1; a left shift that loses bits fails.
func shiftInt(val, width int64) (int64, bool) {
	const maxWidth = 63
	if width < 0 {
		if width == math.MinInt64 || -width >= maxWidth {
			if val < 0 {
				return -1, true
			}
			return 0, true
		}
		return val >> uint(-width), true
	}
	switch {
	case val > 0:
		if width > maxWidth || val > math.MaxInt64>>uint(width) {
			return 0, false
		}
		return val << uint(width), true
	case val < 0:
		if width > maxWidth || val < math.MinInt64>>uint(width) {
			return 0, false
		}
		if width == maxWidth {
			return math.MinInt64, true
		}
		return val * (int64(1) << uint(width)), true
	}
	return 0, true
}
