package util

import "math"

// SafeDiv returns n/d, or 0 when the denominator is (near) zero.
// Used for CPU% derivation where a zero process uptime must yield 0
// instead of a division by zero.
func SafeDiv(n, d float64) float64 {
	const eps = 1e-12
	if d > eps || d < -eps {
		return n / d
	}
	return 0
}

// Round2 rounds to two decimal places, the precision every serialized
// metric carries.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return math.Round(x*100) / 100
}
