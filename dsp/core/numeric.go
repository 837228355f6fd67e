// Package core provides small numeric helpers shared across the DSP
// packages.
package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// NearlyEqual reports whether a and b match within eps, absolutely or
// relative to the larger magnitude. A non-positive eps selects a default.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return false
	}
	return diff/largest <= eps
}

// FlushDenormals snaps values below the denormal threshold to exact zero.
// Recursive filters call this on their delay state so decaying tails do not
// trigger denormal slow paths.
func FlushDenormals(x float64) float64 {
	const threshold = 1e-30
	if x > -threshold && x < threshold {
		return 0
	}
	return x
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}
	if linear == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(linear)
}

// LinearPowerToDB converts linear power to dB (10*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearPowerToDB(power float64) float64 {
	if power < 0 {
		return math.NaN()
	}
	if power == 0 {
		return math.Inf(-1)
	}
	return 10 * math.Log10(power)
}
