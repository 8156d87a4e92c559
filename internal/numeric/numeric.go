// Package numeric holds the small numeric helpers the layout solver leans
// on repeatedly: clamping, linear interpolation, and fixed-point rounding.
// Adapted from glimo's internal/core/geom math helpers for float32 layout
// coordinates instead of float64 color/vector math.
package numeric

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// ClampF32 constrains x to stay within the range [lo, hi].
func ClampF32(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Lerp performs linear interpolation between a and b using t in [0, 1].
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// MaxF32 returns the greater of two float32s.
func MaxF32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// MinF32 returns the lesser of two float32s.
func MinF32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// MaxInt returns the greater of two ints.
func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ClampInt constrains v to stay within the range [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Quant64 rounds a floating-point coordinate to the nearest 1/64 unit,
// matching glimo's rounding convention so layout coordinates stay stable
// across repeated re-solves instead of drifting by float noise.
func Quant64(v float32) float32 {
	return float32(fixedRound(float64(v)))
}

func fixedRound(v float64) float64 {
	x := fixed.Int26_6(math.Round(v * 64))
	const shift, mask = 6, 1<<6 - 1
	if x >= 0 {
		return float64(x>>shift) + float64(x&mask)/64
	}
	x = -x
	return -(float64(x>>shift) + float64(x&mask)/64)
}

// IsNearlyZero reports whether v is within a small epsilon of zero, used to
// decide whether a remainder-distribution step has anything left to place.
func IsNearlyZero(v float32) bool {
	const eps = 1e-4
	return v > -eps && v < eps
}
