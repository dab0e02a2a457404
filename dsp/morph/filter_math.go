//go:build !fastmath

package morph

import "math"

// mathTanh computes tanh(x) using standard library math.
func mathTanh(x float64) float64 {
	return math.Tanh(x)
}

// mathSqrt computes sqrt(x) using standard library math.
func mathSqrt(x float64) float64 {
	return math.Sqrt(x)
}
