//go:build fastmath

package morph

import (
	"github.com/meko-christian/algo-approx"
)

// mathTanh computes tanh(x) using fast approximation.
// Uses the identity: tanh(x) = 1 - 2/(e^(2x) + 1)
func mathTanh(x float64) float64 {
	return 1 - 2/(approx.FastExp(2*x)+1)
}

// mathSqrt computes sqrt(x) using fast approximation.
func mathSqrt(x float64) float64 {
	return approx.FastSqrt(x)
}
