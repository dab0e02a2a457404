package testutil

import (
	"math"
	"testing"
)

func TestRequireSliceEqualAccepts(t *testing.T) {
	a := []float64{1, -0.5, 0.25}
	RequireSliceEqual(t, a, Clone(a))
}

func TestRequireSliceEqualSignedZero(t *testing.T) {
	// The equal-power mix can produce -0 where the reference has +0; Go's
	// != treats the two as equal, so bit-exact comparisons stay usable.
	RequireSliceEqual(t, []float64{math.Copysign(0, -1)}, []float64{0})
}

func TestRequireSliceEqualEmpty(t *testing.T) {
	RequireSliceEqual(t, nil, []float64{})
}

func TestRequireSliceNearlyEqualAccepts(t *testing.T) {
	got := []float64{1, -0.5, 0.25}
	want := []float64{1 + 1e-13, -0.5, 0.25 - 1e-13}
	RequireSliceNearlyEqual(t, got, want, 1e-12)
}

func TestRequireFiniteAccepts(t *testing.T) {
	RequireFinite(t, []float64{0, 1e300, -1e-300, math.SmallestNonzeroFloat64})
}
