package testutil

import (
	"math"
	"testing"
)

// RequireSliceEqual fails t if got and want differ in length or in any
// element. Used where two code paths must agree bit-for-bit.
func RequireSliceEqual(t *testing.T, got, want []float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

// RequireSliceNearlyEqual fails t if got and want differ in length or any
// element differs by more than tol. Used where two code paths compute the
// same values through differently shaped arithmetic, where fused multiply
// add contraction can move the last bits.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, tol float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			t.Fatalf("index %d: got %v, want %v (tol %v)", i, got[i], want[i], tol)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}
