package core

import (
	"math"
	"testing"
)

func TestClamp01(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{name: "inside", value: 0.25, want: 0.25},
		{name: "zero", value: 0, want: 0},
		{name: "one", value: 1, want: 1},
		{name: "below", value: -0.5, want: 0},
		{name: "above", value: 1.5, want: 1},
		{name: "negative infinity", value: math.Inf(-1), want: 0},
		{name: "positive infinity", value: math.Inf(1), want: 1},
		{name: "nan", value: math.NaN(), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp01(tt.value); got != tt.want {
				t.Fatalf("Clamp01(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	for _, v := range []float64{0, 1.5, -1e300, math.SmallestNonzeroFloat64} {
		if !IsFinite(v) {
			t.Fatalf("IsFinite(%v) = false, want true", v)
		}
	}

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if IsFinite(v) {
			t.Fatalf("IsFinite(%v) = true, want false", v)
		}
	}
}
