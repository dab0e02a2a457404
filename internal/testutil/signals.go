// Package testutil provides deterministic stimulus generators and assertion
// helpers shared by the package test suites.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a sine wave with zero initial phase.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// DeterministicNoise generates uniform white noise from a fixed seed, so a
// failing run reproduces exactly.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// Ones returns a slice of length n filled with 1.0, the unit step the
// envelope tests drive their follower with.
func Ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}

	return out
}

// Clone returns an independent copy of src. In-place processors mutate their
// input, so tests clone the stimulus before feeding it.
func Clone(src []float64) []float64 {
	out := make([]float64, len(src))
	copy(out, src)

	return out
}
