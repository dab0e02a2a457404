package core

import "math"

// Clamp01 limits a control value to the unit range [0, 1]. NaN maps to 0.
func Clamp01(value float64) float64 {
	if math.IsNaN(value) || value < 0 {
		return 0
	}

	if value > 1 {
		return 1
	}

	return value
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
