package zplane

import (
	"math"
	"math/cmplx"
)

const (
	// minLogRadius floors the radius before log-space interpolation so
	// geodesic blending stays defined for (near-)zero radii.
	minLogRadius = 1e-9

	// rateEpsilon is the sample-rate difference below which Remap takes
	// the identity fast path.
	rateEpsilon = 1e-6

	// denominatorEpsilon guards the bilinear transforms against
	// near-singular denominators (pole at or mirrored onto z = -1).
	denominatorEpsilon = 1e-9
)

// PolePair is one conjugate pole pair of a resonator in polar z-plane form.
// Radius controls the sharpness of the resonance and must stay inside the
// unit circle; Angle controls its center frequency and is kept normalized
// to (-pi, pi].
type PolePair struct {
	Radius float64
	Angle  float64
}

// PoleFromFrequency places a pole pair at the given center frequency (Hz)
// for the given sample rate.
func PoleFromFrequency(freqHz, radius, sampleRate float64) PolePair {
	return PolePair{
		Radius: radius,
		Angle:  normalizeAngle(2 * math.Pi * freqHz / sampleRate),
	}
}

// FrequencyHz returns the resonance center frequency the pole angle
// corresponds to at the given sample rate.
func (p PolePair) FrequencyHz(sampleRate float64) float64 {
	return math.Abs(p.Angle) * sampleRate / (2 * math.Pi)
}

// Interpolate blends two pole pairs at position t in [0, 1].
//
// With geodesic set, the radius follows the log-space path between the two
// radii, which preserves the proportional nature of resonance decay and
// morphs more smoothly than a linear blend. The angle always steps along
// the signed shortest arc, so reference angles straddling the ±pi boundary
// do not produce a phase reversal.
//
// At t <= 0 the result is exactly a; at t >= 1 exactly b.
func Interpolate(a, b PolePair, t float64, geodesic bool) PolePair {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}

	var radius float64
	if geodesic {
		la := math.Log(math.Max(a.Radius, minLogRadius))
		lb := math.Log(math.Max(b.Radius, minLogRadius))
		radius = math.Exp(la + t*(lb-la))
	} else {
		radius = a.Radius + t*(b.Radius-a.Radius)
	}

	delta := normalizeAngle(b.Angle - a.Angle)

	return PolePair{
		Radius: radius,
		Angle:  normalizeAngle(a.Angle + t*delta),
	}
}

// Remap converts a pole authored at referenceRate into the pole with the
// same analog resonance at targetRate, via an inverse-then-forward bilinear
// transform round trip. A naive linear angle rescale shifts the perceived
// resonant frequency; the bilinear round trip preserves it.
//
// If either transform denominator is near singular the pole is returned
// unchanged rather than propagating an unstable result.
func Remap(pole PolePair, referenceRate, targetRate float64) PolePair {
	if math.Abs(targetRate-referenceRate) < rateEpsilon {
		return pole
	}

	z := cmplx.Rect(pole.Radius, pole.Angle)

	den := z + 1
	if cmplx.Abs(den) < denominatorEpsilon {
		return pole
	}

	// Digital at the reference rate -> analog: s = 2*fr*(z-1)/(z+1).
	s := complex(2*referenceRate, 0) * (z - 1) / den

	den = complex(2*targetRate, 0) - s
	if cmplx.Abs(den) < denominatorEpsilon {
		return pole
	}

	// Analog -> digital at the target rate: z' = (2*ft+s)/(2*ft-s).
	warped := (complex(2*targetRate, 0) + s) / den

	radius, angle := cmplx.Polar(warped)

	return PolePair{
		Radius: radius,
		Angle:  normalizeAngle(angle),
	}
}

// normalizeAngle wraps theta into (-pi, pi].
func normalizeAngle(theta float64) float64 {
	theta = math.Mod(theta, 2*math.Pi)
	if theta <= -math.Pi {
		theta += 2 * math.Pi
	} else if theta > math.Pi {
		theta -= 2 * math.Pi
	}

	return theta
}
