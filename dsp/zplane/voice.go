package zplane

import (
	"math"

	"github.com/cwbudde/algo-zplane/dsp/core"
	"github.com/cwbudde/algo-zplane/dsp/filter/biquad"
)

const (
	// StabilityCeiling is the hard upper bound on any boosted pole radius,
	// keeping every voiced resonator strictly inside the unit circle.
	StabilityCeiling = 0.9950

	// intensityBoostScale maps an intensity in [0, 1] to the radius boost
	// factor 1 + intensity*intensityBoostScale.
	intensityBoostScale = 0.05

	// zeroRadiusRatio places the numerator zero pair at this fraction of
	// the pole radius (same angle), shaping the resonance skirt.
	zeroRadiusRatio = 0.9

	// minNumeratorSum floors the numerator normalization divisor so an
	// extreme configuration cannot explode the section gain.
	minNumeratorSum = 1e-6
)

// BoostRadius sharpens a resonance by scaling the pole radius with an
// intensity-derived factor. The result never exceeds StabilityCeiling,
// for any intensity.
func BoostRadius(pole PolePair, intensity float64) PolePair {
	radius := pole.Radius * (1 + core.Clamp01(intensity)*intensityBoostScale)
	if radius > StabilityCeiling {
		radius = StabilityCeiling
	}

	pole.Radius = radius

	return pole
}

// Coefficients voices a pole pair as one biquad section: the denominator
// realizes the conjugate pole pair, the numerator places a zero pair at
// zeroRadiusRatio of the pole radius on the pole angle, and the numerator
// is normalized by the sum of its absolute coefficients (floored at
// minNumeratorSum).
func Coefficients(pole PolePair) biquad.Coefficients {
	cosTheta := math.Cos(pole.Angle)

	a1 := -2 * pole.Radius * cosTheta
	a2 := pole.Radius * pole.Radius

	zeroRadius := zeroRadiusRatio * pole.Radius
	b0 := 1.0
	b1 := -2 * zeroRadius * cosTheta
	b2 := zeroRadius * zeroRadius

	scale := 1 / math.Max(math.Abs(b0)+math.Abs(b1)+math.Abs(b2), minNumeratorSum)

	return biquad.Coefficients{
		B0: b0 * scale,
		B1: b1 * scale,
		B2: b2 * scale,
		A1: a1,
		A2: a2,
	}
}
