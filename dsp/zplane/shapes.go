package zplane

import (
	"fmt"

	"github.com/cwbudde/algo-zplane/dsp/core"
	"github.com/cwbudde/algo-zplane/dsp/filter/biquad"
)

// NumSections is the number of pole pairs in a Shape, one per cascade section.
const NumSections = biquad.NumSections

// ReferenceRate is the sample rate (Hz) all factory shapes are authored at.
const ReferenceRate = 48000.0

// Shape is an immutable ordered set of exactly NumSections pole pairs
// authored at one reference sample rate.
type Shape struct {
	poles [NumSections]PolePair
}

// NewShape validates and normalizes the given pole pairs into a Shape.
// Radii must be finite and lie in [0, 1); angles are wrapped into (-pi, pi].
func NewShape(poles [NumSections]PolePair) (Shape, error) {
	for i, p := range poles {
		if !core.IsFinite(p.Radius) || !core.IsFinite(p.Angle) {
			return Shape{}, fmt.Errorf("zplane: pole %d is not finite: %+v", i, p)
		}

		if p.Radius < 0 || p.Radius >= 1 {
			return Shape{}, fmt.Errorf("zplane: pole %d radius %g outside [0, 1)", i, p.Radius)
		}

		poles[i].Angle = normalizeAngle(p.Angle)
	}

	return Shape{poles: poles}, nil
}

// Pole returns the i-th pole pair.
func (s Shape) Pole(i int) PolePair {
	return s.poles[i]
}

// Poles returns a copy of all pole pairs.
func (s Shape) Poles() [NumSections]PolePair {
	return s.poles
}

// formant is one authored resonance: center frequency at ReferenceRate
// plus pole radius.
type formant struct {
	freqHz float64
	radius float64
}

func shapeFromFormants(formants [NumSections]formant) Shape {
	var poles [NumSections]PolePair
	for i, f := range formants {
		poles[i] = PoleFromFrequency(f.freqHz, f.radius, ReferenceRate)
	}

	return Shape{poles: poles}
}

// ShapeVowelAe returns the open-vowel voicing: formants of an "ae" vowel
// with three upper resonances filling out the cascade.
func ShapeVowelAe() Shape {
	return shapeFromFormants([NumSections]formant{
		{660, 0.985},
		{1720, 0.978},
		{2410, 0.970},
		{3300, 0.962},
		{4500, 0.954},
		{5800, 0.946},
	})
}

// ShapeVowelOo returns the closed-vowel voicing: formants of an "oo" vowel
// with three upper resonances filling out the cascade.
func ShapeVowelOo() Shape {
	return shapeFromFormants([NumSections]formant{
		{300, 0.987},
		{870, 0.980},
		{2240, 0.971},
		{3260, 0.963},
		{4200, 0.955},
		{5500, 0.947},
	})
}
