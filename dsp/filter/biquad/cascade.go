package biquad

// NumSections is the number of second-order sections in a Cascade,
// matching the 12-pole topology the cascade models (6 conjugate pairs).
const NumSections = 6

// Cascade is a fixed-length chain of NumSections biquad sections processed
// in series: the output of section i feeds section i+1. Stereo processing
// uses two Cascades that receive identical coefficients.
type Cascade struct {
	sections [NumSections]Section
}

// NewCascade creates a cascade from one coefficient set per section,
// with zero state and saturation disabled.
func NewCascade(coeffs [NumSections]Coefficients) *Cascade {
	c := &Cascade{}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}

	return c
}

// ProcessSample cascades one input sample through all sections in order.
func (c *Cascade) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters a block in-place through the full cascade.
// Each linear section runs on the dispatched block kernel; saturating
// sections take the sample-accurate scalar path.
func (c *Cascade) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// ProcessBlockTo filters src into dst without modifying src.
// Both slices must have the same length.
func (c *Cascade) ProcessBlockTo(dst, src []float64) {
	c.sections[0].ProcessBlockTo(dst, src)
	for i := 1; i < NumSections; i++ {
		c.sections[i].ProcessBlock(dst)
	}
}

// SetCoefficients replaces all section coefficients. The delay-line state
// of each section is preserved, avoiding the output discontinuity that
// would result from restarting with zero state mid-stream.
func (c *Cascade) SetCoefficients(coeffs [NumSections]Coefficients) {
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}
}

// Coefficients returns a copy of all section coefficients.
func (c *Cascade) Coefficients() [NumSections]Coefficients {
	var out [NumSections]Coefficients
	for i := range c.sections {
		out[i] = c.sections[i].Coefficients
	}

	return out
}

// SetSaturation sets the same per-stage saturation amount on every section,
// clamped to [0, 1].
func (c *Cascade) SetSaturation(amount float64) {
	for i := range c.sections {
		c.sections[i].SetSaturation(amount)
	}
}

// Saturation returns the per-stage saturation amount.
func (c *Cascade) Saturation() float64 {
	return c.sections[0].Saturation()
}

// Reset clears all section states.
func (c *Cascade) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// Order returns the total filter order (2 per section).
func (c *Cascade) Order() int {
	return 2 * NumSections
}

// Section returns a pointer to the i-th section for inspection or modification.
func (c *Cascade) Section(i int) *Section {
	return &c.sections[i]
}

// State returns a snapshot of all section delay-line states.
func (c *Cascade) State() [NumSections][2]float64 {
	var states [NumSections][2]float64
	for i := range c.sections {
		states[i] = c.sections[i].State()
	}

	return states
}

// SetState restores previously saved section states.
func (c *Cascade) SetState(states [NumSections][2]float64) {
	for i := range c.sections {
		c.sections[i].SetState(states[i])
	}
}
