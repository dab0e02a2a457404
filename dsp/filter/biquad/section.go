//nolint:funcorder
package biquad

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/cwbudde/algo-zplane/dsp/core"
	archregistry "github.com/cwbudde/algo-zplane/dsp/filter/biquad/internal/arch/registry"
)

// saturationDriveScale maps a saturation amount in [0, 1] to the tanh
// drive factor 1 + saturationDriveScale*amount.
const saturationDriveScale = 4.0

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Section is a single biquad filter with coefficients and internal state.
// It implements Direct Form II Transposed processing with an optional
// per-stage tanh saturator applied after the linear difference equation.
//
// The zero value is a usable (silent) section with saturation disabled.
type Section struct {
	Coefficients

	d0, d1     float64
	saturation float64
}

var (
	processBlockImpl     archregistry.BlockFn
	processBlockInitOnce sync.Once
)

// NewSection returns a Section initialized with the given coefficients,
// zero state and saturation disabled.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// SetSaturation sets the per-stage saturation amount, clamped to [0, 1].
// At 0 the section is purely linear; above 0 the output passes through
// tanh(y * (1 + 4*amount)) after the linear stage.
func (s *Section) SetSaturation(amount float64) {
	s.saturation = core.Clamp01(amount)
}

// Saturation returns the current per-stage saturation amount.
func (s *Section) Saturation() float64 {
	return s.saturation
}

// ProcessSample filters one input sample and returns the output.
//
// After the linear Direct Form II Transposed stage the optional saturator
// is applied, and a non-finite result is replaced with 0 so that NaN or
// Inf never propagates downstream.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y

	if s.saturation > 0 {
		y = math.Tanh(y * (1 + saturationDriveScale*s.saturation))
	}

	if !core.IsFinite(y) {
		y = 0
	}

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
//
// Linear sections run on the fastest registered block kernel for the host
// CPU; saturating sections take the scalar path so the nonlinearity stays
// sample-accurate.
func (s *Section) ProcessBlock(buf []float64) {
	if s.saturation > 0 {
		s.processBlockSaturating(buf)
		return
	}

	processBlockInitOnce.Do(initProcessBlockKernel)

	coeffs := archregistry.Coefficients{
		B0: s.B0,
		B1: s.B1,
		B2: s.B2,
		A1: s.A1,
		A2: s.A2,
	}

	s.d0, s.d1 = processBlockImpl(coeffs, s.d0, s.d1, buf)
}

func initProcessBlockKernel() {
	kernel := archregistry.Global.Lookup(cpu.DetectFeatures())
	if kernel == nil {
		panic("biquad: no block kernel registered (missing generic fallback?)")
	}

	if kernel.Block == nil {
		panic("biquad: selected kernel has no block function")
	}

	processBlockImpl = kernel.Block
}

func (s *Section) processBlockScalar(buf []float64) {
	for i, x := range buf {
		y := s.B0*x + s.d0
		s.d0 = s.B1*x - s.A1*y + s.d1
		s.d1 = s.B2*x - s.A2*y
		buf[i] = y
	}
}

// processBlockSaturating is the scalar path for sections with saturation
// enabled. It matches ProcessSample exactly, including the finite guard.
func (s *Section) processBlockSaturating(buf []float64) {
	b0, b1, b2 := s.B0, s.B1, s.B2
	a1, a2 := s.A1, s.A2
	drive := 1 + saturationDriveScale*s.saturation
	d0, d1 := s.d0, s.d1

	for i, x := range buf {
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y

		y = math.Tanh(y * drive)
		if !core.IsFinite(y) {
			y = 0
		}

		buf[i] = y
	}

	s.d0, s.d1 = d0, d1
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
// Zero-alloc. Saturation and the finite guard apply as in ProcessSample.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		dst[i] = s.ProcessSample(x)
	}
}

// Reset clears the delay line to zero.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// State returns the current delay-line state [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// SetState restores a previously saved delay-line state.
func (s *Section) SetState(state [2]float64) {
	s.d0 = state[0]
	s.d1 = state[1]
}
