// Package morph implements a real-time morphing resonator filter.
//
// A Filter interpolates between two pole Shapes (dsp/zplane), remaps the
// result to the processing sample rate, and drives two six-section biquad
// cascades (dsp/filter/biquad), one per stereo channel. Controls are smoothed
// so parameter jumps never produce discontinuities mid-block: morph,
// intensity and saturation take effect at block boundaries, drive and mix
// ramp per sample. An optional envelope follower (dsp/envelope) modulates the
// morph position from the program material.
//
//nolint:funcorder
package morph

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/algo-zplane/dsp/core"
	"github.com/cwbudde/algo-zplane/dsp/envelope"
	"github.com/cwbudde/algo-zplane/dsp/filter/biquad"
	"github.com/cwbudde/algo-zplane/dsp/zplane"
)

const (
	defaultMorph      = 0.0
	defaultIntensity  = 0.4
	defaultDrive      = 0.2
	defaultSaturation = 0.2
	defaultMix        = 1.0

	defaultSmoothingMs  = 20.0
	defaultMaxBlockSize = 2048

	maxSmoothingMs = 1000.0
	maxBlockLimit  = 1 << 16

	// driveGainScale maps the normalized drive control onto the input
	// gain of the tanh shaper: gain = 1 + drive*4.
	driveGainScale = 4.0

	// envelopeStabilityEpsilon is the smallest envelope movement that
	// forces a coefficient recompute while envelope modulation is active.
	envelopeStabilityEpsilon = 1e-6
)

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	shapeA   zplane.Shape
	shapeB   zplane.Shape
	geodesic bool

	smoothingMs  float64
	maxBlockSize int

	envelopeDepth     float64
	envelopeAttackMs  float64
	envelopeReleaseMs float64
}

func defaultConfig() config {
	return config{
		shapeA:            zplane.ShapeVowelAe(),
		shapeB:            zplane.ShapeVowelOo(),
		geodesic:          true,
		smoothingMs:       defaultSmoothingMs,
		maxBlockSize:      defaultMaxBlockSize,
		envelopeDepth:     0,
		envelopeAttackMs:  5,
		envelopeReleaseMs: 50,
	}
}

// WithShapes sets the morph endpoint shapes. Position 0 is a, position 1
// is b.
func WithShapes(a, b zplane.Shape) Option {
	return func(cfg *config) error {
		cfg.shapeA = a
		cfg.shapeB = b

		return nil
	}
}

// WithGeodesicMorph selects log-space radius interpolation between the
// endpoint shapes. Enabled by default; disabling falls back to linear
// radius interpolation.
func WithGeodesicMorph(enabled bool) Option {
	return func(cfg *config) error {
		cfg.geodesic = enabled

		return nil
	}
}

// WithSmoothing sets the control smoothing time in milliseconds. Zero
// disables smoothing so control changes snap at the next block.
func WithSmoothing(ms float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(ms, 0, maxSmoothingMs, "smoothing time"); err != nil {
			return err
		}

		cfg.smoothingMs = ms

		return nil
	}
}

// WithMaxBlockSize sets the largest block length the settled fast path can
// handle without falling back to per-sample processing.
func WithMaxBlockSize(n int) Option {
	return func(cfg *config) error {
		if n < 1 || n > maxBlockLimit {
			return fmt.Errorf("morph: max block size must be in [1, %d]: %d", maxBlockLimit, n)
		}

		cfg.maxBlockSize = n

		return nil
	}
}

// WithEnvelope enables envelope modulation of the morph position at the
// given depth in [0, 1]. Zero disables the follower.
func WithEnvelope(depth float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(depth, 0, 1, "envelope depth"); err != nil {
			return err
		}

		cfg.envelopeDepth = depth

		return nil
	}
}

// WithEnvelopeAttack sets the envelope follower attack time in milliseconds.
func WithEnvelopeAttack(ms float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(ms, 0.01, 10000, "envelope attack"); err != nil {
			return err
		}

		cfg.envelopeAttackMs = ms

		return nil
	}
}

// WithEnvelopeRelease sets the envelope follower release time in
// milliseconds.
func WithEnvelopeRelease(ms float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(ms, 0.01, 10000, "envelope release"); err != nil {
			return err
		}

		cfg.envelopeReleaseMs = ms

		return nil
	}
}

// Controls bundles the five control targets of a Filter.
type Controls struct {
	Morph      float64
	Intensity  float64
	Drive      float64
	Saturation float64
	Mix        float64
}

// Filter is a stereo morphing resonator. It is single-threaded: all methods
// except LatestSnapshot must be called from the audio thread.
type Filter struct {
	sampleRate  float64
	maxBlock    int
	smoothingMs float64
	rampSamples int

	shapeA   zplane.Shape
	shapeB   zplane.Shape
	geodesic bool

	morph      ramp
	intensity  ramp
	drive      ramp
	saturation ramp
	mix        ramp

	appliedSaturation float64
	follower          *envelope.Follower
	lastEnvelopeLevel float64
	lastMorph         float64
	lastIntensity     float64
	effectiveMorph    float64

	cascadeLeft  *biquad.Cascade
	cascadeRight *biquad.Cascade

	poles    [zplane.NumSections]zplane.PolePair
	scratchL []float64
	scratchR []float64

	snapshot atomic.Pointer[Snapshot]

	forceUpdate bool
}

// New constructs a morphing filter.
//
// Defaults: vowel shapes ae -> oo, geodesic interpolation, morph 0,
// intensity 0.4, drive 0.2, saturation 0.2, mix 1, 20 ms control smoothing.
func New(sampleRate float64, opts ...Option) (*Filter, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("morph: sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	follower, err := envelope.New(sampleRate,
		envelope.WithAttack(cfg.envelopeAttackMs),
		envelope.WithRelease(cfg.envelopeReleaseMs),
		envelope.WithDepth(cfg.envelopeDepth))
	if err != nil {
		return nil, err
	}

	f := &Filter{
		smoothingMs:  cfg.smoothingMs,
		shapeA:       cfg.shapeA,
		shapeB:       cfg.shapeB,
		geodesic:     cfg.geodesic,
		morph:        newRamp(defaultMorph),
		intensity:    newRamp(defaultIntensity),
		drive:        newRamp(defaultDrive),
		saturation:   newRamp(defaultSaturation),
		mix:          newRamp(defaultMix),
		follower:     follower,
		cascadeLeft:  biquad.NewCascade([biquad.NumSections]biquad.Coefficients{}),
		cascadeRight: biquad.NewCascade([biquad.NumSections]biquad.Coefficients{}),
	}

	if err := f.Prepare(sampleRate, cfg.maxBlockSize); err != nil {
		return nil, err
	}
	f.applySaturation(f.saturation.current)
	f.updateCoefficients()

	return f, nil
}

// SampleRate returns the processing sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// MaxBlockSize returns the largest block the settled fast path handles.
func (f *Filter) MaxBlockSize() int { return f.maxBlock }

// GeodesicMorph reports whether radius interpolation happens in log space.
func (f *Filter) GeodesicMorph() bool { return f.geodesic }

// Morph returns the morph control target.
func (f *Filter) Morph() float64 { return f.morph.target }

// Intensity returns the intensity control target.
func (f *Filter) Intensity() float64 { return f.intensity.target }

// Drive returns the drive control target.
func (f *Filter) Drive() float64 { return f.drive.target }

// Saturation returns the saturation control target.
func (f *Filter) Saturation() float64 { return f.saturation.target }

// Mix returns the dry/wet control target.
func (f *Filter) Mix() float64 { return f.mix.target }

// Controls returns all five control targets.
func (f *Filter) Controls() Controls {
	return Controls{
		Morph:      f.morph.target,
		Intensity:  f.intensity.target,
		Drive:      f.drive.target,
		Saturation: f.saturation.target,
		Mix:        f.mix.target,
	}
}

// SetMorph sets the morph position target in [0, 1]. Values outside the
// range are clamped, non-finite values become 0.
func (f *Filter) SetMorph(value float64) {
	f.morph.setTarget(core.Clamp01(value), f.rampSamples)
}

// SetIntensity sets the resonance intensity target in [0, 1].
func (f *Filter) SetIntensity(value float64) {
	f.intensity.setTarget(core.Clamp01(value), f.rampSamples)
}

// SetDrive sets the input drive target in [0, 1].
func (f *Filter) SetDrive(value float64) {
	f.drive.setTarget(core.Clamp01(value), f.rampSamples)
}

// SetSaturation sets the per-stage saturation target in [0, 1].
func (f *Filter) SetSaturation(value float64) {
	f.saturation.setTarget(core.Clamp01(value), f.rampSamples)
}

// SetMix sets the dry/wet mix target in [0, 1]. The wet and dry paths are
// combined with constant-loudness weights sqrt(mix) and sqrt(1-mix).
func (f *Filter) SetMix(value float64) {
	f.mix.setTarget(core.Clamp01(value), f.rampSamples)
}

// ApplyControls sets all five control targets from one snapshot struct, the
// way a host applies its parameter state at a block boundary. Each value is
// clamped like its individual setter.
func (f *Filter) ApplyControls(c Controls) {
	f.SetMorph(c.Morph)
	f.SetIntensity(c.Intensity)
	f.SetDrive(c.Drive)
	f.SetSaturation(c.Saturation)
	f.SetMix(c.Mix)
}

// SetShapes replaces the morph endpoint shapes and forces a coefficient
// recompute on the next block.
func (f *Filter) SetShapes(a, b zplane.Shape) {
	f.shapeA = a
	f.shapeB = b
	f.forceUpdate = true
}

// Prepare configures the filter for a sample rate and maximum block size.
//
// It resets all cascade delay lines and the envelope follower, snaps control
// ramps to their targets, and forces a full coefficient recompute on the
// next block. Hosts must call it on every sample-rate or block-size change;
// processing allocates nothing afterwards.
func (f *Filter) Prepare(sampleRate float64, maxBlockSize int) error {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("morph: sample rate must be > 0 and finite: %f", sampleRate)
	}
	if maxBlockSize < 1 || maxBlockSize > maxBlockLimit {
		return fmt.Errorf("morph: max block size must be in [1, %d]: %d", maxBlockLimit, maxBlockSize)
	}

	f.sampleRate = sampleRate
	f.maxBlock = maxBlockSize
	f.rampSamples = int(f.smoothingMs * 0.001 * sampleRate)
	f.scratchL = core.EnsureLen(f.scratchL, maxBlockSize)
	f.scratchR = core.EnsureLen(f.scratchR, maxBlockSize)

	if err := f.follower.SetSampleRate(sampleRate); err != nil {
		return err
	}

	f.morph.snapTo(f.morph.target)
	f.intensity.snapTo(f.intensity.target)
	f.drive.snapTo(f.drive.target)
	f.saturation.snapTo(f.saturation.target)
	f.mix.snapTo(f.mix.target)

	f.Reset()
	f.forceUpdate = true

	return nil
}

// Reset clears all audio state: cascade delay lines and the envelope
// follower. Controls and coefficients are left untouched.
func (f *Filter) Reset() {
	f.cascadeLeft.Reset()
	f.cascadeRight.Reset()
	f.follower.Reset()
}

// ProcessStereoInPlace processes one block of planar stereo audio in place.
//
// Per block it advances the block-rate controls, recomputes cascade
// coefficients if any of them moved, then runs the per-sample path: capture
// the dry sample, shape it with tanh(dry*(1+drive*4)), filter through the
// channel cascade, and combine wet and dry with constant-loudness weights.
// When every control is settled and no envelope runs, an equivalent
// block-vectorized path is used instead.
func (f *Filter) ProcessStereoInPlace(left, right []float64) error {
	if len(left) != len(right) {
		return fmt.Errorf("morph: left and right buffers must have equal length: %d != %d",
			len(left), len(right))
	}

	n := len(left)
	if n == 0 {
		return nil
	}

	f.morph.tickBlock(n)
	f.intensity.tickBlock(n)
	if sat := f.saturation.tickBlock(n); sat != f.appliedSaturation {
		f.applySaturation(sat)
	}

	if f.needsCoefficientUpdate() {
		f.updateCoefficients()
	}

	if f.drive.settled && f.mix.settled && !f.envelopeEnabled() && n <= len(f.scratchL) {
		f.processSettledBlock(left, right)
		return nil
	}

	f.processRampingBlock(left, right)

	return nil
}

// EnvelopeLevel returns the follower level used for the most recent
// coefficient update.
func (f *Filter) EnvelopeLevel() float64 { return f.lastEnvelopeLevel }

func (f *Filter) processRampingBlock(left, right []float64) {
	feedEnvelope := f.envelopeEnabled()

	for i := range left {
		drive := f.drive.next()
		mix := f.mix.next()
		driveGain := 1 + drive*driveGainScale
		wetGain := mathSqrt(mix)
		dryGain := mathSqrt(1 - mix)

		dryL := left[i]
		dryR := right[i]

		wetL := f.cascadeLeft.ProcessSample(mathTanh(dryL * driveGain))
		wetR := f.cascadeRight.ProcessSample(mathTanh(dryR * driveGain))

		left[i] = wetGain*wetL + dryGain*dryL
		right[i] = wetGain*wetR + dryGain*dryR

		if feedEnvelope {
			f.follower.ProcessSample(0.5 * (dryL + dryR))
		}
	}
}

func (f *Filter) processSettledBlock(left, right []float64) {
	n := len(left)
	driveGain := 1 + f.drive.current*driveGainScale
	wetGain := mathSqrt(f.mix.current)
	dryGain := mathSqrt(1 - f.mix.current)

	wetL := f.scratchL[:n]
	wetR := f.scratchR[:n]
	for i := range left {
		wetL[i] = mathTanh(left[i] * driveGain)
		wetR[i] = mathTanh(right[i] * driveGain)
	}

	f.cascadeLeft.ProcessBlock(wetL)
	f.cascadeRight.ProcessBlock(wetR)

	vecmath.ScaleBlockInPlace(wetL, wetGain)
	vecmath.ScaleBlockInPlace(wetR, wetGain)
	vecmath.ScaleBlockInPlace(left, dryGain)
	vecmath.ScaleBlockInPlace(right, dryGain)
	vecmath.AddBlockInPlace(left, wetL)
	vecmath.AddBlockInPlace(right, wetR)
}

func (f *Filter) envelopeEnabled() bool {
	return f.follower.Depth() > 0
}

// needsCoefficientUpdate compares the control values against the ones the
// last update consumed, so the final step of a ramp and snapped targets both
// still trigger exactly one recompute before the skip path engages.
func (f *Filter) needsCoefficientUpdate() bool {
	if f.forceUpdate || f.morph.current != f.lastMorph || f.intensity.current != f.lastIntensity {
		return true
	}
	if f.envelopeEnabled() {
		return math.Abs(f.follower.Level()-f.lastEnvelopeLevel) > envelopeStabilityEpsilon
	}

	return false
}

// updateCoefficients derives the active pole set from the morph state and
// loads it into both channel cascades. Per section: interpolate the endpoint
// poles at the reference rate, remap to the processing rate, boost the
// radius by intensity, convert to biquad coefficients.
func (f *Filter) updateCoefficients() {
	env := 0.0
	if f.envelopeEnabled() {
		env = f.follower.Level()
	}
	effMorph := core.Clamp01(f.morph.current + env)

	var coeffs [biquad.NumSections]biquad.Coefficients
	for i := range f.poles {
		pole := zplane.Interpolate(f.shapeA.Pole(i), f.shapeB.Pole(i), effMorph, f.geodesic)
		pole = zplane.Remap(pole, zplane.ReferenceRate, f.sampleRate)
		pole = zplane.BoostRadius(pole, f.intensity.current)

		f.poles[i] = pole
		coeffs[i] = zplane.Coefficients(pole)
	}

	f.cascadeLeft.SetCoefficients(coeffs)
	f.cascadeRight.SetCoefficients(coeffs)
	f.lastEnvelopeLevel = env
	f.lastMorph = f.morph.current
	f.lastIntensity = f.intensity.current
	f.effectiveMorph = effMorph
	f.forceUpdate = false
	f.publishSnapshot()
}

func (f *Filter) applySaturation(amount float64) {
	f.cascadeLeft.SetSaturation(amount)
	f.cascadeRight.SetSaturation(amount)
	f.appliedSaturation = amount
}

func validateFiniteRange(value, min, max float64, name string) error {
	if !core.IsFinite(value) {
		return fmt.Errorf("morph: %s must be finite: %v", name, value)
	}

	if value < min || value > max {
		return fmt.Errorf("morph: %s must be in [%g, %g]: %f", name, min, max, value)
	}

	return nil
}
