// Package envelope provides an asymmetric one-pole envelope follower.
//
// The follower rectifies its input and smooths it with separate attack and
// release time constants, producing a bounded [0, 1] modulation signal. It is
// used by dsp/morph to drive the morph position from the program material.
package envelope

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-zplane/dsp/core"
)

const (
	defaultAttackMs  = 5.0
	defaultReleaseMs = 50.0
	defaultDepth     = 1.0

	minTimeMs = 0.01
	maxTimeMs = 10000.0
)

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	attackMs  float64
	releaseMs float64
	depth     float64
}

func defaultConfig() config {
	return config{
		attackMs:  defaultAttackMs,
		releaseMs: defaultReleaseMs,
		depth:     defaultDepth,
	}
}

// WithAttack sets the attack time constant in milliseconds.
func WithAttack(ms float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(ms, minTimeMs, maxTimeMs, "attack time"); err != nil {
			return err
		}

		cfg.attackMs = ms

		return nil
	}
}

// WithRelease sets the release time constant in milliseconds.
func WithRelease(ms float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(ms, minTimeMs, maxTimeMs, "release time"); err != nil {
			return err
		}

		cfg.releaseMs = ms

		return nil
	}
}

// WithDepth sets the output scaling factor in [0, 1].
func WithDepth(depth float64) Option {
	return func(cfg *config) error {
		if err := validateFiniteRange(depth, 0, 1, "depth"); err != nil {
			return err
		}

		cfg.depth = depth

		return nil
	}
}

// Follower tracks the amplitude envelope of a signal with independent rise
// and fall speeds. It is single-threaded and allocation-free after
// construction.
type Follower struct {
	sampleRate float64
	attackMs   float64
	releaseMs  float64
	depth      float64

	attackCoeff  float64
	releaseCoeff float64

	level float64
}

// New constructs an envelope follower.
//
// Defaults: 5 ms attack, 50 ms release, depth 1.
func New(sampleRate float64, opts ...Option) (*Follower, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("envelope: sample rate must be > 0 and finite: %f", sampleRate)
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

	f := &Follower{
		sampleRate: sampleRate,
		attackMs:   cfg.attackMs,
		releaseMs:  cfg.releaseMs,
		depth:      cfg.depth,
	}
	f.updateTimeConstants()

	return f, nil
}

// SampleRate returns the sample rate in Hz.
func (f *Follower) SampleRate() float64 { return f.sampleRate }

// Attack returns the attack time constant in milliseconds.
func (f *Follower) Attack() float64 { return f.attackMs }

// Release returns the release time constant in milliseconds.
func (f *Follower) Release() float64 { return f.releaseMs }

// Depth returns the output scaling factor.
func (f *Follower) Depth() float64 { return f.depth }

// SetSampleRate updates the sample rate and recomputes time constants.
func (f *Follower) SetSampleRate(sampleRate float64) error {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("envelope: sample rate must be > 0 and finite: %f", sampleRate)
	}

	f.sampleRate = sampleRate
	f.updateTimeConstants()

	return nil
}

// SetAttack sets the attack time constant in milliseconds.
func (f *Follower) SetAttack(ms float64) error {
	if err := validateFiniteRange(ms, minTimeMs, maxTimeMs, "attack time"); err != nil {
		return err
	}

	f.attackMs = ms
	f.updateTimeConstants()

	return nil
}

// SetRelease sets the release time constant in milliseconds.
func (f *Follower) SetRelease(ms float64) error {
	if err := validateFiniteRange(ms, minTimeMs, maxTimeMs, "release time"); err != nil {
		return err
	}

	f.releaseMs = ms
	f.updateTimeConstants()

	return nil
}

// SetDepth sets the output scaling factor in [0, 1].
func (f *Follower) SetDepth(depth float64) error {
	if err := validateFiniteRange(depth, 0, 1, "depth"); err != nil {
		return err
	}

	f.depth = depth

	return nil
}

// ProcessSample advances the follower by one input sample and returns the
// scaled envelope level in [0, 1].
//
// The rectified input is smoothed with the attack coefficient while rising
// and the release coefficient while falling. The internal level tracks the
// unscaled envelope; depth only scales the output.
func (f *Follower) ProcessSample(x float64) float64 {
	rectified := math.Abs(x)
	if !core.IsFinite(rectified) {
		rectified = 0
	}

	if rectified > f.level {
		f.level += (rectified - f.level) * f.attackCoeff
	} else {
		f.level += (rectified - f.level) * f.releaseCoeff
	}

	return core.Clamp01(f.level * f.depth)
}

// ProcessBlock advances the follower over buf without modifying it and
// returns the level after the final sample.
func (f *Follower) ProcessBlock(buf []float64) float64 {
	out := f.Level()
	for _, x := range buf {
		out = f.ProcessSample(x)
	}

	return out
}

// Level returns the scaled envelope level after the most recent sample.
func (f *Follower) Level() float64 {
	return core.Clamp01(f.level * f.depth)
}

// Reset clears the follower state.
func (f *Follower) Reset() {
	f.level = 0
}

// Time constants use the one-pole step response 1 - exp(-n/(tau*fs)), so the
// level reaches ~63% of a step after one time constant.
func (f *Follower) updateTimeConstants() {
	f.attackCoeff = 1.0 - math.Exp(-1.0/(f.attackMs*0.001*f.sampleRate))
	f.releaseCoeff = 1.0 - math.Exp(-1.0/(f.releaseMs*0.001*f.sampleRate))
}

func validateFiniteRange(value, min, max float64, name string) error {
	if !core.IsFinite(value) {
		return fmt.Errorf("envelope: %s must be finite: %v", name, value)
	}

	if value < min || value > max {
		return fmt.Errorf("envelope: %s must be in [%g, %g]: %f", name, min, max, value)
	}

	return nil
}
