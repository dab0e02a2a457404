package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/algo-zplane/dsp/core"
	"github.com/cwbudde/algo-zplane/dsp/filter/biquad"
)

const (
	// minFFTSize bounds the analysis resolution from below; anything
	// smaller cannot separate neighboring resonances.
	minFFTSize = 16

	// peakRangeDB rejects local maxima more than this far below the
	// strongest peak, keeping numerical ripple out of the peak list.
	peakRangeDB = 60.0

	// floorDB stands in for bins with zero magnitude.
	floorDB = -200.0
)

// Errors returned by response analysis.
var (
	ErrEmptyIR    = errors.New("response: impulse response is empty")
	ErrIRTooLong  = errors.New("response: impulse response exceeds the FFT size")
	ErrNilCascade = errors.New("response: cascade is nil")
)

// Peak is a local maximum of the magnitude curve.
type Peak struct {
	Bin     int     // FFT bin of the maximum
	FreqHz  float64 // parabolically refined center frequency
	LevelDB float64 // refined level in dB
}

// Result holds one measured magnitude response.
type Result struct {
	FreqHz      []float64 // bin center frequencies, DC through Nyquist
	MagnitudeDB []float64 // magnitude per bin in dB
	Peaks       []Peak    // resonance peaks in ascending frequency order
}

// Analyzer measures magnitude responses via FFT of impulse responses.
// The FFT plan and scratch buffers are allocated once at construction and
// reused across measurements; only the returned Result allocates.
type Analyzer struct {
	sampleRate float64
	fftSize    int

	plan   *algofft.Plan[complex128]
	input  []complex128
	output []complex128
	re     []float64
	im     []float64
	mag    []float64
	freqs  []float64
}

// NewAnalyzer creates an analyzer. The processor block size doubles as the
// FFT size and must be a power of two >= 16. Defaults are 48 kHz and 1024.
func NewAnalyzer(opts ...core.ProcessorOption) (*Analyzer, error) {
	cfg := core.ApplyProcessorOptions(opts...)

	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return nil, fmt.Errorf("response: sample rate must be > 0 and finite: %f", cfg.SampleRate)
	}

	if cfg.BlockSize < minFFTSize || cfg.BlockSize&(cfg.BlockSize-1) != 0 {
		return nil, fmt.Errorf("response: fft size must be a power of two >= %d: %d", minFFTSize, cfg.BlockSize)
	}

	plan, err := algofft.NewPlan64(cfg.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("response: fft plan: %w", err)
	}

	bins := cfg.BlockSize/2 + 1
	a := &Analyzer{
		sampleRate: cfg.SampleRate,
		fftSize:    cfg.BlockSize,
		plan:       plan,
		input:      make([]complex128, cfg.BlockSize),
		output:     make([]complex128, cfg.BlockSize),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
		mag:        make([]float64, bins),
		freqs:      make([]float64, bins),
	}

	binHz := cfg.SampleRate / float64(cfg.BlockSize)
	for i := range a.freqs {
		a.freqs[i] = float64(i) * binHz
	}

	return a, nil
}

// SampleRate returns the analysis sample rate in Hz.
func (a *Analyzer) SampleRate() float64 { return a.sampleRate }

// FFTSize returns the FFT length in samples.
func (a *Analyzer) FFTSize() int { return a.fftSize }

// Bins returns the number of non-negative frequency bins (DC through Nyquist).
func (a *Analyzer) Bins() int { return len(a.mag) }

// MeasureCascade measures the magnitude response of a cascade from its
// impulse response. The probe saves and restores the cascade state, so a
// live filter can be measured between blocks. With per-stage saturation
// active the result reflects the saturating chain driven by a unit impulse,
// not the linear small-signal response.
func (a *Analyzer) MeasureCascade(c *biquad.Cascade) (Result, error) {
	if c == nil {
		return Result{}, ErrNilCascade
	}

	return a.Analyze(c.ImpulseResponse(a.fftSize))
}

// Analyze computes the magnitude response of an impulse response. Inputs
// shorter than the FFT size are zero padded; longer inputs return
// ErrIRTooLong rather than silently truncating the tail.
func (a *Analyzer) Analyze(ir []float64) (Result, error) {
	if len(ir) == 0 {
		return Result{}, ErrEmptyIR
	}

	if len(ir) > a.fftSize {
		return Result{}, ErrIRTooLong
	}

	for i := range a.input {
		a.input[i] = 0
	}

	for i, v := range ir {
		a.input[i] = complex(v, 0)
	}

	if err := a.plan.Forward(a.output, a.input); err != nil {
		return Result{}, fmt.Errorf("response: forward fft: %w", err)
	}

	bins := len(a.mag)
	for i := range bins {
		a.re[i] = real(a.output[i])
		a.im[i] = imag(a.output[i])
	}

	vecmath.Magnitude(a.mag, a.re, a.im)

	res := Result{
		FreqHz:      make([]float64, bins),
		MagnitudeDB: make([]float64, bins),
	}
	copy(res.FreqHz, a.freqs)

	for i, m := range a.mag {
		if m <= 0 {
			res.MagnitudeDB[i] = floorDB
		} else {
			res.MagnitudeDB[i] = 20 * math.Log10(m)
		}
	}

	res.Peaks = a.findPeaks(res.MagnitudeDB)

	return res, nil
}

// findPeaks collects interior local maxima of the dB curve within
// peakRangeDB of the strongest one.
func (a *Analyzer) findPeaks(magDB []float64) []Peak {
	maxDB := floorDB
	for _, v := range magDB {
		if v > maxDB {
			maxDB = v
		}
	}

	binHz := a.sampleRate / float64(a.fftSize)

	var peaks []Peak

	for i := 1; i < len(magDB)-1; i++ {
		if !(magDB[i] > magDB[i-1] && magDB[i] > magDB[i+1]) {
			continue
		}

		if magDB[i] < maxDB-peakRangeDB {
			continue
		}

		delta, level := refinePeak(magDB[i-1], magDB[i], magDB[i+1])
		peaks = append(peaks, Peak{
			Bin:     i,
			FreqHz:  (float64(i) + delta) * binHz,
			LevelDB: level,
		})
	}

	return peaks
}

// refinePeak fits a parabola through three dB values around a local maximum
// and returns the vertex offset in bins (clamped to [-0.5, 0.5]) and the
// vertex level.
func refinePeak(left, center, right float64) (delta, level float64) {
	den := left - 2*center + right
	if den >= 0 {
		return 0, center
	}

	delta = 0.5 * (left - right) / den
	if delta > 0.5 {
		delta = 0.5
	} else if delta < -0.5 {
		delta = -0.5
	}

	return delta, center - 0.25*(left-right)*delta
}
