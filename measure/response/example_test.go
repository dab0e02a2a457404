package response_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-zplane/dsp/core"
	"github.com/cwbudde/algo-zplane/dsp/filter/biquad"
	"github.com/cwbudde/algo-zplane/dsp/zplane"
	"github.com/cwbudde/algo-zplane/measure/response"
)

func ExampleAnalyzer_MeasureCascade() {
	// One resonator at 1 kHz, the remaining sections pass through.
	var coeffs [biquad.NumSections]biquad.Coefficients
	for i := range coeffs {
		coeffs[i] = biquad.Coefficients{B0: 1}
	}

	coeffs[0] = zplane.Coefficients(zplane.PolePair{
		Radius: 0.99,
		Angle:  2 * math.Pi * 1000 / 48000,
	})

	analyzer, err := response.NewAnalyzer(core.WithSampleRate(48000), core.WithBlockSize(8192))
	if err != nil {
		panic(err)
	}

	result, err := analyzer.MeasureCascade(biquad.NewCascade(coeffs))
	if err != nil {
		panic(err)
	}

	peak := result.Peaks[0]
	fmt.Printf("peaks=%d near 1 kHz: %v\n", len(result.Peaks), math.Abs(peak.FreqHz-1000) < 10)
	// Output:
	// peaks=1 near 1 kHz: true
}
