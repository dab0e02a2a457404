// Package response measures the frequency response of filter cascades.
//
// An Analyzer drives a unit impulse through a biquad cascade, transforms the
// captured impulse response with an FFT, and returns the magnitude curve in
// dB together with the resonance peaks it finds. Peak frequencies are refined
// by parabolic interpolation around the winning bin, so narrow resonances
// land within a fraction of a bin of their true center.
//
// # Usage
//
//	analyzer, err := response.NewAnalyzer(core.WithSampleRate(48000))
//	result, err := analyzer.MeasureCascade(cascade)
//	for _, p := range result.Peaks {
//		fmt.Printf("%8.1f Hz  %+6.1f dB\n", p.FreqHz, p.LevelDB)
//	}
package response
