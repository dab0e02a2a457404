// Command zplaneinfo prints pole layouts of Z-plane morphing filter shapes.
//
// Usage:
//
//	zplaneinfo [flags] [shape-from shape-to]
//
// Without arguments it morphs from vowel-ae to vowel-oo.
//
// Examples:
//
//	zplaneinfo
//	zplaneinfo -morph 0,0.25,0.5,0.75,1
//	zplaneinfo -rate 44100 -intensity 1 vowel-ae vowel-oo
//	zplaneinfo -response -morph 0.5
//	zplaneinfo -list
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-zplane/dsp/core"
	"github.com/cwbudde/algo-zplane/dsp/filter/biquad"
	"github.com/cwbudde/algo-zplane/dsp/zplane"
	"github.com/cwbudde/algo-zplane/measure/response"
)

type shapeEntry struct {
	name  string
	build func() zplane.Shape
}

var registry = []shapeEntry{
	{"vowel-ae", zplane.ShapeVowelAe},
	{"vowel-oo", zplane.ShapeVowelOo},
}

func main() {
	rate := flag.Float64("rate", zplane.ReferenceRate, "target sample rate in Hz")
	morphs := flag.String("morph", "0,0.5,1", "comma-separated morph positions in [0, 1]")
	intensity := flag.Float64("intensity", 0, "resonance intensity in [0, 1]")
	linear := flag.Bool("linear", false, "use linear radius interpolation instead of geodesic")
	resp := flag.Bool("response", false, "measure the cascade response and print resonance peaks")
	fftSize := flag.Int("fft", 8192, "FFT size for -response (power of two)")
	list := flag.Bool("list", false, "list available shape names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: zplaneinfo [flags] [shape-from shape-to]\n\n")
		fmt.Fprintf(os.Stderr, "Prints per-stage pole tables of a Z-plane filter morph.\n")
		fmt.Fprintf(os.Stderr, "Without arguments it morphs from vowel-ae to vowel-oo.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  zplaneinfo -morph 0,0.25,0.5,0.75,1\n")
		fmt.Fprintf(os.Stderr, "  zplaneinfo -rate 44100 -intensity 1 vowel-ae vowel-oo\n")
		fmt.Fprintf(os.Stderr, "  zplaneinfo -response -morph 0.5\n")
		fmt.Fprintf(os.Stderr, "  zplaneinfo -list\n")
	}
	flag.Parse()

	if *list {
		printList()
		return
	}

	if !core.IsFinite(*rate) || *rate <= 0 {
		fmt.Fprintf(os.Stderr, "error: invalid sample rate %g\n", *rate)
		os.Exit(1)
	}

	names := flag.Args()
	if len(names) == 0 {
		names = []string{"vowel-ae", "vowel-oo"}
	}
	if len(names) != 2 {
		fmt.Fprintf(os.Stderr, "error: need exactly two endpoint shapes, got %d\n", len(names))
		os.Exit(1)
	}

	from, ok := resolveShape(names[0])
	if !ok {
		fmt.Fprintf(os.Stderr, "error: unknown shape %q (use -list to see available)\n", names[0])
		os.Exit(1)
	}

	to, ok := resolveShape(names[1])
	if !ok {
		fmt.Fprintf(os.Stderr, "error: unknown shape %q (use -list to see available)\n", names[1])
		os.Exit(1)
	}

	positions, err := parsePositions(*morphs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var analyzer *response.Analyzer
	if *resp {
		analyzer, err = response.NewAnalyzer(core.WithSampleRate(*rate), core.WithBlockSize(*fftSize))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	fromShape := from.build()
	toShape := to.build()

	for i, pos := range positions {
		if i > 0 {
			fmt.Println()
		}

		poles := morphPoles(fromShape, toShape, pos, *rate, *intensity, !*linear)
		fmt.Printf("%s -> %s  morph=%.2f  rate=%g Hz  intensity=%.2f\n", from.name, to.name, pos, *rate, *intensity)
		printPoleTable(poles, *rate)

		if analyzer != nil {
			printPeaks(analyzer, poles)
		}
	}
}

func printList() {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Println(n)
	}
}

func resolveShape(name string) (shapeEntry, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, e := range registry {
		if e.name == name {
			return e, true
		}
	}
	return shapeEntry{}, false
}

func parsePositions(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	positions := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		v, err := strconv.ParseFloat(part, 64)
		if err != nil || !core.IsFinite(v) {
			return nil, fmt.Errorf("invalid morph position %q", part)
		}
		positions = append(positions, core.Clamp01(v))
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("no morph positions given")
	}
	return positions, nil
}

// morphPoles runs the filter's coefficient pipeline for one control state:
// blend the endpoint poles, remap them from the authoring rate to the target
// rate, then apply the intensity boost.
func morphPoles(from, to zplane.Shape, pos, rate, intensity float64, geodesic bool) [zplane.NumSections]zplane.PolePair {
	var poles [zplane.NumSections]zplane.PolePair
	for i := range poles {
		p := zplane.Interpolate(from.Pole(i), to.Pole(i), pos, geodesic)
		p = zplane.Remap(p, zplane.ReferenceRate, rate)
		poles[i] = zplane.BoostRadius(p, intensity)
	}

	return poles
}

// bandwidthHz converts a pole radius to its -3 dB resonance bandwidth under
// the exponential decay model r = exp(-pi*bw/fs).
func bandwidthHz(radius, rate float64) float64 {
	return -math.Log(radius) * rate / math.Pi
}

func printPoleTable(poles [zplane.NumSections]zplane.PolePair, rate float64) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Stage\tRadius\tAngle [rad]\tFreq [Hz]\tBW 3dB [Hz]\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}
	if _, err := fmt.Fprintf(tw, "-----\t------\t-----------\t---------\t-----------\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for i, p := range poles {
		if _, err := fmt.Fprintf(tw, "%d\t%.6f\t%.6f\t%.1f\t%.1f\n",
			i+1,
			p.Radius,
			p.Angle,
			p.FrequencyHz(rate),
			bandwidthHz(p.Radius, rate),
		); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func printPeaks(analyzer *response.Analyzer, poles [zplane.NumSections]zplane.PolePair) {
	var coeffs [biquad.NumSections]biquad.Coefficients
	for i, p := range poles {
		coeffs[i] = zplane.Coefficients(p)
	}

	result, err := analyzer.MeasureCascade(biquad.NewCascade(coeffs))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: response measurement failed: %v\n", err)
		return
	}
	if len(result.Peaks) == 0 {
		fmt.Println("no resonance peaks within the search range")
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Peak\tFreq [Hz]\tLevel [dB]\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for i, p := range result.Peaks {
		if _, err := fmt.Fprintf(tw, "%d\t%.1f\t%.2f\n", i+1, p.FreqHz, p.LevelDB); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
