package zplane_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-zplane/dsp/zplane"
)

func ExampleInterpolate() {
	a := zplane.PolePair{Radius: 0.5, Angle: 1.0}
	b := zplane.PolePair{Radius: 0.98, Angle: 1.4}

	mid := zplane.Interpolate(a, b, 0.5, true)

	fmt.Printf("r=%.2f theta=%.2f\n", mid.Radius, mid.Angle)
	// Output:
	// r=0.70 theta=1.20
}

func ExampleRemap() {
	pole := zplane.PoleFromFrequency(1000, 0.98, 48000)

	remapped := zplane.Remap(pole, 48000, 96000)

	// Keeping the raw angle at the new rate would double the resonant
	// frequency; the bilinear round trip keeps it near 1 kHz.
	fmt.Printf("raw angle: %.0f Hz\n", pole.FrequencyHz(96000))
	fmt.Printf("remapped: %.0f Hz\n", remapped.FrequencyHz(96000))
	// Output:
	// raw angle: 2000 Hz
	// remapped: 1001 Hz
}

func ExampleBoostRadius() {
	pole := zplane.PolePair{Radius: 0.9, Angle: 1.0}

	fmt.Printf("%.4f\n", zplane.BoostRadius(pole, 0.5).Radius)
	fmt.Printf("%.4f\n", zplane.BoostRadius(zplane.PolePair{Radius: 0.99, Angle: 1.0}, 1).Radius)
	// Output:
	// 0.9225
	// 0.9950
}

func ExampleCoefficients() {
	pole := zplane.PolePair{Radius: 0.9, Angle: math.Pi / 3}

	c := zplane.Coefficients(pole)

	fmt.Printf("B0=%.4f B1=%.4f B2=%.4f\n", c.B0, c.B1, c.B2)
	fmt.Printf("A1=%.4f A2=%.4f\n", c.A1, c.A2)
	// Output:
	// B0=0.4055 B1=-0.3285 B2=0.2660
	// A1=-0.9000 A2=0.8100
}

func ExampleShapeVowelAe() {
	shape := zplane.ShapeVowelAe()

	pole := shape.Pole(0)
	fmt.Printf("f=%.0f Hz r=%.3f\n", pole.FrequencyHz(zplane.ReferenceRate), pole.Radius)
	// Output:
	// f=660 Hz r=0.985
}
