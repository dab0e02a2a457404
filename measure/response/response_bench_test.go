package response

import (
	"testing"

	"github.com/cwbudde/algo-zplane/dsp/core"
	"github.com/cwbudde/algo-zplane/dsp/zplane"
)

func BenchmarkAnalyze(b *testing.B) {
	a, err := NewAnalyzer(core.WithBlockSize(4096))
	if err != nil {
		b.Fatalf("NewAnalyzer: %v", err)
	}

	ir := vowelCascade(zplane.ShapeVowelAe()).ImpulseResponse(4096)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := a.Analyze(ir); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMeasureCascade(b *testing.B) {
	a, err := NewAnalyzer(core.WithBlockSize(4096))
	if err != nil {
		b.Fatalf("NewAnalyzer: %v", err)
	}

	cascade := vowelCascade(zplane.ShapeVowelOo())

	b.ReportAllocs()
	for b.Loop() {
		if _, err := a.MeasureCascade(cascade); err != nil {
			b.Fatal(err)
		}
	}
}
