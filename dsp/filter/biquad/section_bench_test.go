package biquad

import (
	"fmt"
	"testing"
)

func BenchmarkProcessSample(b *testing.B) {
	s := NewSection(resonator())
	x := 1.0
	for b.Loop() {
		x = s.ProcessSample(x)
	}
	_ = x
}

func BenchmarkProcessSample_Saturating(b *testing.B) {
	s := NewSection(resonator())
	s.SetSaturation(0.5)
	x := 1.0
	for b.Loop() {
		x = s.ProcessSample(x) + 0.1
	}
	_ = x
}

func BenchmarkProcessBlock(b *testing.B) {
	for _, size := range []int{256, 1024, 4096} {
		b.Run(fmt.Sprintf("N=%d", size), func(b *testing.B) {
			s := NewSection(resonator())
			buf := make([]float64, size)
			for i := range buf {
				buf[i] = float64(i) * 0.001
			}
			b.SetBytes(int64(size * 8))
			b.ResetTimer()
			for range b.N {
				s.ProcessBlock(buf)
			}
		})
	}
}

func BenchmarkProcessBlock_Saturating(b *testing.B) {
	for _, size := range []int{256, 1024, 4096} {
		b.Run(fmt.Sprintf("N=%d", size), func(b *testing.B) {
			s := NewSection(resonator())
			s.SetSaturation(0.5)
			buf := make([]float64, size)
			for i := range buf {
				buf[i] = float64(i) * 0.001
			}
			b.SetBytes(int64(size * 8))
			b.ResetTimer()
			for range b.N {
				s.ProcessBlock(buf)
			}
		})
	}
}

func BenchmarkProcessBlockScalar(b *testing.B) {
	for _, size := range []int{256, 1024, 4096} {
		b.Run(fmt.Sprintf("N=%d", size), func(b *testing.B) {
			s := NewSection(resonator())
			buf := make([]float64, size)
			for i := range buf {
				buf[i] = float64(i) * 0.001
			}
			b.SetBytes(int64(size * 8))
			b.ResetTimer()
			for range b.N {
				s.processBlockScalar(buf)
			}
		})
	}
}

func BenchmarkCascadeProcessSample(b *testing.B) {
	c := NewCascade(cascadeCoeffs())
	x := 1.0
	for b.Loop() {
		x = c.ProcessSample(x) + 0.1
	}
	_ = x
}

func BenchmarkCascadeProcessBlock(b *testing.B) {
	for _, size := range []int{256, 1024, 4096} {
		b.Run(fmt.Sprintf("N=%d", size), func(b *testing.B) {
			c := NewCascade(cascadeCoeffs())
			buf := make([]float64, size)
			for i := range buf {
				buf[i] = float64(i) * 0.001
			}
			b.SetBytes(int64(size * 8))
			b.ResetTimer()
			for range b.N {
				c.ProcessBlock(buf)
			}
		})
	}
}
