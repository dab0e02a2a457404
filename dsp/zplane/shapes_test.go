package zplane

import (
	"math"
	"testing"
)

func validPoles() [NumSections]PolePair {
	var poles [NumSections]PolePair
	for i := range poles {
		poles[i] = PolePair{
			Radius: 0.9 + 0.01*float64(i),
			Angle:  0.2 * float64(i+1),
		}
	}

	return poles
}

func TestNewShape_Valid(t *testing.T) {
	poles := validPoles()

	shape, err := NewShape(poles)
	if err != nil {
		t.Fatalf("NewShape: %v", err)
	}

	for i, want := range poles {
		got := shape.Pole(i)
		if got != want {
			t.Fatalf("pole %d = %+v, want %+v", i, got, want)
		}
	}
	if shape.Poles() != poles {
		t.Fatalf("Poles() = %v, want %v", shape.Poles(), poles)
	}
}

func TestNewShape_NormalizesAngles(t *testing.T) {
	poles := validPoles()
	poles[2].Angle = 5.0

	shape, err := NewShape(poles)
	if err != nil {
		t.Fatalf("NewShape: %v", err)
	}

	want := 5.0 - 2*math.Pi
	if !almostEqual(shape.Pole(2).Angle, want, eps) {
		t.Fatalf("angle = %v, want %v", shape.Pole(2).Angle, want)
	}
}

func TestNewShape_RejectsInvalidRadius(t *testing.T) {
	cases := []struct {
		name   string
		radius float64
	}{
		{"unit circle", 1.0},
		{"outside unit circle", 1.2},
		{"negative", -0.1},
		{"NaN", math.NaN()},
		{"Inf", math.Inf(1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			poles := validPoles()
			poles[3].Radius = tc.radius

			if _, err := NewShape(poles); err == nil {
				t.Fatalf("radius %v accepted", tc.radius)
			}
		})
	}
}

func TestNewShape_RejectsNonFiniteAngle(t *testing.T) {
	poles := validPoles()
	poles[0].Angle = math.NaN()

	if _, err := NewShape(poles); err == nil {
		t.Fatal("NaN angle accepted")
	}
}

func TestFactoryShapes_WithinStableRegion(t *testing.T) {
	shapes := map[string]Shape{
		"ae": ShapeVowelAe(),
		"oo": ShapeVowelOo(),
	}

	for name, shape := range shapes {
		for i, pole := range shape.Poles() {
			if pole.Radius <= 0 || pole.Radius >= 1 {
				t.Fatalf("%s pole %d: radius %v outside (0, 1)", name, i, pole.Radius)
			}
			if pole.Angle <= 0 || pole.Angle >= math.Pi {
				t.Fatalf("%s pole %d: angle %v outside (0, pi)", name, i, pole.Angle)
			}
		}
	}
}

func TestFactoryShapes_FormantFrequencies(t *testing.T) {
	wantAe := []float64{660, 1720, 2410, 3300, 4500, 5800}
	wantOo := []float64{300, 870, 2240, 3260, 4200, 5500}

	for i, pole := range ShapeVowelAe().Poles() {
		got := pole.FrequencyHz(ReferenceRate)
		if !almostEqual(got, wantAe[i], 1e-9) {
			t.Fatalf("ae pole %d: %v Hz, want %v Hz", i, got, wantAe[i])
		}
	}
	for i, pole := range ShapeVowelOo().Poles() {
		got := pole.FrequencyHz(ReferenceRate)
		if !almostEqual(got, wantOo[i], 1e-9) {
			t.Fatalf("oo pole %d: %v Hz, want %v Hz", i, got, wantOo[i])
		}
	}
}

func TestFactoryShapes_FrequenciesAscend(t *testing.T) {
	for _, shape := range []Shape{ShapeVowelAe(), ShapeVowelOo()} {
		poles := shape.Poles()
		for i := 1; i < len(poles); i++ {
			if poles[i].Angle <= poles[i-1].Angle {
				t.Fatalf("pole %d angle %v not above pole %d angle %v",
					i, poles[i].Angle, i-1, poles[i-1].Angle)
			}
		}
	}
}

func TestFactoryShapes_Differ(t *testing.T) {
	if ShapeVowelAe().Poles() == ShapeVowelOo().Poles() {
		t.Fatal("vowel shapes are identical")
	}
}
