package vmath

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func nearVec(a, b Vec2, tol float64) bool {
	return near(a.X, b.X, tol) && near(a.Y, b.Y, tol)
}

func TestVectorArithmetic(t *testing.T) {
	a := V(1, 2)
	b := V(3, -4)

	if got := a.Add(b); got != V(4, -2) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != V(-2, 6) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2.5); got != V(2.5, 5) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Dot(b); got != -5 {
		t.Errorf("Dot = %v", got)
	}
	if got := b.Len(); got != 5 {
		t.Errorf("Len = %v", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec2
		want Vec2
	}{
		{"zero stays zero", V(0, 0), V(0, 0)},
		{"axis", V(0, -7), V(0, -1)},
		{"3-4-5", V(3, 4), V(0.6, 0.8)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if !nearVec(got, tt.want, eps) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if math.IsNaN(got.X) || math.IsNaN(got.Y) {
				t.Errorf("Normalize(%v) produced NaN", tt.in)
			}
		})
	}
}

func TestRotateCounterclockwise(t *testing.T) {
	got := V(1, 0).Rotate(HalfPi)
	if !nearVec(got, V(0, 1), eps) {
		t.Errorf("Rotate((1,0), π/2) = %v, want (0,1)", got)
	}
}

func TestRotateRoundTrip(t *testing.T) {
	vecs := []Vec2{V(1, 0), V(-3.5, 2), V(0.001, -9), V(12, 12)}
	for _, v := range vecs {
		for theta := -10.0; theta <= 10.0; theta += 0.37 {
			back := v.Rotate(theta).Rotate(-theta)
			if !nearVec(back, v, 1e-9*math.Max(1, v.Len())) {
				t.Fatalf("Rotate(Rotate(%v, %v), -%v) = %v", v, theta, theta, back)
			}
		}
	}
}

func TestFromAngleUnitLength(t *testing.T) {
	for theta := -50.0; theta <= 50.0; theta += 0.113 {
		if l := FromAngle(theta).Len(); !near(l, 1, 1e-5) {
			t.Fatalf("|FromAngle(%v)| = %v", theta, l)
		}
	}
}

func TestToAngle(t *testing.T) {
	for _, a := range []float64{0, 0.5, 2, -1, -3} {
		if got := FromAngle(a).ToAngle(); !near(got, a, eps) {
			t.Errorf("ToAngle(FromAngle(%v)) = %v", a, got)
		}
	}
}

func TestNormalizeAngleRange(t *testing.T) {
	for _, a := range []float64{0, 1, -1, TwoPi, -TwoPi, 100, -100, 7 * math.Pi, -1e-18, 1e6} {
		n := NormalizeAngle(a)
		if n < 0 || n >= TwoPi {
			t.Errorf("NormalizeAngle(%v) = %v, outside [0, 2π)", a, n)
		}
	}
}

func TestNormalizeAnglePeriodic(t *testing.T) {
	// wrap-aware comparison: values just below 2π and just above 0 are the same angle
	sameAngle := func(a, b float64) bool {
		d := math.Abs(a - b)
		return d <= 1e-9 || math.Abs(d-TwoPi) <= 1e-9
	}
	for _, theta := range []float64{0, 0.25, 1, 3, 5.5, -0.75, -4} {
		base := NormalizeAngle(theta)
		for k := -5; k <= 5; k++ {
			got := NormalizeAngle(theta + TwoPi*float64(k))
			if !sameAngle(got, base) {
				t.Errorf("NormalizeAngle(%v + 2π·%d) = %v, want %v", theta, k, got, base)
			}
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 1) != 1 || Clamp(-5, 0, 1) != 0 || Clamp(0.5, 0, 1) != 0.5 {
		t.Error("Clamp mismatch")
	}
	if ClampInt(500, -200, 200) != 200 || ClampInt(-500, -200, 200) != -200 || ClampInt(3, 0, 9) != 3 {
		t.Error("ClampInt mismatch")
	}
	if Lerp(2, 4, 0.5) != 3 {
		t.Error("Lerp mismatch")
	}
}
