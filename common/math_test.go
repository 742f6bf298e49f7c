package common

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestMul4Identity(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, 1, 2, 3, 0.3, 0.2, 0.1, 2, 2, 2)
	id := make([]float32, 16)
	Identity(id)

	out := make([]float32, 16)
	Mul4(out, id, m)
	for i := range m {
		if !near(out[i], m[i]) {
			t.Fatalf("expected I*M == M at %d, got %v want %v", i, out[i], m[i])
		}
	}
}

func TestInvert4RoundTrip(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, 4, -1, 2, 0, math.Pi/2, 0, 1, 3, 1)
	inv := make([]float32, 16)
	if !Invert4(inv, m) {
		t.Fatal("expected the model matrix to be invertible")
	}

	out := make([]float32, 16)
	Mul4(out, m, inv)
	id := make([]float32, 16)
	Identity(id)
	for i := range id {
		if !near(out[i], id[i]) {
			t.Fatalf("expected M*M^-1 == I at %d, got %v", i, out[i])
		}
	}
}

func TestInvert4Singular(t *testing.T) {
	if Invert4(make([]float32, 16), make([]float32, 16)) {
		t.Error("expected a zero matrix to be reported singular")
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	p := make([]float32, 16)
	Perspective(p, DegToRad(75), 2, 0.1, 100)

	nearPt, w := TransformPoint(p, 0, 0, -0.1)
	if !near(nearPt[2], 0) || w <= 0 {
		t.Errorf("expected the near plane at depth 0, got %v (w=%v)", nearPt[2], w)
	}
	farPt, _ := TransformPoint(p, 0, 0, -100)
	if !near(farPt[2], 1) {
		t.Errorf("expected the far plane at depth 1, got %v", farPt[2])
	}
	if _, w := TransformPoint(p, 0, 0, 1); w > 0 {
		t.Errorf("expected a point behind the eye to have w <= 0, got %v", w)
	}
}

func TestLookAtPutsTargetOnNegativeZ(t *testing.T) {
	v := make([]float32, 16)
	LookAt(v, 3, 4, 5, 0, 0, 0, 0, 1, 0)

	got, _ := TransformPoint(v, 0, 0, 0)
	dist := float32(math.Sqrt(50))
	if !near(got[0], 0) || !near(got[1], 0) || !near(got[2], -dist) {
		t.Errorf("expected (0, 0, %v), got %v", -dist, got)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, 10, 10, 10, 0, 0, 0, 1, 1, 1)
	if got := TransformDirection(m, 0, 0, -1); got != [3]float32{0, 0, -1} {
		t.Errorf("expected (0, 0, -1), got %v", got)
	}
}

func TestNormalize3(t *testing.T) {
	if got := Normalize3([3]float32{3, 0, 4}); !near(got[0], 0.6) || !near(got[2], 0.8) {
		t.Errorf("expected (0.6, 0, 0.8), got %v", got)
	}
	if got := Normalize3([3]float32{}); got != [3]float32{} {
		t.Errorf("expected the zero vector unchanged, got %v", got)
	}
}

func TestColorHelpers(t *testing.T) {
	if got := HexColor(0x00ff00); got != [4]float32{0, 1, 0, 1} {
		t.Errorf("expected green, got %v", got)
	}
	got := ToNRGBA([4]float32{1.5, 0.5, -1, 1})
	if got.R != 255 || got.G != 128 || got.B != 0 || got.A != 255 {
		t.Errorf("expected clamped {255 128 0 255}, got %v", got)
	}
}

func TestCoalesceAndClamp(t *testing.T) {
	if got := Coalesce("", "", "b", "c"); got != "b" {
		t.Errorf("expected b, got %q", got)
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Errorf("expected zero value, got %d", got)
	}
	if got := Clamp(1700, 600, 1600); got != 1600 {
		t.Errorf("expected 1600, got %d", got)
	}
	if got := Clamp(float32(-2), -1, 1); got != -1 {
		t.Errorf("expected -1, got %v", got)
	}
}
