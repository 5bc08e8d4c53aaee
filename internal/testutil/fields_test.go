package testutil

import (
	"math"
	"testing"
)

func TestUniformCoord(t *testing.T) {
	c := UniformCoord(1, 0.5, 4)
	want := []float64{1, 1.5, 2, 2.5}
	RequireSliceNearlyEqual(t, c, want, 1e-15)
}

func TestDeterministicNoiseReproducible(t *testing.T) {
	a := DeterministicNoise(42, 1, 64)
	b := DeterministicNoise(42, 1, 64)
	RequireSliceNearlyEqual(t, a, b, 0)
	RequireFinite(t, a)

	c := DeterministicNoise(43, 1, 64)
	d, err := MaxAbsDiff(a, c)
	if err != nil {
		t.Fatal(err)
	}
	if d == 0 {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestDeterministicSinePeriod(t *testing.T) {
	s := DeterministicSine(0.25, 1, 2, 8)
	want := []float64{0, 2, 0, -2, 0, 2, 0, -2}
	RequireSliceNearlyEqual(t, s, want, 1e-12)
}

func TestRadialFieldSymmetric(t *testing.T) {
	n := 9
	f := RadialField(2, n, n)
	c := n / 2
	if f[c*n+c] != 1 {
		t.Fatalf("center value %v, want 1", f[c*n+c])
	}
	// Same distance from center, same value.
	if math.Abs(f[c*n+c+2]-f[(c+2)*n+c]) > 1e-15 {
		t.Fatal("field is not radially symmetric")
	}
}
