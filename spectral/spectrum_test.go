package spectral

import (
	"errors"
	"math"
	"testing"

	"github.com/tidefield/gridfft/grid"
	"github.com/tidefield/gridfft/internal/testutil"
)

func TestPowerSpectrumNonNegative(t *testing.T) {
	ny, nx := 8, 16
	data := testutil.DeterministicNoise(21, 1, ny*nx)
	a := mustArray(t, data, []int{ny, nx}, []string{"y", "x"})

	ps, err := PowerSpectrum(a)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range ps.Values() {
		if v < 0 || math.IsNaN(v) {
			t.Fatalf("bin %d: power %v", i, v)
		}
	}
}

func TestPowerSpectrumSinusoidPeak(t *testing.T) {
	n := 64
	f0 := 0.125
	data := testutil.DeterministicSine(f0, 1, 1, n)
	a := mustArray(t, data, []int{n}, []string{"x"},
		grid.WithCoord("x", grid.Numeric(testutil.UniformCoord(0, 1, n))))

	ps, err := PowerSpectrum(a, WithoutShift(), WithoutDensity())
	if err != nil {
		t.Fatal(err)
	}

	peak := 0
	for i, v := range ps.Values() {
		if v > ps.Values()[peak] {
			peak = i
		}
	}
	if want := int(f0 * float64(n)); peak != want {
		t.Fatalf("peak at bin %d, want %d", peak, want)
	}

	// A unit sinusoid at an exact bin carries (A·n/2)² raw power.
	want := float64(n) * float64(n) / 4
	if diff := math.Abs(ps.Values()[peak] - want); diff > 1e-6 {
		t.Fatalf("peak power %v, want %v", ps.Values()[peak], want)
	}
}

func TestPowerSpectrumDensityScaling(t *testing.T) {
	n := 64
	data := testutil.DeterministicNoise(31, 1, n)
	a := mustArray(t, data, []int{n}, []string{"x"},
		grid.WithCoord("x", grid.Numeric(testutil.UniformCoord(0, 1, n))))

	raw, err := PowerSpectrum(a, WithoutDensity())
	if err != nil {
		t.Fatal(err)
	}
	dens, err := PowerSpectrum(a)
	if err != nil {
		t.Fatal(err)
	}

	// density = raw / (n² · Δk), with Δk = 1/(n·d).
	factor := 1 / (float64(n) * float64(n) * (1.0 / float64(n)))
	for i := range raw.Values() {
		want := raw.Values()[i] * factor
		if diff := math.Abs(dens.Values()[i] - want); diff > 1e-9 {
			t.Fatalf("bin %d: density %v, want %v", i, dens.Values()[i], want)
		}
	}
}

func TestPowerSpectrumKeepsFrequencyLabels(t *testing.T) {
	a := mustArray(t, testutil.DeterministicNoise(1, 1, 32), []int{4, 8}, []string{"y", "x"})

	ps, err := PowerSpectrum(a)
	if err != nil {
		t.Fatal(err)
	}
	if dims := ps.Dims(); dims[0] != "freq_y" || dims[1] != "freq_x" {
		t.Fatalf("dims=%v, want [freq_y freq_x]", dims)
	}
	if _, ok := ps.Coord("freq_x"); !ok {
		t.Fatal("missing freq_x coordinate")
	}
}

func TestCrossSpectrumSelfEqualsPower(t *testing.T) {
	n := 32
	data := testutil.DeterministicNoise(17, 1, n)
	a := mustArray(t, data, []int{n}, []string{"x"})
	b := mustArray(t, append([]float64{}, data...), []int{n}, []string{"x"})

	ps, err := PowerSpectrum(a)
	if err != nil {
		t.Fatal(err)
	}
	cs, err := CrossSpectrum(a, b)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, cs.Values(), ps.Values(), 1e-9)
}

func TestCrossSpectrumDimensionMismatch(t *testing.T) {
	a := mustArray(t, make([]float64, 8), []int{8}, []string{"x"})
	b := mustArray(t, make([]float64, 8), []int{8}, []string{"t"})

	if _, err := CrossSpectrum(a, b); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("got %v, want ErrDimensionMismatch", err)
	}

	// Same axis names but different lengths.
	c := mustArray(t, make([]float64, 16), []int{16}, []string{"x"})
	if _, err := CrossSpectrum(a, c); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("got %v, want ErrDimensionMismatch for unequal lengths", err)
	}
}

func TestPowerSpectrumWindowReducesLeakage(t *testing.T) {
	// An off-bin sinusoid leaks into neighbors; the Hann taper concentrates
	// the leaked power closer to the true frequency.
	n := 64
	data := testutil.DeterministicSine(0.1171875, 1, 1, n) // between bins 7 and 8

	a := mustArray(t, data, []int{n}, []string{"x"})

	plain, err := PowerSpectrum(a, WithoutShift(), WithoutDensity())
	if err != nil {
		t.Fatal(err)
	}
	windowed, err := PowerSpectrum(a, WithoutShift(), WithoutDensity(), WithWindow())
	if err != nil {
		t.Fatal(err)
	}

	// Compare power far from the peak (bins 20..31).
	var farPlain, farWin float64
	for i := 20; i < 32; i++ {
		farPlain += plain.Values()[i]
		farWin += windowed.Values()[i]
	}
	if farWin >= farPlain {
		t.Fatalf("windowed far-field power %v not below plain %v", farWin, farPlain)
	}
}
