package spectral

import (
	"errors"
	"testing"
	"time"

	"github.com/tidefield/gridfft/grid"
	"github.com/tidefield/gridfft/internal/testutil"
)

func mustArray(t *testing.T, data []float64, shape []int, dims []string, opts ...grid.Option) *grid.Array {
	t.Helper()
	a, err := grid.New(data, shape, dims, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestSampleSpacings(t *testing.T) {
	a := mustArray(t, make([]float64, 8), []int{8}, []string{"x"},
		grid.WithCoord("x", grid.Numeric(testutil.UniformCoord(0, 0.5, 8))))

	got, err := sampleSpacings(a, []string{"x"}, defaultSpacingTol)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got, []float64{0.5}, 1e-12)
}

func TestSampleSpacingsUneven(t *testing.T) {
	coord := testutil.UniformCoord(0, 1, 8)
	coord[4] += 0.05

	a := mustArray(t, make([]float64, 8), []int{8}, []string{"x"},
		grid.WithCoord("x", grid.Numeric(coord)))

	_, err := sampleSpacings(a, []string{"x"}, defaultSpacingTol)
	if !errors.Is(err, ErrUnevenSpacing) {
		t.Fatalf("got %v, want ErrUnevenSpacing", err)
	}

	// A tolerance wide enough to cover the perturbation accepts the grid.
	if _, err := sampleSpacings(a, []string{"x"}, 0.1); err != nil {
		t.Fatalf("relaxed tolerance rejected the grid: %v", err)
	}
}

func TestSampleSpacingsTimeCoord(t *testing.T) {
	t0 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	times := make([]time.Time, 4)
	for i := range times {
		times[i] = t0.Add(time.Duration(i) * time.Hour)
	}

	a := mustArray(t, make([]float64, 4), []int{4}, []string{"time"},
		grid.WithCoord("time", grid.TimeCoord(times)))

	got, err := sampleSpacings(a, []string{"time"}, defaultSpacingTol)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got, []float64{3600}, 1e-9)
}

func TestSampleSpacingsIndexGrid(t *testing.T) {
	a := mustArray(t, make([]float64, 8), []int{8}, []string{"x"})

	got, err := sampleSpacings(a, []string{"x"}, defaultSpacingTol)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 1 {
		t.Fatalf("coordless axis spacing=%v, want 1", got[0])
	}
}

func TestSampleSpacingsShortAxis(t *testing.T) {
	a := mustArray(t, make([]float64, 1), []int{1}, []string{"x"},
		grid.WithCoord("x", grid.Numeric([]float64{0})))

	_, err := sampleSpacings(a, []string{"x"}, defaultSpacingTol)
	if !errors.Is(err, ErrUnevenSpacing) {
		t.Fatalf("got %v, want ErrUnevenSpacing", err)
	}
}

func TestFFTFreq(t *testing.T) {
	got := fftFreq(8, 1)
	want := []float64{0, 0.125, 0.25, 0.375, -0.5, -0.375, -0.25, -0.125}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-15)

	got = fftFreq(5, 1)
	want = []float64{0, 0.2, 0.4, -0.4, -0.2}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-15)
}

func TestFFTShifted(t *testing.T) {
	got := fftShifted(fftFreq(8, 1))
	want := []float64{-0.5, -0.375, -0.25, -0.125, 0, 0.125, 0.25, 0.375}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-15)

	got = fftShifted(fftFreq(5, 1))
	want = []float64{-0.4, -0.2, 0, 0.2, 0.4}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-15)
}
