package spectral

import (
	"fmt"
	"math"

	"github.com/tidefield/gridfft/grid"
)

// sampleSpacings derives the sample spacing of each named transform axis and
// validates that the axis coordinates are uniform within the relative
// tolerance stol. Time-typed coordinate differences are expressed in seconds.
// Axes without an attached coordinate are index grids with unit spacing.
func sampleSpacings(a *grid.Array, dims []string, stol float64) ([]float64, error) {
	out := make([]float64, len(dims))
	for i, d := range dims {
		n, err := a.AxisLen(d)
		if err != nil {
			return nil, err
		}

		c, ok := a.Coord(d)
		if !ok {
			out[i] = 1
			continue
		}
		if n < 2 {
			return nil, fmt.Errorf("%w: axis %q has fewer than 2 samples", ErrUnevenSpacing, d)
		}

		diffs := c.Diffs()
		delta := diffs[0]
		for _, df := range diffs {
			if math.Abs(df-delta) > stol*math.Abs(delta) {
				return nil, fmt.Errorf("%w: coordinate %q", ErrUnevenSpacing, d)
			}
		}
		out[i] = delta
	}
	return out, nil
}

// fftFreq returns the discrete Fourier transform sample frequencies for a
// length-n axis with sample spacing d, in standard FFT order: non-negative
// frequencies first, then the negative frequencies.
func fftFreq(n int, d float64) []float64 {
	out := make([]float64, n)
	scale := 1 / (float64(n) * d)
	half := (n + 1) / 2
	for i := range out {
		if i < half {
			out[i] = float64(i) * scale
		} else {
			out[i] = float64(i-n) * scale
		}
	}
	return out
}
