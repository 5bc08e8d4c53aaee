package spectral

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/tidefield/gridfft/grid"
)

// FreqRadial names the synthetic radial-wavenumber axis of isotropic
// spectra.
const FreqRadial = "freq_r"

// IsotropicPowerSpectrum computes the isotropic power spectrum of a labeled
// array by azimuthally averaging its two-dimensional power spectrum. Exactly
// two transform axes are required, and they must be the trailing two axes of
// the array; other configurations fail with [ErrDimensionality]. The result
// replaces the two frequency axes with a single "freq_r" radial axis of
// N/nfactor bins, where N is the smaller transform axis length; leading
// batch axes and their coordinates are preserved.
func IsotropicPowerSpectrum(a *grid.Array, opts ...Option) (*grid.Array, error) {
	cfg := applyOptions(opts)

	dims := cfg.dims
	if dims == nil {
		dims = a.Dims()
	}
	if len(dims) != 2 {
		return nil, fmt.Errorf("%w: got %d", ErrDimensionality, len(dims))
	}

	ps, err := PowerSpectrum(a, withConfig(cfg)...)
	if err != nil {
		return nil, err
	}
	return isotropize(a, ps, dims, cfg.nfactor)
}

// IsotropicCrossSpectrum computes the isotropic cross spectrum of two
// labeled arrays by azimuthally averaging their two-dimensional cross
// spectrum. Axis requirements follow [IsotropicPowerSpectrum]; with no
// configured transform axes the two inputs must carry identical axis names
// ([ErrDimensionMismatch]).
func IsotropicCrossSpectrum(a1, a2 *grid.Array, opts ...Option) (*grid.Array, error) {
	cfg := applyOptions(opts)

	dims := cfg.dims
	if dims == nil {
		if !slices.Equal(a1.Dims(), a2.Dims()) {
			return nil, fmt.Errorf("%w: %v vs %v", ErrDimensionMismatch, a1.Dims(), a2.Dims())
		}
		dims = a1.Dims()
	}
	if len(dims) != 2 {
		return nil, fmt.Errorf("%w: got %d", ErrDimensionality, len(dims))
	}

	cs, err := CrossSpectrum(a1, a2, withConfig(cfg)...)
	if err != nil {
		return nil, err
	}
	return isotropize(a1, cs, dims, cfg.nfactor)
}

// withConfig converts a resolved config back into options for the spectrum
// estimators.
func withConfig(cfg config) []Option {
	return []Option{func(c *config) { *c = cfg }}
}

// isotropize bins the trailing 2-D frequency plane of a spectrum into radial
// bins, once per leading batch slice.
func isotropize(in, spec *grid.Array, dims []string, nfactor int) (*grid.Array, error) {
	ndim := spec.NDim()
	specDims := spec.Dims()
	specShape := spec.Shape()

	for _, d := range dims {
		pos, err := spec.AxisIndex(FreqPrefix + d)
		if err != nil {
			return nil, err
		}
		if pos < ndim-2 {
			return nil, fmt.Errorf("%w: transform axes must be the trailing two axes", ErrDimensionality)
		}
	}

	// Convention: k is the innermost (last) frequency axis, l the outer one.
	kc, _ := spec.Coord(specDims[ndim-1])
	lc, _ := spec.Coord(specDims[ndim-2])
	k := kc.Values
	l := lc.Values

	n := len(k)
	if len(l) < n {
		n = len(l)
	}
	nbins := n / nfactor
	if nbins < 1 {
		return nil, fmt.Errorf("spectral: bin factor %d leaves no bins for axis length %d", nfactor, n)
	}

	plane := len(k) * len(l)
	batch := spec.Size() / plane
	out := make([]float64, batch*nbins)

	var kr []float64
	for b := range batch {
		slice := spec.Values()[b*plane : (b+1)*plane]
		krb, iso, err := azimuthalAverage(k, l, slice, nbins)
		if err != nil {
			return nil, err
		}
		kr = krb
		copy(out[b*nbins:], iso)
	}

	newDims := append(slices.Clone(specDims[:ndim-2]), FreqRadial)
	newShape := append(slices.Clone(specShape[:ndim-2]), nbins)

	coords := map[string]grid.Coord{FreqRadial: grid.Numeric(kr)}
	for _, d := range specDims[:ndim-2] {
		if c, ok := in.Coord(d); ok {
			coords[d] = c
		}
	}

	return grid.New(out, newShape, newDims, grid.WithCoords(coords))
}

// azimuthalAverage bins one 2-D frequency-plane slice into nbins radial
// bins. k holds the frequency coordinate of the inner (last) axis, l the
// outer axis, and f the slice in row-major order (l outer, k inner). Bin
// values are count-weighted means scaled by the bin's representative radius
// kr; empty bins yield NaN.
func azimuthalAverage(k, l, f []float64, nbins int) (kr, iso []float64, err error) {
	if len(f) != len(k)*len(l) {
		return nil, nil, fmt.Errorf("%w: slice has %d values for a %dx%d plane",
			ErrDimensionality, len(f), len(l), len(k))
	}

	// With a single bin the edge vector degenerates to [0] and every radius
	// lands in it.
	edges := make([]float64, nbins)
	if nbins > 1 {
		floats.Span(edges, 0, math.Min(floats.Max(k), floats.Max(l)))
	}

	counts := make([]float64, nbins)
	krSum := make([]float64, nbins)
	fSum := make([]float64, nbins)

	for j := range l {
		for i := range k {
			r := math.Hypot(k[i], l[j])
			// Bin b covers [edges[b], edges[b+1]); radii beyond the last
			// edge accumulate into the outermost bin.
			b := sort.Search(nbins, func(t int) bool { return edges[t] > r }) - 1
			if b < 0 {
				b = 0
			}
			counts[b]++
			krSum[b] += r
			fSum[b] += f[j*len(k)+i]
		}
	}

	kr = make([]float64, nbins)
	iso = make([]float64, nbins)
	for b := range kr {
		if counts[b] == 0 {
			kr[b] = math.NaN()
			iso[b] = math.NaN()
			continue
		}
		kr[b] = krSum[b] / counts[b]
		iso[b] = fSum[b] / counts[b] * kr[b]
	}
	return kr, iso, nil
}
