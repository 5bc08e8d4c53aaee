package spectral

import (
	"fmt"
	"slices"
	"sync"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/tidefield/gridfft/grid"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// PowerSpectrum computes the power spectrum Re(F·F*) of a labeled array,
// where F is the forward transform of §DFT with the same options. With
// density normalization (the default) the raw periodogram is divided by the
// squared product of the transform axis lengths and by each transformed
// axis's frequency spacing, yielding power per unit frequency.
func PowerSpectrum(a *grid.Array, opts ...Option) (*grid.Array, error) {
	cfg := applyOptions(opts)

	daft, err := dft(a, cfg)
	if err != nil {
		return nil, err
	}

	ps := periodogram(daft.Values())

	if cfg.density {
		if err := normalizeDensity(ps, a, daft, cfg.dims); err != nil {
			return nil, err
		}
	}

	return grid.New(ps, daft.Shape(), daft.Dims(),
		grid.WithCoords(daft.Coords()), grid.WithAttrs(daft.Attrs()))
}

// CrossSpectrum computes the cross spectrum Re(F1·F2*) of two labeled
// arrays transformed independently with the same options. When no transform
// axes are configured, the two inputs must carry identical axis names; a
// mismatch fails with [ErrDimensionMismatch]. Density normalization follows
// [PowerSpectrum].
func CrossSpectrum(a1, a2 *grid.Array, opts ...Option) (*grid.Array, error) {
	cfg := applyOptions(opts)

	if cfg.dims == nil && !slices.Equal(a1.Dims(), a2.Dims()) {
		return nil, fmt.Errorf("%w: %v vs %v", ErrDimensionMismatch, a1.Dims(), a2.Dims())
	}

	daft1, err := dft(a1, cfg)
	if err != nil {
		return nil, err
	}
	daft2, err := dft(a2, cfg)
	if err != nil {
		return nil, err
	}
	if daft1.Size() != daft2.Size() {
		return nil, fmt.Errorf("%w: %v vs %v", ErrDimensionMismatch, a1.Shape(), a2.Shape())
	}

	cs := crossPeriodogram(daft1.Values(), daft2.Values())

	if cfg.density {
		if err := normalizeDensity(cs, a1, daft1, cfg.dims); err != nil {
			return nil, err
		}
	}

	return grid.New(cs, daft1.Shape(), daft1.Dims(),
		grid.WithCoords(daft1.Coords()), grid.WithAttrs(daft1.Attrs()))
}

// periodogram returns Re(F·F*) = |F|² per bin.
func periodogram(in []complex128) []float64 {
	out := make([]float64, len(in))
	if len(in) == 0 {
		return out
	}

	re, im, buf := getScratch(len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}

// crossPeriodogram returns Re(F1·F2*) = re1·re2 + im1·im2 per bin.
func crossPeriodogram(in1, in2 []complex128) []float64 {
	out := make([]float64, len(in1))
	if len(in1) == 0 {
		return out
	}

	re1, im1, buf1 := getScratch(len(in1))
	re2, im2, buf2 := getScratch(len(in2))
	for i := range in1 {
		re1[i] = real(in1[i])
		im1[i] = imag(in1[i])
		re2[i] = real(in2[i])
		im2[i] = imag(in2[i])
	}

	vecmath.MulBlock(out, re1, re2)
	vecmath.MulBlockInPlace(im1, im2)
	vecmath.AddBlockInPlace(out, im1)

	putScratch(buf2)
	putScratch(buf1)
	return out
}

// normalizeDensity converts raw periodogram power into spectral density with
// respect to frequency: divide by (ΠN)², then by the frequency spacing of
// every transformed axis.
func normalizeDensity(ps []float64, in *grid.Array, daft *grid.ComplexArray, dims []string) error {
	if dims == nil {
		dims = in.Dims()
	}

	factor := 1.0
	for _, d := range dims {
		n, err := in.AxisLen(d)
		if err != nil {
			return err
		}
		factor *= float64(n)
	}
	factor = 1 / (factor * factor)

	for _, d := range dims {
		dk, ok := daft.Attr(FreqPrefix + d + "_spacing")
		if !ok {
			return fmt.Errorf("%w: axis %q has no frequency spacing", ErrUnevenSpacing, d)
		}
		factor /= dk
	}

	vecmath.ScaleBlock(ps, ps, factor)
	return nil
}
