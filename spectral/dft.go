package spectral

import (
	"fmt"
	"math"
	"slices"

	"github.com/tidefield/gridfft/grid"
)

// FreqPrefix prefixes the name of every transformed axis; the spacing of a
// transformed axis is attached as "<FreqPrefix><dim>_spacing".
const FreqPrefix = "freq_"

// DFT performs the forward discrete Fourier transform of a labeled array
// along the configured axes (all axes by default).
//
// The pipeline validates coordinate spacing, applies the configured detrend
// and window, transforms the named axes, and relabels each as
// "freq_<dim>" carrying its sample-frequency coordinate and a
// "freq_<dim>_spacing" attribute. With shifting enabled (the default) the
// zero frequency of every transformed axis is centered. Untransformed axes,
// their coordinates, and existing attributes carry over unchanged.
func DFT(a *grid.Array, opts ...Option) (*grid.ComplexArray, error) {
	return dft(a, applyOptions(opts))
}

func dft(a *grid.Array, cfg config) (*grid.ComplexArray, error) {
	dims := cfg.dims
	if dims == nil {
		dims = a.Dims()
	}

	axes := make([]int, len(dims))
	for i, d := range dims {
		ax, err := a.AxisIndex(d)
		if err != nil {
			return nil, err
		}
		axes[i] = ax
	}

	if !a.Chunked() {
		for _, v := range a.Values() {
			if math.IsNaN(v) {
				return nil, ErrInvalidData
			}
		}
	} else {
		for _, d := range dims {
			n, _ := a.ChunkLen(d)
			full, _ := a.AxisLen(d)
			if n != full {
				return nil, fmt.Errorf("%w: transform axis %q must be a single chunk", ErrChunkConstraint, d)
			}
		}
	}

	deltas, err := sampleSpacings(a, dims, cfg.stol)
	if err != nil {
		return nil, err
	}

	shape := a.Shape()
	freqs := make([][]float64, len(dims))
	for i, ax := range axes {
		freqs[i] = fftFreq(shape[ax], deltas[i])
	}

	work := a
	switch cfg.detrend {
	case DetrendConstant:
		data := slices.Clone(a.Values())
		subtractMean(data, shape, axes)
		work, err = grid.New(data, shape, a.Dims(),
			grid.WithCoords(a.Coords()), grid.WithAttrs(a.Attrs()), grid.WithChunks(a.Chunks()))
	case DetrendLinear:
		work, err = DetrendN(a, dims)
	}
	if err != nil {
		return nil, err
	}

	buf := slices.Clone(work.Values())
	if cfg.window {
		if err := applyWindow(buf, shape, axes, cfg.windowType); err != nil {
			return nil, err
		}
	}

	cdata := make([]complex128, len(buf))
	for i, v := range buf {
		cdata[i] = complex(v, 0)
	}

	if work.Chunked() {
		cdata, err = chunkedTransform(work, cdata, axes, cfg.shift)
	} else {
		err = fftAxes(cdata, shape, axes)
		if err == nil && cfg.shift {
			for _, ax := range axes {
				shiftAxis(cdata, shape, ax)
			}
		}
	}
	if err != nil {
		return nil, err
	}

	if cfg.shift {
		for i := range freqs {
			freqs[i] = fftShifted(freqs[i])
		}
	}

	newDims := a.Dims()
	for i, ax := range axes {
		newDims[ax] = FreqPrefix + dims[i]
	}

	coords := make(map[string]grid.Coord)
	for d, c := range a.Coords() {
		if !slices.Contains(dims, d) {
			coords[d] = c
		}
	}
	for i, d := range dims {
		coords[FreqPrefix+d] = grid.Numeric(freqs[i])
	}

	attrs := a.Attrs()
	for i, d := range dims {
		if len(freqs[i]) > 1 {
			attrs[FreqPrefix+d+"_spacing"] = freqs[i][1] - freqs[i][0]
		}
	}

	return grid.NewComplex(cdata, shape, newDims,
		grid.WithCoords(coords), grid.WithAttrs(attrs))
}

// chunkedTransform runs the FFT (and optional zero-frequency centering) per
// partition. The transform axes span whole partitions, so every partition
// holds complete lines along each transformed axis.
func chunkedTransform(a *grid.Array, cdata []complex128, axes []int, shift bool) ([]complex128, error) {
	sizes := make([]int, a.NDim())
	for i, d := range a.Dims() {
		sizes[i], _ = a.ChunkLen(d)
	}

	return grid.BlockwiseData(cdata, a.Shape(), sizes, func(block []complex128, blockShape []int) error {
		if err := fftAxes(block, blockShape, axes); err != nil {
			return err
		}
		if shift {
			for _, ax := range axes {
				shiftAxis(block, blockShape, ax)
			}
		}
		return nil
	})
}

// subtractMean removes the mean over the transform axes from every slice
// along the remaining axes.
func subtractMean(data []float64, shape []int, axes []int) {
	redStride := make([]int, len(shape))
	s := 1
	count := 1
	for i := len(shape) - 1; i >= 0; i-- {
		if slices.Contains(axes, i) {
			redStride[i] = 0
			count *= shape[i]
		} else {
			redStride[i] = s
			s *= shape[i]
		}
	}

	sums := make([]float64, s)
	idx := make([]int, len(shape))
	advance := func() {
		for d := len(shape) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < shape[d] {
				return
			}
			idx[d] = 0
		}
	}
	redOff := func() int {
		off := 0
		for d, i := range idx {
			off += i * redStride[d]
		}
		return off
	}

	for _, v := range data {
		sums[redOff()] += v
		advance()
	}
	for i := range sums {
		sums[i] /= float64(count)
	}
	for i := range data {
		data[i] -= sums[redOff()]
		advance()
	}
}
