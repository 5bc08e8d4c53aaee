package spectral

import (
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/tidefield/gridfft/grid"
)

const maxDetrendAxes = 3

// DetrendN removes the ordinary-least-squares trend over the named axes:
// the best-fit line per 1-D slice for one axis, the best-fit plane
// z = a + b·i + c·j for two axes, and the trilinear fit for three. Fit axes
// must have at least two samples; requests over more than three axes or on
// arrays with more than four dimensions fail with [ErrUnsupportedDetrend].
//
// On chunked arrays every fit axis must be held as a single chunk, and for
// multi-axis fits the remaining axes must be split into chunks of length 1,
// so each fit runs as an independent per-partition computation; other layouts
// fail with [ErrChunkConstraint].
func DetrendN(a *grid.Array, dims []string) (*grid.Array, error) {
	axes, err := resolveAxes(a, dims)
	if err != nil {
		return nil, err
	}
	if len(axes) == 0 || len(axes) > maxDetrendAxes || a.NDim() > maxDetrendAxes+1 {
		return nil, fmt.Errorf("%w: %d axes over %d dimensions", ErrUnsupportedDetrend, len(axes), a.NDim())
	}

	shape := a.Shape()
	for _, ax := range axes {
		if shape[ax] < 2 {
			return nil, fmt.Errorf("%w: axis %q has fewer than 2 samples", ErrUnsupportedDetrend, a.Dims()[ax])
		}
	}

	fn := func(block []float64, blockShape []int) error {
		return detrendBlock(block, blockShape, axes)
	}

	if a.Chunked() {
		constraint := grid.LayoutConstraint{SingleChunk: slices.Clone(dims)}
		if len(axes) > 1 {
			for _, d := range a.Dims() {
				if !slices.Contains(dims, d) {
					constraint.UnitChunk = append(constraint.UnitChunk, d)
				}
			}
		}

		out, err := a.Blockwise(fn, constraint)
		if errors.Is(err, grid.ErrLayout) {
			return nil, fmt.Errorf("%w: %v", ErrChunkConstraint, err)
		}
		return out, err
	}

	// Eager arrays run the same per-partition fits over synthetic unit
	// partitions along the non-fit axes.
	sizes := make([]int, len(shape))
	for i := range shape {
		if slices.Contains(axes, i) {
			sizes[i] = shape[i]
		} else {
			sizes[i] = 1
		}
	}

	out, err := grid.BlockwiseData(a.Values(), shape, sizes, fn)
	if err != nil {
		return nil, err
	}
	return grid.New(out, shape, a.Dims(),
		grid.WithCoords(a.Coords()), grid.WithAttrs(a.Attrs()))
}

// resolveAxes maps axis names to positional indices in storage order.
func resolveAxes(a *grid.Array, dims []string) ([]int, error) {
	axes := make([]int, 0, len(dims))
	for _, d := range dims {
		i, err := a.AxisIndex(d)
		if err != nil {
			return nil, err
		}
		if slices.Contains(axes, i) {
			return nil, fmt.Errorf("%w: duplicate axis %q", ErrUnsupportedDetrend, d)
		}
		axes = append(axes, i)
	}
	slices.Sort(axes)
	return axes, nil
}

// detrendBlock removes the trend from one materialized block. blockAxes are
// positions within the block shape.
func detrendBlock(block []float64, shape []int, axes []int) error {
	if len(axes) == 1 {
		detrendLines(block, shape, axes[0])
		return nil
	}

	// Multi-axis fits expect the block to be exactly the fit slab: all other
	// axes reduced to length 1 by the partition layout.
	fitSize := 1
	for _, ax := range axes {
		fitSize *= shape[ax]
	}
	if fitSize != len(block) {
		return fmt.Errorf("%w: block %v is not a pure %d-axis slab", ErrUnsupportedDetrend, shape, len(axes))
	}

	n := make([]int, len(axes))
	for i, ax := range axes {
		n[i] = shape[ax]
	}
	return subtractFit(block, n)
}

// detrendLines removes the least-squares line from every 1-D slice of the
// block along the given axis.
func detrendLines(block []float64, shape []int, axis int) {
	length := shape[axis]
	starts, stride := lineStarts(shape, axis)

	xs := make([]float64, length)
	for i := range xs {
		xs[i] = float64(i)
	}

	line := make([]float64, length)
	for _, s := range starts {
		gatherLine(line, block, s, stride)
		intercept, slope := stat.LinearRegression(xs, line, nil, false)
		for i := range line {
			line[i] -= intercept + slope*xs[i]
		}
		scatterLine(block, line, s, stride)
	}
}

// subtractFit fits d = G·m by ordinary least squares over a slab with the
// given fit-axis lengths and subtracts the fitted surface in place. The
// design matrix carries a constant column plus one 1-based index column per
// fit axis; the model is solved through the normal equations
// m = (GᵀG)⁻¹ Gᵀ d.
func subtractFit(block []float64, n []int) error {
	m := len(block)
	p := len(n) + 1

	g := mat.NewDense(m, p, nil)
	idx := make([]int, len(n))
	for r := range m {
		g.Set(r, 0, 1)
		for k, i := range idx {
			g.Set(r, k+1, float64(i+1))
		}
		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < n[d] {
				break
			}
			idx[d] = 0
		}
	}

	obs := mat.NewVecDense(m, slices.Clone(block))

	var gtg mat.Dense
	gtg.Mul(g.T(), g)

	var inv mat.Dense
	if err := inv.Inverse(&gtg); err != nil {
		return fmt.Errorf("%w: singular design matrix: %v", ErrUnsupportedDetrend, err)
	}

	var gtd, est, fit mat.VecDense
	gtd.MulVec(g.T(), obs)
	est.MulVec(&inv, &gtd)
	fit.MulVec(g, &est)

	for i := range block {
		block[i] -= fit.AtVec(i)
	}
	return nil
}
