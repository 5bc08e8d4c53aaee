package grid

import (
	"fmt"
	"runtime"
	"slices"
	"sync"
)

// ChunkSpec maps axis names to chunk lengths. Axes not listed form a single
// chunk spanning the whole axis.
type ChunkSpec map[string]int

func (s ChunkSpec) clone() ChunkSpec {
	if s == nil {
		return nil
	}
	out := make(ChunkSpec, len(s))
	for d, n := range s {
		out[d] = n
	}
	return out
}

// LayoutConstraint declares the partition layout a blockwise function
// requires. SingleChunk axes must be held as one contiguous chunk; UnitChunk
// axes must be split into chunks of length 1.
type LayoutConstraint struct {
	SingleChunk []string
	UnitChunk   []string
}

// BlockFunc transforms one materialized block in place.
type BlockFunc func(block []float64, shape []int) error

// Blockwise applies fn independently to every block of the array and returns
// a fresh array with the same labeling. The constraint is validated against
// the array's chunk layout before any block runs; a violation reports
// [ErrLayout]. Blocks run concurrently.
func (a *Array) Blockwise(fn BlockFunc, c LayoutConstraint) (*Array, error) {
	if err := a.checkLayout(c); err != nil {
		return nil, err
	}

	out, err := BlockwiseData(a.data, a.shape, a.chunkSizes(), func(block []float64, shape []int) error {
		return fn(block, shape)
	})
	if err != nil {
		return nil, err
	}

	return &Array{
		dims:   slices.Clone(a.dims),
		shape:  slices.Clone(a.shape),
		data:   out,
		coords: a.Coords(),
		attrs:  a.Attrs(),
		chunks: a.chunks.clone(),
	}, nil
}

func (a *Array) checkLayout(c LayoutConstraint) error {
	for _, d := range c.SingleChunk {
		n, err := a.ChunkLen(d)
		if err != nil {
			return err
		}
		full, _ := a.AxisLen(d)
		if n != full {
			return fmt.Errorf("%w: axis %q must be a single chunk, has chunk length %d of %d",
				ErrLayout, d, n, full)
		}
	}
	for _, d := range c.UnitChunk {
		n, err := a.ChunkLen(d)
		if err != nil {
			return err
		}
		if n != 1 {
			return fmt.Errorf("%w: axis %q must be split into chunks of length 1, has chunk length %d",
				ErrLayout, d, n)
		}
	}
	return nil
}

// chunkSizes returns the per-axis chunk lengths in storage order.
func (a *Array) chunkSizes() []int {
	sizes := make([]int, len(a.shape))
	for i, d := range a.dims {
		if n, ok := a.chunks[d]; ok {
			sizes[i] = n
		} else {
			sizes[i] = a.shape[i]
		}
	}
	return sizes
}

// BlockwiseData partitions a row-major buffer into blocks of at most
// chunkSizes elements per axis and applies fn to each block independently,
// returning a fresh buffer. fn receives a contiguous copy of the block and
// its shape, and may mutate the copy in place. Blocks are processed on
// GOMAXPROCS goroutines; the first error aborts the result.
//
// This is the engine-independent "apply a pure function per partition"
// primitive: callers declare layout constraints at a higher level and this
// function only executes the partitioned map.
func BlockwiseData[T any](data []T, shape, chunkSizes []int, fn func(block []T, shape []int) error) ([]T, error) {
	ndim := len(shape)
	if len(chunkSizes) != ndim {
		return nil, fmt.Errorf("%w: %d chunk sizes for %d axes", ErrBadChunk, len(chunkSizes), ndim)
	}

	counts := make([]int, ndim)
	nblocks := 1
	for i := range shape {
		if chunkSizes[i] < 1 || chunkSizes[i] > shape[i] {
			return nil, fmt.Errorf("%w: axis %d chunk %d of %d", ErrBadChunk, i, chunkSizes[i], shape[i])
		}
		counts[i] = (shape[i] + chunkSizes[i] - 1) / chunkSizes[i]
		nblocks *= counts[i]
	}

	out := make([]T, len(data))
	strides := rowMajorStrides(shape)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))

	for b := range nblocks {
		starts, sizes := blockBounds(b, counts, chunkSizes, shape)

		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			block := make([]T, prod(sizes))
			gatherBlock(block, data, strides, starts, sizes)

			if err := fn(block, sizes); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}

			scatterBlock(out, block, strides, starts, sizes)
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// blockBounds decomposes a linear block index into per-axis start offsets and
// block sizes (edge blocks may be short).
func blockBounds(b int, counts, chunkSizes, shape []int) (starts, sizes []int) {
	ndim := len(shape)
	starts = make([]int, ndim)
	sizes = make([]int, ndim)
	for i := ndim - 1; i >= 0; i-- {
		ci := b % counts[i]
		b /= counts[i]
		starts[i] = ci * chunkSizes[i]
		sizes[i] = min(chunkSizes[i], shape[i]-starts[i])
	}
	return starts, sizes
}

func gatherBlock[T any](block, data []T, strides, starts, sizes []int) {
	forEachRow(strides, starts, sizes, func(srcOff, dstOff, run int) {
		copy(block[dstOff:dstOff+run], data[srcOff:srcOff+run])
	})
}

func scatterBlock[T any](data, block []T, strides, starts, sizes []int) {
	forEachRow(strides, starts, sizes, func(srcOff, dstOff, run int) {
		copy(data[srcOff:srcOff+run], block[dstOff:dstOff+run])
	})
}

// forEachRow visits every innermost-axis run of a block. srcOff indexes the
// full buffer, dstOff the contiguous block copy.
func forEachRow(strides, starts, sizes []int, visit func(srcOff, dstOff, run int)) {
	ndim := len(sizes)
	if ndim == 0 {
		return
	}

	run := sizes[ndim-1]
	outer := 1
	for _, n := range sizes[:ndim-1] {
		outer *= n
	}

	idx := make([]int, ndim-1)
	dstOff := 0
	for range outer {
		srcOff := starts[ndim-1] * strides[ndim-1]
		for d := range idx {
			srcOff += (starts[d] + idx[d]) * strides[d]
		}
		visit(srcOff, dstOff, run)
		dstOff += run

		for d := ndim - 2; d >= 0; d-- {
			idx[d]++
			if idx[d] < sizes[d] {
				break
			}
			idx[d] = 0
		}
	}
}

func prod(xs []int) int {
	p := 1
	for _, x := range xs {
		p *= x
	}
	return p
}
