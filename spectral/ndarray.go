package spectral

// Row-major index helpers shared by the axis-wise transform stages. A "line"
// is a 1-D slice of an N-dimensional buffer running along one axis; every
// axis-wise operation visits each line exactly once.

func strides(shape []int) []int {
	out := make([]int, len(shape))
	s := 1
	for i := len(shape) - 1; i >= 0; i-- {
		out[i] = s
		s *= shape[i]
	}
	return out
}

// lineStarts returns the buffer offsets of every line along the given axis
// and the element stride within a line.
func lineStarts(shape []int, axis int) (starts []int, stride int) {
	str := strides(shape)
	stride = str[axis]

	count := 1
	for i, n := range shape {
		if i != axis {
			count *= n
		}
	}

	starts = make([]int, 0, count)
	idx := make([]int, len(shape))
	for {
		off := 0
		for d, i := range idx {
			off += i * str[d]
		}
		starts = append(starts, off)

		d := len(shape) - 1
		for ; d >= 0; d-- {
			if d == axis {
				continue
			}
			idx[d]++
			if idx[d] < shape[d] {
				break
			}
			idx[d] = 0
		}
		if d < 0 {
			return starts, stride
		}
	}
}

// gatherLine copies a strided line into a contiguous buffer.
func gatherLine[T any](dst, src []T, start, stride int) {
	for i := range dst {
		dst[i] = src[start+i*stride]
	}
}

// scatterLine copies a contiguous buffer back into a strided line.
func scatterLine[T any](dst, src []T, start, stride int) {
	for i := range src {
		dst[start+i*stride] = src[i]
	}
}

// fftShifted returns x cyclically rotated so the zero-frequency entry moves
// to the center: out[i] = x[(i + ceil(n/2)) mod n].
func fftShifted[T any](x []T) []T {
	n := len(x)
	c := (n + 1) / 2
	out := make([]T, n)
	copy(out, x[c:])
	copy(out[n-c:], x[:c])
	return out
}

// shiftAxis applies fftShifted to every line of data along the given axis.
func shiftAxis(data []complex128, shape []int, axis int) {
	n := shape[axis]
	if n < 2 {
		return
	}

	starts, stride := lineStarts(shape, axis)
	buf := make([]complex128, n)
	for _, s := range starts {
		gatherLine(buf, data, s, stride)
		scatterLine(data, fftShifted(buf), s, stride)
	}
}
