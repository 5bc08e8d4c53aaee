package spectral

import (
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// windowVector materializes the 1-D tapering window for one axis. Window
// vectors are small and never partitioned; under chunked execution they are
// built once per axis and broadcast across partitions.
func windowVector(name string, n int) ([]float64, error) {
	if name != WindowHann {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedWindow, name)
	}

	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w, nil
	}
	den := float64(n - 1)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/den)
	}
	return w, nil
}

// applyWindow multiplies the buffer in place by the separable window over the
// listed axes, taking the per-axis vectors in reverse axis order.
func applyWindow(data []float64, shape []int, axes []int, name string) error {
	for i := len(axes) - 1; i >= 0; i-- {
		ax := axes[i]
		w, err := windowVector(name, shape[ax])
		if err != nil {
			return err
		}

		starts, stride := lineStarts(shape, ax)
		if stride == 1 {
			n := shape[ax]
			for _, s := range starts {
				vecmath.MulBlockInPlace(data[s:s+n], w)
			}
			continue
		}
		for _, s := range starts {
			for j, c := range w {
				data[s+j*stride] *= c
			}
		}
	}
	return nil
}
