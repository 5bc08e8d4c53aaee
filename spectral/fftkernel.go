package spectral

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/mjibson/go-dsp/fft"
)

// The transform kernel runs the DFT axis by axis over a row-major complex
// buffer. Power-of-two axes go through plan-based strided transforms; other
// lengths fall back to a stateless arbitrary-length FFT with gather/scatter
// per line.

// fftAxes performs the forward DFT in place along each listed axis.
func fftAxes(data []complex128, shape []int, axes []int) error {
	for _, ax := range axes {
		if err := transformAxis(data, shape, ax, false); err != nil {
			return err
		}
	}
	return nil
}

// ifftAxes performs the normalized inverse DFT in place along each listed
// axis.
func ifftAxes(data []complex128, shape []int, axes []int) error {
	for _, ax := range axes {
		if err := transformAxis(data, shape, ax, true); err != nil {
			return err
		}
	}
	return nil
}

func transformAxis(data []complex128, shape []int, axis int, inverse bool) error {
	n := shape[axis]
	if n < 2 {
		return nil
	}

	starts, stride := lineStarts(shape, axis)

	if isPowerOf2(n) {
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return fmt.Errorf("spectral: fft plan for length %d: %w", n, err)
		}

		for _, s := range starts {
			end := s + (n-1)*stride + 1
			if err := plan.TransformStrided(data[s:end], data[s:end], stride, inverse); err != nil {
				return fmt.Errorf("spectral: fft along axis %d: %w", axis, err)
			}
		}
		return nil
	}

	buf := make([]complex128, n)
	for _, s := range starts {
		gatherLine(buf, data, s, stride)
		if inverse {
			scatterLine(data, fft.IFFT(buf), s, stride)
		} else {
			scatterLine(data, fft.FFT(buf), s, stride)
		}
	}
	return nil
}

func isPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}
