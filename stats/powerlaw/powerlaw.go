// Package powerlaw fits power laws to 1-D spectra in log-log space.
package powerlaw

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

var (
	errLengthMismatch = errors.New("powerlaw: x and y must have the same length")
	errTooFewPoints   = errors.New("powerlaw: fit needs at least 2 points")
)

// FitLogLog fits a first-degree polynomial to (log2 x, log2 y) by ordinary
// least squares and returns the fitted curve evaluated at x,
// 2^(slope·log2 x + intercept), along with the slope and intercept. For
// y = c·x^p the slope recovers p and 2^intercept recovers c.
//
// Non-positive entries in x or y propagate through the logarithm as
// non-finite values; they are not validated separately.
func FitLogLog(x, y []float64) (yFit []float64, slope, intercept float64, err error) {
	if len(x) != len(y) {
		return nil, 0, 0, fmt.Errorf("%w: %d vs %d", errLengthMismatch, len(x), len(y))
	}
	if len(x) < 2 {
		return nil, 0, 0, fmt.Errorf("%w: got %d", errTooFewPoints, len(x))
	}

	lx := make([]float64, len(x))
	ly := make([]float64, len(y))
	for i := range x {
		lx[i] = math.Log2(x[i])
		ly[i] = math.Log2(y[i])
	}

	intercept, slope = stat.LinearRegression(lx, ly, nil, false)

	yFit = make([]float64, len(x))
	for i := range yFit {
		yFit[i] = math.Exp2(slope*lx[i] + intercept)
	}
	return yFit, slope, intercept, nil
}
