package powerlaw

import (
	"math"
	"testing"
)

func TestFitLogLogRecoversExponent(t *testing.T) {
	cases := []struct {
		name string
		c, p float64
	}{
		{"kolmogorov", 2.5, -5.0 / 3.0},
		{"steep", 0.1, -3},
		{"growing", 4, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x := make([]float64, 40)
			y := make([]float64, 40)
			for i := range x {
				x[i] = 0.5 + 0.25*float64(i)
				y[i] = tc.c * math.Pow(x[i], tc.p)
			}

			yFit, slope, intercept, err := FitLogLog(x, y)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(slope-tc.p) > 1e-9 {
				t.Fatalf("slope=%v, want %v", slope, tc.p)
			}
			if c := math.Exp2(intercept); math.Abs(c-tc.c) > 1e-9 {
				t.Fatalf("2^intercept=%v, want %v", c, tc.c)
			}
			for i := range yFit {
				if math.Abs(yFit[i]-y[i]) > 1e-8*math.Abs(y[i]) {
					t.Fatalf("point %d: fit %v, want %v", i, yFit[i], y[i])
				}
			}
		})
	}
}

func TestFitLogLogNoisyExponent(t *testing.T) {
	// Multiplicative perturbations symmetric in log space keep the slope.
	x := make([]float64, 64)
	y := make([]float64, 64)
	for i := range x {
		x[i] = 1 + float64(i)
		noise := 1.0
		if i%2 == 0 {
			noise = 1.1
		} else {
			noise = 1 / 1.1
		}
		y[i] = 3 * math.Pow(x[i], -2) * noise
	}

	_, slope, _, err := FitLogLog(x, y)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(slope+2) > 0.05 {
		t.Fatalf("slope=%v, want about -2", slope)
	}
}

func TestFitLogLogErrors(t *testing.T) {
	if _, _, _, err := FitLogLog([]float64{1, 2}, []float64{1}); err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
	if _, _, _, err := FitLogLog([]float64{1}, []float64{1}); err == nil {
		t.Fatal("expected error for a single point")
	}
}
