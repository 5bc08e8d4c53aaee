package spectral_test

import (
	"fmt"
	"math"

	"github.com/tidefield/gridfft/grid"
	"github.com/tidefield/gridfft/spectral"
)

func ExampleDFT() {
	n := 8
	data := make([]float64, n)
	coord := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * float64(i) / float64(n))
		coord[i] = float64(i)
	}

	a, _ := grid.New(data, []int{n}, []string{"x"},
		grid.WithCoord("x", grid.Numeric(coord)))

	out, _ := spectral.DFT(a, spectral.WithoutShift())

	c, _ := out.Coord("freq_x")
	for _, f := range c.Values {
		fmt.Printf("%.3f ", f)
	}
	fmt.Println()
	// Output:
	// 0.000 0.125 0.250 0.375 -0.500 -0.375 -0.250 -0.125
}

func ExamplePowerSpectrum() {
	n := 16
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * float64(i) / 4)
	}

	a, _ := grid.New(data, []int{n}, []string{"x"})

	ps, _ := spectral.PowerSpectrum(a, spectral.WithoutShift(), spectral.WithoutDensity())

	peak := 0
	for i, v := range ps.Values() {
		if v > ps.Values()[peak] {
			peak = i
		}
	}
	fmt.Printf("peak bin %d, power %.1f\n", peak, ps.Values()[peak])
	// Output:
	// peak bin 4, power 64.0
}

func ExampleIsotropicPowerSpectrum() {
	n := 32
	data := make([]float64, n*n)
	for j := range n {
		for i := range n {
			dy := float64(j - n/2)
			dx := float64(i - n/2)
			data[j*n+i] = math.Exp(-(dx*dx + dy*dy) / 32)
		}
	}

	a, _ := grid.New(data, []int{n, n}, []string{"y", "x"})

	iso, _ := spectral.IsotropicPowerSpectrum(a)
	fmt.Printf("%v with %d radial bins\n", iso.Dims(), iso.Size())
	// Output:
	// [freq_r] with 8 radial bins
}
