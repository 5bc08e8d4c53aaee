package testutil

import (
	"math"
	"math/rand"
)

// UniformCoord generates an evenly spaced coordinate start, start+step, ...
func UniformCoord(start, step float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// DeterministicSine samples amplitude·sin(2π·freq·x) on a uniform grid with
// the given spacing.
func DeterministicSine(freq, spacing, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*spacing*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for
// reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// PlaneField generates a row-major ny×nx field a + b·i + c·j where i is the
// 1-based row index and j the 1-based column index.
func PlaneField(a, b, c float64, ny, nx int) []float64 {
	out := make([]float64, ny*nx)
	for i := range ny {
		for j := range nx {
			out[i*nx+j] = a + b*float64(i+1) + c*float64(j+1)
		}
	}
	return out
}

// TrilinearField generates a row-major nz×ny×nx field a + b·i + c·j + d·k
// over 1-based indices.
func TrilinearField(a, b, c, d float64, nz, ny, nx int) []float64 {
	out := make([]float64, nz*ny*nx)
	for i := range nz {
		for j := range ny {
			for k := range nx {
				out[(i*ny+j)*nx+k] = a + b*float64(i+1) + c*float64(j+1) + d*float64(k+1)
			}
		}
	}
	return out
}

// RadialField generates a row-major ny×nx field whose value depends only on
// the distance from the grid center, exp(-r²/(2·sigma²)).
func RadialField(sigma float64, ny, nx int) []float64 {
	out := make([]float64, ny*nx)
	cy := float64(ny-1) / 2
	cx := float64(nx-1) / 2
	for i := range ny {
		for j := range nx {
			r2 := (float64(i)-cy)*(float64(i)-cy) + (float64(j)-cx)*(float64(j)-cx)
			out[i*nx+j] = math.Exp(-r2 / (2 * sigma * sigma))
		}
	}
	return out
}
