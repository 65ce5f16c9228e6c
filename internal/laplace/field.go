package laplace

import "math"

// ElectricField derives E = -∇V from the current potential, using centered
// differences at interior points and one-sided differences at the edges,
// scaled by the mesh spacing h. It is a pure query: nothing is cached and
// the grid is not mutated, so it can be called at any time, converged or
// not. Edge-adjacent values carry higher truncation error than interior
// ones (one-sided differencing is first order).
//
// Ex[i][j] = -∂V/∂x and Ey[i][j] = -∂V/∂y at row i, column j.
func (g *Grid) ElectricField() (ex, ey [][]float64) {
	n := g.n
	ex = make([][]float64, n)
	ey = make([][]float64, n)
	for i := 0; i < n; i++ {
		ex[i] = make([]float64, n)
		ey[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			var dvdx, dvdy float64

			switch {
			case j == 0:
				dvdx = (g.At(i, 1) - g.At(i, 0)) / g.h
			case j == n-1:
				dvdx = (g.At(i, n-1) - g.At(i, n-2)) / g.h
			default:
				dvdx = (g.At(i, j+1) - g.At(i, j-1)) / (2 * g.h)
			}

			switch {
			case i == 0:
				dvdy = (g.At(1, j) - g.At(0, j)) / g.h
			case i == n-1:
				dvdy = (g.At(n-1, j) - g.At(n-2, j)) / g.h
			default:
				dvdy = (g.At(i+1, j) - g.At(i-1, j)) / (2 * g.h)
			}

			ex[i][j] = -dvdx
			ey[i][j] = -dvdy
		}
	}
	return ex, ey
}

// Magnitude returns the pointwise magnitude of a vector field.
func Magnitude(ex, ey [][]float64) [][]float64 {
	out := make([][]float64, len(ex))
	for i := range ex {
		out[i] = make([]float64, len(ex[i]))
		for j := range ex[i] {
			out[i][j] = math.Hypot(ex[i][j], ey[i][j])
		}
	}
	return out
}

// Range returns the minimum and maximum of a matrix. An empty matrix
// yields (0, 0).
func Range(m [][]float64) (min, max float64) {
	first := true
	for i := range m {
		for j := range m[i] {
			v := m[i][j]
			if first {
				min, max = v, v
				first = false
				continue
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	return min, max
}
