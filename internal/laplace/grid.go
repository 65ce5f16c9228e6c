package laplace

import "fmt"

// minSize is the smallest grid with an interior point that has a neighbor
// on every side.
const minSize = 3

// Grid holds the electric potential sampled on an N×N mesh over the unit
// square, with spacing h = 1/(N-1). Row 0 is the bottom edge (y = 0) and
// column 0 the left edge (x = 0). Values are stored row-major in a flat
// slice.
type Grid struct {
	n int
	h float64
	v []float64
}

// Boundary fixes the Dirichlet voltage on each edge of the square. The
// zero value leaves every edge at 0 V.
type Boundary struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// NewGrid returns an n×n grid initialized to zero.
func NewGrid(n int) (*Grid, error) {
	if n < minSize {
		return nil, fmt.Errorf("%w: got %d, need at least %d", ErrInvalidSize, n, minSize)
	}
	return &Grid{
		n: n,
		h: 1.0 / float64(n-1),
		v: make([]float64, n*n),
	}, nil
}

// NewGridFrom builds a grid from an existing square potential matrix,
// copying the values. Useful for re-deriving fields from stored runs.
func NewGridFrom(values [][]float64) (*Grid, error) {
	g, err := NewGrid(len(values))
	if err != nil {
		return nil, err
	}
	for i, row := range values {
		if len(row) != g.n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidSize, i, len(row), g.n)
		}
		copy(g.v[i*g.n:(i+1)*g.n], row)
	}
	return g, nil
}

// Size returns the grid dimension N.
func (g *Grid) Size() int { return g.n }

// Spacing returns the mesh spacing h = 1/(N-1).
func (g *Grid) Spacing() float64 { return g.h }

// At returns the potential at row i, column j.
func (g *Grid) At(i, j int) float64 { return g.v[i*g.n+j] }

// Set assigns the potential at row i, column j.
func (g *Grid) Set(i, j int, val float64) { g.v[i*g.n+j] = val }

// ApplyBoundary overwrites every boundary cell with the edge voltages.
// Corners are owned by the top and bottom edges: bottom-left and
// bottom-right take Bottom, top-left and top-right take Top. Interior
// cells are never touched, so reapplying at any time is safe.
func (g *Grid) ApplyBoundary(b Boundary) {
	n := g.n
	for i := 0; i < n; i++ {
		g.v[i*n] = b.Left
		g.v[i*n+n-1] = b.Right
	}
	for j := 1; j < n-1; j++ {
		g.v[j] = b.Bottom
		g.v[(n-1)*n+j] = b.Top
	}
	g.v[0] = b.Bottom
	g.v[n-1] = b.Bottom
	g.v[(n-1)*n] = b.Top
	g.v[n*n-1] = b.Top
}

// Reset zeroes every cell, boundary included.
func (g *Grid) Reset() {
	for i := range g.v {
		g.v[i] = 0
	}
}

// Potential returns a defensive copy of the grid as an N×N matrix indexed
// by (row, column). Mutating the copy never affects the solver state.
func (g *Grid) Potential() [][]float64 {
	out := make([][]float64, g.n)
	for i := 0; i < g.n; i++ {
		out[i] = make([]float64, g.n)
		copy(out[i], g.v[i*g.n:(i+1)*g.n])
	}
	return out
}
