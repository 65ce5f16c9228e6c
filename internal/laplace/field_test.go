package laplace

import (
	"math"
	"testing"
)

// linearPotential builds V(x,y) = ax + by on an n×n grid, bypassing the
// solver entirely.
func linearPotential(n int, a, b float64) *Grid {
	g, _ := NewGrid(n)
	h := g.Spacing()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			g.Set(i, j, a*float64(j)*h+b*float64(i)*h)
		}
	}
	return g
}

func TestFieldOnLinearPotential(t *testing.T) {
	// V = 2x + 3y, so E = -∇V = (-2, -3). Finite differences are exact on
	// a linear function, edges included.
	g := linearPotential(10, 2, 3)
	ex, ey := g.ElectricField()

	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			if d := math.Abs(ex[i][j] + 2.0); d > 1e-9 {
				t.Errorf("Ex[%d][%d]: expected -2, got %f", i, j, ex[i][j])
			}
			if d := math.Abs(ey[i][j] + 3.0); d > 1e-9 {
				t.Errorf("Ey[%d][%d]: expected -3, got %f", i, j, ey[i][j])
			}
		}
	}
}

func TestFieldOnZeroPotential(t *testing.T) {
	g, _ := NewGrid(6)
	ex, ey := g.ElectricField()

	for i := range ex {
		for j := range ex[i] {
			if ex[i][j] != 0 || ey[i][j] != 0 {
				t.Errorf("expected zero field at (%d,%d), got (%f,%f)", i, j, ex[i][j], ey[i][j])
			}
		}
	}
}

func TestFieldIsPureQuery(t *testing.T) {
	g := linearPotential(8, 1, 1)
	before := g.Potential()

	g.ElectricField()
	g.ElectricField()

	after := g.Potential()
	for i := range before {
		for j := range before[i] {
			if before[i][j] != after[i][j] {
				t.Errorf("ElectricField mutated cell (%d,%d)", i, j)
			}
		}
	}
}

func TestMagnitude(t *testing.T) {
	ex := [][]float64{{3, 0}, {0, -3}}
	ey := [][]float64{{4, 0}, {0, 4}}

	mag := Magnitude(ex, ey)
	want := [][]float64{{5, 0}, {0, 5}}
	for i := range want {
		for j := range want[i] {
			if math.Abs(mag[i][j]-want[i][j]) > 1e-12 {
				t.Errorf("magnitude (%d,%d): expected %f, got %f", i, j, want[i][j], mag[i][j])
			}
		}
	}
}

func TestRange(t *testing.T) {
	m := [][]float64{{1, -2, 3}, {0, 7, -5}}
	min, max := Range(m)
	if min != -5 || max != 7 {
		t.Errorf("expected range [-5, 7], got [%f, %f]", min, max)
	}

	min, max = Range(nil)
	if min != 0 || max != 0 {
		t.Errorf("empty matrix should yield (0,0), got (%f,%f)", min, max)
	}
}
