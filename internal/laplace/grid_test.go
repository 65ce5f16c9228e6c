package laplace

import (
	"errors"
	"testing"
)

func TestNewGridMinimumSize(t *testing.T) {
	for _, n := range []int{-1, 0, 1, 2} {
		if _, err := NewGrid(n); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewGrid(%d): expected ErrInvalidSize, got %v", n, err)
		}
	}

	g, err := NewGrid(3)
	if err != nil {
		t.Fatalf("NewGrid(3): unexpected error: %v", err)
	}
	if g.Size() != 3 {
		t.Errorf("expected size 3, got %d", g.Size())
	}
	if g.Spacing() != 0.5 {
		t.Errorf("expected spacing 0.5, got %f", g.Spacing())
	}
}

func TestNewGridStartsAtZero(t *testing.T) {
	g, _ := NewGrid(4)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if g.At(i, j) != 0 {
				t.Errorf("cell (%d,%d) should start at 0, got %f", i, j, g.At(i, j))
			}
		}
	}
}

func TestApplyBoundaryCornerOwnership(t *testing.T) {
	g, _ := NewGrid(5)
	g.ApplyBoundary(Boundary{Left: 1, Right: 2, Top: 3, Bottom: 4})

	// Corners belong to top/bottom, never left/right.
	corners := []struct {
		i, j int
		want float64
	}{
		{0, 0, 4}, {0, 4, 4}, // bottom row
		{4, 0, 3}, {4, 4, 3}, // top row
	}
	for _, c := range corners {
		if got := g.At(c.i, c.j); got != c.want {
			t.Errorf("corner (%d,%d): expected %f, got %f", c.i, c.j, c.want, got)
		}
	}

	for i := 1; i < 4; i++ {
		if g.At(i, 0) != 1 {
			t.Errorf("left edge row %d: expected 1, got %f", i, g.At(i, 0))
		}
		if g.At(i, 4) != 2 {
			t.Errorf("right edge row %d: expected 2, got %f", i, g.At(i, 4))
		}
	}
	for j := 1; j < 4; j++ {
		if g.At(4, j) != 3 {
			t.Errorf("top edge col %d: expected 3, got %f", j, g.At(4, j))
		}
		if g.At(0, j) != 4 {
			t.Errorf("bottom edge col %d: expected 4, got %f", j, g.At(0, j))
		}
	}
}

func TestApplyBoundaryLeavesInterior(t *testing.T) {
	g, _ := NewGrid(5)
	g.Set(2, 2, 7.5)
	g.ApplyBoundary(Boundary{Left: 1, Right: 2, Top: 3, Bottom: 4})

	if g.At(2, 2) != 7.5 {
		t.Errorf("interior cell overwritten by boundary application: got %f", g.At(2, 2))
	}
}

func TestApplyBoundaryIdempotent(t *testing.T) {
	b := Boundary{Left: -1, Right: 10, Top: 2.5, Bottom: 0}

	g1, _ := NewGrid(6)
	g1.ApplyBoundary(b)
	once := g1.Potential()

	g2, _ := NewGrid(6)
	g2.ApplyBoundary(b)
	g2.ApplyBoundary(b)
	twice := g2.Potential()

	for i := range once {
		for j := range once[i] {
			if once[i][j] != twice[i][j] {
				t.Errorf("cell (%d,%d): single application %f, double %f", i, j, once[i][j], twice[i][j])
			}
		}
	}
}

func TestPotentialDefensiveCopy(t *testing.T) {
	g, _ := NewGrid(4)
	g.Set(1, 1, 3.0)

	p := g.Potential()
	p[1][1] = 99.0
	p[0][0] = 99.0

	if g.At(1, 1) != 3.0 {
		t.Errorf("mutating the copy changed the grid: got %f", g.At(1, 1))
	}
	if g.Potential()[0][0] != 0 {
		t.Errorf("mutating the copy changed later copies: got %f", g.Potential()[0][0])
	}
}

func TestNewGridFrom(t *testing.T) {
	if _, err := NewGridFrom([][]float64{{1, 2}, {3, 4}}); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("2x2 matrix: expected ErrInvalidSize, got %v", err)
	}

	ragged := [][]float64{{1, 2, 3}, {4, 5}, {6, 7, 8}}
	if _, err := NewGridFrom(ragged); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("ragged matrix: expected ErrInvalidSize, got %v", err)
	}

	vals := [][]float64{{0, 1, 2}, {3, 4, 5}, {6, 7, 8}}
	g, err := NewGridFrom(vals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.At(1, 2) != 5 {
		t.Errorf("expected 5 at (1,2), got %f", g.At(1, 2))
	}

	vals[1][2] = 50
	if g.At(1, 2) != 5 {
		t.Error("NewGridFrom should copy, not alias, the input")
	}
}

func TestReset(t *testing.T) {
	g, _ := NewGrid(4)
	g.ApplyBoundary(Boundary{Right: 10})
	g.Set(1, 1, 5)
	g.Reset()

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if g.At(i, j) != 0 {
				t.Errorf("cell (%d,%d) not zeroed: %f", i, j, g.At(i, j))
			}
		}
	}
}
