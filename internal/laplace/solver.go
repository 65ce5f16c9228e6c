package laplace

import (
	"context"
	"fmt"
	"math"
)

// Method selects the update discipline for relaxation sweeps.
type Method string

const (
	// GaussSeidel updates cells in place in row-major order; writes are
	// visible to later cells within the same sweep.
	GaussSeidel Method = "gauss-seidel"

	// Jacobi reads neighbors exclusively from the previous sweep's values.
	Jacobi Method = "jacobi"
)

// ParseMethod validates a method name from a flag or config file.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case GaussSeidel, Jacobi:
		return Method(s), nil
	}
	return "", fmt.Errorf("unknown method %q (want %q or %q)", s, GaussSeidel, Jacobi)
}

// Solver runs relaxation sweeps over the interior of a grid until the
// maximum per-sweep change drops below a tolerance. It mutates the grid in
// place; boundary cells are never written.
type Solver struct {
	grid   *Grid
	method Method
	prev   []float64 // jacobi read buffer, reused across sweeps
}

// NewSolver wraps a grid with the given update discipline.
func NewSolver(g *Grid, m Method) *Solver {
	return &Solver{grid: g, method: m}
}

// Grid returns the grid the solver operates on.
func (s *Solver) Grid() *Grid { return s.grid }

// Method returns the solver's update discipline.
func (s *Solver) Method() Method { return s.method }

// Result reports a converged solve.
type Result struct {
	// Iterations is the 1-based count of full sweeps executed.
	Iterations int
	// Residual is the maximum interior change of the final sweep.
	Residual float64
	// History holds the residual of every sweep, in order.
	History []float64
}

// Solve repeats full interior sweeps until the maximum absolute change of
// a sweep is below tolerance, or maxIter sweeps have run. On budget
// exhaustion it returns a *NotConvergedError and the grid keeps its
// partial state. The context is checked once per sweep.
func (s *Solver) Solve(ctx context.Context, tolerance float64, maxIter int) (*Result, error) {
	if tolerance <= 0 {
		return nil, fmt.Errorf("%w: tolerance must be positive, got %g", ErrInvalidParameter, tolerance)
	}
	if maxIter <= 0 {
		return nil, fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidParameter, maxIter)
	}

	res := &Result{History: make([]float64, 0, maxIter)}
	for i := 0; i < maxIter; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		diff := s.Sweep()
		res.History = append(res.History, diff)

		if diff < tolerance {
			res.Iterations = i + 1
			res.Residual = diff
			return res, nil
		}
	}

	return nil, &NotConvergedError{
		Iterations: maxIter,
		Residual:   res.History[len(res.History)-1],
		Tolerance:  tolerance,
	}
}

// Sweep performs one full relaxation pass over the interior cells and
// returns the maximum absolute change. This is the primitive Solve
// iterates; live views drive it directly.
func (s *Solver) Sweep() float64 {
	if s.method == Jacobi {
		return s.sweepJacobi()
	}
	return s.sweepGaussSeidel()
}

func (s *Solver) sweepGaussSeidel() float64 {
	g := s.grid
	n := g.n
	maxDiff := 0.0
	for i := 1; i < n-1; i++ {
		for j := 1; j < n-1; j++ {
			k := i*n + j
			old := g.v[k]
			next := 0.25 * (g.v[k-n] + g.v[k+n] + g.v[k-1] + g.v[k+1])
			g.v[k] = next
			if d := math.Abs(next - old); d > maxDiff {
				maxDiff = d
			}
		}
	}
	return maxDiff
}

func (s *Solver) sweepJacobi() float64 {
	g := s.grid
	n := g.n
	if len(s.prev) != len(g.v) {
		s.prev = make([]float64, len(g.v))
	}
	copy(s.prev, g.v)

	maxDiff := 0.0
	for i := 1; i < n-1; i++ {
		for j := 1; j < n-1; j++ {
			k := i*n + j
			next := 0.25 * (s.prev[k-n] + s.prev[k+n] + s.prev[k-1] + s.prev[k+1])
			g.v[k] = next
			if d := math.Abs(next - s.prev[k]); d > maxDiff {
				maxDiff = d
			}
		}
	}
	return maxDiff
}
