// Package laplace solves the discrete Laplace equation on the unit square
// with fixed (Dirichlet) boundary voltages and derives the electric field
// from the resulting potential.
//
// The package defines the core types of the simulation:
//
//   - [Grid]: N×N potential samples over [0,1]×[0,1]
//   - [Boundary]: one fixed voltage per edge
//   - [Solver]: iterative relaxation with a selectable [Method]
//
// # Example
//
//	g, _ := laplace.NewGrid(50)
//	g.ApplyBoundary(laplace.Boundary{Right: 10})
//	s := laplace.NewSolver(g, laplace.GaussSeidel)
//	res, _ := s.Solve(ctx, 1e-5, 10000)
//	ex, ey := g.ElectricField()
//
// # Thread Safety
//
// Grid and Solver instances are NOT thread-safe. Each solver owns its grid
// exclusively; all operations run synchronously on the calling goroutine.
package laplace
