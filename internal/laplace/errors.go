package laplace

import (
	"errors"
	"fmt"
)

// Domain errors for solver operations.
var (
	// ErrInvalidSize indicates a grid size below the 3×3 minimum.
	ErrInvalidSize = errors.New("laplace: grid size below minimum")

	// ErrInvalidParameter indicates a non-positive tolerance or iteration budget.
	ErrInvalidParameter = errors.New("laplace: invalid solve parameter")

	// ErrNotConverged indicates the iteration budget ran out before the
	// per-sweep change dropped below tolerance.
	ErrNotConverged = errors.New("laplace: relaxation did not converge")
)

// NotConvergedError reports an exhausted iteration budget. The grid keeps
// the partial state it reached, so a caller diagnosing slow convergence can
// still inspect the potential and field.
type NotConvergedError struct {
	Iterations int
	Residual   float64
	Tolerance  float64
}

func (e *NotConvergedError) Error() string {
	return fmt.Sprintf("laplace: no convergence after %d iterations (residual %.3e, tolerance %.3e)",
		e.Iterations, e.Residual, e.Tolerance)
}

func (e *NotConvergedError) Unwrap() error {
	return ErrNotConverged
}
