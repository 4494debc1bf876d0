package lpsolver

import (
	"context"

	"github.com/macaw-go/macaw/model"
)

// Solution is the primal result of one LP solve: the objective value and
// the flux assigned to each reaction.
type Solution struct {
	// Objective is the optimal objective value.
	Objective float64

	// Flux maps reaction ID -> assigned flux value.
	Flux map[string]float64
}

// Solver is the external-collaborator contract MACAW's core wraps (§4.1,
// §6 "External LP solver backend"). Implementations MUST:
//   - honor ctx cancellation promptly (§5: "terminate ... within one LP
//     quantum"),
//   - return ErrInfeasible/ErrUnbounded/ErrNumerical as sentinel-wrapped
//     errors rather than panicking.
type Solver interface {
	// Solve maximizes (or minimizes, if maximize==false) the flux of
	// objective subject to m's mass balance, bounds, and constraints.
	Solve(ctx context.Context, m *model.Model, maximize bool, objective string) (Solution, error)

	// Sample draws n flux distributions from m's feasible polytope.
	Sample(ctx context.Context, m *model.Model, n int) ([]Solution, error)
}
