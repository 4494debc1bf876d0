package lpsolver

import (
	"context"
	"errors"
	"math"

	"github.com/macaw-go/macaw/model"
)

// DefaultZeroThresh is the §4.3/§4.6 default magnitude below which an LP
// optimum is treated as zero.
const DefaultZeroThresh = 1e-8

// CanCarryFlux reports whether reactionID can carry nonzero flux in m:
// it maximizes +v_r then -v_r and returns true if either optimum exceeds
// zeroThresh in magnitude. An infeasible LP in either direction is treated
// as "cannot carry flux in that direction", not propagated as an error,
// per §7's "solver-local errors are absorbed into verdicts" policy.
func CanCarryFlux(ctx context.Context, solver Solver, m *model.Model, reactionID string, zeroThresh float64) (bool, error) {
	for _, maximize := range []bool{true, false} {
		sol, err := solver.Solve(ctx, m, maximize, reactionID)
		if err != nil {
			if isRecoverable(err) {
				continue
			}

			return false, err
		}
		if math.Abs(sol.Objective) > zeroThresh {
			return true, nil
		}
	}

	return false, nil
}

// BlockedSet evaluates CanCarryFlux for every reaction in reactionIDs and
// returns the subset that is blocked (cannot carry flux), per §4.1's
// "blocked-set(under-constraints)" query.
func BlockedSet(ctx context.Context, solver Solver, m *model.Model, reactionIDs []string, zeroThresh float64) (map[string]bool, error) {
	blocked := make(map[string]bool, len(reactionIDs))
	for _, rid := range reactionIDs {
		can, err := CanCarryFlux(ctx, solver, m, rid, zeroThresh)
		if err != nil {
			return nil, err
		}
		blocked[rid] = !can
	}

	return blocked, nil
}

// FluxSample draws n samples from m's feasible polytope via solver.Sample,
// the §4.1 "flux-sampling(N)" query.
func FluxSample(ctx context.Context, solver Solver, m *model.Model, n int) ([]Solution, error) {
	return solver.Sample(ctx, m, n)
}

func isRecoverable(err error) bool {
	return errors.Is(err, ErrInfeasible) || errors.Is(err, ErrUnbounded) || errors.Is(err, ErrNumerical)
}
