package lpsolver

import (
	"context"
	"math/rand"

	"github.com/macaw-go/macaw/model"
)

// FakeSolver is the reference Solver backend shipped with this package
// (see the package doc for why a full production LP engine is out of
// scope). Sample draws N solutions by solving the LP against N
// deterministically-seeded random objective directions — a documented
// "random objective corner sampler" rather than true hit-and-run, chosen
// for the same reason flow.Dinic documents its own complexity trade-offs:
// simple, deterministic, and sufficient for this package's tests.
type FakeSolver struct {
	// Seed drives the deterministic RNG used by Sample. Zero uses 1.
	Seed int64
}

var _ Solver = (*FakeSolver)(nil)

// Solve implements Solver.
func (s *FakeSolver) Solve(ctx context.Context, m *model.Model, maximize bool, objective string) (Solution, error) {
	p, err := buildLP(m)
	if err != nil {
		return Solution{}, err
	}
	idx, ok := p.index(objective)
	if !ok {
		return Solution{}, ErrReactionNotFound
	}
	obj := make([]float64, len(p.vars))
	obj[idx] = 1

	x, val, status := solveBounded(ctx, p, obj, maximize)

	return toSolution(p, x, val, status)
}

// Sample implements Solver.
func (s *FakeSolver) Sample(ctx context.Context, m *model.Model, n int) ([]Solution, error) {
	p, err := buildLP(m)
	if err != nil {
		return nil, err
	}

	seed := s.Seed
	if seed == 0 {
		seed = 1
	}
	rng := rand.New(rand.NewSource(seed))

	out := make([]Solution, 0, n)
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		default:
		}
		obj := make([]float64, len(p.vars))
		for j := range obj {
			obj[j] = rng.NormFloat64()
		}
		x, val, status := solveBounded(ctx, p, obj, true)
		sol, err := toSolution(p, x, val, status)
		if err != nil {
			// A random direction that happens to be infeasible/degenerate
			// simply contributes no sample; the polytope itself is still
			// feasible (verified by the caller before sampling).
			continue
		}
		out = append(out, sol)
	}

	return out, nil
}

func toSolution(p *lpProblem, x []float64, val float64, status simplexStatus) (Solution, error) {
	switch status {
	case statusOptimal:
		flux := make(map[string]float64, len(p.vars))
		for i, v := range p.vars {
			if len(v) >= 7 && v[:7] == "_slack_" {
				continue
			}
			flux[v] = x[i]
		}

		return Solution{Objective: val, Flux: flux}, nil
	case statusInfeasible:
		return Solution{}, ErrInfeasible
	case statusUnbounded:
		return Solution{}, ErrUnbounded
	case statusTimeout:
		return Solution{}, ErrTimeout
	default:
		return Solution{}, ErrNumerical
	}
}
