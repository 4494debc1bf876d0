package lpsolver

import (
	"context"
	"time"

	"github.com/macaw-go/macaw/model"
)

// timeoutSolver decorates a Solver with a per-call wall-clock timeout,
// satisfying §4.1's "wrap an external LP solver with a timeout/retry
// wrapper" and §5's per-call-timeout requirement.
type timeoutSolver struct {
	inner   Solver
	timeout time.Duration
}

// WithTimeout wraps solver so every Solve/Sample call is bounded by
// timeout; on expiry the call returns ErrTimeout.
func WithTimeout(solver Solver, timeout time.Duration) Solver {
	return &timeoutSolver{inner: solver, timeout: timeout}
}

func (t *timeoutSolver) Solve(ctx context.Context, m *model.Model, maximize bool, objective string) (Solution, error) {
	cctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	sol, err := t.inner.Solve(cctx, m, maximize, objective)
	if err != nil && cctx.Err() != nil {
		return Solution{}, ErrTimeout
	}

	return sol, err
}

func (t *timeoutSolver) Sample(ctx context.Context, m *model.Model, n int) ([]Solution, error) {
	cctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	sols, err := t.inner.Sample(cctx, m, n)
	if err != nil && cctx.Err() != nil {
		return nil, ErrTimeout
	}

	return sols, err
}

// Retry invokes fn up to attempts times, stopping early on success or on
// any error other than ErrTimeout. The dilution test (§4.3) builds its
// per-metabolite retry budget on it; the loop test does not retry.
func Retry(attempts int, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil {
			return nil
		}
		if err != ErrTimeout {
			return err
		}
	}

	return err
}
