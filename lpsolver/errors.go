// Package lpsolver wraps an external LP solver behind three primitives —
// CanCarryFlux, BlockedSet, and FluxSample (§4.1) — plus a timeout
// decorator (WithTimeout) and a retry helper (Retry) that the dilution
// test's watchdog is built on (§4.3, §5).
//
// The LP solver itself is explicitly out of scope (§1): this package
// defines the Solver interface production code injects a real backend
// (GLPK/HiGHS/CPLEX) through, and ships one reference implementation,
// FakeSolver, a small bounded-variable Big-M simplex good enough to drive
// this package's own tests and the end-to-end scenarios in §8 — the same
// role flow.Dinic/EdmondsKarp/FordFulkerson play for max-flow in the
// teacher package: concrete strategies behind one documented contract.
package lpsolver

import "errors"

// Sentinel errors, grounded on flow.ErrSourceNotFound/ErrSinkNotFound's
// %w-wrapped sentinel style and the retrieved solver.go reference's
// ErrTimeout/ErrContextCanceled naming (§7's error-kind taxonomy).
var (
	// ErrInfeasible indicates the LP has no feasible solution.
	ErrInfeasible = errors.New("lpsolver: infeasible")

	// ErrUnbounded indicates the LP's objective is unbounded.
	ErrUnbounded = errors.New("lpsolver: unbounded")

	// ErrNumerical indicates the solver could not converge numerically.
	ErrNumerical = errors.New("lpsolver: numerical error")

	// ErrTimeout indicates the solve exceeded its allotted time.
	ErrTimeout = errors.New("lpsolver: timeout")

	// ErrReactionNotFound indicates an objective/query reaction absent from
	// the model passed to Solve.
	ErrReactionNotFound = errors.New("lpsolver: reaction not found")
)
