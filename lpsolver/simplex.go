package lpsolver

import (
	"context"
	"math"
)

// bigM is the Big-M penalty applied to artificial variables: large enough
// to dominate any feasible objective value for the flux magnitudes this
// package clamps to (LargeBound), small enough to stay inside float64
// precision headroom.
const bigM = 1e9

// maxSimplexIterations bounds pivot count; exceeding it is reported as a
// numerical failure (§7 SolverNumerical) rather than looping forever.
const maxSimplexIterations = 20000

// simplexStatus is the outcome of one simplex solve.
type simplexStatus int

const (
	statusOptimal simplexStatus = iota
	statusInfeasible
	statusUnbounded
	statusNumerical
	statusTimeout
)

// solveBounded maximizes (or minimizes) objective^T x subject to p's
// equality rows and per-variable [lb,ub] bounds, via a dense single-phase
// Big-M simplex over shifted, explicitly upper-bounded variables:
//
//	y_i = x_i - lb_i            (y_i >= 0)
//	y_i + s_i = ub_i - lb_i     (s_i >= 0, realizes the upper bound as a row)
//
// This keeps the pivoting rule to the textbook equality-constraint method
// (no bounded-variable ratio-test variant needed), at the cost of doubling
// the variable count — acceptable for the small per-metabolite/per-reaction
// LPs MACAW's tests build (§1: the LP solver itself is an external
// collaborator; this is a reference backend, not a production solver).
func solveBounded(ctx context.Context, p *lpProblem, objective []float64, maximize bool) ([]float64, float64, simplexStatus) {
	n := len(p.vars)
	shiftRHS := make([]float64, len(p.rhs))
	copy(shiftRHS, p.rhs)
	for ri, row := range p.rows {
		for vi, coef := range row {
			if coef != 0 {
				shiftRHS[ri] -= coef * p.lb[vi]
			}
		}
	}

	// Build extended rows: original vars (y) + one slack per var (s) for
	// the upper-bound rows, + artificial placeholders added below.
	numEq := len(p.rows) + n // +n upper-bound rows
	width := 2 * n            // y_i, s_i
	rows := make([][]float64, numEq)
	rhs := make([]float64, numEq)
	for ri, row := range p.rows {
		r := make([]float64, width)
		copy(r, row)
		rows[ri] = r
		rhs[ri] = shiftRHS[ri]
	}
	for i := 0; i < n; i++ {
		r := make([]float64, width)
		r[i] = 1
		r[n+i] = 1
		rows[len(p.rows)+i] = r
		rhs[len(p.rows)+i] = p.ub[i] - p.lb[i]
	}

	// Normalize so every rhs is >= 0 (flip row sign otherwise).
	for ri := range rows {
		if rhs[ri] < 0 {
			rhs[ri] = -rhs[ri]
			for vi := range rows[ri] {
				rows[ri][vi] = -rows[ri][vi]
			}
		}
	}

	// Append one artificial variable per row.
	totalVars := width + numEq
	for ri := range rows {
		full := make([]float64, totalVars)
		copy(full, rows[ri])
		full[width+ri] = 1
		rows[ri] = full
	}

	// Objective: maximize c^T y - M * sum(artificials). Internally always
	// maximize; for a minimize request, negate the supplied objective.
	c := make([]float64, totalVars)
	for i := 0; i < n; i++ {
		coef := objective[i]
		if !maximize {
			coef = -coef
		}
		c[i] = coef
	}
	for ri := 0; ri < numEq; ri++ {
		c[width+ri] = -bigM
	}

	basis := make([]int, numEq)
	for ri := range basis {
		basis[ri] = width + ri
	}

	status := runSimplex(ctx, rows, rhs, c, basis, totalVars)
	if status != statusOptimal {
		return nil, 0, status
	}

	// Check artificials are all zero (feasibility).
	for ri, b := range basis {
		if b >= width && rhs[ri] > 1e-6 {
			return nil, 0, statusInfeasible
		}
	}

	yVals := make([]float64, width)
	for ri, b := range basis {
		if b < width {
			yVals[b] = rhs[ri]
		}
	}

	x := make([]float64, n)
	obj := 0.0
	for i := 0; i < n; i++ {
		x[i] = yVals[i] + p.lb[i]
		obj += objective[i] * x[i]
	}

	return x, obj, statusOptimal
}

// runSimplex performs dense tableau pivoting with Bland's rule (smallest
// index on both entering and leaving variable selection) to avoid cycling,
// checking ctx between iterations so callers can enforce a wall-clock
// timeout (§5).
func runSimplex(ctx context.Context, rows [][]float64, rhs []float64, c []float64, basis []int, totalVars int) simplexStatus {
	numEq := len(rows)
	zRow := make([]float64, totalVars)
	copy(zRow, c)
	// Reduce the objective row against the initial (artificial) basis.
	for ri := 0; ri < numEq; ri++ {
		coef := zRow[basis[ri]]
		if coef == 0 {
			continue
		}
		for vi := 0; vi < totalVars; vi++ {
			zRow[vi] -= coef * rows[ri][vi]
		}
	}

	for iter := 0; iter < maxSimplexIterations; iter++ {
		select {
		case <-ctx.Done():
			return statusTimeout
		default:
		}

		// Entering variable: first index with positive reduced cost (we
		// are maximizing, so improve while zRow[vi] > 0).
		enter := -1
		for vi := 0; vi < totalVars; vi++ {
			if zRow[vi] > 1e-9 {
				enter = vi
				break
			}
		}
		if enter == -1 {
			return statusOptimal
		}

		// Leaving variable: minimum ratio test, ties broken by smallest basis index.
		leave := -1
		best := math.Inf(1)
		for ri := 0; ri < numEq; ri++ {
			a := rows[ri][enter]
			if a <= 1e-9 {
				continue
			}
			ratio := rhs[ri] / a
			if ratio < best-1e-9 || (ratio < best+1e-9 && (leave == -1 || basis[ri] < basis[leave])) {
				best = ratio
				leave = ri
			}
		}
		if leave == -1 {
			return statusUnbounded
		}

		// Pivot on (leave, enter).
		pivot := rows[leave][enter]
		for vi := 0; vi < totalVars; vi++ {
			rows[leave][vi] /= pivot
		}
		rhs[leave] /= pivot
		for ri := 0; ri < numEq; ri++ {
			if ri == leave {
				continue
			}
			factor := rows[ri][enter]
			if factor == 0 {
				continue
			}
			for vi := 0; vi < totalVars; vi++ {
				rows[ri][vi] -= factor * rows[leave][vi]
			}
			rhs[ri] -= factor * rhs[leave]
		}
		factor := zRow[enter]
		if factor != 0 {
			for vi := 0; vi < totalVars; vi++ {
				zRow[vi] -= factor * rows[leave][vi]
			}
		}
		basis[leave] = enter
	}

	return statusNumerical
}
