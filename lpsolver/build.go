package lpsolver

import (
	"sort"

	"github.com/macaw-go/macaw/model"
)

// LargeBound stands in for +/-Inf bounds when building the dense tableau:
// the bounded-variable simplex needs a finite range per variable. 1e6 is
// comfortably larger than any flux magnitude arising in a steady-state
// GSMM (conventional FBA bounds are typically within +/-1000), matching
// the convention used throughout the dilution test's dilution reaction
// bounds of [0, +Inf) (§4.3 step 3).
const LargeBound = 1e6

// lpProblem is the dense standard-form tableau MACAW's simplex consumes:
// variables x with bounds [lb,ub], equality rows A x = b.
type lpProblem struct {
	vars []string
	lb   []float64
	ub   []float64
	rows [][]float64
	rhs  []float64
}

// buildLP lowers a model.Model into standard form: one equality row per
// metabolite (mass balance S*v=0) plus one row per added Constraint,
// inequality constraints realized via a nonnegative slack column.
func buildLP(m *model.Model) (*lpProblem, error) {
	reactions := m.Reactions()
	varIndex := make(map[string]int, len(reactions))
	p := &lpProblem{}
	for i, r := range reactions {
		varIndex[r.ID] = i
		lb, ub := r.LB, r.UB
		if lb < -LargeBound {
			lb = -LargeBound
		}
		if ub > LargeBound {
			ub = LargeBound
		}
		p.vars = append(p.vars, r.ID)
		p.lb = append(p.lb, lb)
		p.ub = append(p.ub, ub)
	}

	metabolites := m.Metabolites()
	sort.Slice(metabolites, func(i, j int) bool { return metabolites[i].ID < metabolites[j].ID })
	for _, met := range metabolites {
		row := make([]float64, len(p.vars))
		nonzero := false
		rxns, err := m.ParticipatingReactions(met.ID)
		if err != nil {
			return nil, err
		}
		for _, rid := range rxns {
			r, err := m.Reaction(rid)
			if err != nil {
				return nil, err
			}
			coef, ok := r.Stoich[met.ID]
			if !ok {
				continue
			}
			f, _ := coef.Float64()
			row[varIndex[rid]] = f
			nonzero = true
		}
		if nonzero {
			p.rows = append(p.rows, row)
			p.rhs = append(p.rhs, 0)
		}
	}

	for _, c := range m.Constraints() {
		row := make([]float64, len(p.vars))
		for rid, coef := range c.Coeffs {
			idx, ok := varIndex[rid]
			if !ok {
				return nil, ErrReactionNotFound
			}
			row[idx] = coef
		}
		switch c.Sense {
		case model.SenseEQ:
			p.rows = append(p.rows, row)
			p.rhs = append(p.rhs, c.RHS)
		case model.SenseLE, model.SenseGE:
			slackCoef := 1.0
			slackLB, slackUB := 0.0, LargeBound
			if c.Sense == model.SenseGE {
				slackCoef = -1.0
			}
			row = append(row, slackCoef)
			p.vars = append(p.vars, "_slack_"+c.ID)
			p.lb = append(p.lb, slackLB)
			p.ub = append(p.ub, slackUB)
			for i := range p.rows {
				p.rows[i] = append(p.rows[i], 0)
			}
			p.rows = append(p.rows, row)
			p.rhs = append(p.rhs, c.RHS)
		}
	}

	for i := range p.rows {
		for len(p.rows[i]) < len(p.vars) {
			p.rows[i] = append(p.rows[i], 0)
		}
	}

	return p, nil
}

func (p *lpProblem) index(varID string) (int, bool) {
	for i, v := range p.vars {
		if v == varID {
			return i, true
		}
	}

	return 0, false
}
