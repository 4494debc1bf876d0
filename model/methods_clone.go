// File: methods_clone.go
// Role: Clone-on-write working copies, directly descended from
//       core.Graph.Clone/CloneEmpty in the teacher package: every test
//       mutates a clone's bounds, reactions, and constraints, and the
//       original Model is never touched (§4.1, §9 "Mutation-by-clone").
package model

import "math/big"

// CloneEmpty returns a Model with identical metabolites but no reactions,
// objective, or constraints.
//
// Complexity: O(M) where M = number of metabolites.
func (m *Model) CloneEmpty() *Model {
	m.muMet.RLock()
	defer m.muMet.RUnlock()

	clone := NewModel()
	for id, met := range m.metabolites {
		clone.metabolites[id] = &Metabolite{
			ID: met.ID, Name: met.Name, Compartment: met.Compartment, Metadata: met.Metadata,
		}
		clone.participation[id] = make(map[string]struct{})
	}

	return clone
}

// Clone returns a deep copy: metabolites, reactions (with independently
// owned big.Rat stoichiometry so a clone's later mutations never alias the
// source's), objective, and constraints.
//
// Complexity: O(M + R + S) where S = total stoichiometric nonzeros.
func (m *Model) Clone() *Model {
	clone := m.CloneEmpty()

	m.muRxn.RLock()
	defer m.muRxn.RUnlock()

	for id, r := range m.reactions {
		stoich := make(map[string]*big.Rat, len(r.Stoich))
		for met, coef := range r.Stoich {
			stoich[met] = new(big.Rat).Set(coef)
		}
		nr := &Reaction{
			ID: r.ID, Equation: r.Equation, Stoich: stoich,
			LB: r.LB, UB: r.UB, GeneRule: r.GeneRule,
		}
		clone.reactions[id] = nr
		for met := range stoich {
			if _, ok := clone.metabolites[met]; !ok {
				clone.metabolites[met] = &Metabolite{ID: met}
			}
			if _, ok := clone.participation[met]; !ok {
				clone.participation[met] = make(map[string]struct{})
			}
			clone.participation[met][id] = struct{}{}
		}
	}
	for id, coef := range m.objective {
		clone.objective[id] = coef
	}
	for id, c := range m.constraints {
		coeffs := make(map[string]float64, len(c.Coeffs))
		for k, v := range c.Coeffs {
			coeffs[k] = v
		}
		clone.constraints[id] = &Constraint{ID: c.ID, Coeffs: coeffs, Sense: c.Sense, RHS: c.RHS}
	}

	return clone
}
