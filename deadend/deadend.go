// Package deadend implements the structural (no-LP) dead-end test (§4.2):
// a graph walk over the stoichiometric bipartite graph that finds
// metabolites only ever producible or only ever consumable, and the
// reactions that require them.
//
// The walk is adapted from the teacher's bfs/dfs walker shape, run to a
// fixpoint rather than a single pass: a reaction forced to zero because
// it requires a dead-end metabolite removes its own contribution to every
// metabolite it touches, which can turn its OTHER metabolites into dead
// ends in turn. Rounds repeat until neither the dead-end metabolite set
// nor the forced-zero reaction set grows any further, so an unsourced
// chain of reactions is flagged end to end, not just its two ends (§8
// scenario S1).
//
// Failure semantics: deterministic, cannot fail (§4.2).
package deadend

import (
	"sort"

	"github.com/macaw-go/macaw/model"
	"github.com/macaw-go/macaw/verdict"
)

// Result is the dead-end test's output: a verdict per reaction plus the
// bipartite metabolite<->reaction edges it emitted (§3).
type Result struct {
	Verdicts map[string]verdict.DeadEnd
	Edges    verdict.EdgeSet
}

// sign is -1, 0, or +1.
func sign(f float64) int {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return 0
	}
}

// directions returns the permitted flux directions for a reaction's own
// bounds: +1 if ub>0, -1 if lb<0 (§4.2 point 1).
func directions(r *model.Reaction) []int {
	var dirs []int
	if r.UB > 0 {
		dirs = append(dirs, 1)
	}
	if r.LB < 0 {
		dirs = append(dirs, -1)
	}

	return dirs
}

// signSet computes, for metabolite metID, the set of sign(coef*dir) values
// contributed by every reaction participating in it except excludeID (pass
// "" to include all reactions). active gates out reactions already
// removed by the dead-end cascade (nil means every reaction is active).
func signSet(m *model.Model, metID, excludeID string, active map[string]bool) map[int]bool {
	set := make(map[int]bool)
	rxnIDs, err := m.ParticipatingReactions(metID)
	if err != nil {
		return set
	}
	for _, rid := range rxnIDs {
		if rid == excludeID {
			continue
		}
		if active != nil && !active[rid] {
			continue
		}
		r, err := m.Reaction(rid)
		if err != nil {
			continue
		}
		coefRat, ok := r.Stoich[metID]
		if !ok {
			continue
		}
		coef, _ := coefRat.Float64()
		for _, d := range directions(r) {
			if s := sign(coef * float64(d)); s != 0 {
				set[s] = true
			}
		}
	}

	return set
}

func isSingleton(set map[int]bool) (int, bool) {
	if len(set) != 1 {
		return 0, false
	}
	for s := range set {
		return s, true
	}

	return 0, false
}

// Run evaluates the dead-end test against m. It cannot fail (§4.2).
func Run(m *model.Model) *Result {
	res := &Result{
		Verdicts: make(map[string]verdict.DeadEnd),
		Edges:    verdict.NewEdgeSet(),
	}

	// active tracks reactions still considered capable of carrying flux;
	// an irreversible reaction leaves this set for good once it is forced
	// to zero by a dead-end metabolite it requires. deadMet tracks every
	// metabolite ever found strictly one-sided, which only grows as
	// reactions are removed from active.
	active := make(map[string]bool, len(m.Reactions()))
	for _, r := range m.Reactions() {
		active[r.ID] = true
	}
	deadMet := make(map[string]bool)

	for {
		changed := false

		for _, met := range m.Metabolites() {
			if deadMet[met.ID] {
				continue
			}
			if _, ok := isSingleton(signSet(m, met.ID, "", active)); ok {
				deadMet[met.ID] = true
				changed = true
			}
		}

		for _, r := range m.Reactions() {
			if r.IsReversible() || !active[r.ID] {
				continue
			}
			for met := range r.Stoich {
				if deadMet[met] {
					active[r.ID] = false
					changed = true

					break
				}
			}
		}

		if !changed {
			break
		}
	}

	for _, r := range m.Reactions() {
		met2coef := r.StoichFloat()
		metIDs := make([]string, 0, len(met2coef))
		for met := range met2coef {
			metIDs = append(metIDs, met)
		}
		sort.Strings(metIDs)

		switch {
		case r.IsReversible():
			res.Verdicts[r.ID] = evalReversible(m, r, metIDs, res.Edges)
		case !active[r.ID]:
			var offending []string
			for _, met := range metIDs {
				if deadMet[met] {
					offending = append(offending, met)
					res.Edges.AddMetaboliteEdge(r.ID, met)
				}
			}
			res.Verdicts[r.ID] = verdict.DeadEndMetabolites(offending)
		default:
			res.Verdicts[r.ID] = verdict.DeadEndOK
		}
	}

	return res
}

// evalReversible implements §4.2 point 3: a reversible reaction is
// restricted to one direction when some metabolite it touches is strictly
// one-sided across the *other* reactions participating in it. This rule
// does not cascade (§4.2 point 3 is a static per-reaction restriction,
// unlike the irreversible branch's round-based fixpoint).
func evalReversible(m *model.Model, r *model.Reaction, metIDs []string, edges verdict.EdgeSet) verdict.DeadEnd {
	requiredDir := 0
	var restrictingMets []string
	for _, met := range metIDs {
		otherSet, ok := isSingleton(signSet(m, met, r.ID, nil))
		if !ok {
			continue
		}
		coef := r.StoichFloat()[met]
		// otherSet==+1 (others only produce m): r must consume -> sign(coef*d)==-1.
		// otherSet==-1 (others only consume m): r must produce -> sign(coef*d)==+1.
		wantSign := -otherSet
		var dir int
		switch {
		case coef > 0 && wantSign == 1:
			dir = 1
		case coef > 0 && wantSign == -1:
			dir = -1
		case coef < 0 && wantSign == 1:
			dir = -1
		case coef < 0 && wantSign == -1:
			dir = 1
		default:
			continue
		}
		if requiredDir == 0 {
			requiredDir = dir
		}
		if dir == requiredDir {
			restrictingMets = append(restrictingMets, met)
		}
	}
	if requiredDir == 0 || len(restrictingMets) == 0 {
		return verdict.DeadEndOK
	}
	for _, met := range restrictingMets {
		edges.AddMetaboliteEdge(r.ID, met)
	}
	if requiredDir == 1 {
		return verdict.DeadEndForward
	}

	return verdict.DeadEndBackward
}
