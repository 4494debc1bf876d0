// Package duplicate implements the four orthogonal duplicate-reaction
// classifications of the duplicate test (§4.5): exact, direction-normalized,
// coefficient-stripped, and redox-stripped signature equivalence. Each
// classification is computed independently and contributes its own
// verdict column plus symmetric monopartite edges.
package duplicate

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/macaw-go/macaw/model"
	"github.com/macaw-go/macaw/verdict"
)

// RedoxPair is an oxidized/reduced metabolite-ID pair (e.g. NAD/NADH),
// used to strip electron-carrier chemistry before the redox comparison
// (§4.5 classification 4).
type RedoxPair struct {
	Oxidized, Reduced string
}

// Result is the duplicate test's output: the four verdict columns plus
// the union of edges emitted by any classification (§4.5).
type Result struct {
	Exact        map[string]verdict.Duplicate
	Directions   map[string]verdict.Duplicate
	Coefficients map[string]verdict.Duplicate
	Redox        map[string]verdict.Duplicate
	Edges        verdict.EdgeSet
}

// Run evaluates all four duplicate classifications against m. protonIDs
// and redoxPairs are consulted only by the redox classification (§4.5
// classification 4); passing them empty disables it (every reaction "ok").
func Run(m *model.Model, redoxPairs []RedoxPair, protonIDs []string) *Result {
	reactions := m.Reactions()

	res := &Result{
		Exact:        classifyBy(reactions, exactSignature),
		Directions:   classifyByPair(reactions, directionSignature, exactSignature, true),
		Coefficients: classifyByPair(reactions, coefficientSignature, exactSignature, false),
		Edges:        verdict.NewEdgeSet(),
	}
	if len(redoxPairs) > 0 && len(protonIDs) > 0 {
		res.Redox = classifyByRedox(reactions, redoxPairs, protonIDs)
	} else {
		res.Redox = make(map[string]verdict.Duplicate, len(reactions))
		for _, r := range reactions {
			res.Redox[r.ID] = verdict.DuplicateOK
		}
	}

	for _, col := range []map[string]verdict.Duplicate{res.Exact, res.Directions, res.Coefficients, res.Redox} {
		for rID, v := range col {
			if v == verdict.DuplicateOK {
				continue
			}
			for _, sID := range strings.Split(string(v), ";") {
				res.Edges.AddReactionEdge(rID, sID)
			}
		}
	}

	return res
}

// classifyBy groups reactions into equivalence classes by sig, producing
// "ok" for singleton classes and the semicolon-joined sibling list
// otherwise (§4.5).
func classifyBy(reactions []*model.Reaction, sig func(*model.Reaction) string) map[string]verdict.Duplicate {
	classes := make(map[string][]string)
	for _, r := range reactions {
		s := sig(r)
		classes[s] = append(classes[s], r.ID)
	}

	out := make(map[string]verdict.Duplicate, len(reactions))
	for _, members := range classes {
		sort.Strings(members)
		for _, id := range members {
			out[id] = siblingVerdict(id, members)
		}
	}

	return out
}

// classifyByPair groups reactions by loosenSig, then excludes any pair
// that is ALSO equal under exactSig -- the directions and coefficients
// classifications are each defined as duplicates under the looser
// signature whose exact signatures differ (§4.5 classifications 2-3).
func classifyByPair(reactions []*model.Reaction, looseSig, exactSig func(*model.Reaction) string, _ bool) map[string]verdict.Duplicate {
	classes := make(map[string][]string)
	exact := make(map[string]string, len(reactions))
	for _, r := range reactions {
		s := looseSig(r)
		classes[s] = append(classes[s], r.ID)
		exact[r.ID] = exactSig(r)
	}

	out := make(map[string]verdict.Duplicate, len(reactions))
	for _, members := range classes {
		sort.Strings(members)
		for _, id := range members {
			var siblings []string
			for _, other := range members {
				if other == id {
					continue
				}
				if exact[id] == exact[other] {
					continue // exact signatures also match -> not this classification's concern
				}
				siblings = append(siblings, other)
			}
			out[id] = verdict.DuplicateOf(siblings)
		}
	}

	return out
}

func siblingVerdict(id string, members []string) verdict.Duplicate {
	var siblings []string
	for _, m := range members {
		if m != id {
			siblings = append(siblings, m)
		}
	}

	return verdict.DuplicateOf(siblings)
}

// exactSignature is §4.5 classification 1: the frozen multiset of
// (metabolite_id, coefficient) plus reversibility.
func exactSignature(r *model.Reaction) string {
	metIDs := sortedMetIDs(r)
	var b strings.Builder
	for _, met := range metIDs {
		fmt.Fprintf(&b, "%s=%s;", met, r.Stoich[met].RatString())
	}
	fmt.Fprintf(&b, "rev=%t", r.IsReversible())

	return b.String()
}

// directionSignature is §4.5 classification 2: the unsigned multiset of
// (metabolite_id, |coefficient|, reactant-or-product), orientation
// normalized to the direction whose reactant-set sorts lexicographically
// smaller (a stable, arbitrary but consistent canonicalization).
func directionSignature(r *model.Reaction) string {
	metIDs := sortedMetIDs(r)
	flip := !isCanonicalOrientation(r, metIDs)

	var b strings.Builder
	for _, met := range metIDs {
		coef := r.Stoich[met]
		isProduct := coef.Sign() > 0
		if flip {
			isProduct = !isProduct
		}
		fmt.Fprintf(&b, "%s:%s:%t;", met, new(big.Rat).Abs(coef).RatString(), isProduct)
	}

	return b.String()
}

// coefficientSignature is §4.5 classification 3: the set of participating
// metabolite IDs with sign only, magnitudes discarded.
func coefficientSignature(r *model.Reaction) string {
	metIDs := sortedMetIDs(r)
	var b strings.Builder
	for _, met := range metIDs {
		fmt.Fprintf(&b, "%s:%d;", met, r.Stoich[met].Sign())
	}

	return b.String()
}

// classifyByRedox implements §4.5 classification 4: two reactions are
// redox duplicates only if BOTH reference one of the configured redox
// pairs (either member, with any sign), they used DIFFERENT pairs, and the remainder left after
// stripping each one's own pair (plus every proton ID) matches under the
// direction-normalized signature. A reaction that never touches any
// configured pair sits out of this classification entirely ("ok"), and
// two reactions that happen to share a remainder while using the SAME
// pair are not redox duplicates -- that similarity is already exact's or
// direction's concern, not redox-equivalence's.
func classifyByRedox(reactions []*model.Reaction, pairs []RedoxPair, protonIDs []string) map[string]verdict.Duplicate {
	strip := make(map[string]bool, len(protonIDs))
	for _, id := range protonIDs {
		strip[id] = true
	}

	out := make(map[string]verdict.Duplicate, len(reactions))
	for _, r := range reactions {
		out[r.ID] = verdict.DuplicateOK
	}

	type member struct {
		id      string
		pairIdx int
	}
	classes := make(map[string][]member)

	for _, r := range reactions {
		usedPair := redoxPairUsed(r, pairs)
		if usedPair == nil {
			continue
		}
		pairIdx := -1
		for i := range pairs {
			if &pairs[i] == usedPair {
				pairIdx = i

				break
			}
		}

		stripped := &model.Reaction{ID: r.ID, LB: r.LB, UB: r.UB, Stoich: make(map[string]*big.Rat)}
		for met, coef := range r.Stoich {
			if strip[met] || met == usedPair.Oxidized || met == usedPair.Reduced {
				continue
			}
			stripped.Stoich[met] = coef
		}
		remainder := directionSignature(stripped)
		classes[remainder] = append(classes[remainder], member{id: r.ID, pairIdx: pairIdx})
	}

	for _, members := range classes {
		for _, m := range members {
			var siblings []string
			for _, other := range members {
				if other.id == m.id || other.pairIdx == m.pairIdx {
					continue
				}
				siblings = append(siblings, other.id)
			}
			sort.Strings(siblings)
			out[m.id] = verdict.DuplicateOf(siblings)
		}
	}

	return out
}

// redoxPairUsed returns the first RedoxPair (by declaration order) for
// which r references at least one of the two IDs, or nil.
func redoxPairUsed(r *model.Reaction, pairs []RedoxPair) *RedoxPair {
	for i := range pairs {
		p := &pairs[i]
		if _, ok := r.Stoich[p.Oxidized]; ok {
			return p
		}
		if _, ok := r.Stoich[p.Reduced]; ok {
			return p
		}
	}

	return nil
}

func sortedMetIDs(r *model.Reaction) []string {
	ids := make([]string, 0, len(r.Stoich))
	for met := range r.Stoich {
		ids = append(ids, met)
	}
	sort.Strings(ids)

	return ids
}

// isCanonicalOrientation reports whether r's reactant set (negative
// coefficients) already sorts lexicographically smaller than its product
// set -- the canonical direction for directionSignature.
func isCanonicalOrientation(r *model.Reaction, metIDs []string) bool {
	var reactants, products []string
	for _, met := range metIDs {
		if r.Stoich[met].Sign() < 0 {
			reactants = append(reactants, met)
		} else {
			products = append(products, met)
		}
	}

	return strings.Join(reactants, ",") <= strings.Join(products, ",")
}
