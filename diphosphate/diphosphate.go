// Package diphosphate implements the diphosphate test (§4.4): a pure
// rule-based check, no LP, no traversal, no edges. A reversible reaction
// that both touches a diphosphate metabolite and isn't a plain
// compartment-to-compartment transport of that same diphosphate should be
// made irreversible in the thermodynamically favored direction.
package diphosphate

import (
	"github.com/macaw-go/macaw/model"
	"github.com/macaw-go/macaw/verdict"
)

// Result is the diphosphate test's output: a verdict per reaction, no
// edges (§4.4).
type Result struct {
	Verdicts map[string]verdict.Diphosphate
}

// Run evaluates the diphosphate test against m. diphosphateIDs and
// monophosphateIDs are the curated metabolite-ID lists (§4.4 input); if
// either is empty every verdict is "ok".
func Run(m *model.Model, diphosphateIDs, monophosphateIDs []string) *Result {
	res := &Result{Verdicts: make(map[string]verdict.Diphosphate)}

	diphosphate := toSet(diphosphateIDs)
	monophosphate := toSet(monophosphateIDs)

	for _, r := range m.Reactions() {
		res.Verdicts[r.ID] = verdict.DiphosphateOK
		if len(diphosphate) == 0 || len(monophosphate) == 0 {
			continue
		}
		if !r.IsReversible() {
			continue
		}

		touchesDiphosphate := false
		for met := range r.Stoich {
			if diphosphate[met] {
				touchesDiphosphate = true

				break
			}
		}
		if !touchesDiphosphate || isDiphosphateTransport(r, diphosphate) {
			continue
		}

		res.Verdicts[r.ID] = classify(r, diphosphate)
	}

	return res
}

// isDiphosphateTransport reports whether r's entire stoichiometry is
// exactly two metabolites, both in the diphosphate set, one consumed and
// the other produced -- a plain transport reaction, exempted from the rule
// (§4.4 condition b). The two IDs are not compared by compartment tag or
// base ID.
func isDiphosphateTransport(r *model.Reaction, diphosphate map[string]bool) bool {
	if len(r.Stoich) != 2 {
		return false
	}
	consumed, produced := false, false
	for met, coef := range r.Stoich {
		if !diphosphate[met] {
			return false
		}
		switch coef.Sign() {
		case -1:
			consumed = true
		case 1:
			produced = true
		}
	}

	return consumed && produced
}

// classify implements §4.4's direction rule: diphosphate as a product
// means the reaction is already written in the favored direction and
// only needs to be made irreversible; diphosphate only as a reactant
// means it is written backwards and must be flipped and made irreversible.
func classify(r *model.Reaction, diphosphate map[string]bool) verdict.Diphosphate {
	appearsAsProduct := false
	appearsAsReactant := false
	for met, coef := range r.Stoich {
		if !diphosphate[met] {
			continue
		}
		if coef.Sign() > 0 {
			appearsAsProduct = true
		} else if coef.Sign() < 0 {
			appearsAsReactant = true
		}
	}

	switch {
	case appearsAsProduct:
		return verdict.DiphosphateIrrev
	case appearsAsReactant:
		return verdict.DiphosphateFlipIrre
	default:
		return verdict.DiphosphateOK
	}
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}

	return set
}
