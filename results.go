package macaw

import (
	"fmt"
	"sort"
	"strings"

	"github.com/macaw-go/macaw/macawcfg"
	"github.com/macaw-go/macaw/model"
	"github.com/macaw-go/macaw/verdict"
)

// Row is one reaction's entry in the results table (§3, §6 CSV layout).
type Row struct {
	ReactionID         string
	ReactionEquation   string
	DeadEndTest        verdict.DeadEnd
	DilutionTest       verdict.Dilution
	DiphosphateTest    verdict.Diphosphate
	DuplicateExact     verdict.Duplicate
	DuplicateDirection verdict.Duplicate
	DuplicateCoeff     verdict.Duplicate
	DuplicateRedox     verdict.Duplicate
	LoopTest           verdict.Loop
	Pathway            int
}

// ResultsTable is the full joined output of RunAllTests (§3), rows sorted
// by reaction ID ascending for deterministic iteration/serialization.
type ResultsTable struct {
	Rows []Row
}

// reactionEquation renders r's stoichiometry as a human-readable equation
// string, honoring cfg.UseNames (display name vs raw ID) and
// cfg.AddSuffixes (append the metabolite's compartment tag) (§6).
func reactionEquation(m *model.Model, r *model.Reaction, cfg *macawcfg.Config) string {
	metIDs := make([]string, 0, len(r.Stoich))
	for met := range r.Stoich {
		metIDs = append(metIDs, met)
	}
	sort.Strings(metIDs)

	var reactants, products []string
	for _, metID := range metIDs {
		coef := r.Stoich[metID]
		token := metaboliteToken(m, metID, cfg)
		side := &products
		if coef.Sign() < 0 {
			side = &reactants
		}
		*side = append(*side, token)
	}

	arrow := "->"
	if r.IsReversible() {
		arrow = "<->"
	}

	return fmt.Sprintf("%s %s %s", strings.Join(reactants, " + "), arrow, strings.Join(products, " + "))
}

func metaboliteToken(m *model.Model, metID string, cfg *macawcfg.Config) string {
	token := metID
	if cfg.UseNames {
		if met, err := m.Metabolite(metID); err == nil && met.Name != "" {
			token = met.Name
		}
	}
	if cfg.AddSuffixes {
		if met, err := m.Metabolite(metID); err == nil && met.Compartment != "" {
			token = token + "_" + met.Compartment
		}
	}

	return token
}
