package duplicate

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macaw-go/macaw/model"
	"github.com/macaw-go/macaw/verdict"
)

func rxn(id string, lb, ub float64, stoich map[string]int64) *model.Reaction {
	s := make(map[string]*big.Rat, len(stoich))
	for met, coef := range stoich {
		s[met] = big.NewRat(coef, 1)
	}

	return &model.Reaction{ID: id, Stoich: s, LB: lb, UB: ub}
}

// S3: two reactions with identical stoichiometry and identical
// reversibility are exact duplicates of one another.
func TestRun_ExactDuplicatesFlagged(t *testing.T) {
	m := model.NewModel()
	require.NoError(t, m.AddReaction(rxn("R1", 0, 1000, map[string]int64{"A": -1, "B": 1})))
	require.NoError(t, m.AddReaction(rxn("R2", 0, 1000, map[string]int64{"A": -1, "B": 1})))
	require.NoError(t, m.AddReaction(rxn("R3", 0, 1000, map[string]int64{"A": -1, "C": 1})))

	res := Run(m, nil, nil)
	assert.Equal(t, verdict.Duplicate("R2"), res.Exact["R1"])
	assert.Equal(t, verdict.Duplicate("R1"), res.Exact["R2"])
	assert.Equal(t, verdict.DuplicateOK, res.Exact["R3"])
	assert.NotEmpty(t, res.Edges.Slice())
}

// Same chemistry, opposite direction/reversibility: not an exact duplicate,
// but a direction-duplicate.
func TestRun_DirectionDuplicateNotExact(t *testing.T) {
	m := model.NewModel()
	require.NoError(t, m.AddReaction(rxn("R1", 0, 1000, map[string]int64{"A": -1, "B": 1})))
	require.NoError(t, m.AddReaction(rxn("R2", -1000, 0, map[string]int64{"A": 1, "B": -1})))

	res := Run(m, nil, nil)
	assert.Equal(t, verdict.DuplicateOK, res.Exact["R1"])
	assert.Equal(t, verdict.DuplicateOK, res.Exact["R2"])
	assert.Equal(t, verdict.Duplicate("R2"), res.Directions["R1"])
	assert.Equal(t, verdict.Duplicate("R1"), res.Directions["R2"])
}

// Same participating metabolites and signs, but different magnitudes:
// a coefficient-duplicate, not exact or direction.
func TestRun_CoefficientDuplicateDifferentMagnitudes(t *testing.T) {
	m := model.NewModel()
	require.NoError(t, m.AddReaction(rxn("R1", 0, 1000, map[string]int64{"A": -1, "B": 1})))
	require.NoError(t, m.AddReaction(rxn("R2", 0, 1000, map[string]int64{"A": -2, "B": 2})))

	res := Run(m, nil, nil)
	assert.Equal(t, verdict.DuplicateOK, res.Exact["R1"])
	assert.Equal(t, verdict.DuplicateOK, res.Directions["R1"])
	assert.Equal(t, verdict.Duplicate("R2"), res.Coefficients["R1"])
	assert.Equal(t, verdict.Duplicate("R1"), res.Coefficients["R2"])
}

// S4: two reactions doing the same chemistry via different electron
// carriers (NAD vs NADP) are redox duplicates once both pairs are
// stripped, even though their raw exact signatures differ.
func TestRun_RedoxDuplicateAcrossCarriers(t *testing.T) {
	m := model.NewModel()
	require.NoError(t, m.AddReaction(rxn("R1", 0, 1000, map[string]int64{
		"A": -1, "B": 1, "nad_c": -1, "nadh_c": 1, "h_c": 1,
	})))
	require.NoError(t, m.AddReaction(rxn("R2", 0, 1000, map[string]int64{
		"A": -1, "B": 1, "nadp_c": -1, "nadph_c": 1, "h_c": 1,
	})))

	pairs := []RedoxPair{
		{Oxidized: "nad_c", Reduced: "nadh_c"},
		{Oxidized: "nadp_c", Reduced: "nadph_c"},
	}
	res := Run(m, pairs, []string{"h_c"})
	assert.Equal(t, verdict.DuplicateOK, res.Exact["R1"])
	assert.Equal(t, verdict.Duplicate("R2"), res.Redox["R1"])
	assert.Equal(t, verdict.Duplicate("R1"), res.Redox["R2"])
}

// Two exact duplicates that never touch any configured redox pair must
// stay "ok" in the redox column even with redox config active: neither
// references a pair, so classification 4's precondition never fires.
func TestRun_PlainDuplicateNotFlaggedAsRedoxWithoutPairUsage(t *testing.T) {
	m := model.NewModel()
	require.NoError(t, m.AddReaction(rxn("R1", 0, 1000, map[string]int64{"A": -1, "B": 1})))
	require.NoError(t, m.AddReaction(rxn("R2", 0, 1000, map[string]int64{"A": -1, "B": 1})))

	pairs := []RedoxPair{{Oxidized: "nad_c", Reduced: "nadh_c"}}
	res := Run(m, pairs, []string{"h_c"})
	assert.Equal(t, verdict.Duplicate("R2"), res.Exact["R1"])
	assert.Equal(t, verdict.DuplicateOK, res.Redox["R1"])
	assert.Equal(t, verdict.DuplicateOK, res.Redox["R2"])
}

// Two reactions that both consumed the SAME redox pair, with matching
// remainders, are not redox duplicates of each other under classification
// 4 -- that classification is specifically for reactions that used
// DIFFERENT pairs; same-pair matches are exact/direction's concern.
func TestRun_SameRedoxPairNotFlaggedAsRedoxDuplicate(t *testing.T) {
	m := model.NewModel()
	require.NoError(t, m.AddReaction(rxn("R1", 0, 1000, map[string]int64{
		"A": -1, "B": 1, "nad_c": -1, "nadh_c": 1, "h_c": 1,
	})))
	require.NoError(t, m.AddReaction(rxn("R2", 0, 1000, map[string]int64{
		"A": -1, "B": 1, "nad_c": -1, "nadh_c": 1, "h_c": 1,
	})))

	pairs := []RedoxPair{{Oxidized: "nad_c", Reduced: "nadh_c"}}
	res := Run(m, pairs, []string{"h_c"})
	assert.Equal(t, verdict.DuplicateOK, res.Redox["R1"])
	assert.Equal(t, verdict.DuplicateOK, res.Redox["R2"])
}

// Reactions sharing no classification at all stay "ok" on every column.
func TestRun_UnrelatedReactionsAllOK(t *testing.T) {
	m := model.NewModel()
	require.NoError(t, m.AddReaction(rxn("R1", 0, 1000, map[string]int64{"A": -1, "B": 1})))
	require.NoError(t, m.AddReaction(rxn("R2", 0, 1000, map[string]int64{"C": -1, "D": 1})))

	res := Run(m, nil, nil)
	assert.Equal(t, verdict.DuplicateOK, res.Exact["R1"])
	assert.Equal(t, verdict.DuplicateOK, res.Directions["R1"])
	assert.Equal(t, verdict.DuplicateOK, res.Coefficients["R1"])
	assert.Equal(t, verdict.DuplicateOK, res.Redox["R1"])
	assert.Empty(t, res.Edges.Slice())
}

// Symmetry property (§8): if r is flagged against s on any column, s must
// be flagged against r on that same column.
func TestRun_EdgesAreSymmetric(t *testing.T) {
	m := model.NewModel()
	require.NoError(t, m.AddReaction(rxn("R1", 0, 1000, map[string]int64{"A": -1, "B": 1})))
	require.NoError(t, m.AddReaction(rxn("R2", 0, 1000, map[string]int64{"A": -1, "B": 1})))

	res := Run(m, nil, nil)
	for _, e := range res.Edges.Slice() {
		assert.Equal(t, e, e.Canon())
	}
	for _, col := range []map[string]verdict.Duplicate{res.Exact, res.Directions, res.Coefficients, res.Redox} {
		for rID, v := range col {
			if v == verdict.DuplicateOK {
				continue
			}
			for _, sID := range strings.Split(string(v), ";") {
				assert.Contains(t, strings.Split(string(col[sID]), ";"), rID)
			}
		}
	}
}
