package diphosphate

import (
	"math/big"
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

func TestRun_NoListsEverythingOK(t *testing.T) {
	m := model.NewModel()
	require.NoError(t, m.AddReaction(rxn("R1", -1000, 1000, map[string]int64{"ppi_c": -1, "pi_c": 2})))

	res := Run(m, nil, nil)
	assert.Equal(t, verdict.DiphosphateOK, res.Verdicts["R1"])
}

func TestRun_DiphosphateAsProductFlagsIrreversible(t *testing.T) {
	m := model.NewModel()
	require.NoError(t, m.AddReaction(rxn("R1", -1000, 1000, map[string]int64{"pi_c": -2, "ppi_c": 1})))

	res := Run(m, []string{"ppi_c"}, []string{"pi_c"})
	assert.Equal(t, verdict.DiphosphateIrrev, res.Verdicts["R1"])
}

func TestRun_DiphosphateAsReactantFlagsFlipIrreversible(t *testing.T) {
	m := model.NewModel()
	require.NoError(t, m.AddReaction(rxn("R1", -1000, 1000, map[string]int64{"ppi_c": -1, "pi_c": 2})))

	res := Run(m, []string{"ppi_c"}, []string{"pi_c"})
	assert.Equal(t, verdict.DiphosphateFlipIrre, res.Verdicts["R1"])
}

func TestRun_IrreversibleReactionAlwaysOK(t *testing.T) {
	m := model.NewModel()
	require.NoError(t, m.AddReaction(rxn("R1", 0, 1000, map[string]int64{"ppi_c": -1, "pi_c": 2})))

	res := Run(m, []string{"ppi_c"}, []string{"pi_c"})
	assert.Equal(t, verdict.DiphosphateOK, res.Verdicts["R1"])
}

func TestRun_PlainTransportExempted(t *testing.T) {
	m := model.NewModel()
	require.NoError(t, m.AddReaction(rxn("TRANSPORT", -1000, 1000, map[string]int64{"ppi_c": -1, "ppi_e": 1})))

	res := Run(m, []string{"ppi_c", "ppi_e"}, []string{"pi_c", "pi_e"})
	assert.Equal(t, verdict.DiphosphateOK, res.Verdicts["TRANSPORT"])
}
