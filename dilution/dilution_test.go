package dilution

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macaw-go/macaw/lpsolver"
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

// S1: a normal linear chain with open exchanges stays "ok" under dilution
// -- every metabolite has a genuine source, so the coupling constraint
// never binds.
func TestRun_LinearChainAllOK(t *testing.T) {
	m := model.NewModel()
	require.NoError(t, m.AddReaction(rxn("EX_A", -1000, 1000, map[string]int64{"A": -1})))
	require.NoError(t, m.AddReaction(rxn("R1", 0, 1000, map[string]int64{"A": -1, "B": 1})))
	require.NoError(t, m.AddReaction(rxn("R2", 0, 1000, map[string]int64{"B": -1, "C": 1})))
	require.NoError(t, m.AddReaction(rxn("EX_C", -1000, 1000, map[string]int64{"C": -1})))

	res, err := Run(context.Background(), &lpsolver.FakeSolver{}, m)
	require.NoError(t, err)
	assert.Equal(t, verdict.DilutionOK, res.Verdicts["R1"])
	assert.Equal(t, verdict.DilutionOK, res.Verdicts["R2"])
}

// S6: a two-reaction internal cycle (A->B->A) with no exchange touching
// either metabolite has no genuine net source -- imposing a dilution sink
// on A also pins B's own untouched mass balance to R1=R2, which forces
// the dilution flux itself to zero and, via the coupling constraint,
// forces both reaction fluxes to zero too.
func TestRun_PureRecycleBlockedByDilution(t *testing.T) {
	m := model.NewModel()
	require.NoError(t, m.AddReaction(rxn("R1", 0, 1000, map[string]int64{"A": -1, "B": 1})))
	require.NoError(t, m.AddReaction(rxn("R2", 0, 1000, map[string]int64{"B": -1, "A": 1})))

	res, err := Run(context.Background(), &lpsolver.FakeSolver{}, m)
	require.NoError(t, err)
	assert.Equal(t, verdict.DilutionBlocked, res.Verdicts["R1"])
	assert.Equal(t, verdict.DilutionBlocked, res.Verdicts["R2"])
	assert.NotEmpty(t, res.Edges.Slice())
}

// A reaction forced to carry flux (lb>0) with no balancing partner is
// infeasible even without any dilution constraint -- "always blocked".
func TestRun_AlwaysBlocked(t *testing.T) {
	m := model.NewModel()
	require.NoError(t, m.AddReaction(rxn("R1", 1, 1000, map[string]int64{"A": -1, "B": 1})))

	res, err := Run(context.Background(), &lpsolver.FakeSolver{}, m)
	require.NoError(t, err)
	assert.Equal(t, verdict.DilutionAlwaysBlock, res.Verdicts["R1"])
}

func TestRun_MediaMetsRestrictsUptake(t *testing.T) {
	m := model.NewModel()
	require.NoError(t, m.AddReaction(rxn("EX_A", -1000, 1000, map[string]int64{"A": -1})))
	require.NoError(t, m.AddReaction(rxn("R1", 0, 1000, map[string]int64{"A": -1, "B": 1})))
	require.NoError(t, m.AddReaction(rxn("EX_B", -1000, 1000, map[string]int64{"B": -1})))

	res, err := Run(context.Background(), &lpsolver.FakeSolver{}, m, WithMediaMets([]string{"A"}))
	require.NoError(t, err)
	assert.Contains(t, res.Verdicts, "R1")
}

func TestRun_DeadEndVerdictsZeroReaction(t *testing.T) {
	m := model.NewModel()
	require.NoError(t, m.AddReaction(rxn("EX_A", -1000, 1000, map[string]int64{"A": -1})))
	require.NoError(t, m.AddReaction(rxn("R1", 0, 1000, map[string]int64{"A": -1, "B": 1})))
	require.NoError(t, m.AddReaction(rxn("EX_B", -1000, 1000, map[string]int64{"B": -1})))

	deadEnds := map[string]verdict.DeadEnd{"R1": verdict.DeadEndMetabolites([]string{"B"})}
	res, err := Run(context.Background(), &lpsolver.FakeSolver{}, m, WithDeadEndVerdicts(deadEnds))
	require.NoError(t, err)
	// R1 pre-zeroed -> infeasible with no dilution imposed -> always blocked.
	assert.Equal(t, verdict.DilutionAlwaysBlock, res.Verdicts["R1"])
}
