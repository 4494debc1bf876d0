package loop

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

// S2: a fully reversible three-reaction cycle (A->B->C->A) with no
// exchange touching any of A, B, C can sustain arbitrary circular flux
// even with every exchange closed -- a thermodynamically infeasible
// loop. Every reaction is flagged in phase 1, and since the cycle pins
// R1=R2=R3 in every feasible solution, phase 2 correlates them
// perfectly and emits all three edges.
func TestRun_ReversibleTrioFlaggedAsLoop(t *testing.T) {
	m := model.NewModel()
	require.NoError(t, m.AddReaction(rxn("R1", -1000, 1000, map[string]int64{"A": -1, "B": 1})))
	require.NoError(t, m.AddReaction(rxn("R2", -1000, 1000, map[string]int64{"B": -1, "C": 1})))
	require.NoError(t, m.AddReaction(rxn("R3", -1000, 1000, map[string]int64{"C": -1, "A": 1})))

	res, err := Run(context.Background(), &lpsolver.FakeSolver{Seed: 7}, m, WithSamples(200))
	require.NoError(t, err)
	assert.Equal(t, verdict.LoopInLoop, res.Verdicts["R1"])
	assert.Equal(t, verdict.LoopInLoop, res.Verdicts["R2"])
	assert.Equal(t, verdict.LoopInLoop, res.Verdicts["R3"])
	assert.Len(t, res.Edges.Slice(), 3)
}

// A linear chain fed by real exchanges is not a loop: once every
// exchange is pinned to zero in phase 1's probe, nothing can carry flux
// at all, so every reaction stays "ok".
func TestRun_LinearChainWithExchangesNotLoop(t *testing.T) {
	m := model.NewModel()
	require.NoError(t, m.AddReaction(rxn("EX_A", -1000, 1000, map[string]int64{"A": -1})))
	require.NoError(t, m.AddReaction(rxn("R1", 0, 1000, map[string]int64{"A": -1, "B": 1})))
	require.NoError(t, m.AddReaction(rxn("EX_B", -1000, 1000, map[string]int64{"B": -1})))

	res, err := Run(context.Background(), &lpsolver.FakeSolver{Seed: 3}, m)
	require.NoError(t, err)
	assert.Equal(t, verdict.LoopOK, res.Verdicts["R1"])
	assert.Empty(t, res.Edges.Slice())
}

// Exchange insensitivity (§8): the loop test's verdicts for internal
// reactions are unaffected by any exchange reaction's own bounds, since
// phase 1 always pins every exchange to lb=ub=0 regardless of its
// original bounds.
func TestRun_ExchangeBoundsDoNotAffectVerdict(t *testing.T) {
	m1 := model.NewModel()
	require.NoError(t, m1.AddReaction(rxn("EX_A", -1000, 1000, map[string]int64{"A": -1})))
	require.NoError(t, m1.AddReaction(rxn("R1", 0, 500, map[string]int64{"A": -1, "B": 1})))
	require.NoError(t, m1.AddReaction(rxn("EX_B", -1000, 1000, map[string]int64{"B": -1})))

	m2 := model.NewModel()
	require.NoError(t, m2.AddReaction(rxn("EX_A", -1, 1, map[string]int64{"A": -1})))
	require.NoError(t, m2.AddReaction(rxn("R1", 0, 500, map[string]int64{"A": -1, "B": 1})))
	require.NoError(t, m2.AddReaction(rxn("EX_B", -1, 1, map[string]int64{"B": -1})))

	res1, err := Run(context.Background(), &lpsolver.FakeSolver{Seed: 1}, m1)
	require.NoError(t, err)
	res2, err := Run(context.Background(), &lpsolver.FakeSolver{Seed: 1}, m2)
	require.NoError(t, err)
	assert.Equal(t, res1.Verdicts["R1"], res2.Verdicts["R1"])
}
