// Package dilution implements the dilution test (§4.3): a per-metabolite
// LP experiment that adds a synthetic dilution sink plus a coupling
// constraint, to catch metabolites with no net source in steady state
// (only recycled, and therefore mathematically "free" in unconstrained
// FBA).
//
// Experiments run concurrently through a bounded worker pool
// (golang.org/x/sync/errgroup + semaphore, the teacher pack's own
// concurrency stack) and each is wrapped by a timeout+retry watchdog
// (lpsolver.WithTimeout / lpsolver.Retry), exactly as §5 requires.
package dilution

import (
	"context"
	"fmt"
	"math/big"
	"sort"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/macaw-go/macaw/lpsolver"
	"github.com/macaw-go/macaw/model"
	"github.com/macaw-go/macaw/verdict"
)

// Result is the dilution test's output: a verdict per reaction plus the
// bipartite reaction<->metabolite edges it emitted (§4.3 aggregation step).
type Result struct {
	Verdicts map[string]verdict.Dilution
	Edges    verdict.EdgeSet
}

// Run evaluates the dilution test against m using solver as the LP
// backend (§4.3).
func Run(ctx context.Context, solver lpsolver.Solver, m *model.Model, opts ...Option) (*Result, error) {
	cfg := resolveOptions(opts...)

	baseline := m.Clone()
	applyRestrictions(baseline, cfg)
	allRxnIDs := make([]string, 0, len(m.Reactions()))
	for _, r := range m.Reactions() {
		allRxnIDs = append(allRxnIDs, r.ID)
	}
	alwaysBlocked, err := lpsolver.BlockedSet(ctx, solver, baseline, allRxnIDs, cfg.ZeroThresh)
	if err != nil {
		return nil, fmt.Errorf("dilution: baseline pre-pass: %w", err)
	}

	type outcome struct {
		metID   string
		blocked map[string]bool
	}

	mets := m.Metabolites()
	outcomes := make([]outcome, len(mets))

	sem := semaphore.NewWeighted(int64(cfg.Concurrency))
	g, gctx := errgroup.WithContext(ctx)
	for i, met := range mets {
		i, metID := i, met.ID
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			blocked, err := runMetaboliteExperiment(gctx, solver, m, metID, cfg)
			if err != nil {
				return fmt.Errorf("dilution: metabolite %s: %w", metID, err)
			}
			outcomes[i] = outcome{metID: metID, blocked: blocked}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	blockedUnderM := make(map[string][]string)
	feasibleUnderM := make(map[string]bool)
	for _, oc := range outcomes {
		rxnIDs := make([]string, 0, len(oc.blocked))
		for rid := range oc.blocked {
			rxnIDs = append(rxnIDs, rid)
		}
		sort.Strings(rxnIDs)
		for _, rid := range rxnIDs {
			if oc.blocked[rid] {
				blockedUnderM[rid] = append(blockedUnderM[rid], oc.metID)
			} else if alwaysBlocked[rid] {
				feasibleUnderM[rid] = true
			}
		}
	}

	res := &Result{Verdicts: make(map[string]verdict.Dilution), Edges: verdict.NewEdgeSet()}
	for _, r := range m.Reactions() {
		switch {
		case alwaysBlocked[r.ID] && feasibleUnderM[r.ID]:
			res.Verdicts[r.ID] = verdict.DilutionUnblocked
		case alwaysBlocked[r.ID]:
			res.Verdicts[r.ID] = verdict.DilutionAlwaysBlock
		case len(blockedUnderM[r.ID]) > 0:
			res.Verdicts[r.ID] = verdict.DilutionBlocked
			for _, metID := range blockedUnderM[r.ID] {
				res.Edges.AddMetaboliteEdge(r.ID, metID)
			}
		default:
			res.Verdicts[r.ID] = verdict.DilutionOK
		}
	}

	return res, nil
}

// runMetaboliteExperiment runs the watchdog-guarded per-metabolite
// experiment (§4.3 steps 1-5), returning the blocked/not-blocked status of
// every reaction participating in metID.
func runMetaboliteExperiment(ctx context.Context, solver lpsolver.Solver, m *model.Model, metID string, cfg Options) (map[string]bool, error) {
	corrID := ulid.Make()
	watched := lpsolver.WithTimeout(solver, cfg.Timeout)

	participants, err := m.ParticipatingReactions(metID)
	if err != nil {
		return nil, err
	}

	var blocked map[string]bool
	attempt := 0
	retryErr := lpsolver.Retry(cfg.MaxAttempts, func() error {
		attempt++
		cfg.Logger.Debug().
			Str("correlation_id", corrID.String()).
			Str("metabolite", metID).
			Int("attempt", attempt).
			Msg("dilution experiment attempt")

		experiment, err := buildExperiment(m, metID, participants, cfg)
		if err != nil {
			return err
		}

		actx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()

		result := make(map[string]bool, len(participants))
		for _, rid := range participants {
			can, err := lpsolver.CanCarryFlux(actx, watched, experiment, rid, cfg.ZeroThresh)
			if err != nil {
				return err
			}
			result[rid] = !can
		}
		blocked = result

		return nil
	})
	if retryErr != nil {
		cfg.Logger.Warn().
			Str("correlation_id", corrID.String()).
			Str("metabolite", metID).
			Int("attempts", attempt).
			Msg("dilution watchdog exhausted, conservatively marking participants blocked")

		conservative := make(map[string]bool, len(participants))
		for _, rid := range participants {
			conservative[rid] = true
		}

		return conservative, nil
	}

	return blocked, nil
}

// buildExperiment constructs the per-metabolite clone: restrictions
// applied, dilution sink added, coupling constraint linearized via
// forward/reverse flux splitting (§4.3 steps 1-4).
func buildExperiment(base *model.Model, metID string, participants []string, cfg Options) (*model.Model, error) {
	clone := base.Clone()
	applyRestrictions(clone, cfg)

	dilutionID := "__dilution_" + metID
	if err := clone.AddReaction(&model.Reaction{
		ID:     dilutionID,
		Stoich: map[string]*big.Rat{metID: big.NewRat(-1, 1)},
		LB:     0,
		UB:     lpsolver.LargeBound,
	}); err != nil {
		return nil, err
	}

	couplingCoeffs := map[string]float64{dilutionID: 1}
	for _, rid := range participants {
		fwdID, revID := "__fwd_"+rid, "__rev_"+rid
		if err := clone.AddReaction(&model.Reaction{ID: fwdID, Stoich: map[string]*big.Rat{}, LB: 0, UB: lpsolver.LargeBound}); err != nil {
			return nil, err
		}
		if err := clone.AddReaction(&model.Reaction{ID: revID, Stoich: map[string]*big.Rat{}, LB: 0, UB: lpsolver.LargeBound}); err != nil {
			return nil, err
		}
		if err := clone.AddConstraint(&model.Constraint{
			ID:     "__link_" + rid,
			Coeffs: map[string]float64{fwdID: 1, revID: -1, rid: -1},
			Sense:  model.SenseEQ,
			RHS:    0,
		}); err != nil {
			return nil, err
		}
		couplingCoeffs[fwdID] = -cfg.Alpha
		couplingCoeffs[revID] = -cfg.Alpha
	}

	if err := clone.AddConstraint(&model.Constraint{
		ID:     "__coupling_" + metID,
		Coeffs: couplingCoeffs,
		Sense:  model.SenseEQ,
		RHS:    0,
	}); err != nil {
		return nil, err
	}

	return clone, nil
}

// applyRestrictions implements §4.3 steps 1-2 on clone in place.
func applyRestrictions(clone *model.Model, cfg Options) {
	if len(cfg.MediaMets) > 0 {
		allowed := make(map[string]bool, len(cfg.MediaMets))
		for _, id := range cfg.MediaMets {
			allowed[id] = true
		}
		for _, r := range clone.Reactions() {
			if !r.IsExchange() {
				continue
			}
			for met := range r.Stoich {
				if !allowed[met] {
					_ = clone.SetBounds(r.ID, 0, r.UB)
				}
			}
		}
	}

	for rid, v := range cfg.DeadEndVerdicts {
		if v != verdict.DeadEndOK {
			_ = clone.SetBounds(rid, 0, 0)
		}
	}
}
