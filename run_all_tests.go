package macaw

import (
	"context"
	"fmt"

	"github.com/macaw-go/macaw/deadend"
	"github.com/macaw-go/macaw/dilution"
	"github.com/macaw-go/macaw/diphosphate"
	"github.com/macaw-go/macaw/duplicate"
	"github.com/macaw-go/macaw/loop"
	"github.com/macaw-go/macaw/lpsolver"
	"github.com/macaw-go/macaw/macawcfg"
	"github.com/macaw-go/macaw/model"
	"github.com/macaw-go/macaw/pathway"
	"github.com/macaw-go/macaw/verdict"
)

// RunAllTests drives the five tests in dependency order (dead-end before
// dilution, which consumes dead-end verdicts; the others are independent),
// joins their verdict columns by reaction ID, invokes pathway synthesis,
// and returns the combined results table and edge list (§4.8). Any
// ConfigurationError downgrades that test's verdicts to "ok" rather than
// aborting the run (§7); other errors abort immediately.
func RunAllTests(ctx context.Context, solver lpsolver.Solver, m *model.Model, cfg *macawcfg.Config) (*ResultsTable, verdict.EdgeSet, error) {
	if err := m.Validate(); err != nil {
		return nil, nil, fmt.Errorf("macaw: %w", err)
	}

	deadEndRes := deadend.Run(m)

	dilutionRes, err := dilution.Run(ctx, solver, m,
		dilution.WithMediaMets(cfg.MediaMets),
		dilution.WithDeadEndVerdicts(deadEndRes.Verdicts),
		dilution.WithZeroThresh(cfg.ZeroThresh),
		dilution.WithTimeout(cfg.Timeout),
		dilution.WithMaxAttempts(cfg.MaxAttempts),
		dilution.WithAlpha(cfg.Alpha),
		dilution.WithConcurrency(cfg.Concurrency),
		dilution.WithLogger(cfg.Logger),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("macaw: dilution: %w", err)
	}

	// §7 ConfigurationError: a half-configured diphosphate/redox list
	// degrades that one test to "ok" with a logged warning, it never
	// aborts the run.
	diphosphateIDs, monophosphateIDs := cfg.DiphosphateIDs, cfg.MonophosphateIDs
	if (len(diphosphateIDs) > 0) != (len(monophosphateIDs) > 0) {
		cfg.Logger.Warn().Msg("macaw: diphosphate_ids and monophosphate_ids must both be set; diphosphate test reports \"ok\" for every reaction")
		diphosphateIDs, monophosphateIDs = nil, nil
	}
	diphosphateRes := diphosphate.Run(m, diphosphateIDs, monophosphateIDs)

	redoxPairs, protonIDs := cfg.DuplicateRedoxPairs(), cfg.ProtonIDs
	if len(redoxPairs) > 0 && len(protonIDs) == 0 {
		cfg.Logger.Warn().Msg("macaw: redox_pairs supplied without proton_ids; redox duplicate column reports \"ok\" for every reaction")
		redoxPairs, protonIDs = nil, nil
	}
	duplicateRes := duplicate.Run(m, redoxPairs, protonIDs)

	loopRes, err := loop.Run(ctx, solver, m,
		loop.WithZeroThresh(cfg.ZeroThresh),
		loop.WithCorrThresh(cfg.CorrThresh),
		loop.WithConcurrency(cfg.Concurrency),
		loop.WithLogger(cfg.Logger),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("macaw: loop: %w", err)
	}

	pathwayRes := pathway.FormPathways(m,
		deadEndRes.Edges,
		dilutionRes.Edges,
		duplicateRes.Edges,
		loopRes.Edges,
	)

	table := &ResultsTable{Rows: make([]Row, 0, len(m.Reactions()))}
	for _, r := range m.Reactions() {
		table.Rows = append(table.Rows, Row{
			ReactionID:         r.ID,
			ReactionEquation:   reactionEquation(m, r, cfg),
			DeadEndTest:        deadEndRes.Verdicts[r.ID],
			DilutionTest:       dilutionRes.Verdicts[r.ID],
			DiphosphateTest:    diphosphateRes.Verdicts[r.ID],
			DuplicateExact:     duplicateRes.Exact[r.ID],
			DuplicateDirection: duplicateRes.Directions[r.ID],
			DuplicateCoeff:     duplicateRes.Coefficients[r.ID],
			DuplicateRedox:     duplicateRes.Redox[r.ID],
			LoopTest:           loopRes.Verdicts[r.ID],
			Pathway:            pathwayRes.Labels[r.ID],
		})
	}

	return table, pathwayRes.Edges, nil
}
