// Package macaw is a consistency-test battery for genome-scale metabolic
// models (GSMMs): a suite of structural and flux-balance checks that
// catch modeling artifacts before they propagate into downstream flux
// analyses.
//
// Five independent tests run against a model.Model:
//
//	deadend/      structural dead-end metabolite detection
//	dilution/     per-metabolite LP dilution experiments
//	diphosphate/  rule-based diphosphate-reversibility check
//	duplicate/    four reaction-signature equivalence classifications
//	loop/         two-phase infeasible-cycle detection
//
// Their verdicts and emitted edges feed pathway synthesis
// (pathway.FormPathways), which groups connected reactions into
// positively-labeled pathways. RunAllTests drives all of this in
// dependency order (dead-end before dilution) and returns one joined
// results table plus the combined edge list; WriteCSV persists that
// table in the layout downstream figure scripts expect.
//
// Every test operates on model.Model's clone-on-write view: the caller's
// original model is never mutated, and per-worker experiments (dilution,
// loop phase 1) each receive an independent clone before touching bounds
// or constraints.
package macaw
