package loop

import (
	"github.com/rs/zerolog"

	"github.com/macaw-go/macaw/lpsolver"
)

// Default tuning constants (§4.6).
const (
	// DefaultCorrThresh is the Pearson correlation magnitude at or above
	// which a flagged pair is considered loop-coupled in phase 2.
	DefaultCorrThresh = 0.9

	// DefaultSamples is the number of flux distributions phase 2 draws
	// from the feasible polytope.
	DefaultSamples = 1000

	// DefaultConcurrency bounds the phase-1 per-reaction worker pool.
	DefaultConcurrency = 4
)

// Options configures Run, resolved via the functional-option pattern
// shared across every test package in this module.
type Options struct {
	// ZeroThresh is the magnitude below which a phase-1 optimum counts as
	// zero flux.
	ZeroThresh float64

	// CorrThresh is the phase-2 Pearson correlation cutoff.
	CorrThresh float64

	// Samples is the number of phase-2 flux draws.
	Samples int

	// Concurrency bounds the phase-1 worker pool.
	Concurrency int

	// Logger receives phase-1/phase-2 diagnostic events.
	Logger zerolog.Logger
}

// Option mutates an Options under construction.
type Option func(*Options)

// WithZeroThresh overrides the phase-1 zero-flux threshold.
func WithZeroThresh(t float64) Option { return func(o *Options) { o.ZeroThresh = t } }

// WithCorrThresh overrides the phase-2 correlation cutoff.
func WithCorrThresh(t float64) Option { return func(o *Options) { o.CorrThresh = t } }

// WithSamples overrides the phase-2 sample count.
func WithSamples(n int) Option { return func(o *Options) { o.Samples = n } }

// WithConcurrency overrides the phase-1 worker pool size.
func WithConcurrency(n int) Option { return func(o *Options) { o.Concurrency = n } }

// WithLogger attaches a logger for phase diagnostics.
func WithLogger(l zerolog.Logger) Option { return func(o *Options) { o.Logger = l } }

func resolveOptions(opts ...Option) Options {
	cfg := Options{
		ZeroThresh:  lpsolver.DefaultZeroThresh,
		CorrThresh:  DefaultCorrThresh,
		Samples:     DefaultSamples,
		Concurrency: DefaultConcurrency,
		Logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.Samples < 1 {
		cfg.Samples = 1
	}

	return cfg
}
