package dilution

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/macaw-go/macaw/lpsolver"
	"github.com/macaw-go/macaw/verdict"
)

// Default tuning constants (§4.3).
const (
	// DefaultAlpha is the dilution coupling constant: flux(dilution_m)
	// must equal DefaultAlpha times the summed absolute flux of every
	// other reaction participating in m. A fixed small positive constant
	// is an explicit implementation choice per §4.3 step 4; 0.01 keeps
	// the dilution sink's required flux well below typical FBA flux
	// magnitudes (~1-1000) so it never itself becomes the binding
	// constraint on a healthy metabolite.
	DefaultAlpha = 0.01

	// DefaultTimeout is the per-metabolite experiment watchdog timeout.
	DefaultTimeout = 1800 * time.Second

	// DefaultMaxAttempts is the watchdog retry budget before a
	// metabolite's participating reactions are conservatively marked
	// blocked.
	DefaultMaxAttempts = 3

	// DefaultConcurrency bounds the per-metabolite experiment pool.
	DefaultConcurrency = 4
)

// Options configures Run, resolved via the functional-option pattern
// (mirrors the teacher's builder.BuilderOption / core.GraphOption shape).
type Options struct {
	// MediaMets, if non-empty, is the list of metabolite IDs allowed
	// uptake; every other exchange reaction has lb clamped to 0 (§4.3
	// step 1).
	MediaMets []string

	// DeadEndVerdicts, if non-nil, zeroes (lb=ub=0) every reaction the
	// dead-end test did not mark "ok" (§4.3 step 2).
	DeadEndVerdicts map[string]verdict.DeadEnd

	// ZeroThresh is the magnitude below which an LP optimum counts as
	// zero flux.
	ZeroThresh float64

	// Timeout bounds each per-metabolite watchdog attempt.
	Timeout time.Duration

	// MaxAttempts bounds watchdog retries before conservative fallback.
	MaxAttempts int

	// Alpha is the dilution coupling constant.
	Alpha float64

	// Concurrency bounds the per-metabolite worker pool.
	Concurrency int

	// Logger receives watchdog retry/exhaustion events.
	Logger zerolog.Logger
}

// Option mutates an Options under construction.
type Option func(*Options)

// WithMediaMets sets the uptake-allowed metabolite ID list.
func WithMediaMets(ids []string) Option { return func(o *Options) { o.MediaMets = ids } }

// WithDeadEndVerdicts supplies dead-end verdicts to pre-zero blocked
// reactions.
func WithDeadEndVerdicts(v map[string]verdict.DeadEnd) Option {
	return func(o *Options) { o.DeadEndVerdicts = v }
}

// WithZeroThresh overrides the zero-flux threshold.
func WithZeroThresh(t float64) Option { return func(o *Options) { o.ZeroThresh = t } }

// WithTimeout overrides the per-experiment watchdog timeout.
func WithTimeout(d time.Duration) Option { return func(o *Options) { o.Timeout = d } }

// WithMaxAttempts overrides the watchdog retry budget.
func WithMaxAttempts(n int) Option { return func(o *Options) { o.MaxAttempts = n } }

// WithAlpha overrides the dilution coupling constant.
func WithAlpha(a float64) Option { return func(o *Options) { o.Alpha = a } }

// WithConcurrency overrides the per-metabolite worker pool size.
func WithConcurrency(n int) Option { return func(o *Options) { o.Concurrency = n } }

// WithLogger attaches a logger for watchdog events.
func WithLogger(l zerolog.Logger) Option { return func(o *Options) { o.Logger = l } }

func resolveOptions(opts ...Option) Options {
	cfg := Options{
		ZeroThresh:  lpsolver.DefaultZeroThresh,
		Timeout:     DefaultTimeout,
		MaxAttempts: DefaultMaxAttempts,
		Alpha:       DefaultAlpha,
		Concurrency: DefaultConcurrency,
		Logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	return cfg
}
