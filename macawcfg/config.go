// Package macawcfg resolves the shared, per-run configuration every MACAW
// test reads its knobs from (§6 "Configuration recognized"): display
// flags, numeric thresholds, and the curated domain ID lists (media
// metabolites, diphosphate/monophosphate metabolites, redox pairs,
// proton IDs). Configuration is built either via functional options, the
// teacher's own pattern (see builder.BuildGraph/core.GraphOption), or by
// loading and schema-validating a YAML document.
package macawcfg

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/macaw-go/macaw/dilution"
	"github.com/macaw-go/macaw/duplicate"
	"github.com/macaw-go/macaw/loop"
	"github.com/macaw-go/macaw/lpsolver"
)

// ErrConfiguration is the §7 "ConfigurationError" sentinel: invalid or
// incomplete configuration that should degrade every verdict to "ok" with
// a logged warning, never abort the run.
var ErrConfiguration = errors.New("macawcfg: invalid configuration")

// RedoxPair mirrors duplicate.RedoxPair in configuration form (YAML-
// friendly field names).
type RedoxPair struct {
	Oxidized string `yaml:"oxidized" json:"oxidized"`
	Reduced  string `yaml:"reduced" json:"reduced"`
}

// Config is the fully resolved, validated configuration for one
// run_all_tests invocation (§6).
type Config struct {
	// UseNames controls whether the results table's equation column uses
	// display names instead of raw metabolite IDs (§6, display-only).
	UseNames bool `yaml:"use_names"`

	// AddSuffixes appends compartment tags to equation-column tokens
	// (§6, display-only).
	AddSuffixes bool `yaml:"add_suffixes"`

	// Verbose is 0 (silent) or 1 (default); gates informational logging
	// only, never verdict content (§6).
	Verbose int `yaml:"verbose"`

	// ZeroThresh is the LP-magnitude zero cutoff shared by dilution and
	// loop (§9 "Numeric comparisons").
	ZeroThresh float64 `yaml:"zero_thresh"`

	// CorrThresh is the loop test's phase-2 correlation cutoff (§4.6).
	CorrThresh float64 `yaml:"corr_thresh"`

	// Alpha is the dilution test's coupling constant (§4.3 step 4).
	Alpha float64 `yaml:"alpha"`

	// Timeout bounds each dilution watchdog attempt (§4.3, §5).
	Timeout time.Duration `yaml:"timeout"`

	// MaxAttempts bounds dilution watchdog retries (§4.3, §5).
	MaxAttempts int `yaml:"max_attempts"`

	// Concurrency bounds both the dilution and loop worker pools (§5).
	Concurrency int `yaml:"concurrency"`

	// MediaMets, if non-empty, restricts dilution uptake to these
	// metabolite IDs (§4.3 step 1).
	MediaMets []string `yaml:"media_mets"`

	// DiphosphateIDs, MonophosphateIDs feed the diphosphate test (§4.4).
	DiphosphateIDs   []string `yaml:"diphosphate_ids"`
	MonophosphateIDs []string `yaml:"monophosphate_ids"`

	// RedoxPairs, ProtonIDs feed the duplicate test's redox
	// classification (§4.5 classification 4).
	RedoxPairs []RedoxPair `yaml:"redox_pairs"`
	ProtonIDs  []string    `yaml:"proton_ids"`

	// Logger is built from Verbose by New: silent (zerolog.Nop()) at 0,
	// a console writer to stderr at 1 or above (§1 ambient stack).
	Logger zerolog.Logger `yaml:"-"`
}

// Option mutates a Config under construction.
type Option func(*Config)

// WithUseNames sets the display-name flag.
func WithUseNames(v bool) Option { return func(c *Config) { c.UseNames = v } }

// WithAddSuffixes sets the compartment-suffix display flag.
func WithAddSuffixes(v bool) Option { return func(c *Config) { c.AddSuffixes = v } }

// WithVerbose sets the verbosity level.
func WithVerbose(v int) Option { return func(c *Config) { c.Verbose = v } }

// WithZeroThresh overrides the shared LP zero-flux threshold.
func WithZeroThresh(t float64) Option { return func(c *Config) { c.ZeroThresh = t } }

// WithCorrThresh overrides the loop test's correlation cutoff.
func WithCorrThresh(t float64) Option { return func(c *Config) { c.CorrThresh = t } }

// WithAlpha overrides the dilution coupling constant.
func WithAlpha(a float64) Option { return func(c *Config) { c.Alpha = a } }

// WithTimeout overrides the dilution watchdog timeout.
func WithTimeout(d time.Duration) Option { return func(c *Config) { c.Timeout = d } }

// WithMaxAttempts overrides the dilution watchdog retry budget.
func WithMaxAttempts(n int) Option { return func(c *Config) { c.MaxAttempts = n } }

// WithConcurrency overrides the shared worker-pool size.
func WithConcurrency(n int) Option { return func(c *Config) { c.Concurrency = n } }

// WithMediaMets sets the dilution uptake allow-list.
func WithMediaMets(ids []string) Option { return func(c *Config) { c.MediaMets = ids } }

// WithDiphosphateIDs sets the diphosphate-test metabolite ID list.
func WithDiphosphateIDs(ids []string) Option { return func(c *Config) { c.DiphosphateIDs = ids } }

// WithMonophosphateIDs sets the diphosphate-test monophosphate ID list.
func WithMonophosphateIDs(ids []string) Option {
	return func(c *Config) { c.MonophosphateIDs = ids }
}

// WithRedoxPairs sets the duplicate-test redox pair list.
func WithRedoxPairs(pairs []RedoxPair) Option { return func(c *Config) { c.RedoxPairs = pairs } }

// WithProtonIDs sets the duplicate-test proton ID list.
func WithProtonIDs(ids []string) Option { return func(c *Config) { c.ProtonIDs = ids } }

// New resolves a Config from defaults plus opts, the functional-option
// pattern shared by every test package in this module (mirrors
// builder.BuildGraph's config resolution).
func New(opts ...Option) *Config {
	cfg := &Config{
		Verbose:     1,
		ZeroThresh:  lpsolver.DefaultZeroThresh,
		CorrThresh:  loop.DefaultCorrThresh,
		Alpha:       dilution.DefaultAlpha,
		Timeout:     dilution.DefaultTimeout,
		MaxAttempts: dilution.DefaultMaxAttempts,
		Concurrency: dilution.DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Verbose >= 1 {
		cfg.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.InfoLevel).With().Timestamp().Logger()
	} else {
		cfg.Logger = zerolog.Nop()
	}

	return cfg
}

// DuplicateRedoxPairs converts RedoxPairs into duplicate.RedoxPair values
// for direct use by the duplicate test.
func (c *Config) DuplicateRedoxPairs() []duplicate.RedoxPair {
	out := make([]duplicate.RedoxPair, 0, len(c.RedoxPairs))
	for _, p := range c.RedoxPairs {
		out = append(out, duplicate.RedoxPair{Oxidized: p.Oxidized, Reduced: p.Reduced})
	}

	return out
}

// Validate checks the §7 "ConfigurationError" condition this package is
// responsible for: diphosphate IDs supplied without monophosphate IDs (or
// vice versa) is a classic half-configured case that must degrade
// gracefully rather than silently misclassify every reaction.
func (c *Config) Validate() error {
	if (len(c.DiphosphateIDs) > 0) != (len(c.MonophosphateIDs) > 0) {
		return fmt.Errorf("%w: diphosphate_ids and monophosphate_ids must both be set or both be empty", ErrConfiguration)
	}
	if len(c.RedoxPairs) > 0 && len(c.ProtonIDs) == 0 {
		return fmt.Errorf("%w: redox_pairs supplied without proton_ids", ErrConfiguration)
	}

	return nil
}
