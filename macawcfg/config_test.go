package macawcfg

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsApplied(t *testing.T) {
	cfg := New()
	assert.Equal(t, 1, cfg.Verbose)
	assert.Positive(t, cfg.ZeroThresh)
	assert.Positive(t, cfg.CorrThresh)
	assert.Positive(t, cfg.Alpha)
	assert.Positive(t, cfg.Concurrency)
	assert.Positive(t, cfg.MaxAttempts)
}

func TestNew_OptionsOverrideDefaults(t *testing.T) {
	cfg := New(WithAlpha(0.05), WithConcurrency(8), WithMediaMets([]string{"glc_e"}))
	assert.Equal(t, 0.05, cfg.Alpha)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, []string{"glc_e"}, cfg.MediaMets)
}

func TestNew_VerboseGatesLogger(t *testing.T) {
	silent := New(WithVerbose(0))
	assert.Equal(t, zerolog.Disabled, silent.Logger.GetLevel())

	loud := New(WithVerbose(1))
	assert.NotEqual(t, zerolog.Disabled, loud.Logger.GetLevel())
}

func TestValidate_DiphosphateHalfConfiguredErrors(t *testing.T) {
	cfg := New(WithDiphosphateIDs([]string{"ppi_c"}))
	err := cfg.Validate()
	require.Error(t, err)
}

func TestValidate_RedoxWithoutProtonsErrors(t *testing.T) {
	cfg := New(WithRedoxPairs([]RedoxPair{{Oxidized: "nad_c", Reduced: "nadh_c"}}))
	err := cfg.Validate()
	require.Error(t, err)
}

func TestLoad_ValidDocumentResolvesConfig(t *testing.T) {
	doc := []byte(`
alpha: 0.02
timeout: 10m
max_attempts: 2
media_mets:
  - glc_e
  - o2_e
redox_pairs:
  - oxidized: nad_c
    reduced: nadh_c
proton_ids:
  - h_c
`)
	cfg, err := Load(doc)
	require.NoError(t, err)
	assert.Equal(t, 0.02, cfg.Alpha)
	assert.Equal(t, 10*time.Minute, cfg.Timeout)
	assert.Equal(t, 2, cfg.MaxAttempts)
	assert.Equal(t, []string{"glc_e", "o2_e"}, cfg.MediaMets)
	require.Len(t, cfg.RedoxPairs, 1)
	assert.Equal(t, "nad_c", cfg.RedoxPairs[0].Oxidized)
}

func TestLoad_SchemaRejectsWrongType(t *testing.T) {
	doc := []byte(`alpha: "not a number"`)
	_, err := Load(doc)
	require.Error(t, err)
}

func TestLoad_SchemaRejectsUnknownField(t *testing.T) {
	doc := []byte(`unknown_field: true`)
	_, err := Load(doc)
	require.Error(t, err)
}
