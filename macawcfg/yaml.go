package macawcfg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// schemaDoc is the JSON Schema every loaded YAML configuration document
// must satisfy before being decoded into a Config: it catches malformed
// types (a string where a number is expected, a redox pair missing one
// side) at the document boundary, before any test ever sees the values.
const schemaDoc = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "use_names": {"type": "boolean"},
    "add_suffixes": {"type": "boolean"},
    "verbose": {"type": "integer", "minimum": 0},
    "zero_thresh": {"type": "number", "exclusiveMinimum": 0},
    "corr_thresh": {"type": "number", "minimum": 0, "maximum": 1},
    "alpha": {"type": "number", "exclusiveMinimum": 0},
    "timeout": {"type": "string"},
    "max_attempts": {"type": "integer", "minimum": 1},
    "concurrency": {"type": "integer", "minimum": 1},
    "media_mets": {"type": "array", "items": {"type": "string"}},
    "diphosphate_ids": {"type": "array", "items": {"type": "string"}},
    "monophosphate_ids": {"type": "array", "items": {"type": "string"}},
    "proton_ids": {"type": "array", "items": {"type": "string"}},
    "redox_pairs": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["oxidized", "reduced"],
        "properties": {
          "oxidized": {"type": "string"},
          "reduced": {"type": "string"}
        }
      }
    }
  },
  "additionalProperties": false
}`

// rawDoc mirrors Config with a string Timeout, matching how a YAML
// document spells a duration ("30m", "1800s") before it is parsed.
type rawDoc struct {
	UseNames         bool        `yaml:"use_names"`
	AddSuffixes      bool        `yaml:"add_suffixes"`
	Verbose          *int        `yaml:"verbose"`
	ZeroThresh       float64     `yaml:"zero_thresh"`
	CorrThresh       *float64    `yaml:"corr_thresh"`
	Alpha            float64     `yaml:"alpha"`
	Timeout          string      `yaml:"timeout"`
	MaxAttempts      int         `yaml:"max_attempts"`
	Concurrency      int         `yaml:"concurrency"`
	MediaMets        []string    `yaml:"media_mets"`
	DiphosphateIDs   []string    `yaml:"diphosphate_ids"`
	MonophosphateIDs []string    `yaml:"monophosphate_ids"`
	ProtonIDs        []string    `yaml:"proton_ids"`
	RedoxPairs       []RedoxPair `yaml:"redox_pairs"`
}

// Load parses a YAML configuration document, validates it against
// schemaDoc, and resolves it into a Config layered on top of New()'s
// defaults -- unset fields keep their default value. Schema or semantic
// validation failures return ErrConfiguration-wrapped errors (§7).
func Load(data []byte) (*Config, error) {
	var generic interface{}
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	if err := validateAgainstSchema(generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	var raw rawDoc
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	opts := []Option{
		WithUseNames(raw.UseNames),
		WithAddSuffixes(raw.AddSuffixes),
	}
	if raw.Verbose != nil {
		opts = append(opts, WithVerbose(*raw.Verbose))
	}
	if raw.ZeroThresh != 0 {
		opts = append(opts, WithZeroThresh(raw.ZeroThresh))
	}
	if raw.CorrThresh != nil {
		opts = append(opts, WithCorrThresh(*raw.CorrThresh))
	}
	if raw.Alpha != 0 {
		opts = append(opts, WithAlpha(raw.Alpha))
	}
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return nil, fmt.Errorf("%w: timeout: %v", ErrConfiguration, err)
		}
		opts = append(opts, WithTimeout(d))
	}
	if raw.MaxAttempts != 0 {
		opts = append(opts, WithMaxAttempts(raw.MaxAttempts))
	}
	if raw.Concurrency != 0 {
		opts = append(opts, WithConcurrency(raw.Concurrency))
	}
	if len(raw.MediaMets) > 0 {
		opts = append(opts, WithMediaMets(raw.MediaMets))
	}
	if len(raw.DiphosphateIDs) > 0 {
		opts = append(opts, WithDiphosphateIDs(raw.DiphosphateIDs))
	}
	if len(raw.MonophosphateIDs) > 0 {
		opts = append(opts, WithMonophosphateIDs(raw.MonophosphateIDs))
	}
	if len(raw.ProtonIDs) > 0 {
		opts = append(opts, WithProtonIDs(raw.ProtonIDs))
	}
	if len(raw.RedoxPairs) > 0 {
		opts = append(opts, WithRedoxPairs(raw.RedoxPairs))
	}

	cfg := New(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateAgainstSchema(doc interface{}) error {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020

	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if err := c.AddResource("macawcfg.json", bytes.NewReader([]byte(schemaDoc))); err != nil {
		return err
	}
	schema, err := c.Compile("macawcfg.json")
	if err != nil {
		return err
	}

	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	return schema.Validate(v)
}
