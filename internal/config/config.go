// Package config defines the top-level YAML configuration of the screener:
// the ticker universe plus the parameters of every analysis stage.
package config

import (
	"encoding/json"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-screener/internal/backtest"
	"github.com/rxtech-lab/argo-screener/internal/indicator"
	"github.com/rxtech-lab/argo-screener/internal/signal"
	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/rxtech-lab/argo-screener/internal/version"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config is the full screener configuration document.
type Config struct {
	// Version is the screener version the config was written for. Major and
	// minor must match the running tool.
	Version string `yaml:"version" json:"version" jsonschema:"title=Version,description=Screener version this config targets" validate:"required"`
	// Tickers is the universe to analyze.
	Tickers []string `yaml:"tickers" json:"tickers" jsonschema:"title=Tickers,description=Ticker universe to analyze" validate:"min=1,dive,required"`
	// Indicator holds the rolling-window parameters.
	Indicator indicator.Config `yaml:"indicator" json:"indicator" jsonschema:"title=Indicator Parameters"`
	// Signal holds the confidence weights and classification thresholds.
	Signal signal.Config `yaml:"signal" json:"signal" jsonschema:"title=Signal Parameters"`
	// Risk holds the position-size and portfolio-risk caps.
	Risk types.RiskLimits `yaml:"risk" json:"risk" jsonschema:"title=Risk Limits"`
	// Backtest holds the replay parameters.
	Backtest backtest.Config `yaml:"backtest" json:"backtest" jsonschema:"title=Backtest Parameters"`
}

// DefaultConfig returns a runnable configuration with the standard parameter
// sets and an empty ticker universe.
func DefaultConfig() Config {
	return Config{
		Version:   version.GetVersion(),
		Tickers:   nil,
		Indicator: indicator.DefaultConfig(),
		Signal:    signal.DefaultConfig(),
		Risk: types.RiskLimits{
			MaxPositionFraction:      0.20,
			MaxPortfolioRiskFraction: 0.05,
		},
		Backtest: backtest.DefaultConfig(),
	}
}

// LoadConfig reads, parses and validates a YAML config file. Unset sections
// fall back to their defaults before validation runs.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config file %s", path)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Validate checks the whole document, including the version gate and every
// nested section.
func (c *Config) Validate() error {
	if err := version.CheckVersionCompatibility(version.GetVersion(), c.Version); err != nil {
		return err
	}

	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if err := c.Indicator.Validate(); err != nil {
		return err
	}

	if err := c.Signal.Validate(); err != nil {
		return err
	}

	return nil
}

// GenerateSchema generates a JSON schema for the Config.
func (c *Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
	}

	schema := reflector.Reflect(c)

	schema.Title = "screener-config"
	schema.Description = "Configuration schema for the screener"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the Config.
func (c *Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
