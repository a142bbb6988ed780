package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/argo-screener/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "screener.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `version: v1.0.0
tickers:
  - AAPL
  - MSFT
risk:
  max_position_fraction: 0.10
  max_portfolio_risk_fraction: 0.02
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"AAPL", "MSFT"}, cfg.Tickers)
	assert.InDelta(t, 0.10, cfg.Risk.MaxPositionFraction, 1e-9)
	// Unset sections keep their defaults.
	assert.Equal(t, 20, cfg.Indicator.SMAShortWindow)
	assert.InDelta(t, 100000.0, cfg.Backtest.InitialCapital, 1e-9)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/screener.yaml")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func TestLoadConfigEmptyTickers(t *testing.T) {
	path := writeConfig(t, "version: v1.0.0\ntickers: []\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func TestLoadConfigVersionMismatch(t *testing.T) {
	path := writeConfig(t, "version: v2.0.0\ntickers: [AAPL]\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidVersion))
}

func TestLoadConfigInvalidIndicatorSection(t *testing.T) {
	path := writeConfig(t, `version: v1.0.0
tickers: [AAPL]
indicator:
  sma_short_window: 50
  sma_long_window: 20
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := writeConfig(t, "tickers: [unclosed\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestGenerateSchemaJSON(t *testing.T) {
	cfg := DefaultConfig()

	schemaJSON, err := cfg.GenerateSchemaJSON()
	require.NoError(t, err)

	assert.Contains(t, schemaJSON, "tickers")
	assert.Contains(t, schemaJSON, "screener-config")
	assert.Contains(t, schemaJSON, "sma_short_window")
}
