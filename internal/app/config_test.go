package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "mt5_credentials.json", cfg.CredentialsPath())
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "csv", cfg.SaveFormat)
	assert.Equal(t, 365, cfg.DaysBack)
	assert.Equal(t, []string{"XAUUSD", "EURUSD"}, cfg.Instruments)
	assert.Equal(t, []string{"M5", "M10", "M15"}, cfg.Timeframes)
	assert.Zero(t, cfg.GatewayTimeout)
	assert.False(t, cfg.RunReport)

	tfs, err := cfg.TimeframeList()
	require.NoError(t, err)
	assert.Len(t, tfs, 3)
}

func TestLoadConfigYAMLThenEnv(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
data_dir: /var/lib/mt5
save_format: parquet
days_back: 30
instruments: [usdjpy]
timeframes: [m15]
gateway_timeout: 90s
run_report: true
`), 0o644))
	t.Setenv("CONFIG_FILE", p)
	t.Setenv("SAVE_FORMAT", "json")
	t.Setenv("INSTRUMENTS", "xauusd, eurusd ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/mt5", cfg.DataDir)
	assert.Equal(t, "json", cfg.SaveFormat)
	assert.Equal(t, 30, cfg.DaysBack)
	assert.Equal(t, []string{"XAUUSD", "EURUSD"}, cfg.Instruments)
	assert.Equal(t, []string{"M15"}, cfg.Timeframes)
	assert.Equal(t, 90*time.Second, cfg.GatewayTimeout)
	assert.True(t, cfg.RunReport)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("TIMEFRAMES", "M5,H1")
	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Timeframes")
}

func TestLoadConfigBadEnvNumber(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DAYS_BACK", "a year")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "DAYS_BACK")
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "read config")
}
