package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.InputDir = t.TempDir()
	cfg.OutputDir = filepath.Join(t.TempDir(), "out")
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotEmpty(t, cfg.InputDir)
	assert.NotEmpty(t, cfg.OutputDir)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)

	// Heuristic overrides default to "keep the built-in value".
	assert.Empty(t, cfg.GroupKeyMarker)
	assert.Empty(t, cfg.TargetNames)
	assert.Zero(t, cfg.MinDigitDensity)
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg := validConfig(t)
	require.NoError(t, cfg.Validate())

	// Validate creates the output directory when missing.
	info, err := os.Stat(cfg.OutputDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty input dir",
			mutate:  func(c *Config) { c.InputDir = "" },
			wantErr: "input directory",
		},
		{
			name:    "missing input dir",
			mutate:  func(c *Config) { c.InputDir = filepath.Join(c.InputDir, "nope") },
			wantErr: "cannot access input directory",
		},
		{
			name:    "zero workers",
			mutate:  func(c *Config) { c.Workers = 0 },
			wantErr: "workers",
		},
		{
			name:    "negative lookback",
			mutate:  func(c *Config) { c.LookbackRows = -1 },
			wantErr: "lookback",
		},
		{
			name:    "digit density above one",
			mutate:  func(c *Config) { c.MinDigitDensity = 1.5 },
			wantErr: "digit density",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateRejectsFileAsInputDir(t *testing.T) {
	cfg := validConfig(t)
	file := filepath.Join(cfg.InputDir, "file.json")
	require.NoError(t, os.WriteFile(file, []byte("[]"), 0o600))
	cfg.InputDir = file

	assert.ErrorContains(t, cfg.Validate(), "not a directory")
}

func TestHeuristicConfigDefaults(t *testing.T) {
	cfg := validConfig(t)

	heur := cfg.HeuristicConfig()

	assert.Equal(t, "commodity", heur.GroupKeyMarker)
	assert.Equal(t, []string{"rice"}, heur.TargetNames)
	assert.Equal(t, []string{"corn", "wheat"}, heur.CompetingNames)
	assert.Equal(t, 15, heur.LookbackRows)
	assert.Equal(t, 100, heur.MaxCellLength)
	assert.InDelta(t, 0.02, heur.MinDigitDensity, 1e-9)
}

func TestHeuristicConfigOverrides(t *testing.T) {
	cfg := validConfig(t)
	cfg.GroupKeyMarker = "species"
	cfg.TargetNames = []string{"salmon"}
	cfg.CompetingNames = []string{"tuna"}
	cfg.LookbackRows = 8
	cfg.MaxCellLength = 60
	cfg.MinDigitDensity = 0.05

	heur := cfg.HeuristicConfig()

	assert.Equal(t, "species", heur.GroupKeyMarker)
	assert.Equal(t, []string{"salmon"}, heur.TargetNames)
	assert.Equal(t, []string{"tuna"}, heur.CompetingNames)
	assert.Equal(t, 8, heur.LookbackRows)
	assert.Equal(t, 60, heur.MaxCellLength)
	assert.InDelta(t, 0.05, heur.MinDigitDensity, 1e-9)

	// Untouched knobs keep their defaults.
	assert.Equal(t, 20, heur.HeaderScanRows)
	assert.Equal(t, 2, heur.StopWordLimit)
}

func TestIsDebug(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.IsDebug())

	cfg.LogLevel = "debug"
	assert.True(t, cfg.IsDebug())
}

func TestConfigString(t *testing.T) {
	cfg := validConfig(t)
	s := cfg.String()
	assert.Contains(t, s, cfg.InputDir)
	assert.Contains(t, s, cfg.OutputDir)
}
