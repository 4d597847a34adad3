package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "trackpoint.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"shown_points": 8, "csv_separator": ";", "export_seconds": false}`), 0o644))

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.ShownPoints)
	assert.Equal(t, ';', cfg.Separator())
	assert.False(t, cfg.ExportSeconds)
	assert.Equal(t, DefaultConfig().PlotWidth, cfg.PlotWidth)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TRACKPOINT_SHOWN_POINTS", "2")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.ShownPoints)
}

func TestLoad_BadJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"shown_points": `), 0o644))
	cfg, err := Load(p)
	require.Error(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestValidate_Clamps(t *testing.T) {
	cfg := &Config{LogLevel: "LOUD", ShownPoints: -3, CSVSeparator: ";;", PlotWidth: 10}
	require.NoError(t, cfg.Validate())
	d := DefaultConfig()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, d.ShownPoints, cfg.ShownPoints)
	assert.Equal(t, ",", cfg.CSVSeparator)
	assert.Equal(t, d.PlotWidth, cfg.PlotWidth)
	assert.Equal(t, d.PointRadius, cfg.PointRadius)
	assert.Equal(t, d.Unit, cfg.Unit)
}

func TestValidate_Separator(t *testing.T) {
	for _, sep := range []string{";", "\t", "|", " ", "§"} {
		cfg := DefaultConfig()
		cfg.CSVSeparator = sep
		require.NoError(t, cfg.Validate())
		assert.Equal(t, sep, cfg.CSVSeparator)
	}
	for _, sep := range []string{"", ".", "-", "+", "e", "E", "0", "7", "\"", "\n", "\r", ",,"} {
		cfg := DefaultConfig()
		cfg.CSVSeparator = sep
		require.NoError(t, cfg.Validate())
		assert.Equal(t, ",", cfg.CSVSeparator, "separator %q", sep)
	}
}

func TestSaveThenLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "saved.json")
	cfg := DefaultConfig()
	cfg.ShownPoints = 12
	cfg.Unit = "cm"
	require.NoError(t, cfg.Save(p))

	loaded, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSlogLevel(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	cfg.LogLevel = "warn"
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
	cfg.LogLevel = "error"
	assert.Equal(t, slog.LevelError, cfg.SlogLevel())
	cfg.Debug = true
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	var none *Config
	assert.Equal(t, slog.LevelInfo, none.SlogLevel())
}
