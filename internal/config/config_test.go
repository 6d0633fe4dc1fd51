package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/refocus/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(config.New(), "")
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), cfg)

	engine := cfg.EngineConfig()
	assert.Equal(t, 20, engine.Rows)
	assert.Equal(t, 10, engine.Cols)
	assert.Equal(t, time.Second, engine.GravityInterval)

	assert.Equal(t, 20*time.Minute, cfg.RoundConfig().Target)
	assert.Equal(t, 30, cfg.ProtocolSettings().ReactivationSec)
	assert.NoError(t, cfg.ProtocolSettings().Validate())
}

func TestLoadLayers(t *testing.T) {
	path := writeFile(t, "refocus.yaml", `
engine:
  rows: 16
  cols: 8
  gravity_ms: 700
  seed: 42
session:
  reactivation_sec: 40
log:
  level: debug
`)

	t.Setenv("REFOCUS_ENGINE_COLS", "12")
	t.Setenv("REFOCUS_UI_DEBUG", "true")

	v := config.New()
	v.Set("engine.rows", 18) // stands in for a bound flag

	cfg, err := config.Load(v, path)
	require.NoError(t, err)

	assert.Equal(t, 18, cfg.Engine.Rows, "flag beats file")
	assert.Equal(t, 12, cfg.Engine.Cols, "env beats file")
	assert.Equal(t, 700, cfg.Engine.GravityMs, "file beats default")
	assert.Equal(t, uint64(42), cfg.Engine.Seed)
	assert.Equal(t, 40, cfg.Session.ReactivationSec)
	assert.Equal(t, 20, cfg.Session.TargetMin, "default kept")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.UI.Debug)
	assert.Equal(t, 700*time.Millisecond, cfg.EngineConfig().GravityInterval)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(config.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeFile(t, "bad.yaml", "engine:\n  rows: 2\n")

	_, err := config.Load(config.New(), path)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
		field  string
	}{
		{"rows", func(c *config.Config) { c.Engine.Rows = 3 }, "engine.rows"},
		{"cols", func(c *config.Config) { c.Engine.Cols = 0 }, "engine.cols"},
		{"gravity", func(c *config.Config) { c.Engine.GravityMs = 0 }, "engine.gravity_ms"},
		{"reactivation", func(c *config.Config) { c.Session.ReactivationSec = 25 }, "session.reactivation_sec"},
		{"target", func(c *config.Config) { c.Session.TargetMin = -1 }, "session.target_min"},
		{"cell size", func(c *config.Config) { c.UI.CellSize = 0 }, "ui.cell_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			tt.modify(&cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, config.ErrInvalid)
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	assert.NoError(t, config.Defaults().Validate())
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := config.Defaults()
	cfg.Engine.Rows = 1
	cfg.Engine.Cols = 1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine.rows")
	assert.Contains(t, err.Error(), "engine.cols")
}
