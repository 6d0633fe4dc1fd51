// Package config loads refocus settings with viper. Values are layered as
// defaults, then an optional config file, then REFOCUS_* environment
// variables, then any flags the caller bound to the returned viper instance.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/plus3/refocus/protocol"
	"github.com/plus3/refocus/session"
	"github.com/plus3/refocus/tetris"
)

// EnvPrefix prefixes every environment override, e.g. REFOCUS_ENGINE_ROWS.
const EnvPrefix = "REFOCUS"

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Engine  EngineConf  `mapstructure:"engine"`
	Session SessionConf `mapstructure:"session"`
	Log     LogConf     `mapstructure:"log"`
	UI      UIConf      `mapstructure:"ui"`
}

type EngineConf struct {
	Rows      int    `mapstructure:"rows"`
	Cols      int    `mapstructure:"cols"`
	GravityMs int    `mapstructure:"gravity_ms"`
	Seed      uint64 `mapstructure:"seed"`
}

type SessionConf struct {
	TargetMin       int    `mapstructure:"target_min"`
	ReactivationSec int    `mapstructure:"reactivation_sec"`
	EmergencyNote   string `mapstructure:"emergency_note"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

type UIConf struct {
	CellSize int  `mapstructure:"cell_size"`
	Debug    bool `mapstructure:"debug"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Engine: EngineConf{
			Rows:      tetris.DefaultRows,
			Cols:      tetris.DefaultCols,
			GravityMs: int(tetris.DefaultGravityInterval / time.Millisecond),
		},
		Session: SessionConf{
			TargetMin:       protocol.DefaultTetrisTargetMin,
			ReactivationSec: protocol.DefaultReactivationSec,
		},
		Log: LogConf{Level: "info"},
		UI:  UIConf{CellSize: 28},
	}
}

// New returns a viper instance with defaults and environment overrides
// installed. Callers bind their flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	d := Defaults()
	v.SetDefault("engine.rows", d.Engine.Rows)
	v.SetDefault("engine.cols", d.Engine.Cols)
	v.SetDefault("engine.gravity_ms", d.Engine.GravityMs)
	v.SetDefault("engine.seed", d.Engine.Seed)
	v.SetDefault("session.target_min", d.Session.TargetMin)
	v.SetDefault("session.reactivation_sec", d.Session.ReactivationSec)
	v.SetDefault("session.emergency_note", d.Session.EmergencyNote)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("ui.cell_size", d.UI.CellSize)
	v.SetDefault("ui.debug", d.UI.Debug)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads configFile into v when it is non-empty, decodes the merged
// settings and validates them.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks board size, gravity, reactivation and the round target.
func (c Config) Validate() error {
	var errs []error

	if c.Engine.Rows < 4 {
		errs = append(errs, fmt.Errorf("%w: engine.rows must be at least 4, got %d", ErrInvalid, c.Engine.Rows))
	}
	if c.Engine.Cols < 4 {
		errs = append(errs, fmt.Errorf("%w: engine.cols must be at least 4, got %d", ErrInvalid, c.Engine.Cols))
	}
	if c.Engine.GravityMs <= 0 {
		errs = append(errs, fmt.Errorf("%w: engine.gravity_ms must be positive, got %d", ErrInvalid, c.Engine.GravityMs))
	}
	if !slices.Contains(protocol.ReactivationChoices, c.Session.ReactivationSec) {
		errs = append(errs, fmt.Errorf("%w: session.reactivation_sec must be one of %v, got %d",
			ErrInvalid, protocol.ReactivationChoices, c.Session.ReactivationSec))
	}
	if c.Session.TargetMin <= 0 {
		errs = append(errs, fmt.Errorf("%w: session.target_min must be positive, got %d", ErrInvalid, c.Session.TargetMin))
	}
	if c.UI.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: ui.cell_size must be positive, got %d", ErrInvalid, c.UI.CellSize))
	}

	return errors.Join(errs...)
}

// EngineConfig converts the engine section.
func (c Config) EngineConfig() tetris.Config {
	return tetris.Config{
		Rows:            c.Engine.Rows,
		Cols:            c.Engine.Cols,
		GravityInterval: time.Duration(c.Engine.GravityMs) * time.Millisecond,
		Seed:            c.Engine.Seed,
	}
}

// RoundConfig builds the round driver configuration.
func (c Config) RoundConfig() session.RoundConfig {
	return session.RoundConfig{
		Engine: c.EngineConfig(),
		Target: time.Duration(c.Session.TargetMin) * time.Minute,
	}
}

// ProtocolSettings builds the session flow settings.
func (c Config) ProtocolSettings() protocol.Settings {
	return protocol.Settings{
		ReactivationSec: c.Session.ReactivationSec,
		TetrisTargetMin: c.Session.TargetMin,
		EmergencyNote:   c.Session.EmergencyNote,
	}
}
