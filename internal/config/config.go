// Package config provides YAML (or TOML) configuration loading for the
// reflex trainer.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Storage backends.
const (
	BackendSQLite  = "sqlite"
	BackendRecords = "records"
	BackendMemory  = "memory"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Config contains all configuration for the trainer.
type Config struct {
	Playfield PlayfieldConfig `yaml:"playfield" toml:"playfield"`
	Session   SessionConfig   `yaml:"session" toml:"session"`
	Audio     AudioConfig     `yaml:"audio" toml:"audio"`
	Storage   StorageConfig   `yaml:"storage" toml:"storage"`
	Log       LogConfig       `yaml:"log" toml:"log"`
}

// PlayfieldConfig defines target geometry and timing.
type PlayfieldConfig struct {
	TargetRadius int `yaml:"target_radius" toml:"target_radius"` // Playfield units
	TickRate     int `yaml:"tick_rate" toml:"tick_rate"`         // Ticks per second
}

// SessionConfig defines session policy.
type SessionConfig struct {
	CarryLevel bool  `yaml:"carry_level" toml:"carry_level"` // Start at the last level reached
	Seed       int64 `yaml:"seed" toml:"seed"`               // 0 = time-based
}

// AudioConfig defines sound cue settings.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled" toml:"enabled"`
	Volume  float64 `yaml:"volume" toml:"volume"` // 0.0 to 1.0
}

// StorageConfig selects where high scores and history go.
type StorageConfig struct {
	Backend     string `yaml:"backend" toml:"backend"` // sqlite, records or memory
	DBPath      string `yaml:"db_path" toml:"db_path"`
	RecordsPath string `yaml:"records_path" toml:"records_path"`
}

// LogConfig defines log output.
type LogConfig struct {
	Level string `yaml:"level" toml:"level"` // debug, info, warn, error
	File  string `yaml:"file" toml:"file"`
}

// Normalize lowercases the enumerated settings so later lookups can match
// them exactly.
func (c *Config) Normalize() {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if c.Playfield.TargetRadius <= 0 {
		return fmt.Errorf("%w: playfield.target_radius must be positive, got %d", ErrInvalid, c.Playfield.TargetRadius)
	}
	if c.Playfield.TickRate <= 0 {
		return fmt.Errorf("%w: playfield.tick_rate must be positive, got %d", ErrInvalid, c.Playfield.TickRate)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume must be within [0, 1], got %g", ErrInvalid, c.Audio.Volume)
	}
	switch strings.ToLower(c.Storage.Backend) {
	case BackendSQLite, BackendRecords, BackendMemory:
	default:
		return fmt.Errorf("%w: unknown storage.backend %q", ErrInvalid, c.Storage.Backend)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log.level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}
