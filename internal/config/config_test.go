package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, expected nil", err)
	}
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded default = %+v, expected %+v", cfg, Default())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{"default", func(*Config) {}, true},
		{"zero radius", func(c *Config) { c.Playfield.TargetRadius = 0 }, false},
		{"negative radius", func(c *Config) { c.Playfield.TargetRadius = -1 }, false},
		{"zero tick rate", func(c *Config) { c.Playfield.TickRate = 0 }, false},
		{"volume above one", func(c *Config) { c.Audio.Volume = 1.5 }, false},
		{"negative volume", func(c *Config) { c.Audio.Volume = -0.1 }, false},
		{"silent", func(c *Config) { c.Audio.Volume = 0 }, true},
		{"records backend", func(c *Config) { c.Storage.Backend = "records" }, true},
		{"memory backend", func(c *Config) { c.Storage.Backend = "memory" }, true},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "redis" }, false},
		{"unknown log level", func(c *Config) { c.Log.Level = "chatty" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestLoadFileYAMLPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reflex.yaml")
	content := "playfield:\n  target_radius: 5\nsession:\n  carry_level: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Playfield.TargetRadius != 5 {
		t.Errorf("TargetRadius = %d, expected 5", cfg.Playfield.TargetRadius)
	}
	if !cfg.Session.CarryLevel {
		t.Error("CarryLevel should be true")
	}
	// Untouched keys keep their defaults
	if cfg.Playfield.TickRate != 60 || cfg.Storage.Backend != BackendSQLite {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadFileNormalizesCase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reflex.yaml")
	content := "storage:\n  backend: SQLite\nlog:\n  level: \" DEBUG \"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("Backend = %q, expected %q", cfg.Storage.Backend, BackendSQLite)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, expected %q", cfg.Log.Level, "debug")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, expected nil", err)
	}
}

func TestNormalize(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = "Records"
	cfg.Log.Level = "WARN"
	cfg.Normalize()
	if cfg.Storage.Backend != BackendRecords || cfg.Log.Level != "warn" {
		t.Errorf("Normalize() left %q / %q", cfg.Storage.Backend, cfg.Log.Level)
	}
}

func TestLoadFileTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reflex.toml")
	content := `
[audio]
enabled = false
volume = 0.25

[storage]
backend = "records"
records_path = "/tmp/records.json"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Audio.Enabled || cfg.Audio.Volume != 0.25 {
		t.Errorf("Audio = %+v, expected disabled at 0.25", cfg.Audio)
	}
	if cfg.Storage.Backend != BackendRecords || cfg.Storage.RecordsPath != "/tmp/records.json" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if cfg.Playfield.TargetRadius != 3 {
		t.Errorf("TargetRadius = %d, expected default 3", cfg.Playfield.TargetRadius)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() with missing custom path should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("playfield: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(bad)
	if err == nil {
		t.Error("Load() with malformed file should fail")
	}
	if cfg != Default() {
		t.Error("failed Load() should return the defaults")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in, expected string
	}{
		{"~/.reflex/reflex.log", filepath.Join(home, ".reflex", "reflex.log")},
		{"/var/log/reflex.log", "/var/log/reflex.log"},
		{"relative.log", "relative.log"},
	}
	for _, tt := range tests {
		got, err := ExpandHome(tt.in)
		if err != nil {
			t.Fatalf("ExpandHome(%q) error: %v", tt.in, err)
		}
		if got != tt.expected {
			t.Errorf("ExpandHome(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}
