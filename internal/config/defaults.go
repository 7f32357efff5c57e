package config

import (
	_ "embed"
)

//go:embed defaults/reflex.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Playfield: PlayfieldConfig{
			TargetRadius: 3,
			TickRate:     60,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Storage: StorageConfig{
			Backend:     BackendSQLite,
			DBPath:      "~/.reflex/reflex.db",
			RecordsPath: "~/.reflex/records.json",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.reflex/reflex.log",
		},
	}
}
