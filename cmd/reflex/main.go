// reflex is a terminal reflex trainer: click the targets before they vanish.
//
// Usage:
//
//	reflex                   - Play (same as reflex play)
//	reflex play              - Play a session
//	reflex scores [--tui]    - Show the high score table per level
//	reflex history           - Show recent sessions and per-level stats
//	reflex levels            - Show the difficulty table
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible targets
//	--config <path>     - Load config from a YAML or TOML file
//	--backend <name>    - Score storage: sqlite, records or memory
//	--db <path>         - Set database path (default: ~/.reflex/reflex.db)
//	--records <path>    - Set records file path (default: ~/.reflex/records.json)
//	--log-file <path>   - Set log file used while playing
//	--log-level <level> - debug, info, warn or error
//	--mute              - Disable sound cues
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reflex/internal/config"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagBackend  string
	flagDBPath   string
	flagRecords  string
	flagLogFile  string
	flagLogLevel string
	flagMute     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reflex",
	Short: "Reflex Trainer - click targets in your terminal",
	Long: `Reflex Trainer is a terminal reaction game. Targets appear at random
spots; click them with the mouse before they vanish. A session ends after
ten hits, and a high score is kept for every level.

Available commands:
  play     - Play a session (default)
  scores   - View high scores
  history  - View recent sessions and per-level stats
  levels   - Show the difficulty table

Examples:
  reflex
  reflex play --seed 42
  reflex scores --tui
  reflex history --limit 20
  reflex --backend records --records ./records.json`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagConfig, "config", "", "Path to config file (YAML or TOML)")
	pf.StringVar(&flagBackend, "backend", config.BackendSQLite, "Score storage: sqlite, records, memory")
	pf.StringVar(&flagDBPath, "db", "~/.reflex/reflex.db", "Path to scores database")
	pf.StringVar(&flagRecords, "records", "~/.reflex/records.json", "Path to records file")
	pf.StringVar(&flagLogFile, "log-file", "~/.reflex/reflex.log", "Log file used while playing")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.BoolVar(&flagMute, "mute", false, "Disable sound cues")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(levelsCmd)
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Playfield.TickRate = flagFPS
	}
	if flags.Changed("seed") {
		cfg.Session.Seed = flagSeed
	}
	if flags.Changed("backend") {
		cfg.Storage.Backend = flagBackend
	}
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}
	if flags.Changed("records") {
		cfg.Storage.RecordsPath = flagRecords
	}
	if flags.Changed("log-file") {
		cfg.Log.File = flagLogFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if flagMute {
		cfg.Audio.Enabled = false
	}
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// mustLoadConfig is loadConfig for commands that cannot continue without one.
func mustLoadConfig(cmd *cobra.Command) config.Config {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
