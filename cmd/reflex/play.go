package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-reflex/internal/audio"
	"github.com/vovakirdan/tui-reflex/internal/core"
	"github.com/vovakirdan/tui-reflex/internal/platform/tui"
	"github.com/vovakirdan/tui-reflex/internal/trainer"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a session",
	Long: `Start the reflex trainer.

Controls:
  Mouse click  - Hit the target
  Space/Enter  - Start, or play again after a session
  H/Tab        - Toggle level table and high scores
  Ctrl+S       - Save a text screenshot
  Q/Esc        - Quit

A session ends after 10 hits. Scoring 1000 points promotes you to Knight,
2000 to Master. Targets live shorter and pay more on higher levels.

Examples:
  reflex play
  reflex play --seed 42 --mute
  reflex play --config ./reflex.toml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	if err := play(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func play(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.Log, true)
	if err != nil {
		return err
	}
	defer closeLog()

	// Get terminal size for the initial layout
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := openBackend(cfg.Storage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open score storage: %v\n", err)
		logger.Warn("could not open score storage, scores will not be kept", "backend", cfg.Storage.Backend, "error", err)
		// Continue without persistence - game still works
		store = backend{scores: &trainer.MemoryStore{}}
	}
	defer store.Close()

	scores, err := trainer.LoadHighScores(store.scores)
	if err != nil {
		logger.Warn("could not load high scores", "error", err)
	}

	opts := tui.Options{
		Trainer: trainer.Options{
			Radius:     cfg.Playfield.TargetRadius,
			CarryLevel: cfg.Session.CarryLevel,
			Scores:     scores,
			Store:      store.scores,
		},
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: cfg.Playfield.TickRate,
			Seed:     cfg.Session.Seed,
		},
		Logger: logger,
	}
	if store.history != nil {
		opts.History = store.history
	}

	if cfg.Audio.Enabled {
		player := audio.NewPlayer(cfg.Audio.Volume)
		if err := player.Initialize(); err != nil {
			logger.Warn("audio disabled", "error", err)
		} else {
			defer player.Close()
			opts.Audio = player
		}
	}

	logger.Info("starting", "backend", cfg.Storage.Backend, "width", width, "height", height, "seed", cfg.Session.Seed)
	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("running trainer: %w", err)
	}
	return nil
}
