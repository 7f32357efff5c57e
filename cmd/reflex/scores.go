package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-reflex/internal/platform/tui"
	"github.com/vovakirdan/tui-reflex/internal/trainer"
)

var flagScoresTUI bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores per level",
	Long: `Display the best score recorded at each level.

With --tui an interactive scoreboard opens instead. On the sqlite backend
it also shows per-level averages and the most recent sessions.

Examples:
  reflex scores
  reflex scores --tui
  reflex scores --backend records`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
}

func runScores(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig(cmd)

	logger, _, err := newLogger(cfg.Log, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := openBackend(cfg.Storage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening score storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	scores, err := trainer.LoadHighScores(store.scores)
	if err != nil {
		logger.Warn("could not load high scores", "error", err)
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		var history tui.HistorySource
		if store.history != nil {
			history = store.history
		}
		if err := tui.RunScoreboard(scores, history, width, height); err != nil {
			logger.Error("scoreboard failed", "error", err)
		}
		return
	}

	fmt.Println("High Scores - Reflex Trainer")
	fmt.Println()
	fmt.Printf("  %-12s  %s\n", "Level", "Score")
	fmt.Printf("  %-12s  %s\n", "-----", "-----")

	empty := true
	for _, lvl := range trainer.Levels() {
		score := scores.Record(lvl)
		if score > 0 {
			empty = false
		}
		fmt.Printf("  %-12s  %d\n", lvl, score)
	}

	if empty {
		fmt.Println()
		fmt.Println("No scores recorded yet. Run 'reflex play' to set the first one!")
	}
}
