package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reflex/internal/config"
	"github.com/vovakirdan/tui-reflex/internal/trainer"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent sessions and per-level stats",
	Long: `Display finished sessions and per-level aggregates from the sqlite
database. High scores are kept when history is cleared.

Examples:
  reflex history
  reflex history --limit 25
  reflex history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of recent sessions to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete all recorded sessions")
}

func runHistory(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig(cmd)
	if cfg.Storage.Backend != config.BackendSQLite {
		fmt.Fprintf(os.Stderr, "Error: session history needs the sqlite backend (have %q)\n", cfg.Storage.Backend)
		os.Exit(1)
	}

	store, err := openBackend(cfg.Storage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	db := store.history

	if flagHistoryClear {
		if err := db.ClearHistory(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			return
		}
		fmt.Println("Session history cleared.")
		return
	}

	stats, err := db.GetLevelStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}
	sessions, err := db.RecentSessions(flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		return
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'reflex play' to record the first one!")
		return
	}

	fmt.Println("Per-level stats")
	fmt.Println()
	fmt.Printf("  %-12s  %-8s  %-8s  %-8s  %-8s  %s\n", "Level", "Played", "Best", "Avg", "Mean", "Fastest")
	fmt.Printf("  %-12s  %-8s  %-8s  %-8s  %-8s  %s\n", "-----", "------", "----", "---", "----", "-------")
	for _, lvl := range trainer.Levels() {
		st, ok := stats[lvl]
		if !ok {
			continue
		}
		fmt.Printf("  %-12s  %-8d  %-8d  %-8.0f  %-8s  %.2fs\n",
			lvl, st.Sessions, st.HighScore, st.AvgScore,
			fmt.Sprintf("%.2fs", st.AvgReaction), st.BestReaction)
	}

	fmt.Println()
	fmt.Println("Recent sessions")
	fmt.Println()
	fmt.Printf("  %-16s  %-12s  %-6s  %-8s  %s\n", "Date", "Level", "Score", "Mean", "Best")
	fmt.Printf("  %-16s  %-12s  %-6s  %-8s  %s\n", "----", "-----", "-----", "----", "----")
	for _, s := range sessions {
		mark := ""
		if s.NewRecord {
			mark = "  *"
		}
		fmt.Printf("  %-16s  %-12s  %-6d  %-8s  %.2fs%s\n",
			s.CreatedAt.Format("2006-01-02 15:04"), s.Level, s.Score,
			fmt.Sprintf("%.2fs", s.MeanReaction), s.BestReaction, mark)
	}
}
