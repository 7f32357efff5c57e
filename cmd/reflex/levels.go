package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reflex/internal/trainer"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show the difficulty table",
	Long:  `Shows each level with its target lifetime, base points and promotion score.`,
	Args:  cobra.NoArgs,
	Run:   runLevels,
}

func runLevels(cmd *cobra.Command, args []string) {
	fmt.Println("Levels:")
	fmt.Println()

	fmt.Printf("  %-12s  %-9s  %-6s  %s\n", "Level", "Lifetime", "Points", "Promotes at")
	fmt.Printf("  %-12s  %-9s  %-6s  %s\n", "-----", "--------", "------", "-----------")

	for _, lvl := range trainer.Levels() {
		p := lvl.Params()
		promote := "-"
		if next := lvl.Next(); next != lvl {
			promote = fmt.Sprintf("%d (%s)", promotionScore(next), next)
		}
		fmt.Printf("  %-12s  %-9s  %-6d  %s\n", lvl, fmt.Sprintf("%.1fs", float64(p.LifetimeMs)/1000), p.BasePoints, promote)
	}

	fmt.Println()
	fmt.Printf("A session ends after %d hits. Each miss costs %d points.\n", trainer.SessionHits, trainer.MissPenalty)
	fmt.Println("Run 'reflex play' to start.")
}

func promotionScore(l trainer.Level) int {
	if l == trainer.Master {
		return trainer.MasterScore
	}
	return trainer.KnightScore
}
