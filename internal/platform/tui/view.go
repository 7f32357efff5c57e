package tui

import (
	"fmt"
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/tui-reflex/internal/core"
	"github.com/vovakirdan/tui-reflex/internal/trainer"
)

const (
	targetRune = '█'
	barFull    = '█'
	barEmpty   = '░'
)

// drawFrame renders the whole frame for snap into s.
func drawFrame(s *core.Screen, l Layout, snap trainer.Snapshot, b banner, hasBanner, showLevels bool) {
	s.Clear()

	switch snap.State {
	case trainer.StateStart:
		drawStart(s, snap, showLevels)
		drawFooter(s, "SPACE start  h levels/records  q quit")
	case trainer.StatePlaying:
		drawHUD(s, snap, b, hasBanner)
		drawTarget(s, l, snap)
		drawFooter(s, "click the targets  q quit  ctrl+s screenshot")
	case trainer.StateEnd:
		drawEnd(s, snap, b, hasBanner)
		drawFooter(s, "SPACE play again  h levels/records  q quit")
	}
}

// drawTooSmall replaces the frame when the terminal cannot hold a target.
// Each line uses the longest variant that fits the width.
func drawTooSmall(s *core.Screen) {
	s.Clear()
	y := s.Height() / 2
	if title := fitText(s.Width(), "Terminal too small", "too small", "small", "!"); title != "" {
		s.DrawTextCenteredColored(y-1, title, core.ColorBrightRed)
	}
	if hint := fitText(s.Width(), "enlarge the window to keep playing", "enlarge window", "enlarge"); hint != "" {
		s.DrawTextCenteredColored(y, hint, core.ColorGray)
	}
}

// fitText returns the first candidate no wider than width, or "".
func fitText(width int, candidates ...string) string {
	for _, c := range candidates {
		if runewidth.StringWidth(c) <= width {
			return c
		}
	}
	return ""
}

type line struct {
	text  string
	color core.Color
}

// drawBlock draws lines centered on the screen, vertically and horizontally.
func drawBlock(s *core.Screen, lines []line) {
	y := max((s.Height()-footerRows-len(lines))/2, 0)
	for i, ln := range lines {
		if ln.text == "" {
			continue
		}
		s.DrawTextCenteredColored(y+i, ln.text, ln.color)
	}
}

func drawStart(s *core.Screen, snap trainer.Snapshot, showLevels bool) {
	lines := []line{
		{"REFLEX TRAINER", core.ColorGold},
		{},
		{"Click the targets as fast as you can.", core.ColorWhite},
		{fmt.Sprintf("A session ends after %d hits. Misses cost %d points.", snap.SessionHits, trainer.MissPenalty), core.ColorWhite},
		{fmt.Sprintf("Reach %d points for Knight and %d for Master.", trainer.KnightScore, trainer.MasterScore), core.ColorWhite},
		{},
		{"Level: " + snap.Level.String(), core.ColorCyan},
		{},
	}

	if showLevels {
		lines = append(lines, line{"LEVELS", core.ColorYellow})
		for _, lvl := range trainer.Levels() {
			p := lvl.Params()
			lines = append(lines, line{
				text:  fmt.Sprintf("%-12s %4.1fs  %3d pts", lvl, float64(p.LifetimeMs)/1000, p.BasePoints),
				color: core.ColorWhite,
			})
		}
	} else {
		lines = append(lines, line{"HIGH SCORES", core.ColorYellow})
		lines = append(lines, recordLines(snap.HighScores)...)
	}

	lines = append(lines, line{}, line{"Press SPACE to start", core.ColorBrightYellow})
	drawBlock(s, lines)
}

func recordLines(hs trainer.HighScores) []line {
	out := make([]line, 0, len(trainer.Levels()))
	for _, lvl := range trainer.Levels() {
		out = append(out, line{
			text:  fmt.Sprintf("%-12s %6d", lvl, hs.Record(lvl)),
			color: core.ColorWhite,
		})
	}
	return out
}

// drawHUD draws the status line and the time bar.
func drawHUD(s *core.Screen, snap trainer.Snapshot, b banner, hasBanner bool) {
	status := fmt.Sprintf(" Score: %d   Level: %s   Hits: %d/%d", snap.Score, snap.Level, snap.Hits, snap.SessionHits)
	s.DrawTextColored(0, 0, status, core.ColorWhite)

	if hasBanner {
		x := s.Width() - runewidth.StringWidth(b.text) - 1
		s.DrawTextColored(max(x, runewidth.StringWidth(status)+2), 0, b.text, b.color)
	}

	label := " Time "
	s.DrawTextColored(0, 1, label, core.ColorGray)
	barX := len(label)
	barW := s.Width() - barX - 1
	if barW <= 0 {
		return
	}
	filled := int(math.Round(snap.TimeLeft * float64(barW)))
	c := timeColor(snap.TimeLeft)
	s.DrawHLine(barX, 1, filled, barFull, c)
	s.DrawHLine(barX+filled, 1, barW-filled, barEmpty, core.ColorGray)
}

func timeColor(frac float64) core.Color {
	switch {
	case frac > 0.5:
		return core.ColorGreen
	case frac > 0.25:
		return core.ColorYellow
	default:
		return core.ColorRed
	}
}

// drawTarget fills every playfield cell whose centre is within the radius.
func drawTarget(s *core.Screen, l Layout, snap trainer.Snapshot) {
	if !snap.HasTarget {
		return
	}
	r := l.PlayfieldRect()
	rSq := snap.Radius * snap.Radius
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			d := l.CellCentre(x, y).DistSq(snap.Target)
			switch {
			case d*4 <= rSq:
				s.SetColored(x, y, targetRune, core.ColorBrightRed)
			case d <= rSq:
				s.SetColored(x, y, targetRune, core.ColorRed)
			}
		}
	}
}

func drawEnd(s *core.Screen, snap trainer.Snapshot, b banner, hasBanner bool) {
	sum := snap.Summary
	if sum == nil {
		return
	}

	lines := []line{
		{"SESSION COMPLETE", core.ColorGold},
		{},
		{fmt.Sprintf("Final score: %d", sum.Score), core.ColorWhite},
		{fmt.Sprintf("Hits: %d/%d", sum.Hits, snap.SessionHits), core.ColorWhite},
		{fmt.Sprintf("Mean reaction: %.2fs", sum.MeanReaction), core.ColorWhite},
		{fmt.Sprintf("Best reaction: %.2fs", sum.BestReaction), core.ColorWhite},
		{"Level reached: " + sum.Level.String(), core.ColorCyan},
		{},
	}

	if sum.NewRecord {
		lines = append(lines, line{"NEW RECORD!", core.ColorGold})
		if sum.PreviousRecord > 0 {
			lines = append(lines, line{fmt.Sprintf("previous best %d", sum.PreviousRecord), core.ColorGray})
		}
	} else {
		lines = append(lines, line{fmt.Sprintf("Record at %s: %d", sum.Level, snap.HighScores.Record(sum.Level)), core.ColorGray})
	}

	if hasBanner {
		lines = append(lines, line{b.text, b.color})
	}

	lines = append(lines, line{}, line{"Press SPACE to play again", core.ColorBrightYellow})
	drawBlock(s, lines)
}

func drawFooter(s *core.Screen, hint string) {
	s.DrawTextColored(1, s.Height()-1, hint, core.ColorGray)
}
