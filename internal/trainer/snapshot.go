package trainer

import "github.com/vovakirdan/tui-reflex/internal/core"

// Snapshot is a read-only view of the machine for one rendered frame.
type Snapshot struct {
	State       State
	Target      core.Point
	HasTarget   bool
	Radius      int
	Width       int
	Height      int
	Score       int
	Hits        int
	SessionHits int
	Level       Level
	TimeLeft    float64 // Fraction of the target lifetime remaining, 0..1
	HighScores  HighScores
	Summary     *Summary // Set in End
}

// Snapshot captures the machine state at nowMs.
func (m *Machine) Snapshot(nowMs int64) Snapshot {
	snap := Snapshot{
		State:       m.state,
		Target:      m.target.Pos,
		HasTarget:   m.hasTarget,
		Radius:      m.radius,
		Width:       m.width,
		Height:      m.height,
		Score:       m.stats.Score,
		Hits:        m.stats.Hits,
		SessionHits: SessionHits,
		Level:       m.stats.Level,
		HighScores:  m.scores.Clone(),
		Summary:     m.summary,
	}

	if m.state == StatePlaying && m.hasTarget {
		lifetime := m.stats.Level.Params().LifetimeMs
		remaining := lifetime - m.target.AgeMs(nowMs)
		snap.TimeLeft = core.ClampF(float64(remaining)/float64(lifetime), 0, 1)
	}

	return snap
}
