package trainer

import (
	"fmt"

	"github.com/vovakirdan/tui-reflex/internal/core"
)

// SessionHits is the number of hits that completes a session.
const SessionHits = 10

// State is the session machine state.
type State int

const (
	StateStart State = iota
	StatePlaying
	StateEnd
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StatePlaying:
		return "playing"
	case StateEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Summary is the report for a finished session.
type Summary struct {
	Score          int
	Hits           int
	MeanReaction   float64 // Seconds
	BestReaction   float64 // Seconds
	ReactionTimes  []float64
	Level          Level // Level reached
	NewRecord      bool
	PreviousRecord int // Record for Level before this session
}

// Options configures a Machine.
type Options struct {
	Width      int        // Playfield width in playfield units
	Height     int        // Playfield height in playfield units
	Radius     int        // Target radius in playfield units
	Seed       int64      // Target placement seed
	CarryLevel bool       // Start each session at the last level reached
	Scores     HighScores // Initial high score table; nil means all zero
	Store      ScoreStore // Where new records are flushed; nil keeps them in memory
	Notifier   Notifier   // Event sink; nil discards
}

// Machine is the session state machine. It owns every piece of mutable game
// state; the presentation layer reads it through Snapshot.
type Machine struct {
	state      State
	width      int
	height     int
	radius     int
	carryLevel bool

	gen       *Generator
	stats     Stats
	target    Target
	hasTarget bool
	lastLevel Level
	summary   *Summary

	scores   HighScores
	store    ScoreStore
	notifier Notifier
}

// New creates a machine in the Start state. It fails when the playfield
// cannot hold a target of the configured radius.
func New(opts Options) (*Machine, error) {
	if err := ValidatePlayfield(opts.Width, opts.Height, opts.Radius); err != nil {
		return nil, err
	}

	scores := opts.Scores.Normalize()
	notifier := opts.Notifier
	if notifier == nil {
		notifier = discard{}
	}

	return &Machine{
		state:      StateStart,
		width:      opts.Width,
		height:     opts.Height,
		radius:     opts.Radius,
		carryLevel: opts.CarryLevel,
		gen:        NewGenerator(opts.Seed),
		stats:      NewStats(Apprentice),
		lastLevel:  Apprentice,
		scores:     scores,
		store:      opts.Store,
		notifier:   notifier,
	}, nil
}

// LoadHighScores reads the table from store. The returned table is always
// usable: on error it is all zero and the error says why.
func LoadHighScores(store ScoreStore) (HighScores, error) {
	if store == nil {
		return NewHighScores(), nil
	}
	hs, err := store.Load()
	if err != nil {
		return NewHighScores(), fmt.Errorf("trainer: load high scores: %w", err)
	}
	return hs.Normalize(), nil
}

// State returns the current machine state.
func (m *Machine) State() State {
	return m.state
}

// Stats returns a copy of the current session record.
func (m *Machine) Stats() Stats {
	return m.stats.Clone()
}

// HighScores returns a copy of the high score table.
func (m *Machine) HighScores() HighScores {
	return m.scores.Clone()
}

// Target returns the active target, if any.
func (m *Machine) Target() (Target, bool) {
	return m.target, m.hasTarget
}

// Radius returns the target radius in playfield units.
func (m *Machine) Radius() int {
	return m.radius
}

// Summary returns the report of the last finished session, or nil.
func (m *Machine) Summary() *Summary {
	return m.summary
}

// ResetSession clears session-scoped state and returns to Start. The high
// score table and the difficulty table are untouched.
func (m *Machine) ResetSession() {
	level := Apprentice
	if m.carryLevel {
		level = m.lastLevel
	}
	m.stats = NewStats(level)
	m.target = Target{}
	m.hasTarget = false
	m.summary = nil
	m.state = StateStart
}

// Start begins a session from Start, or resets and begins a new one from End.
// It is ignored while a session is being played.
func (m *Machine) Start(nowMs int64) {
	if m.state == StatePlaying {
		return
	}
	m.ResetSession()
	m.state = StatePlaying
	m.spawn(nowMs)
}

// PointerDown handles a click at pos, in playfield units. It reports whether
// the click hit the active target. Clicks outside Playing are ignored.
func (m *Machine) PointerDown(pos core.Point, nowMs int64) bool {
	if m.state != StatePlaying {
		return false
	}

	if !m.hasTarget || !IsHit(pos, m.target, m.radius) {
		delta := m.stats.OnMiss()
		m.notifier.Notify(Event{Kind: EventMiss, Level: m.stats.Level, Delta: delta})
		return false
	}

	reaction := float64(max(m.target.AgeMs(nowMs), 0)) / 1000
	delta, promoted := m.stats.OnHit(reaction)
	m.hasTarget = false

	m.notifier.Notify(Event{Kind: EventHit, Level: m.stats.Level, Delta: delta, Reaction: reaction})
	if promoted {
		m.notifier.Notify(Event{Kind: EventLevelUp, Level: m.stats.Level})
	}

	if m.stats.Hits >= SessionHits {
		m.finish()
	} else {
		m.spawn(nowMs)
	}
	return true
}

// Tick polls the target lifetime. An expired target changes no score; it is
// replaced, or the session ends if the hit count has been reached.
func (m *Machine) Tick(nowMs int64) {
	if m.state != StatePlaying {
		return
	}

	if m.hasTarget {
		if m.target.AgeMs(nowMs) <= m.stats.Level.Params().LifetimeMs {
			return
		}
		m.hasTarget = false
		m.notifier.Notify(Event{Kind: EventExpired, Level: m.stats.Level})
	}

	if m.stats.Hits >= SessionHits {
		m.finish()
		return
	}
	m.spawn(nowMs)
}

// SetPlayfield changes the playfield size, e.g. after a terminal resize. An
// active target that no longer fits is moved; its spawn time is kept so the
// player gains no extra time.
func (m *Machine) SetPlayfield(width, height int) error {
	if err := ValidatePlayfield(width, height, m.radius); err != nil {
		return err
	}
	m.width = width
	m.height = height

	if m.hasTarget && !m.fits(m.target.Pos) {
		m.target = m.gen.Generate(m.width, m.height, m.radius, m.target.SpawnMs)
	}
	return nil
}

// Playfield returns the playfield size in playfield units.
func (m *Machine) Playfield() (width, height int) {
	return m.width, m.height
}

func (m *Machine) fits(p core.Point) bool {
	return p.X >= m.radius && p.X <= m.width-m.radius &&
		p.Y >= m.radius && p.Y <= m.height-m.radius
}

func (m *Machine) spawn(nowMs int64) {
	m.target = m.gen.Generate(m.width, m.height, m.radius, nowMs)
	m.hasTarget = true
}

// finish enters End: builds the summary, updates and flushes the record, and
// notifies.
func (m *Machine) finish() {
	m.state = StateEnd
	m.hasTarget = false
	m.lastLevel = m.stats.Level

	level := m.stats.Level
	summary := &Summary{
		Score:          m.stats.Score,
		Hits:           m.stats.Hits,
		MeanReaction:   m.stats.MeanReaction(),
		BestReaction:   m.stats.BestReaction(),
		ReactionTimes:  append([]float64(nil), m.stats.ReactionTimes...),
		Level:          level,
		PreviousRecord: m.scores.Record(level),
	}
	summary.NewRecord = m.scores.Offer(level, summary.Score)
	m.summary = summary

	var saveErr error
	if summary.NewRecord && m.store != nil {
		saveErr = m.store.Save(m.scores.Clone())
	}

	m.notifier.Notify(Event{Kind: EventSessionComplete, Level: level, Summary: summary})
	if summary.NewRecord {
		m.notifier.Notify(Event{Kind: EventNewRecord, Level: level, Summary: summary})
	}
	if saveErr != nil {
		m.notifier.Notify(Event{Kind: EventSaveFailed, Level: level, Err: saveErr})
	}
}
