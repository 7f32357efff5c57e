package trainer

// HighScores maps each level to the best final score recorded at it.
type HighScores map[Level]int

// NewHighScores returns a table with every level at zero.
func NewHighScores() HighScores {
	hs := make(HighScores, len(levelTable))
	for _, l := range Levels() {
		hs[l] = 0
	}
	return hs
}

// Normalize returns a complete copy: unknown levels are dropped, missing
// levels become zero and negative scores are clamped to zero.
func (hs HighScores) Normalize() HighScores {
	out := NewHighScores()
	for l, score := range hs {
		if !l.Valid() {
			continue
		}
		out[l] = max(score, 0)
	}
	return out
}

// Clone returns an independent copy.
func (hs HighScores) Clone() HighScores {
	out := make(HighScores, len(hs))
	for l, score := range hs {
		out[l] = score
	}
	return out
}

// Record returns the best score for a level, zero if none.
func (hs HighScores) Record(l Level) int {
	return hs[l]
}

// Offer stores score as the new record for l if it beats the current one.
// It reports whether the table changed.
func (hs HighScores) Offer(l Level, score int) bool {
	if score <= hs[l] {
		return false
	}
	hs[l] = score
	return true
}

// ScoreStore persists the high score table. Load is called once at startup,
// Save at most once per session.
type ScoreStore interface {
	Load() (HighScores, error)
	Save(HighScores) error
}

// MemoryStore keeps the table in memory. It is used when persistence is
// unavailable and in tests.
type MemoryStore struct {
	Scores HighScores
	Saves  int
	Err    error // Returned from Save when set
}

// Load implements ScoreStore.
func (m *MemoryStore) Load() (HighScores, error) {
	if m.Scores == nil {
		return NewHighScores(), nil
	}
	return m.Scores.Normalize(), nil
}

// Save implements ScoreStore.
func (m *MemoryStore) Save(hs HighScores) error {
	if m.Err != nil {
		return m.Err
	}
	m.Scores = hs.Clone()
	m.Saves++
	return nil
}
