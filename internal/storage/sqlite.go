// Package storage provides SQLite-based persistence for high scores and
// session history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-reflex/internal/trainer"
)

// DefaultPath is the database location when none is configured.
const DefaultPath = "~/.reflex/reflex.db"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SessionEntry is one finished session as stored in the history.
type SessionEntry struct {
	ID           int64
	Level        trainer.Level
	Score        int
	Hits         int
	MeanReaction float64 // Seconds
	BestReaction float64 // Seconds
	NewRecord    bool
	CreatedAt    time.Time
}

// LevelStats contains aggregated history for one level.
type LevelStats struct {
	Level        trainer.Level
	Sessions     int
	HighScore    int
	AvgScore     float64
	AvgReaction  float64 // Seconds
	BestReaction float64 // Seconds
	LastPlayed   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		dbPath = DefaultPath
	}

	// Expand ~ to home directory
	if dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS high_scores (
			level TEXT PRIMARY KEY,
			score INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level TEXT NOT NULL,
			score INTEGER NOT NULL,
			hits INTEGER NOT NULL,
			mean_reaction_ms INTEGER NOT NULL,
			best_reaction_ms INTEGER NOT NULL,
			new_record INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_level ON sessions(level);
		CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at DESC);

		CREATE TABLE IF NOT EXISTS session_reactions (
			session_id INTEGER NOT NULL REFERENCES sessions(id),
			idx INTEGER NOT NULL,
			reaction_ms INTEGER NOT NULL,
			PRIMARY KEY (session_id, idx)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load implements trainer.ScoreStore. Rows for unknown levels are skipped.
func (s *Store) Load() (trainer.HighScores, error) {
	rows, err := s.db.Query(`SELECT level, score FROM high_scores`)
	if err != nil {
		return trainer.NewHighScores(), fmt.Errorf("storage: cannot query high scores: %w", err)
	}
	defer rows.Close()

	hs := trainer.NewHighScores()
	for rows.Next() {
		var name string
		var score int
		if err := rows.Scan(&name, &score); err != nil {
			return trainer.NewHighScores(), fmt.Errorf("storage: cannot scan high score: %w", err)
		}
		level, err := trainer.ParseLevel(name)
		if err != nil {
			continue
		}
		hs[level] = score
	}

	if err := rows.Err(); err != nil {
		return trainer.NewHighScores(), fmt.Errorf("storage: row iteration error: %w", err)
	}

	return hs.Normalize(), nil
}

// Save implements trainer.ScoreStore. The whole table is written in one
// transaction.
func (s *Store) Save(hs trainer.HighScores) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for level, score := range hs.Normalize() {
		_, err := tx.Exec(
			`INSERT INTO high_scores (level, score) VALUES (?, ?)
			 ON CONFLICT(level) DO UPDATE SET score = excluded.score`,
			level.String(), score,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save high score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit high scores: %w", err)
	}
	return nil
}

var _ trainer.ScoreStore = (*Store)(nil)

// SaveSession records a finished session and its reaction times.
// Returns the ID of the inserted session.
func (s *Store) SaveSession(sum trainer.Summary) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	result, err := tx.Exec(
		`INSERT INTO sessions (level, score, hits, mean_reaction_ms, best_reaction_ms, new_record)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sum.Level.String(), sum.Score, sum.Hits,
		toMillis(sum.MeanReaction), toMillis(sum.BestReaction), sum.NewRecord,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for i, rt := range sum.ReactionTimes {
		_, err := tx.Exec(
			`INSERT INTO session_reactions (session_id, idx, reaction_ms) VALUES (?, ?, ?)`,
			id, i, toMillis(rt),
		)
		if err != nil {
			return 0, fmt.Errorf("storage: cannot save reaction: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit session: %w", err)
	}
	return id, nil
}

// RecentSessions retrieves the last N sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level, score, hits, mean_reaction_ms, best_reaction_ms, new_record, created_at
		 FROM sessions
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var entries []SessionEntry
	for rows.Next() {
		var e SessionEntry
		var level string
		var meanMs, bestMs int64
		var createdAt any
		if err := rows.Scan(&e.ID, &level, &e.Score, &e.Hits, &meanMs, &bestMs, &e.NewRecord, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		lvl, err := trainer.ParseLevel(level)
		if err != nil {
			continue // Unknown level name
		}
		e.Level = lvl
		e.MeanReaction = fromMillis(meanMs)
		e.BestReaction = fromMillis(bestMs)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// SessionReactions returns the reaction times of one session in click order.
func (s *Store) SessionReactions(sessionID int64) ([]float64, error) {
	rows, err := s.db.Query(
		`SELECT reaction_ms FROM session_reactions WHERE session_id = ? ORDER BY idx`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query reactions: %w", err)
	}
	defer rows.Close()

	var out []float64
	for rows.Next() {
		var ms int64
		if err := rows.Scan(&ms); err != nil {
			return nil, fmt.Errorf("storage: cannot scan reaction: %w", err)
		}
		out = append(out, fromMillis(ms))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return out, nil
}

// GetLevelStats retrieves aggregated history for every level that has been
// played.
func (s *Store) GetLevelStats() (map[trainer.Level]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level, COUNT(*), MAX(score), AVG(score), AVG(mean_reaction_ms), MIN(best_reaction_ms), MAX(created_at)
		 FROM sessions
		 GROUP BY level`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[trainer.Level]*LevelStats)
	for rows.Next() {
		var ls LevelStats
		var name string
		var avgReactionMs float64
		var bestMs int64
		var lastPlayed any
		if err := rows.Scan(&name, &ls.Sessions, &ls.HighScore, &ls.AvgScore, &avgReactionMs, &bestMs, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}

		level, err := trainer.ParseLevel(name)
		if err != nil {
			continue
		}
		ls.Level = level
		ls.AvgReaction = avgReactionMs / 1000
		ls.BestReaction = fromMillis(bestMs)
		ls.LastPlayed = parseTime(lastPlayed)

		stats[level] = &ls
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearHistory removes all recorded sessions. High scores are kept.
func (s *Store) ClearHistory() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`DELETE FROM session_reactions`); err != nil {
		return fmt.Errorf("storage: cannot clear reactions: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM sessions`); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

func toMillis(seconds float64) int64 {
	return int64(math.Round(seconds * 1000))
}

func fromMillis(ms int64) float64 {
	return float64(ms) / 1000
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
