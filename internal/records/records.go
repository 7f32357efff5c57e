// Package records persists the high score table as a small JSON file.
//
// The file maps level names to scores:
//
//	{"Apprentice": 0, "Knight": 0, "Master": 0}
//
// A missing file is a fresh install, not an error. A file that cannot be
// parsed still yields a zero table so the game can run; the error is returned
// alongside for the caller to log.
package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vovakirdan/tui-reflex/internal/trainer"
)

// DefaultPath is used when no path is configured.
const DefaultPath = "~/.reflex/records.json"

// FileStore reads and writes the high score table at Path.
type FileStore struct {
	Path string
}

// New returns a FileStore for path, expanding a leading ~.
func New(path string) (*FileStore, error) {
	if path == "" {
		path = DefaultPath
	}
	expanded, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	return &FileStore{Path: expanded}, nil
}

// Load implements trainer.ScoreStore.
func (f *FileStore) Load() (trainer.HighScores, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return trainer.NewHighScores(), nil
	}
	if err != nil {
		return trainer.NewHighScores(), fmt.Errorf("records: cannot read %s: %w", f.Path, err)
	}

	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return trainer.NewHighScores(), fmt.Errorf("records: malformed %s: %w", f.Path, err)
	}

	hs := trainer.NewHighScores()
	for name, score := range raw {
		level, err := trainer.ParseLevel(name)
		if err != nil {
			// Unknown keys are ignored
			continue
		}
		hs[level] = score
	}
	return hs.Normalize(), nil
}

// Save implements trainer.ScoreStore. The file is replaced atomically.
func (f *FileStore) Save(hs trainer.HighScores) error {
	out := make(map[string]int, len(hs))
	for level, score := range hs.Normalize() {
		out[level.String()] = score
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("records: cannot encode: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("records: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".records-*.json")
	if err != nil {
		return fmt.Errorf("records: cannot create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("records: cannot write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("records: cannot write: %w", err)
	}
	if err := os.Rename(tmpName, f.Path); err != nil {
		return fmt.Errorf("records: cannot replace %s: %w", f.Path, err)
	}
	return nil
}

var _ trainer.ScoreStore = (*FileStore)(nil)

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("records: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
