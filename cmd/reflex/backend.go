package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-reflex/internal/config"
	"github.com/vovakirdan/tui-reflex/internal/records"
	"github.com/vovakirdan/tui-reflex/internal/storage"
	"github.com/vovakirdan/tui-reflex/internal/trainer"
)

// backend bundles the high score store with the optional session history.
type backend struct {
	scores  trainer.ScoreStore
	history *storage.Store // Only set for the sqlite backend
}

// openBackend opens the store selected by cfg.
func openBackend(cfg config.StorageConfig) (backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			return backend{}, err
		}
		return backend{scores: store, history: store}, nil

	case config.BackendRecords:
		fs, err := records.New(cfg.RecordsPath)
		if err != nil {
			return backend{}, err
		}
		return backend{scores: fs}, nil

	case config.BackendMemory:
		return backend{scores: &trainer.MemoryStore{}}, nil
	}
	return backend{}, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

// Close releases the database, if any.
func (b backend) Close() {
	if b.history != nil {
		//nolint:errcheck // Nothing left to do on close failure
		b.history.Close()
	}
}

// newLogger creates the command logger. While playing the TUI owns the
// terminal, so the log goes to cfg.File instead of stderr. The returned
// function closes the file.
func newLogger(cfg config.LogConfig, toFile bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	out := os.Stderr
	closeFn := func() {}
	if toFile {
		path, err := config.ExpandHome(cfg.File)
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() {
			//nolint:errcheck // Best-effort close
			f.Close()
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "reflex",
		Level:           level,
	})
	return logger, closeFn, nil
}
