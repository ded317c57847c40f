package edits

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Store persists the full edit sequence as one JSON file, rewritten on every
// mutation. A mutex serializes read-modify-write cycles and writes go through
// a temp file plus rename, which keeps the single-writer contract while
// surviving a crash mid-write. Concurrent processes are out of scope; the
// last writer wins.
type Store struct {
	path   string
	logger *slog.Logger

	mu  sync.Mutex
	now func() time.Time
}

// NewStore creates a store backed by the given JSON file. The file does not
// need to exist yet.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger, now: time.Now}
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Load returns every edit in storage order. A missing or unreadable store is
// an empty ledger, not an error.
func (s *Store) Load() []Edit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() []Edit {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("edit store unreadable, starting from empty ledger",
				slog.String("path", s.path), slog.Any("error", err))
		}
		return nil
	}
	var all []Edit
	if err := json.Unmarshal(data, &all); err != nil {
		s.logger.Warn("edit store corrupt, starting from empty ledger",
			slog.String("path", s.path), slog.Any("error", err))
		return nil
	}
	return all
}

// Update applies fn to the stored sequence and writes the result back. The
// whole cycle runs under the store lock. Write failures propagate so a
// caller never believes an unsaved edit was persisted.
func (s *Store) Update(fn func([]Edit) []Edit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(fn(s.load()))
}

func (s *Store) save(all []Edit) error {
	if all == nil {
		all = []Edit{}
	}
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode edit ledger: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create ledger directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".edits-*.json")
	if err != nil {
		return fmt.Errorf("could not create temp ledger file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("could not write edit ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not write edit ledger: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not replace edit ledger: %w", err)
	}
	return nil
}

func (s *Store) timestamp() string {
	return s.now().Format(TimestampLayout)
}
