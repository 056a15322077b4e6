// Package store persists the navigation stack's saved state between runs.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"pancakes/internal/bundle"
)

// StateFile is the snapshot file name inside the state directory.
const StateFile = "state.json"

// Store reads and writes the saved-state bundle.
// Layout: <state dir>/state.json
type Store struct {
	baseDir string
}

// NewStore creates a store rooted at dir. The directory is created on the
// first Save.
func NewStore(dir string) *Store {
	return &Store{baseDir: dir}
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return filepath.Join(s.baseDir, StateFile)
}

// Load reads the saved bundle. A missing file reports found=false with no error.
func (s *Store) Load() (b bundle.Bundle, found bool, err error) {
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read state: %w", err)
	}
	b, err = bundle.Unmarshal(data)
	if err != nil {
		return nil, false, fmt.Errorf("parse state %s: %w", s.Path(), err)
	}
	return b, true, nil
}

// Save writes b atomically: a temp file in the state directory renamed over
// the snapshot.
func (s *Store) Save(b bundle.Bundle) error {
	data, err := b.Marshal()
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.baseDir, StateFile+".*")
	if err != nil {
		return fmt.Errorf("create temp state: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path()); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

// Clear removes the snapshot. Clearing when nothing is saved is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.Path())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear state: %w", err)
	}
	return nil
}
