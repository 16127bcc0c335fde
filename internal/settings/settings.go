// Package settings persists the single active-project selection across
// process restarts. The store owns one file with one recognized key,
// DEFAULT_PROJECT, and is the only writer of that file.
package settings

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/lc/rigconf/internal/filesys"
)

// Key is the single recognized settings key.
const Key = "DEFAULT_PROJECT"

// Store reads and writes the persisted default-project selection.
// Writes are serialized and performed via an atomic write-replace, so a
// crash mid-write never leaves the file in an unparseable state.
type Store struct {
	mu   sync.Mutex
	ops  filesys.FileOps
	path string
}

// NewStore returns a store over the given settings file path.
func NewStore(ops filesys.FileOps, path string) *Store {
	return &Store{ops: ops, path: path}
}

// Path returns the settings file location.
func (s *Store) Path() string { return s.path }

// Default returns the persisted default project name, or the empty string
// when it was never set. An unreadable or missing file degrades to unset
// rather than failing: callers fall back to their own default chain.
func (s *Store) Default() string {
	b, err := s.ops.ReadFile(s.path)
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(b), "\n") {
		if v, ok := strings.CutPrefix(line, Key+"="); ok {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// SetDefault persists name as the default project, overwriting any prior
// content. The write is durable before SetDefault returns.
func (s *Store) SetDefault(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ops.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	data := []byte(Key + "=" + name + "\n")
	if err := filesys.AtomicWrite(s.ops, s.path, data, 0o644); err != nil {
		return fmt.Errorf("persisting default project: %w", err)
	}
	return nil
}
