package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists the session record as a single JSON document.
// Writes go through a temp file and rename, so readers see either the
// previous record or the new one, never a torn write.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// compile-time check
var _ Store = (*FileStore)(nil)

// NewFileStore creates a file-backed store at path, creating parent
// directories as needed. The file itself is created on first Save.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("portal/storage: path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("portal/storage: create dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Load returns the stored record, or ErrNotFound when the file is
// missing, unreadable, malformed, or incomplete.
func (s *FileStore) Load() (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return Record{}, ErrNotFound
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, ErrNotFound
	}
	if rec.Token == "" || rec.User == "" {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Save replaces the stored record wholesale.
func (s *FileStore) Save(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("portal/storage: encode record: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("portal/storage: write record: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("portal/storage: commit record: %w", err)
	}
	return nil
}

// Clear removes the stored record.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("portal/storage: clear record: %w", err)
	}
	return nil
}
