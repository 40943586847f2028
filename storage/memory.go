package storage

import "sync"

// MemoryStore keeps the session record in memory. Useful for tests and
// for embedders that supply their own persistence.
type MemoryStore struct {
	mu  sync.RWMutex
	rec Record
	set bool
}

// compile-time check
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the stored record, or ErrNotFound when absent.
func (s *MemoryStore) Load() (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set || s.rec.Token == "" || s.rec.User == "" {
		return Record{}, ErrNotFound
	}
	return s.rec, nil
}

// Save replaces the stored record wholesale.
func (s *MemoryStore) Save(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rec = rec
	s.set = true
	return nil
}

// Clear removes the stored record.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rec = Record{}
	s.set = false
	return nil
}
