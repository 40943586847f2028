// Package storage provides the durable session store.
//
// The store holds exactly two string entries — the raw bearer token and
// the JSON-encoded user blob — mirroring an origin-scoped browser store.
// Both entries are written and cleared together; a partially present or
// unreadable record reports ErrNotFound so callers treat the session as
// absent and discard it.
package storage

import "errors"

// ErrNotFound indicates no complete session record is stored.
var ErrNotFound = errors.New("portal/storage: no session record")

// Record is one durable session entry: both fields present, or the
// record does not exist. Values are stored verbatim; interpretation
// (token structure, user blob schema) belongs to the session manager.
type Record struct {
	Token string `json:"token"`
	User  string `json:"user"`
}

// Store is the durable session store contract.
//
// The HTTP access layer reads it per-request; the session manager reads
// and writes it. Implementations must make Save all-or-nothing so no
// reader ever observes one entry without the other.
type Store interface {
	// Load returns the stored record, or ErrNotFound when absent or
	// incomplete.
	Load() (Record, error)

	// Save replaces the stored record wholesale.
	Save(rec Record) error

	// Clear removes the stored record. Clearing an empty store is not
	// an error.
	Clear() error
}
