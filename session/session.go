// Package session provides the client-side session manager.
//
// The manager is the single source of truth for "is a user
// authenticated". It owns the bearer token and the derived identity,
// keeps the durable store and in-memory state in agreement, and
// broadcasts every transition to subscribers so guards and views can
// re-evaluate.
//
// State machine: Unknown (initial, before the durable store is
// consulted) resolves once to Anonymous or Authenticated via Restore;
// Login replaces the session wholesale; Logout clears it wholesale.
// Sessions are never partially mutated.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	portal "github.com/microdemo/portal-go"
	"github.com/microdemo/portal-go/metrics"
	"github.com/microdemo/portal-go/storage"
	"github.com/microdemo/portal-go/token"
)

// State is the session lifecycle state.
type State int

const (
	// Unknown is the initial state, before the durable store is consulted.
	Unknown State = iota

	// Anonymous means no valid session exists.
	Anonymous

	// Authenticated means a token and derived identity are present.
	Authenticated
)

func (s State) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Snapshot is an immutable view of the session at one instant.
type Snapshot struct {
	State    State
	Token    string
	Identity string
}

// Authenticated reports whether the snapshot holds a live session.
func (s Snapshot) Authenticated() bool { return s.State == Authenticated }

// userRecord is the durable form of the derived identity.
type userRecord struct {
	Identity string `json:"identity"`
}

// Manager implements the session state machine over an AuthService and
// a durable store. All transitions are atomic from the caller's
// perspective: the store and the in-memory state are updated together,
// under one lock, before the mutating call returns.
type Manager struct {
	auth    portal.AuthService
	store   storage.Store
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu       sync.RWMutex
	state    State
	token    string
	identity string
	subs     []chan Snapshot

	sf singleflight.Group
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger sets a structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithMetrics enables login metrics.
func WithMetrics(mx *metrics.Metrics) Option {
	return func(m *Manager) { m.metrics = mx }
}

// NewManager creates a session manager in the Unknown state.
// Call Restore to resolve it from the durable store.
func NewManager(auth portal.AuthService, store storage.Store, opts ...Option) *Manager {
	m := &Manager{
		auth:    auth,
		store:   store,
		logger:  slog.Default(),
		metrics: metrics.New(false),
		state:   Unknown,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Restore resolves the Unknown state from the durable store: if a
// complete record exists and its user blob parses, the session becomes
// Authenticated with the stored identity; otherwise Anonymous, with any
// malformed record discarded. It acts at most once per manager
// lifetime; later calls return the current snapshot unchanged.
func (m *Manager) Restore() Snapshot {
	m.mu.Lock()
	if m.state != Unknown {
		snap := m.snapshotLocked()
		m.mu.Unlock()
		return snap
	}

	rec, err := m.store.Load()
	if err != nil {
		m.state = Anonymous
		snap := m.snapshotLocked()
		m.mu.Unlock()
		m.notify(snap)
		return snap
	}

	var user userRecord
	if err := json.Unmarshal([]byte(rec.User), &user); err != nil || user.Identity == "" {
		// Local decode failure: treat as anonymous and discard the entry.
		_ = m.store.Clear()
		m.state = Anonymous
		snap := m.snapshotLocked()
		m.mu.Unlock()
		m.logger.Warn("discarding malformed session record")
		m.notify(snap)
		return snap
	}

	m.state = Authenticated
	m.token = rec.Token
	m.identity = user.Identity
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.logger.Debug("session restored", "identity", user.Identity)
	m.notify(snap)
	return snap
}

// Loading reports whether the session is still Unknown. Guards render a
// placeholder and make no authorization decision while this holds.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == Unknown
}

// Current returns a snapshot of the session.
func (m *Manager) Current() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// Identity returns the authenticated identity, or "" when not authenticated.
func (m *Manager) Identity() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.identity
}

// Login exchanges credentials for a token, derives the identity from
// the token payload's subject, and replaces the session wholesale. On
// any failure the session is left untouched and the error propagates
// for UI-level display. Concurrent logins with identical credentials
// are collapsed into one exchange; the dedupe key covers the full
// credential pair so a mismatched password never joins another
// caller's exchange.
func (m *Manager) Login(ctx context.Context, email, password string) (string, error) {
	sum := sha256.Sum256([]byte(email + "\x00" + password))
	key := hex.EncodeToString(sum[:])

	v, err, _ := m.sf.Do(key, func() (interface{}, error) {
		return m.login(ctx, email, password)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (m *Manager) login(ctx context.Context, email, password string) (string, error) {
	tok, err := m.auth.Login(ctx, email, password)
	if err != nil {
		m.metrics.RecordLoginFailure("remote")
		return "", fmt.Errorf("portal/session: login: %w", err)
	}

	claims, err := token.DecodePayload(tok)
	if err != nil {
		m.metrics.RecordLoginFailure("decode")
		return "", fmt.Errorf("portal/session: login: %w", err)
	}
	if claims.Subject == "" {
		m.metrics.RecordLoginFailure("decode")
		return "", fmt.Errorf("portal/session: login: token has no subject")
	}
	identity := claims.Subject

	blob, err := json.Marshal(userRecord{Identity: identity})
	if err != nil {
		return "", fmt.Errorf("portal/session: login: %w", err)
	}

	m.mu.Lock()
	if err := m.store.Save(storage.Record{Token: tok, User: string(blob)}); err != nil {
		m.mu.Unlock()
		m.metrics.RecordLoginFailure("storage")
		return "", fmt.Errorf("portal/session: login: %w", err)
	}
	m.state = Authenticated
	m.token = tok
	m.identity = identity
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.metrics.RecordLogin()
	m.logger.Debug("session established", "identity", identity)
	m.notify(snap)
	return identity, nil
}

// Logout clears the durable store and the in-memory state
// synchronously. No server round-trip is made; the in-memory session is
// cleared even if the store reports an error, which is then returned.
func (m *Manager) Logout() error {
	m.mu.Lock()
	err := m.store.Clear()
	m.state = Anonymous
	m.token = ""
	m.identity = ""
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.logger.Debug("session cleared")
	m.notify(snap)

	if err != nil {
		return fmt.Errorf("portal/session: logout: %w", err)
	}
	return nil
}

// Register forwards to the auth service. It never changes session
// state; a separate explicit Login is required afterward.
func (m *Manager) Register(ctx context.Context, email, password string) (*portal.User, error) {
	user, err := m.auth.Register(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("portal/session: register: %w", err)
	}
	return user, nil
}

// Subscribe returns a channel that receives a snapshot after every
// state transition. Slow subscribers miss intermediate snapshots rather
// than blocking transitions; Current always has the latest.
func (m *Manager) Subscribe() <-chan Snapshot {
	ch := make(chan Snapshot, 8)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel returned by Subscribe.
func (m *Manager) Unsubscribe(ch <-chan Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, sub := range m.subs {
		if sub == ch {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			close(sub)
			return
		}
	}
}

func (m *Manager) notify(snap Snapshot) {
	m.mu.RLock()
	subs := make([]chan Snapshot, len(m.subs))
	copy(subs, m.subs)
	m.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

func (m *Manager) snapshotLocked() Snapshot {
	return Snapshot{State: m.state, Token: m.token, Identity: m.identity}
}
