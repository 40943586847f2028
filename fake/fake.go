// Package fake provides in-memory implementations of all portal service
// interfaces for testing.
//
// Use fake.NewClient() in unit tests to avoid network calls and external
// dependencies. The fake auth service issues real three-segment
// credentials (unsigned) whose payload subject is the login email, so
// token decoding behaves as it does against the live services.
package fake

import (
	"context"
	"encoding/base64"
	"fmt"
	"sort"
	"sync"
	"time"

	portal "github.com/microdemo/portal-go"
)

// Option configures the fake backend.
type Option func(*state)

type state struct {
	mu       sync.RWMutex
	users    map[string]*account // email → account
	profiles map[string]*portal.Profile
	events   []portal.Event
	current  string // email of the logged-in user
	nextID   int
}

type account struct {
	user     portal.User
	password string
}

// WithUser adds a registered account.
func WithUser(email, password string) Option {
	return func(s *state) {
		s.nextID++
		s.users[email] = &account{
			user:     portal.User{ID: s.nextID, Email: email},
			password: password,
		}
	}
}

// WithProfile adds a profile for an account added via WithUser.
func WithProfile(email, name, bio string) Option {
	return func(s *state) {
		acct, ok := s.users[email]
		if !ok {
			return
		}
		s.nextID++
		s.profiles[email] = &portal.Profile{
			ID:        s.nextID,
			UserID:    acct.user.ID,
			Name:      name,
			Bio:       bio,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
	}
}

// WithEvent preloads an analytics event.
func WithEvent(ev portal.Event) Option {
	return func(s *state) {
		if ev.Timestamp.IsZero() {
			ev.Timestamp = time.Now()
		}
		s.events = append(s.events, ev)
	}
}

// Backend holds the shared in-memory state behind the fake services.
type Backend struct {
	s *state
}

// NewBackend creates a fake backend with the given fixtures.
func NewBackend(opts ...Option) *Backend {
	s := &state{
		users:    make(map[string]*account),
		profiles: make(map[string]*portal.Profile),
	}
	for _, o := range opts {
		o(s)
	}
	return &Backend{s: s}
}

// NewClient creates a *portal.Client with all services wired to in-memory fakes.
func NewClient(opts ...Option) *portal.Client {
	b := NewBackend(opts...)
	c, _ := portal.NewClient(
		portal.Config{BaseURL: "fake://localhost"},
		portal.WithAuthService(b.Auth()),
		portal.WithProfileService(b.Profiles()),
		portal.WithAnalyticsService(b.Analytics()),
	)
	return c
}

// Auth returns the fake AuthService.
func (b *Backend) Auth() portal.AuthService { return &fakeAuth{s: b.s} }

// Profiles returns the fake ProfileService.
func (b *Backend) Profiles() portal.ProfileService { return &fakeProfiles{s: b.s} }

// Analytics returns the fake AnalyticsService.
func (b *Backend) Analytics() portal.AnalyticsService { return &fakeAnalytics{s: b.s} }

// MintToken builds an unsigned three-segment credential whose payload
// subject is the given identity. Useful for seeding stores in tests.
func MintToken(subject string) string {
	enc := base64.RawURLEncoding
	header := enc.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := enc.EncodeToString([]byte(fmt.Sprintf(`{"sub":%q,"iat":%d}`, subject, time.Now().Unix())))
	sig := enc.EncodeToString([]byte("fake"))
	return header + "." + payload + "." + sig
}

// --- AuthService ---

type fakeAuth struct {
	s *state
}

func (f *fakeAuth) Register(ctx context.Context, email, password string) (*portal.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if _, exists := f.s.users[email]; exists {
		return nil, fmt.Errorf("fake: email already registered")
	}
	f.s.nextID++
	acct := &account{
		user:     portal.User{ID: f.s.nextID, Email: email},
		password: password,
	}
	f.s.users[email] = acct
	u := acct.user
	return &u, nil
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (string, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	acct, ok := f.s.users[email]
	if !ok || acct.password != password {
		return "", fmt.Errorf("fake: incorrect email or password")
	}
	f.s.current = email
	return MintToken(email), nil
}

// --- ProfileService ---

type fakeProfiles struct {
	s *state
}

func (f *fakeProfiles) Current(ctx context.Context) (*portal.Profile, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	if f.s.current == "" {
		return nil, fmt.Errorf("fake: not authenticated")
	}
	p, ok := f.s.profiles[f.s.current]
	if !ok {
		return nil, fmt.Errorf("fake: profile not found")
	}
	out := *p
	return &out, nil
}

func (f *fakeProfiles) Create(ctx context.Context, draft portal.ProfileDraft) (*portal.Profile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if f.s.current == "" {
		return nil, fmt.Errorf("fake: not authenticated")
	}
	acct := f.s.users[f.s.current]
	f.s.nextID++
	p := &portal.Profile{
		ID:        f.s.nextID,
		UserID:    acct.user.ID,
		Name:      draft.Name,
		Bio:       draft.Bio,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.s.profiles[f.s.current] = p
	out := *p
	return &out, nil
}

func (f *fakeProfiles) UpdateCurrent(ctx context.Context, draft portal.ProfileDraft) (*portal.Profile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if f.s.current == "" {
		return nil, fmt.Errorf("fake: not authenticated")
	}
	p, ok := f.s.profiles[f.s.current]
	if !ok {
		return nil, fmt.Errorf("fake: profile not found")
	}
	p.Name = draft.Name
	p.Bio = draft.Bio
	p.UpdatedAt = time.Now()
	out := *p
	return &out, nil
}

func (f *fakeProfiles) Get(ctx context.Context, id int) (*portal.Profile, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	for _, p := range f.s.profiles {
		if p.ID == id {
			out := *p
			return &out, nil
		}
	}
	return nil, fmt.Errorf("fake: profile not found")
}

// --- AnalyticsService ---

type fakeAnalytics struct {
	s *state
}

func (f *fakeAnalytics) Track(ctx context.Context, ev portal.Event) (*portal.TrackResult, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	f.s.events = append(f.s.events, ev)
	return &portal.TrackResult{
		EventID: fmt.Sprintf("event-%d", len(f.s.events)),
		Status:  "success",
		Message: "Event tracked successfully",
	}, nil
}

func (f *fakeAnalytics) Events(ctx context.Context, q portal.EventQuery) ([]portal.Event, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	var out []portal.Event
	for _, ev := range f.s.events {
		if q.EventType != "" && ev.EventType != q.EventType {
			continue
		}
		out = append(out, ev)
	}

	// Newest first, like the live service.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAnalytics) Summary(ctx context.Context) ([]portal.EventSummary, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	counts := make(map[string]int)
	for _, ev := range f.s.events {
		counts[ev.EventType]++
	}

	out := make([]portal.EventSummary, 0, len(counts))
	for typ, n := range counts {
		out = append(out, portal.EventSummary{EventType: typ, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventType < out[j].EventType })
	return out, nil
}

func (f *fakeAnalytics) Clear(ctx context.Context) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	f.s.events = nil
	return nil
}
