package portal

import "context"

// AuthService handles account registration and credential exchange.
// Implementations: rest/ (HTTP auth service), fake/ (testing).
type AuthService interface {
	// Register creates a new account and returns the created user.
	// It never establishes a session; callers log in separately.
	Register(ctx context.Context, email, password string) (*User, error)

	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (string, error)
}

// ProfileService manages the user profile owned by the remote user service.
// The client holds at most an ephemeral copy of returned profiles.
type ProfileService interface {
	// Current returns the authenticated user's profile.
	// A missing profile surfaces as a not-found error (see rest.IsNotFound).
	Current(ctx context.Context) (*Profile, error)

	// Create creates the authenticated user's profile.
	Create(ctx context.Context, draft ProfileDraft) (*Profile, error)

	// UpdateCurrent replaces the authenticated user's profile.
	UpdateCurrent(ctx context.Context, draft ProfileDraft) (*Profile, error)

	// Get returns a profile by ID.
	Get(ctx context.Context, id int) (*Profile, error)
}

// AnalyticsService records and queries usage events.
// The client only ever constructs and sends events; their persisted form
// (IDs, timestamps) is owned by the remote service.
type AnalyticsService interface {
	// Track records a single event and returns the remote acknowledgment.
	Track(ctx context.Context, ev Event) (*TrackResult, error)

	// Events returns recent events, newest first, optionally filtered.
	Events(ctx context.Context, q EventQuery) ([]Event, error)

	// Summary returns per-type event counts.
	Summary(ctx context.Context) ([]EventSummary, error)

	// Clear deletes all recorded events.
	Clear(ctx context.Context) error
}
