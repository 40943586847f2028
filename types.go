package portal

import "time"

// User represents a registered account as returned by the auth service.
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

// Profile represents a user profile owned by the remote user service.
// ID, UserID and the timestamps are assigned remotely and read-only here.
type Profile struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileDraft is the editable portion of a profile (form state).
type ProfileDraft struct {
	Name string `json:"name"`
	Bio  string `json:"bio,omitempty"`
}

// Well-known event types. The set is open-ended; these are conveniences,
// not an enumeration the services validate against.
const (
	EventLogin         = "login"
	EventLogout        = "logout"
	EventPageView      = "page_view"
	EventProfileUpdate = "profile_update"
	EventButtonClick   = "button_click"
)

// Event represents a single analytics event.
// Timestamp is assigned server-side; it is zero on events the client sends.
type Event struct {
	UserID    string         `json:"user_id,omitempty"`
	EventType string         `json:"event_type"`
	EventData map[string]any `json:"event_data,omitempty"`
	Timestamp time.Time      `json:"timestamp,omitempty"`
}

// TrackResult is the analytics service's acknowledgment of a tracked event.
type TrackResult struct {
	EventID string `json:"event_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// EventSummary holds the event count for one event type.
type EventSummary struct {
	EventType string `json:"event_type"`
	Count     int    `json:"count"`
}

// EventQuery holds optional filters for listing events.
type EventQuery struct {
	// EventType filters to a single type when non-empty.
	EventType string

	// Limit caps the number of returned events. The service defaults to 100.
	Limit int
}
