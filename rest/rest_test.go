package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	portal "github.com/microdemo/portal-go"
	"github.com/microdemo/portal-go/storage"
)

func authedStore(t *testing.T, token string) storage.Store {
	t.Helper()
	store := storage.NewMemoryStore()
	if err := store.Save(storage.Record{Token: token, User: `{"identity":"u@x.com"}`}); err != nil {
		t.Fatal(err)
	}
	return store
}

func TestBearerInjection_Authenticated(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]portal.EventSummary{})
	}))
	defer srv.Close()

	c := New(srv.URL, authedStore(t, "a.b.c"))
	if _, err := c.Analytics().Summary(context.Background()); err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if gotAuth != "Bearer a.b.c" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer a.b.c")
	}
}

func TestBearerInjection_Anonymous(t *testing.T) {
	var gotAuth string
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth, hasAuth = r.Header.Get("Authorization"), r.Header.Get("Authorization") != ""
		_ = json.NewEncoder(w).Encode([]portal.EventSummary{})
	}))
	defer srv.Close()

	c := New(srv.URL, storage.NewMemoryStore())
	if _, err := c.Analytics().Summary(context.Background()); err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if hasAuth {
		t.Errorf("request should carry no Authorization header, got %q", gotAuth)
	}
}

func TestRequestID_Attached(t *testing.T) {
	var gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-ID")
		_ = json.NewEncoder(w).Encode([]portal.EventSummary{})
	}))
	defer srv.Close()

	c := New(srv.URL, storage.NewMemoryStore())
	ctx := portal.WithRequestID(context.Background(), "req-42")
	if _, err := c.Analytics().Summary(ctx); err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if gotID != "req-42" {
		t.Errorf("X-Request-ID = %q, want %q", gotID, "req-42")
	}
}

func TestLogin_FormEncoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/token" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if r.PostForm.Get("username") != "u@x.com" || r.PostForm.Get("password") != "pw" {
			t.Errorf("form = %v", r.PostForm)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok123", "token_type": "bearer"})
	}))
	defer srv.Close()

	c := New(srv.URL, storage.NewMemoryStore())
	tok, err := c.Auth().Login(context.Background(), "u@x.com", "pw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if tok != "tok123" {
		t.Errorf("token = %q, want %q", tok, "tok123")
	}
}

func TestLogin_EmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"token_type": "bearer"})
	}))
	defer srv.Close()

	c := New(srv.URL, storage.NewMemoryStore())
	if _, err := c.Auth().Login(context.Background(), "u@x.com", "pw"); err == nil {
		t.Fatal("expected error for response without access_token")
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Incorrect email or password"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, storage.NewMemoryStore())
	_, err := c.Auth().Login(context.Background(), "u@x.com", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsUnauthorized(err) {
		t.Errorf("IsUnauthorized = false for: %v", err)
	}
	var re *Error
	if !errors.As(err, &re) {
		t.Fatalf("error is not *Error: %v", err)
	}
	if re.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", re.StatusCode)
	}
	if !strings.Contains(re.Body, "Incorrect email or password") {
		t.Errorf("Body = %q, want remote detail preserved", re.Body)
	}
}

func TestRegister(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "new@x.com" || body["password"] != "pw" {
			t.Errorf("body = %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(portal.User{ID: 7, Email: "new@x.com"})
	}))
	defer srv.Close()

	c := New(srv.URL, storage.NewMemoryStore())
	user, err := c.Auth().Register(context.Background(), "new@x.com", "pw")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID != 7 || user.Email != "new@x.com" {
		t.Errorf("user = %+v", user)
	}
}

func TestProfile_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Profile not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, authedStore(t, "a.b.c"))
	_, err := c.Profiles().Current(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound = false for: %v", err)
	}
}

func TestProfile_CreateAndUpdatePaths(t *testing.T) {
	var gotRequests []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequests = append(gotRequests, r.Method+" "+r.URL.Path)
		_ = json.NewEncoder(w).Encode(portal.Profile{ID: 1, UserID: 7, Name: "Ada"})
	}))
	defer srv.Close()

	c := New(srv.URL, authedStore(t, "a.b.c"))
	draft := portal.ProfileDraft{Name: "Ada", Bio: "pioneer"}

	if _, err := c.Profiles().Create(context.Background(), draft); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := c.Profiles().UpdateCurrent(context.Background(), draft); err != nil {
		t.Fatalf("UpdateCurrent returned error: %v", err)
	}
	if _, err := c.Profiles().Get(context.Background(), 42); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	want := []string{
		"POST /users/profiles",
		"PUT /users/profiles/me",
		"GET /users/profiles/42",
	}
	for i, w := range want {
		if gotRequests[i] != w {
			t.Errorf("request %d = %q, want %q", i, gotRequests[i], w)
		}
	}
}

func TestEvents_QueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("event_type") != "page_view" || q.Get("limit") != "10" {
			t.Errorf("query = %v", q)
		}
		_ = json.NewEncoder(w).Encode([]portal.Event{{EventType: "page_view"}})
	}))
	defer srv.Close()

	c := New(srv.URL, authedStore(t, "a.b.c"))
	events, err := c.Analytics().Events(context.Background(), portal.EventQuery{EventType: "page_view", Limit: 10})
	if err != nil {
		t.Fatalf("Events returned error: %v", err)
	}
	if len(events) != 1 || events[0].EventType != "page_view" {
		t.Errorf("events = %+v", events)
	}
}

func TestClearThenList_Empty(t *testing.T) {
	var events []portal.Event
	events = append(events, portal.Event{EventType: "login"})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "DELETE /analytics/events":
			events = nil
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "success"})
		case "GET /analytics/events":
			if events == nil {
				_ = json.NewEncoder(w).Encode([]portal.Event{})
				return
			}
			_ = json.NewEncoder(w).Encode(events)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, authedStore(t, "a.b.c"))
	if err := c.Analytics().Clear(context.Background()); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	got, err := c.Analytics().Events(context.Background(), portal.EventQuery{})
	if err != nil {
		t.Fatalf("Events returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no events after clear, got %d", len(got))
	}
}

func TestTransportFailure(t *testing.T) {
	// Closed server: connection refused, no response received.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, storage.NewMemoryStore())
	_, err := c.Analytics().Summary(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var re *Error
	if !errors.As(err, &re) {
		t.Fatalf("error is not *Error: %v", err)
	}
	if re.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for transport failure", re.StatusCode)
	}
	if re.Err == nil {
		t.Error("transport failure should carry the underlying error")
	}
}

func TestTrack_Acknowledgment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ev portal.Event
		_ = json.NewDecoder(r.Body).Decode(&ev)
		if ev.EventType != "button_click" || ev.UserID != "u@x.com" {
			t.Errorf("event = %+v", ev)
		}
		_ = json.NewEncoder(w).Encode(portal.TrackResult{EventID: "e-1", Status: "success", Message: "Event tracked successfully"})
	}))
	defer srv.Close()

	c := New(srv.URL, authedStore(t, "a.b.c"))
	result, err := c.Analytics().Track(context.Background(), portal.Event{
		UserID:    "u@x.com",
		EventType: portal.EventButtonClick,
		EventData: map[string]any{"button": "save"},
	})
	if err != nil {
		t.Fatalf("Track returned error: %v", err)
	}
	if result.EventID != "e-1" || result.Status != "success" {
		t.Errorf("result = %+v", result)
	}
}
