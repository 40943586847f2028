package guard

import (
	"context"
	"encoding/base64"
	"testing"

	portal "github.com/microdemo/portal-go"
	"github.com/microdemo/portal-go/session"
	"github.com/microdemo/portal-go/storage"
)

type staticAuth struct {
	token string
}

func (s *staticAuth) Register(ctx context.Context, email, password string) (*portal.User, error) {
	return &portal.User{ID: 1, Email: email}, nil
}

func (s *staticAuth) Login(ctx context.Context, email, password string) (string, error) {
	return s.token, nil
}

func mintToken(subject string) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`)) + "." +
		enc.EncodeToString([]byte(`{"sub":"`+subject+`"}`)) + "." +
		enc.EncodeToString([]byte("sig"))
}

func TestEvaluate(t *testing.T) {
	if got := Evaluate(session.Unknown); got != Pending {
		t.Errorf("Evaluate(unknown) = %v, want pending", got)
	}
	if got := Evaluate(session.Anonymous); got != Redirect {
		t.Errorf("Evaluate(anonymous) = %v, want redirect", got)
	}
	if got := Evaluate(session.Authenticated); got != Allow {
		t.Errorf("Evaluate(authenticated) = %v, want allow", got)
	}
}

func TestCheck_FollowsSessionLifecycle(t *testing.T) {
	m := session.NewManager(&staticAuth{token: mintToken("u@x.com")}, storage.NewMemoryStore())
	g := New(m)

	if got := g.Check(); got != Pending {
		t.Errorf("Check before restore = %v, want pending", got)
	}

	m.Restore()
	if got := g.Check(); got != Redirect {
		t.Errorf("Check while anonymous = %v, want redirect", got)
	}

	if _, err := m.Login(context.Background(), "u@x.com", "pw"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if got := g.Check(); got != Allow {
		t.Errorf("Check while authenticated = %v, want allow", got)
	}

	// Logout while viewing a protected page: guard flips immediately.
	if err := m.Logout(); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if got := g.Check(); got != Redirect {
		t.Errorf("Check after logout = %v, want redirect", got)
	}
}
