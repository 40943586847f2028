package rest

import (
	"context"
	"fmt"
	"net/http"

	portal "github.com/microdemo/portal-go"
)

// profileBackend implements portal.ProfileService against the user service.
type profileBackend struct {
	c *Client
}

// compile-time check
var _ portal.ProfileService = (*profileBackend)(nil)

// Current returns the authenticated user's profile. A user without a
// profile yet gets a 404, surfaced via IsNotFound.
func (p *profileBackend) Current(ctx context.Context) (*portal.Profile, error) {
	var profile portal.Profile
	if err := p.c.doJSON(ctx, "users", http.MethodGet, "/users/profiles/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Create creates the authenticated user's profile.
func (p *profileBackend) Create(ctx context.Context, draft portal.ProfileDraft) (*portal.Profile, error) {
	var profile portal.Profile
	if err := p.c.doJSON(ctx, "users", http.MethodPost, "/users/profiles", draft, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateCurrent replaces the authenticated user's profile.
func (p *profileBackend) UpdateCurrent(ctx context.Context, draft portal.ProfileDraft) (*portal.Profile, error) {
	var profile portal.Profile
	if err := p.c.doJSON(ctx, "users", http.MethodPut, "/users/profiles/me", draft, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Get returns a profile by ID.
func (p *profileBackend) Get(ctx context.Context, id int) (*portal.Profile, error) {
	var profile portal.Profile
	path := fmt.Sprintf("/users/profiles/%d", id)
	if err := p.c.doJSON(ctx, "users", http.MethodGet, path, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
