package rest

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	portal "github.com/microdemo/portal-go"
)

// authBackend implements portal.AuthService against the auth service.
type authBackend struct {
	c *Client
}

// compile-time check
var _ portal.AuthService = (*authBackend)(nil)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates a new account. It does not establish a session.
func (a *authBackend) Register(ctx context.Context, email, password string) (*portal.User, error) {
	var user portal.User
	err := a.c.doJSON(ctx, "auth", http.MethodPost, "/auth/register",
		registerRequest{Email: email, Password: password}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a bearer token. The auth service
// speaks the OAuth2 password form: form-urlencoded with username and
// password fields, the username carrying the email.
func (a *authBackend) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{
		"username": {email},
		"password": {password},
	}

	var resp tokenResponse
	err := a.c.do(ctx, "auth", http.MethodPost, "/auth/token",
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()), &resp)
	if err != nil {
		return "", err
	}

	if resp.AccessToken == "" {
		return "", &Error{Err: errEmptyToken}
	}
	return resp.AccessToken, nil
}
