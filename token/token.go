// Package token decodes bearer credential payloads.
//
// Tokens are opaque to this client: verification is the backend's job.
// The only structure relied on is the standard three-part dot-delimited
// form whose middle segment, base64url-decoded, yields a claims document
// with a "sub" field carrying the user's identity.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed indicates the credential does not have a decodable payload.
var ErrMalformed = errors.New("portal/token: malformed credential")

// Claims holds the fields extracted from a decoded credential payload.
type Claims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
	IssuedAt  time.Time
	Extra     map[string]any
}

// DecodePayload decodes the payload segment of a bearer credential without
// verifying its signature. Any structural defect (wrong segment count,
// bad transport encoding, non-JSON payload) reports ErrMalformed.
func DecodePayload(credential string) (*Claims, error) {
	parser := jwt.NewParser()

	mapClaims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(credential, mapClaims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return mapToClaims(mapClaims), nil
}

// mapToClaims converts jwt.MapClaims to Claims.
func mapToClaims(m jwt.MapClaims) *Claims {
	c := &Claims{
		Extra: make(map[string]any),
	}

	if v, ok := m["sub"].(string); ok {
		c.Subject = v
	}
	if v, ok := m["email"].(string); ok {
		c.Email = v
	}
	if v, ok := m["exp"].(float64); ok {
		c.ExpiresAt = time.Unix(int64(v), 0)
	}
	if v, ok := m["iat"].(float64); ok {
		c.IssuedAt = time.Unix(int64(v), 0)
	}

	// Non-standard claims go to Extra
	standard := map[string]bool{
		"sub": true, "email": true, "exp": true, "iat": true,
		"iss": true, "aud": true, "nbf": true, "jti": true,
	}
	for k, v := range m {
		if !standard[k] {
			c.Extra[k] = v
		}
	}

	return c
}
