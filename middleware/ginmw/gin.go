// Package ginmw provides Gin middleware for front-ends built on this SDK.
//
// RequireSession is the route guard for protected pages; PageView wires
// the analytics tracker into the request path. Both consult the session
// manager — no direct dependency on any specific service backend.
package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portal "github.com/microdemo/portal-go"
	"github.com/microdemo/portal-go/guard"
	"github.com/microdemo/portal-go/session"
	"github.com/microdemo/portal-go/tracker"
)

// KeyIdentity is the gin context key holding the authenticated identity.
const KeyIdentity = "portal_identity"

// GuardOption configures RequireSession behavior.
type GuardOption func(*guardConfig)

type guardConfig struct {
	loginPath string
}

// WithLoginPath sets the redirect target for unauthenticated requests
// (default "/login").
func WithLoginPath(path string) GuardOption {
	return func(cfg *guardConfig) { cfg.loginPath = path }
}

// RequireSession returns Gin middleware gating protected pages on the
// session manager's state. While the session is unresolved it renders a
// placeholder response and makes no authorization decision; once
// resolved, unauthenticated requests are redirected to the login entry
// point. On success the identity is stored in both the gin context and
// the request context.
func RequireSession(sessions *session.Manager, opts ...GuardOption) gin.HandlerFunc {
	cfg := &guardConfig{loginPath: "/login"}
	for _, o := range opts {
		o(cfg)
	}

	return func(c *gin.Context) {
		switch guard.Evaluate(sessions.Current().State) {
		case guard.Pending:
			c.Header("Retry-After", "1")
			c.String(http.StatusServiceUnavailable, "Loading...")
			c.Abort()
		case guard.Redirect:
			c.Redirect(http.StatusSeeOther, cfg.loginPath)
			c.Abort()
		default:
			identity := sessions.Identity()
			c.Set(KeyIdentity, identity)
			c.Request = c.Request.WithContext(portal.WithIdentity(c.Request.Context(), identity))
			c.Next()
		}
	}
}

// PageView returns Gin middleware that reports each request path to the
// page view tracker. Tracking never blocks the request.
func PageView(t *tracker.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		t.Navigated(c.Request.URL.Path)
		c.Next()
	}
}

// GetIdentity returns the authenticated identity stored by RequireSession.
func GetIdentity(c *gin.Context) string {
	v, _ := c.Get(KeyIdentity)
	s, _ := v.(string)
	return s
}
