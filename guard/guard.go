// Package guard gates access to protected views based on session state.
//
// The guard is a pure function of the session manager's state: while the
// session is still Unknown it makes no authorization decision, once
// resolved it allows only Authenticated sessions through. Callers
// re-evaluate on every session transition, so a logout while a
// protected view is showing redirects immediately.
package guard

import "github.com/microdemo/portal-go/session"

// Decision is the guard's verdict for a protected view.
type Decision int

const (
	// Pending means the session is unresolved: render a placeholder,
	// make no authorization decision.
	Pending Decision = iota

	// Redirect means the session is not authenticated: send the user to
	// the login entry point.
	Redirect

	// Allow means the protected view may render.
	Allow
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case Redirect:
		return "redirect"
	default:
		return "allow"
	}
}

// Evaluate maps a session state to a guard decision.
func Evaluate(st session.State) Decision {
	switch st {
	case session.Unknown:
		return Pending
	case session.Authenticated:
		return Allow
	default:
		return Redirect
	}
}

// Guard evaluates against a live session manager.
type Guard struct {
	sessions *session.Manager
}

// New creates a guard over the given session manager.
func New(sessions *session.Manager) *Guard {
	return &Guard{sessions: sessions}
}

// Check returns the decision for the manager's current state.
func (g *Guard) Check() Decision {
	return Evaluate(g.sessions.Current().State)
}
