package rest

import (
	"errors"
	"fmt"
	"net/http"
)

// errEmptyToken reports a token endpoint success with no credential in it.
var errEmptyToken = errors.New("empty access_token in response")

// Error is the failure mode of the HTTP access layer. A transport
// failure carries only Err; a remote rejection carries the status code
// and the raw response body. Failures are never retried here — they
// propagate to the caller for UI-level handling.
type Error struct {
	// StatusCode is the remote status, or 0 when no response was received.
	StatusCode int

	// Body is the raw response body, when a response was received.
	Body string

	// Err is the underlying transport or decode error, if any.
	Err error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("portal/rest: remote returned %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("portal/rest: %v", e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a remote 404. Pages use this to
// enter create mode instead of surfacing a blocking error.
func IsNotFound(err error) bool {
	return statusIs(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err is a remote 401, meaning the user
// must re-authenticate.
func IsUnauthorized(err error) bool {
	return statusIs(err, http.StatusUnauthorized)
}

func statusIs(err error, code int) bool {
	var re *Error
	return errors.As(err, &re) && re.StatusCode == code
}
