package api

import "errors"

// Sentinel errors for the two access failures the backend can report.
// An unauthenticated failure makes the session service purge the stored
// token; a forbidden failure only redirects, the session stays valid.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("operation not allowed for the current user")
)

// RemoteError is a non-2xx response from a reachable backend. Message is
// the backend's own error text and is surfaced to the user verbatim.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// TransportError means the backend could not be reached at all,
// timeouts included. The underlying error is kept for logs; users see
// the generic message.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "could not reach the tournament server"
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
