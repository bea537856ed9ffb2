package api

import "errors"

// ErrorKind classifies a failed operation. The client normalizes every
// failure into one kind plus a single human-readable message; callers
// surface the message directly and may branch on the kind.
type ErrorKind int

const (
	// ErrValidation means a client-side precondition failed and no
	// request was issued.
	ErrValidation ErrorKind = iota
	// ErrAuth covers credential and email-uniqueness failures.
	ErrAuth
	// ErrNotFound means an id lookup returned nothing.
	ErrNotFound
	// ErrNetwork covers timeouts and transport failures.
	ErrNetwork
	// ErrServer covers non-2xx responses.
	ErrServer
)

type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
