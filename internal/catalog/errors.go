package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized means no API key is configured or the service rejected it.
	ErrUnauthorized = errors.New("catalog unauthorized")
	// ErrTransport covers network failures, timeouts and unexpected statuses.
	ErrTransport = errors.New("catalog transport failure")
	// ErrMalformed means the response could not be decoded into the expected shape.
	ErrMalformed = errors.New("catalog response malformed")
	// ErrNotFound means the requested game does not exist.
	ErrNotFound = errors.New("catalog record not found")
)

// Error describes a failed catalog call. Kind is one of the sentinel
// errors above and is what errors.Is matches against.
type Error struct {
	Op      string
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("catalog %s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("catalog %s: %v: %s", e.Op, e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(op string, kind error, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// status returns the metrics label for an error returned by this package.
func status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	default:
		return "transport"
	}
}
