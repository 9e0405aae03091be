package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrMalformedResponse marks a 2xx answer whose body could not be decoded
// or lacks the field the caller needs.
var ErrMalformedResponse = errors.New("malformed response")

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%d %s", e.Code, http.StatusText(e.Code))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// StatusCode reports the HTTP status carried by err, or 0 when err is not a
// status failure.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

// IsNotFound reports whether err is a 404 answer.
func IsNotFound(err error) bool { return StatusCode(err) == http.StatusNotFound }

// unavailableError signals that the server could not be reached at all
// (dial failure, timeout, cancelled context).
type unavailableError struct{ err error }

func (e unavailableError) Error() string { return e.err.Error() }
func (e unavailableError) Unwrap() error { return e.err }

// IsUnavailable reports whether err means the request never got an answer.
func IsUnavailable(err error) bool {
	var ue unavailableError
	return errors.As(err, &ue)
}

func wrapSendError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return unavailableError{err: fmt.Errorf("send request: %w", ctx.Err())}
	}
	var ne net.Error
	var oe *net.OpError
	if errors.As(err, &ne) || errors.As(err, &oe) {
		return unavailableError{err: fmt.Errorf("send request: %w", err)}
	}
	return fmt.Errorf("send request: %w", err)
}
