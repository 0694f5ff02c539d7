package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrValidation = errors.New("validation failed")
var ErrUnauthenticated = errors.New("not authenticated")
var ErrForbidden = errors.New("access forbidden")
var ErrNotFound = errors.New("broadcast not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("user already exists")

// RemoteError is a request the server rejected, carrying the HTTP status
// and the server-reported message when one was provided. Transport
// failures with no response use status zero.
type RemoteError struct {
	Status  int
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("request failed (status %d)", e.Status)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Is maps statuses onto the domain sentinels so callers can use errors.Is
// without inspecting status codes.
func (e *RemoteError) Is(target error) bool {
	switch target {
	case ErrUnauthenticated:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// MessageOf extracts the most specific user-facing message from err: the
// server-reported message when present, otherwise the given fallback.
func MessageOf(err error, fallback string) string {
	var re *RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return fallback
}
