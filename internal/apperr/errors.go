// Package apperr defines the error kinds surfaced by the API. Services wrap
// these sentinels with context; callers match them with errors.Is.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation marks malformed or missing input, including a taken username.
	ErrValidation = errors.New("validation error")

	// ErrAuthentication marks a missing, unknown or revoked token.
	ErrAuthentication = errors.New("authentication required")

	// ErrInvalidCredentials is a login failure. It is also an ErrAuthentication.
	ErrInvalidCredentials = &kindError{msg: "invalid credentials", parent: ErrAuthentication}

	// ErrPermission marks an authenticated actor acting on a resource it does not own.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound marks an unknown resource id.
	ErrNotFound = errors.New("not found")

	// ErrInternal marks an unexpected failure.
	ErrInternal = errors.New("internal error")
)

type kindError struct {
	msg    string
	parent error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.parent }

// Kind returns the wire name of the error kind carried by err.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrAuthentication):
		return "authentication_error"
	case errors.Is(err, ErrPermission):
		return "permission_error"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal_error"
	}
}

// Status maps err to an HTTP status code. Bad login credentials are a 400,
// every other authentication failure is a 401.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, ErrPermission):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Exposed reports whether the message of err is safe to return to a client.
func Exposed(err error) bool {
	return Status(err) != http.StatusInternalServerError
}
