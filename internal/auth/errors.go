package auth

import (
	"errors"
	"net/http"
)

// Authorization errors for the prediction endpoints.
var (
	// ErrUnauthorized indicates no usable credentials were supplied.
	ErrUnauthorized = errors.New("authorization required")
	// ErrForbidden indicates credentials were supplied but are invalid or inactive.
	ErrForbidden = errors.New("invalid or inactive credentials")
)

// MapHTTPStatus maps authorization errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the caller-visible message for an authorization
// error. Wrapped detail stays in the log.
func PublicMessage(err error) string {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return ErrUnauthorized.Error()
	case errors.Is(err, ErrForbidden):
		return ErrForbidden.Error()
	default:
		return "authorization failed"
	}
}
