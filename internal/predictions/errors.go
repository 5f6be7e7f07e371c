package predictions

import (
	"errors"
	"net/http"
)

// Domain errors for prediction operations.
var (
	ErrNotFound          = errors.New("prediction not found")
	ErrEmptyText         = errors.New("text must not be empty")
	ErrOwnerMissing      = errors.New("owner identity missing from request context")
	ErrClassifierFailed  = errors.New("classifier invocation failed")
	ErrPersistenceFailed = errors.New("prediction log write failed")
)

// MapHTTPStatus maps prediction domain errors to appropriate HTTP status codes.
// Classifier and persistence failures surface as internal errors: the request
// fails whole rather than returning a partial record.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrEmptyText) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the caller-visible message for a prediction error:
// the matched sentinel's text, never the wrapped cause. Model names, driver
// errors, and connection detail stay in the log.
func PublicMessage(err error) string {
	for _, sentinel := range []error{
		ErrNotFound,
		ErrEmptyText,
		ErrClassifierFailed,
		ErrPersistenceFailed,
		ErrOwnerMissing,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "internal error"
}
