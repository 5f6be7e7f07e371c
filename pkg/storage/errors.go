package storage

import "errors"

var (
	// ErrNotFound indicates the requested artifact does not exist.
	ErrNotFound = errors.New("artifact not found")
	// ErrEmptyKey indicates an empty artifact key was provided.
	ErrEmptyKey = errors.New("artifact key must not be empty")
	// ErrInvalidKey indicates the artifact key contains a path traversal segment.
	ErrInvalidKey = errors.New("artifact key contains invalid path segment")
)
