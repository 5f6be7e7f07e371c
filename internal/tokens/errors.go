package tokens

import "errors"

// ErrNotFound indicates the token is unknown or marked inactive.
var ErrNotFound = errors.New("token not found or inactive")
