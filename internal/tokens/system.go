package tokens

import "context"

// System defines the token-store lookup contract consumed by the auth policy.
type System interface {
	// LookupActive resolves a bearer token to its owner identity.
	// Returns ErrNotFound when the token is unknown or inactive.
	LookupActive(ctx context.Context, token string) (string, error)
}
