// Package auth resolves an owner identity for every prediction request.
// The policy in force is fixed at startup: dev deployments bypass credentials
// entirely, everything else requires a bearer token validated against the
// token store or an OIDC issuer.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/augurd/augur/internal/tokens"
)

// Policy decides whether a request is authorized and resolves its owner.
// Resolve must complete before any classifier or persistence work begins.
type Policy interface {
	Resolve(r *http.Request) (string, error)
}

// AlwaysAllow resolves every request to a fixed owner without consulting any
// credential source. This is the dev-mode bypass; it must never be selected
// in production deployments.
type AlwaysAllow struct {
	Owner string
}

func (p AlwaysAllow) Resolve(_ *http.Request) (string, error) {
	return p.Owner, nil
}

// TokenRequired resolves the bearer token against the active token store.
// Exactly one lookup is performed per request.
type TokenRequired struct {
	Tokens tokens.System
}

func (p TokenRequired) Resolve(r *http.Request) (string, error) {
	token, err := bearerToken(r)
	if err != nil {
		return "", err
	}

	owner, err := p.Tokens.LookupActive(r.Context(), token)
	if err != nil {
		if errors.Is(err, tokens.ErrNotFound) {
			return "", ErrForbidden
		}
		return "", fmt.Errorf("token lookup: %w", err)
	}

	return owner, nil
}

// bearerToken extracts the credential from the Authorization header.
// A missing or malformed header is an Unauthorized condition: the caller
// supplied nothing usable, so no lookup is attempted.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", fmt.Errorf("%w: missing Authorization header", ErrUnauthorized)
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", fmt.Errorf("%w: Authorization header is not a bearer token", ErrUnauthorized)
	}

	return token, nil
}
