package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
)

// OIDC validates bearer credentials as OIDC ID tokens against a configured
// issuer. The owner identity is the token's email claim when present,
// otherwise its subject.
type OIDC struct {
	verifier *oidc.IDTokenVerifier
}

// NewOIDC discovers the issuer's verification keys. Discovery failure is a
// startup failure; the service must not serve predictions without a working
// verifier.
func NewOIDC(ctx context.Context, issuer, clientID string) (*OIDC, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("discover oidc issuer %s: %w", issuer, err)
	}

	return &OIDC{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

func (p *OIDC) Resolve(r *http.Request) (string, error) {
	raw, err := bearerToken(r)
	if err != nil {
		return "", err
	}

	idToken, err := p.verifier.Verify(r.Context(), raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrForbidden, err)
	}

	var claims struct {
		Email string `json:"email"`
	}
	if err := idToken.Claims(&claims); err == nil && claims.Email != "" {
		return claims.Email, nil
	}

	return idToken.Subject, nil
}
