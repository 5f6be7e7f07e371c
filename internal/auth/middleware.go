package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/augurd/augur/pkg/handlers"
)

type contextKey struct{}

var ownerKey contextKey

// OwnerFromContext returns the owner identity resolved by the auth middleware.
func OwnerFromContext(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(ownerKey).(string)
	return owner, ok
}

// Middleware resolves the owner before the wrapped handler runs. A failed
// resolution terminates the request with the mapped status; the handler, and
// therefore every classifier and persistence collaborator, is never invoked.
func Middleware(policy Policy, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("system", "auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			owner, err := policy.Resolve(r)
			if err != nil {
				handlers.RespondError(w, logger, MapHTTPStatus(err), err, PublicMessage(err))
				return
			}

			ctx := context.WithValue(r.Context(), ownerKey, owner)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
