// Package api assembles the prediction API module: domain systems, the
// authorization policy, and route registration behind the /predict prefix.
package api

import (
	"context"
	"net/http"

	"github.com/augurd/augur/internal/auth"
	"github.com/augurd/augur/internal/config"
	"github.com/augurd/augur/internal/infrastructure"
	"github.com/augurd/augur/pkg/middleware"
	"github.com/augurd/augur/pkg/module"
)

// BasePath is the prefix the prediction API module is mounted under.
const BasePath = "/predict"

// NewModule creates the API module with the prediction handlers and the
// middleware stack. Authorization runs innermost so the owner is resolved
// after logging but before any handler work.
func NewModule(ctx context.Context, cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(ctx, cfg, runtime)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain)

	m := module.New(BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(auth.Middleware(domain.Policy, runtime.Logger))

	return m, nil
}
