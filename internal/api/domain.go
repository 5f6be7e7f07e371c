package api

import (
	"context"
	"fmt"

	"github.com/augurd/augur/internal/auth"
	"github.com/augurd/augur/internal/classifier"
	"github.com/augurd/augur/internal/config"
	"github.com/augurd/augur/internal/predictions"
	"github.com/augurd/augur/internal/tokens"
)

// Domain holds the domain systems that comprise the API, along with the
// authorization policy fixed at startup.
type Domain struct {
	Predictions predictions.System
	Tokens      tokens.System
	Policy      auth.Policy
}

// NewDomain creates the domain systems from the API runtime. Model loading
// and OIDC issuer discovery happen here; either failing aborts startup so
// the service never serves against a partial registry or a dead verifier.
func NewDomain(ctx context.Context, cfg *config.Config, runtime *Runtime) (*Domain, error) {
	registry, err := classifier.Load(ctx, cfg.Models, runtime.Storage, runtime.Logger)
	if err != nil {
		return nil, fmt.Errorf("load classifiers: %w", err)
	}

	tokenSystem := tokens.New(runtime.Database.Connection(), runtime.Logger)

	predictionSystem := predictions.New(
		predictions.NewStore(runtime.Database.Connection()),
		registry,
		runtime.Logger,
		runtime.Pagination,
	)

	policy, err := selectPolicy(ctx, cfg, tokenSystem)
	if err != nil {
		return nil, err
	}

	return &Domain{
		Predictions: predictionSystem,
		Tokens:      tokenSystem,
		Policy:      policy,
	}, nil
}

func selectPolicy(ctx context.Context, cfg *config.Config, tokenSystem tokens.System) (auth.Policy, error) {
	if cfg.DevMode() {
		return auth.AlwaysAllow{Owner: cfg.Auth.DevOwner}, nil
	}

	switch cfg.Auth.Mode {
	case config.AuthModeOIDC:
		policy, err := auth.NewOIDC(ctx, cfg.Auth.OIDC.Issuer, cfg.Auth.OIDC.ClientID)
		if err != nil {
			return nil, fmt.Errorf("init oidc policy: %w", err)
		}
		return policy, nil
	default:
		return auth.TokenRequired{Tokens: tokenSystem}, nil
	}
}
