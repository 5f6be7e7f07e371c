package config

import (
	"fmt"

	"github.com/augurd/augur/pkg/middleware"
	"github.com/augurd/augur/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "AUGUR_CORS_ENABLED",
	Origins:          "AUGUR_CORS_ORIGINS",
	AllowedMethods:   "AUGUR_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "AUGUR_CORS_ALLOWED_HEADERS",
	AllowCredentials: "AUGUR_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "AUGUR_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "AUGUR_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "AUGUR_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds CORS and pagination settings for the prediction endpoints.
type APIConfig struct {
	CORS       middleware.CORSConfig `toml:"cors"`
	Pagination pagination.Config     `toml:"pagination"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}
