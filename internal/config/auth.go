package config

import (
	"fmt"
	"os"
)

const (
	EnvAuthMode         = "AUGUR_AUTH_MODE"
	EnvAuthDevOwner     = "AUGUR_AUTH_DEV_OWNER"
	EnvAuthOIDCIssuer   = "AUGUR_AUTH_OIDC_ISSUER"
	EnvAuthOIDCClientID = "AUGUR_AUTH_OIDC_CLIENT_ID"

	// AuthModeToken validates bearer tokens against the api_tokens table.
	AuthModeToken = "token"
	// AuthModeOIDC validates bearer tokens as OIDC ID tokens.
	AuthModeOIDC = "oidc"
)

// AuthConfig selects and parameterizes the authorization policy applied to the
// prediction endpoints. The policy only takes effect outside dev mode; in dev
// mode every request resolves to DevOwner without any token lookup.
type AuthConfig struct {
	Mode     string     `toml:"mode"`
	DevOwner string     `toml:"dev_owner"`
	OIDC     OIDCConfig `toml:"oidc"`
}

// OIDCConfig holds issuer discovery parameters for the oidc auth mode.
type OIDCConfig struct {
	Issuer   string `toml:"issuer"`
	ClientID string `toml:"client_id"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AuthConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	if overlay.Mode != "" {
		c.Mode = overlay.Mode
	}
	if overlay.DevOwner != "" {
		c.DevOwner = overlay.DevOwner
	}
	if overlay.OIDC.Issuer != "" {
		c.OIDC.Issuer = overlay.OIDC.Issuer
	}
	if overlay.OIDC.ClientID != "" {
		c.OIDC.ClientID = overlay.OIDC.ClientID
	}
}

func (c *AuthConfig) loadDefaults() {
	if c.Mode == "" {
		c.Mode = AuthModeToken
	}
	if c.DevOwner == "" {
		c.DevOwner = "dev_user"
	}
}

func (c *AuthConfig) loadEnv() {
	if v := os.Getenv(EnvAuthMode); v != "" {
		c.Mode = v
	}
	if v := os.Getenv(EnvAuthDevOwner); v != "" {
		c.DevOwner = v
	}
	if v := os.Getenv(EnvAuthOIDCIssuer); v != "" {
		c.OIDC.Issuer = v
	}
	if v := os.Getenv(EnvAuthOIDCClientID); v != "" {
		c.OIDC.ClientID = v
	}
}

func (c *AuthConfig) validate() error {
	switch c.Mode {
	case AuthModeToken:
	case AuthModeOIDC:
		if c.OIDC.Issuer == "" {
			return fmt.Errorf("oidc issuer required for oidc mode")
		}
		if c.OIDC.ClientID == "" {
			return fmt.Errorf("oidc client_id required for oidc mode")
		}
	default:
		return fmt.Errorf("unknown auth mode: %s", c.Mode)
	}
	return nil
}
