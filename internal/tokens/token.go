// Package tokens provides read-only access to the active API token store.
// Token issuance and revocation happen outside the service; this package only
// resolves a presented bearer credential to its owner.
package tokens

import "time"

// Token is one row of the api_tokens table.
type Token struct {
	Token     string    `json:"token"`
	Owner     string    `json:"owner"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
