package models

import "time"

// AuthConfig holds hosted-auth provider configuration stored in the database.
// JWKSUrl is nullable so a provider row can be staged before keys are known.
type AuthConfig struct {
	Provider     string    `json:"provider"`
	Issuer       string    `json:"issuer"`
	ClientID     string    `json:"client_id"`
	JWKSUrl      *string   `json:"jwks_url,omitempty"`
	AuthEndpoint *string   `json:"auth_endpoint,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
