package models

import "time"

// OIDCConfig holds OIDC provider configuration stored in the database
type OIDCConfig struct {
	ID           int       `json:"id"`
	Provider     string    `json:"provider"`
	Issuer       string    `json:"issuer"`
	ClientID     string    `json:"client_id"`
	ClientSecret *string   `json:"-"`
	RedirectURI  string    `json:"redirect_uri"`
	JWKSUrl      *string   `json:"jwks_url,omitempty"`
	Domain       *string   `json:"domain,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
