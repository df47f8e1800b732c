package auth

import (
	"context"
	"strings"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
	"golang.org/x/oauth2"
)

// Client wraps the OAuth2 authorization-code exchange for a configured
// provider. Used by server-side flows; the SPA exchanges codes itself via
// the login config endpoints.
type Client struct {
	config *oauth2.Config
}

// NewClient creates a new OAuth2 client from stored auth config
func NewClient(authConfig *models.AuthConfig, redirectURL string) *Client {
	issuer := strings.TrimSuffix(authConfig.Issuer, "/")
	authURL := issuer + "/oauth2/authorize"
	if authConfig.AuthEndpoint != nil && *authConfig.AuthEndpoint != "" {
		authURL = *authConfig.AuthEndpoint
	}

	config := &oauth2.Config{
		ClientID:    authConfig.ClientID,
		RedirectURL: redirectURL,
		Scopes:      []string{"openid", "email", "profile"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  authURL,
			TokenURL: issuer + "/oauth2/token",
		},
	}

	return &Client{config: config}
}

// ExchangeCode exchanges an authorization code for tokens
func (c *Client) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	return c.config.Exchange(ctx, code)
}

// AuthCodeURL returns the authorization URL
func (c *Client) AuthCodeURL(state string) string {
	return c.config.AuthCodeURL(state)
}
