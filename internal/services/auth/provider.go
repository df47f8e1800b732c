package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/database"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
)

// Provider loads hosted-auth provider configuration from the database.
type Provider struct {
	repo *database.AuthConfigRepository
}

// NewProvider creates a new auth provider manager
func NewProvider(repo *database.AuthConfigRepository) *Provider {
	return &Provider{repo: repo}
}

// GetConfig retrieves auth configuration for a provider
func (p *Provider) GetConfig(ctx context.Context, providerName string) (*models.AuthConfig, error) {
	config, err := p.repo.GetByProvider(ctx, providerName)
	if err != nil {
		return nil, fmt.Errorf("failed to get auth config: %w", err)
	}
	return config, nil
}

// LoginConfig contains the login parameters the frontend needs to start an
// authorization flow.
type LoginConfig struct {
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	ClientID              string `json:"client_id"`
	Scope                 string `json:"scope"`
}

// GetLoginConfig returns the configuration needed for frontend login. The
// authorization endpoint comes from, in order: the configured override, the
// provider's discovery document, or a path appended to the issuer.
func (p *Provider) GetLoginConfig(ctx context.Context, providerName string) (*LoginConfig, error) {
	config, err := p.GetConfig(ctx, providerName)
	if err != nil {
		return nil, err
	}

	var authEndpoint, tokenEndpoint string
	if config.AuthEndpoint != nil && *config.AuthEndpoint != "" {
		authEndpoint = *config.AuthEndpoint
	}

	if authEndpoint == "" || tokenEndpoint == "" {
		discoveredAuth, discoveredToken := discoverEndpoints(ctx, config.Issuer)
		if authEndpoint == "" {
			authEndpoint = discoveredAuth
		}
		tokenEndpoint = discoveredToken
	}

	issuer := strings.TrimSuffix(config.Issuer, "/")
	if authEndpoint == "" {
		authEndpoint = issuer + "/oauth2/authorize"
	}
	if tokenEndpoint == "" {
		tokenEndpoint = issuer + "/oauth2/token"
	}

	return &LoginConfig{
		AuthorizationEndpoint: authEndpoint,
		TokenEndpoint:         tokenEndpoint,
		ClientID:              config.ClientID,
		Scope:                 "openid email profile",
	}, nil
}

// discoverEndpoints reads the OIDC discovery document. Failures are not an
// error; callers fall back to issuer-derived endpoints.
func discoverEndpoints(ctx context.Context, issuer string) (authEndpoint, tokenEndpoint string) {
	discoveryURL := strings.TrimSuffix(issuer, "/") + "/.well-known/openid-configuration"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, discoveryURL, nil)
	if err != nil {
		return "", ""
	}
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		if resp != nil {
			_ = resp.Body.Close()
		}
		return "", ""
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var discovery struct {
		AuthorizationEndpoint string `json:"authorization_endpoint"`
		TokenEndpoint         string `json:"token_endpoint"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&discovery); err != nil {
		return "", ""
	}
	return discovery.AuthorizationEndpoint, discovery.TokenEndpoint
}
