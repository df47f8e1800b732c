package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
)

// AuthConfigRepository handles hosted-auth provider configuration.
type AuthConfigRepository struct {
	db *DB
}

// NewAuthConfigRepository creates a new auth config repository
func NewAuthConfigRepository(db *DB) *AuthConfigRepository {
	return &AuthConfigRepository{db: db}
}

// GetByProvider retrieves auth configuration by provider name
func (r *AuthConfigRepository) GetByProvider(ctx context.Context, provider string) (*models.AuthConfig, error) {
	config := &models.AuthConfig{}
	query := `
		SELECT provider, issuer, client_id, jwks_url, auth_endpoint, created_at, updated_at
		FROM auth_config
		WHERE provider = $1
	`

	err := r.db.QueryRowContext(ctx, query, provider).Scan(
		&config.Provider,
		&config.Issuer,
		&config.ClientID,
		&config.JWKSUrl,
		&config.AuthEndpoint,
		&config.CreatedAt,
		&config.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("auth config not found for provider %q: %w", provider, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get auth config: %w", err)
	}

	return config, nil
}

// Set upserts auth configuration for a provider
func (r *AuthConfigRepository) Set(ctx context.Context, config *models.AuthConfig) error {
	query := `
		INSERT INTO auth_config (provider, issuer, client_id, jwks_url, auth_endpoint, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (provider) DO UPDATE SET
			issuer = EXCLUDED.issuer,
			client_id = EXCLUDED.client_id,
			jwks_url = EXCLUDED.jwks_url,
			auth_endpoint = EXCLUDED.auth_endpoint,
			updated_at = EXCLUDED.updated_at
	`

	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		config.Provider,
		config.Issuer,
		config.ClientID,
		config.JWKSUrl,
		config.AuthEndpoint,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to set auth config: %w", err)
	}

	return nil
}

// List retrieves all configured auth providers
func (r *AuthConfigRepository) List(ctx context.Context) ([]*models.AuthConfig, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT provider, issuer, client_id, jwks_url, auth_endpoint, created_at, updated_at
		FROM auth_config
		ORDER BY provider
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list auth configs: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	var configs []*models.AuthConfig
	for rows.Next() {
		c := &models.AuthConfig{}
		if err := rows.Scan(&c.Provider, &c.Issuer, &c.ClientID, &c.JWKSUrl, &c.AuthEndpoint, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan auth config: %w", err)
		}
		configs = append(configs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate auth configs: %w", err)
	}

	return configs, nil
}
