package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/database"
	logpkg "github.com/MayorChristopher/artificialfarm-sub000/internal/logger"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/request"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/services/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserFromContext extracts the user from the request context. Returns nil
// for anonymous requests.
func UserFromContext(r *http.Request) *models.User {
	return request.UserFromContext(r)
}

// Authenticator validates bearer tokens and resolves them to user profiles,
// creating a profile row on first sight of a provider subject.
type Authenticator struct {
	users       *database.UserRepository
	provider    *auth.Provider
	jwksManager *auth.JWKSManager
	// providerName selects which auth_config row verifies tokens.
	providerName string
	logger       *zap.Logger
}

// NewAuthenticator creates a new authenticator
func NewAuthenticator(
	users *database.UserRepository,
	provider *auth.Provider,
	jwksManager *auth.JWKSManager,
	providerName string,
	logger *zap.Logger,
) *Authenticator {
	return &Authenticator{
		users:        users,
		provider:     provider,
		jwksManager:  jwksManager,
		providerName: providerName,
		logger:       logger,
	}
}

// Auth requires a valid bearer token and attaches the resolved user to the
// request context. Requests without one get 401.
func (a *Authenticator) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Missing or malformed Authorization header")
			return
		}

		user, err := a.resolveUser(r.Context(), token)
		if err != nil {
			var se *statusError
			if errors.As(err, &se) {
				respondError(w, se.status, se.message)
				return
			}
			respondError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := request.WithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth attaches the user when a valid bearer token is present and
// lets the request through anonymously otherwise. An invalid token is
// treated the same as no token; the chat endpoint serves both.
func (a *Authenticator) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		user, err := a.resolveUser(r.Context(), token)
		if err != nil {
			a.logger.Debug("optional_auth_token_rejected", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		ctx := request.WithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolveUser verifies the token and loads or provisions the user profile.
func (a *Authenticator) resolveUser(ctx context.Context, token string) (*models.User, error) {
	authConfig, err := a.provider.GetConfig(ctx, a.providerName)
	if err != nil {
		return nil, &statusError{http.StatusInternalServerError, "Failed to get auth configuration"}
	}
	if authConfig.JWKSUrl == nil {
		return nil, &statusError{http.StatusInternalServerError, "JWKS URL not configured"}
	}

	verifier := auth.NewVerifier(a.jwksManager, authConfig.Issuer)
	claims, err := verifier.Verify(ctx, token, *authConfig.JWKSUrl)
	if err != nil {
		a.logger.Debug("token_verification_failed",
			zap.String("issuer", authConfig.Issuer),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}

	user, err := a.users.GetByProviderID(ctx, claims.Sub)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			user = &models.User{
				ID:            uuid.New(),
				Email:         claims.Email,
				ProviderID:    &claims.Sub,
				Name:          &claims.Name,
				EmailVerified: true,
			}
			if err := a.users.Create(ctx, user); err != nil {
				a.logger.Error("failed_to_create_user",
					zap.String("provider_id", logpkg.SanitizeUserID(claims.Sub)),
					zap.Error(err),
				)
				return nil, &statusError{http.StatusInternalServerError, "Failed to create user"}
			}
			a.logger.Info("user_provisioned",
				zap.String("user_id", user.ID.String()),
				zap.String("provider_id", logpkg.SanitizeUserID(claims.Sub)),
			)
			return user, nil
		}
		a.logger.Error("failed_to_fetch_user", zap.Error(err))
		return nil, &statusError{http.StatusInternalServerError, "Database error"}
	}

	// Keep the profile in sync with the token claims
	updateNeeded := false
	if claims.Email != "" && user.Email != claims.Email {
		user.Email = claims.Email
		updateNeeded = true
	}
	if claims.Name != "" && (user.Name == nil || *user.Name != claims.Name) {
		name := claims.Name
		user.Name = &name
		updateNeeded = true
	}
	if updateNeeded {
		if err := a.users.Update(ctx, user); err != nil {
			a.logger.Warn("failed_to_update_user_profile", zap.Error(err))
		}
	}

	return user, nil
}

// statusError carries an HTTP status for failures that are not token
// problems, so Auth can distinguish 500s from 401s.
type statusError struct {
	status  int
	message string
}

func (e *statusError) Error() string {
	return e.message
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]any{
		"success": false,
		"error":   message,
	}
	_ = json.NewEncoder(w).Encode(response)
}
