package handlers

import (
	"net/http"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/middleware"
	"github.com/MayorChristopher/artificialfarm-sub000/internal/services/auth"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	provider     *auth.Provider
	providerName string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(provider *auth.Provider, providerName string) *AuthHandler {
	return &AuthHandler{provider: provider, providerName: providerName}
}

// GetLogin returns the login configuration for the frontend
func (h *AuthHandler) GetLogin(w http.ResponseWriter, r *http.Request) {
	loginConfig, err := h.provider.GetLoginConfig(r.Context(), h.providerName)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to get auth configuration")
		return
	}

	respondJSON(w, http.StatusOK, loginConfig)
}

// GetMe returns current user information
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	respondJSON(w, http.StatusOK, user)
}
