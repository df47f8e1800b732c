// Package request holds per-request helpers shared by middleware and
// handlers: the authenticated user stored on the context and client IP
// extraction behind proxies.
package request

import (
	"context"
	"net/http"
	"strings"

	"github.com/MayorChristopher/artificialfarm-sub000/internal/models"
)

type contextKey string

const userContextKey contextKey = "user"

// UserContextKey exposes the user context key for tests that need to inject
// non-user values.
func UserContextKey() contextKey { return userContextKey }

// WithUser attaches the authenticated user to the context.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext reads the authenticated user off the request context.
// Returns nil for anonymous requests or mistyped values.
func UserFromContext(r *http.Request) *models.User {
	u, _ := r.Context().Value(userContextKey).(*models.User)
	return u
}

// ClientIP resolves the originating client address. X-Forwarded-For wins
// over X-Real-IP, which wins over the socket peer address.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// First entry is the original client; the rest are proxies.
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	return r.RemoteAddr
}
