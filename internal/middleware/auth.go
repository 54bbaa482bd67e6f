// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/fintrack-app/fintrack/internal/auth"
	"github.com/fintrack-app/fintrack/internal/errors"
	"github.com/fintrack-app/fintrack/pkg/logger"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller, decoded from a verified token. The
// token is trusted as the source of truth for the request's lifetime; no
// database lookup happens on this path.
type Identity struct {
	UserID string
	Email  string
}

// AuthMiddleware resolves the caller identity from the Authorization header.
type AuthMiddleware struct {
	issuer *auth.TokenIssuer
	logger *logger.Logger
}

// NewAuthMiddleware creates the identity-resolution middleware.
func NewAuthMiddleware(issuer *auth.TokenIssuer, log *logger.Logger) *AuthMiddleware {
	if log == nil {
		log = logger.NewDefault("middleware")
	}
	return &AuthMiddleware{issuer: issuer, logger: log}
}

// Handler attaches the resolved identity to the request context. A missing
// or invalid token leaves the request anonymous; protected operations reject
// downstream, so public operations stay reachable through the same pipeline.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.issuer.Verify(parts[1])
		if err != nil {
			m.logger.WithError(err).Debug("token verification failed; continuing anonymous")
			next.ServeHTTP(w, r)
			return
		}

		ctx := WithIdentity(r.Context(), Identity{UserID: claims.UserID, Email: claims.Email})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithIdentity returns a context carrying the identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom extracts the identity from the context, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// RequireIdentity is the authorization guard applied to every protected
// operation: it fails with UNAUTHENTICATED when the context carries no
// resolved identity.
func RequireIdentity(ctx context.Context) (Identity, error) {
	id, ok := IdentityFrom(ctx)
	if !ok || id.UserID == "" {
		return Identity{}, errors.Unauthenticated("user not authenticated")
	}
	return id, nil
}
