package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"posgrad/internal/auth"

	"github.com/rs/zerolog"
)

// Injected key type to avoid context collisions
type contextKey string

const (
	UserContextKey  = contextKey("user")
	EmailContextKey = contextKey("email")
)

// AuthMiddleware requires a bearer token signed with jwtSecret that belongs
// to an admin under policy, and stores the subject and email in the request
// context.
func AuthMiddleware(jwtSecret string, policy auth.AdminPolicy, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				logger.Warn().Str("path", r.URL.Path).Msg("Missing or malformed authorization header")
				http.Error(w, "Authorization header missing", http.StatusUnauthorized)
				return
			}
			claims, err := auth.ValidateJWT(tokenString, jwtSecret)
			if err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("Invalid token")
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}
			if err := policy.Check(claims); err != nil {
				logger.Warn().Err(err).Str("sub", claims.Subject).Str("role", claims.Role).Str("path", r.URL.Path).Msg("Rejected admin request")
				if errors.Is(err, auth.ErrNotAdmin) {
					http.Error(w, "Forbidden", http.StatusForbidden)
					return
				}
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), UserContextKey, claims.Subject)
			ctx = context.WithValue(ctx, EmailContextKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SharedSecretMiddleware requires "Authorization: Bearer <secret>".
func SharedSecretMiddleware(secret string, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok || secret == "" || !constantTimeEqual(token, secret) {
				logger.Warn().Str("path", r.URL.Path).Msg("Rejected request with bad shared secret")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromContext returns the subject stored by AuthMiddleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserContextKey).(string)
	return id, ok && id != ""
}

func bearerToken(r *http.Request) (string, bool) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
