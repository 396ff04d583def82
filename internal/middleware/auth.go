// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const userKey ctxKey = "user"

// TokenValidator resolves a session token to the current user id.
type TokenValidator interface {
	ValidateToken(token string) (string, bool)
}

// TokenAuth is a middleware that enforces bearer-token authentication.
//
// It reads the Authorization header, validates the token against the
// identity provider, and stores the resolved user id in the request
// context so it can be used downstream as the authenticated user ID.
// Requests without a valid token for the current session are rejected.
func TokenAuth(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			userID, ok := tokens.ValidateToken(token)
			if !ok {
				http.Error(w, "invalid or expired session token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext extracts the authenticated user id from the
// request context. Returns an empty string if not found.
func GetUserIDFromContext(ctx context.Context) string {
	val := ctx.Value(userKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
