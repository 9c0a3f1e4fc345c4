package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"coursehub/internal/auth"
)

// Injected key type to avoid context collisions
type contextKey string

const (
	UserIDKey    = contextKey("userId")
	CreatorIDKey = contextKey("creatorId")
)

// Auth builds a middleware verifying the caller against one token service.
// The credential is read from the "token" cookie; an Authorization bearer
// header is accepted as the equivalent carrier for non-browser clients.
// Any failure short-circuits with 403 and the downstream handler never runs.
func Auth(tokens *auth.TokenService, key contextKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				rejectUnsigned(w)
				return
			}
			principalID, err := tokens.Verify(tokenString)
			if err != nil {
				rejectUnsigned(w)
				return
			}
			ctx := context.WithValue(r.Context(), key, principalID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	if c, err := r.Cookie("token"); err == nil && c.Value != "" {
		return c.Value
	}
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

func rejectUnsigned(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	json.NewEncoder(w).Encode(map[string]string{"message": "You are not signed in"})
}

// UserID returns the authenticated user id attached by Auth, or "".
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}

// CreatorID returns the authenticated creator id attached by Auth, or "".
func CreatorID(ctx context.Context) string {
	id, _ := ctx.Value(CreatorIDKey).(string)
	return id
}
