package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mcoot/lobbyregistry/internal/api/apierr"
)

type contextKey string

const credentialContextKey contextKey = "credential"

// Credentials accepts a private id sent as "Authorization: Bearer <id>". The
// header is optional; handlers fall back to it when the request names no
// private id of its own.
func Credentials(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		id, err := uuid.Parse(token)
		if err != nil {
			apierr.WriteError(w, apierr.NewInvalidRequestError("bearer token must be a private id"))
			return
		}

		ctx := context.WithValue(r.Context(), credentialContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken extracts the bearer token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// GetCredential returns the private id presented with the request, if any
func GetCredential(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(credentialContextKey).(uuid.UUID)
	return id, ok
}
