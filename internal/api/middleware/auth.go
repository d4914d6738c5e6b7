// Package middleware guards the HTTP surface with a bearer-token check. The
// JWT secret is injected by the caller rather than read from os.Getenv
// directly, so cmd/bracketd can source it from internal/config once at
// startup.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const subjectKey contextKey = "subject"

type claims struct {
	jwt.RegisteredClaims
}

// Auth returns middleware that validates a Bearer JWT signed with secret and
// stashes its subject claim in the request context.
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, `{"error":"authorization header required"}`, http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, `{"error":"invalid authorization header format"}`, http.StatusUnauthorized)
				return
			}

			token, err := jwt.ParseWithClaims(parts[1], &claims{}, func(token *jwt.Token) (interface{}, error) {
				return secret, nil
			})
			if err != nil {
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}

			c, ok := token.Claims.(*claims)
			if !ok || !token.Valid {
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey, c.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Subject extracts the validated token's subject claim from the context.
func Subject(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey).(string)
	return subject, ok
}
