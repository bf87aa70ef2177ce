package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// AuthMiddleware guards the API with a single bearer token. Only the
// bcrypt hash of the configured token is kept in memory.
type AuthMiddleware struct {
	tokenHash []byte
}

// NewAuthMiddleware hashes the configured token once at startup. An empty
// token disables authentication entirely.
func NewAuthMiddleware(token string, bcryptCost int) (*AuthMiddleware, error) {
	if token == "" {
		return &AuthMiddleware{}, nil
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcryptCost)
	if err != nil {
		return nil, err
	}
	return &AuthMiddleware{tokenHash: hash}, nil
}

// RequireToken rejects requests whose Authorization header does not carry
// the configured bearer token. No-op when auth is disabled.
func (m *AuthMiddleware) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.tokenHash == nil {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || bcrypt.CompareHashAndPassword(m.tokenHash, []byte(token)) != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error":  "invalid or missing bearer token",
				"status": "error",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
