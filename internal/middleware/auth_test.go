package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedHandler(t *testing.T, m *AuthMiddleware) http.Handler {
	t.Helper()
	return m.RequireToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestRequireTokenDisabledWhenUnconfigured(t *testing.T) {
	m, err := NewAuthMiddleware("", 12)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	protectedHandler(t, m).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireTokenAcceptsValidBearer(t *testing.T) {
	// Low cost keeps the test fast; production uses the configured cost.
	m, err := NewAuthMiddleware("secret-token", 4)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer secret-token")

	rec := httptest.NewRecorder()
	protectedHandler(t, m).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireTokenRejectsBadToken(t *testing.T) {
	m, err := NewAuthMiddleware("secret-token", 4)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong token", "Bearer wrong"},
		{"not bearer", "Basic secret-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			protectedHandler(t, m).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "bearer token")
		})
	}
}
