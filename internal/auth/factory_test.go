package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enrolsync/arlo-catalog-sync/internal/config"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serveWith(mw func(http.Handler) http.Handler, path, token string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rr, req)
	return rr.Code
}

func TestNewAuthMiddleware_Anonymous(t *testing.T) {
	t.Parallel()

	for _, cfg := range []*config.AuthConfig{nil, {}, {Mode: config.AuthModeAnonymous}} {
		mw, err := NewAuthMiddleware(cfg, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, serveWith(mw, "/v1/tenants", ""))
	}
}

func TestNewAuthMiddleware_UnsupportedMode(t *testing.T) {
	t.Parallel()

	_, err := NewAuthMiddleware(&config.AuthConfig{Mode: "oauth"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported auth mode")
}

func TestNewAuthMiddleware_FactoryError(t *testing.T) {
	t.Parallel()

	_, err := NewAuthMiddleware(&config.AuthConfig{Mode: config.AuthModeToken},
		func(*config.AuthConfig) (TokenValidator, error) { return nil, errors.New("no key") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create token validator")
}

func TestNewAuthMiddleware_TokenMode(t *testing.T) {
	t.Parallel()

	secretFile := filepath.Join(t.TempDir(), "secret")
	require.NoError(t, os.WriteFile(secretFile, []byte(testSecret+"\n"), 0600))

	cfg := &config.AuthConfig{
		Mode:       config.AuthModeToken,
		SecretFile: secretFile,
		Issuer:     testIssuer,
		Audience:   testAudience,
	}
	mw, err := NewAuthMiddleware(cfg, nil)
	require.NoError(t, err)

	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims())

	assert.Equal(t, http.StatusOK, serveWith(mw, "/health", ""))
	assert.Equal(t, http.StatusOK, serveWith(mw, "/version", ""))
	assert.Equal(t, http.StatusUnauthorized, serveWith(mw, "/v1/tenants", ""))
	assert.Equal(t, http.StatusUnauthorized, serveWith(mw, "/v1/tenants", "forged"))
	assert.Equal(t, http.StatusOK, serveWith(mw, "/v1/tenants", token))
}

func TestNewAuthMiddleware_MissingSecret(t *testing.T) {
	t.Parallel()

	_, err := NewAuthMiddleware(&config.AuthConfig{
		Mode:       config.AuthModeToken,
		SecretFile: filepath.Join(t.TempDir(), "missing"),
	}, nil)
	require.Error(t, err)
}
