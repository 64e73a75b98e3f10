// Package auth provides bearer token authentication for the admin API.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/enrolsync/arlo-catalog-sync/internal/logger"
)

// Bearer challenge error codes (RFC 6750 section 3.1)
const (
	errorCodeInvalidRequest = "invalid_request"
	errorCodeInvalidToken   = "invalid_token"
)

const defaultRealm = "arlo-sync"

// tokenMiddleware authenticates requests with a single token validator
type tokenMiddleware struct {
	validator TokenValidator
	realm     string
}

// newTokenMiddleware creates a new token authentication middleware.
func newTokenMiddleware(validator TokenValidator, realm string) (*tokenMiddleware, error) {
	if validator == nil {
		return nil, errors.New("token validator is required")
	}
	if realm == "" {
		realm = defaultRealm
	}
	return &tokenMiddleware{validator: validator, realm: realm}, nil
}

// Middleware rejects requests without a valid bearer token and puts the caller's
// Identity on the request context otherwise.
func (m *tokenMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := ExtractBearerToken(r)
		if err != nil {
			logger.Warnw("Token extraction failed",
				"error", err,
				"remote_addr", r.RemoteAddr,
				"path", r.URL.Path)
			m.writeError(w, errorCodeInvalidRequest, "missing or malformed authorization header")
			return
		}

		claims, err := m.validator.ValidateToken(r.Context(), token)
		if err != nil {
			logger.Warnw("Token validation failed",
				"error", err,
				"remote_addr", r.RemoteAddr,
				"path", r.URL.Path)
			m.writeError(w, errorCodeInvalidToken, "token validation failed")
			return
		}

		subject, _ := claims.GetSubject()
		logger.Debugw("Authentication successful",
			"subject", subject,
			"remote_addr", r.RemoteAddr,
			"path", r.URL.Path)

		ctx := WithIdentity(r.Context(), &Identity{Subject: subject, Claims: claims})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sanitizeHeaderValue makes s safe inside a quoted header parameter
func sanitizeHeaderValue(s string) string {
	if !strings.ContainsAny(s, "\r\n\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

// writeError answers 401 with a Bearer challenge and a JSON body
func (m *tokenMiddleware) writeError(w http.ResponseWriter, errCode, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", fmt.Sprintf(`Bearer realm="%s", error="%s", error_description="%s"`,
		sanitizeHeaderValue(m.realm), errCode, sanitizeHeaderValue(description)))
	w.WriteHeader(http.StatusUnauthorized)

	resp := struct {
		Error string `json:"error"`
	}{
		Error: description,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Errorf("Failed to encode error response: %v", err)
	}
}

// WrapWithPublicPaths applies authMw to every request except those for publicPaths.
func WrapWithPublicPaths(
	authMw func(http.Handler) http.Handler,
	publicPaths []string,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		protected := authMw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsPublicPath(r.URL.Path, publicPaths) {
				next.ServeHTTP(w, r)
				return
			}
			protected.ServeHTTP(w, r)
		})
	}
}
