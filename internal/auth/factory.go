package auth

import (
	"fmt"
	"net/http"

	"github.com/enrolsync/arlo-catalog-sync/internal/config"
	"github.com/enrolsync/arlo-catalog-sync/internal/logger"
)

// ValidatorFactory creates the token validator for a token mode configuration
type ValidatorFactory func(cfg *config.AuthConfig) (TokenValidator, error)

// DefaultValidatorFactory reads the signing key and creates an HMAC validator
var DefaultValidatorFactory ValidatorFactory = func(cfg *config.AuthConfig) (TokenValidator, error) {
	secret, err := cfg.GetSecret()
	if err != nil {
		return nil, err
	}
	return NewHMACValidator(secret, cfg.Issuer, cfg.Audience)
}

// NewAuthMiddleware creates authentication middleware based on config.
// A nil config or anonymous mode passes every request through. In token mode
// the configured public paths bypass authentication.
func NewAuthMiddleware(cfg *config.AuthConfig, factory ValidatorFactory) (func(http.Handler) http.Handler, error) {
	switch cfg.GetMode() {
	case config.AuthModeAnonymous:
		logger.Info("auth: anonymous mode")
		return anonymousMiddleware, nil
	case config.AuthModeToken:
		if factory == nil {
			factory = DefaultValidatorFactory
		}
		validator, err := factory(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create token validator: %w", err)
		}
		m, err := newTokenMiddleware(validator, cfg.Realm)
		if err != nil {
			return nil, err
		}
		logger.Infow("auth: token mode", "public_paths", cfg.GetPublicPaths())
		return WrapWithPublicPaths(m.Middleware, cfg.GetPublicPaths()), nil
	default:
		return nil, fmt.Errorf("unsupported auth mode: %s", cfg.GetMode())
	}
}

// anonymousMiddleware is a no-op middleware that passes requests through without authentication.
func anonymousMiddleware(next http.Handler) http.Handler {
	return next
}
