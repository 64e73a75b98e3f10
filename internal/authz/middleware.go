package authz

import (
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"github.com/enrolsync/arlo-catalog-sync/internal/auth"
	"github.com/enrolsync/arlo-catalog-sync/internal/config"
	"github.com/enrolsync/arlo-catalog-sync/internal/logger"
)

// ForbiddenResponse is the JSON body returned when authorization is denied.
type ForbiddenResponse struct {
	Error   string           `json:"error"`
	Message string           `json:"message"`
	Details *ForbiddenDetail `json:"details,omitempty"`
}

// ForbiddenDetail tells the caller which action was required and which scopes grant it
type ForbiddenDetail struct {
	RequiredAction string   `json:"required_action"`
	UserScopes     []string `json:"user_scopes"`
	Hint           string   `json:"hint"`
}

// Middleware creates an HTTP middleware that authorizes requests by token scope.
// It runs after the auth middleware. Requests without an identity arrived on a
// public path or in anonymous mode and pass through unchecked.
func Middleware(authorizer Authorizer, scopeMapping []config.ScopeMappingEntry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := auth.IdentityFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			scopes := ExtractScopes(identity.Claims)
			req := Request{
				GrantedActions: MapScopesToActions(scopes, scopeMapping),
				Action:         RouteAction(r.Method, r.URL.Path),
				Platform:       extractPlatform(r.URL.Path),
			}

			decision, err := authorizer.Authorize(r.Context(), req)
			if err != nil {
				logger.Errorw("Authorization evaluation failed",
					"error", err,
					"action", req.Action,
					"path", r.URL.Path,
					"subject", identity.Subject)
				writeJSONError(w, http.StatusInternalServerError, "authorization evaluation failed")
				return
			}

			if !decision.Allowed {
				logger.Warnw("Authorization denied",
					"action", req.Action,
					"path", r.URL.Path,
					"method", r.Method,
					"platform", req.Platform,
					"subject", identity.Subject,
					"scopes", scopes,
					"reason", decision.Reason)
				writeForbidden(w, req.Action, scopes, scopeMapping)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeForbidden writes a 403 JSON response naming the scopes that would grant access
func writeForbidden(w http.ResponseWriter, requiredAction string, userScopes []string, scopeMapping []config.ScopeMappingEntry) {
	if userScopes == nil {
		userScopes = []string{}
	}
	resp := ForbiddenResponse{
		Error:   "forbidden",
		Message: "You do not have permission to perform this action.",
		Details: &ForbiddenDetail{
			RequiredAction: requiredAction,
			UserScopes:     userScopes,
			Hint:           buildHint(requiredAction, scopeMapping),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Errorf("Failed to encode forbidden response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	resp := struct {
		Error string `json:"error"`
	}{
		Error: message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Errorf("Failed to encode error response: %v", err)
	}
}

func buildHint(requiredAction string, scopeMapping []config.ScopeMappingEntry) string {
	var matchingScopes []string
	for _, entry := range scopeMapping {
		if slices.Contains(entry.Actions, requiredAction) {
			matchingScopes = append(matchingScopes, entry.Scope)
		}
	}

	if len(matchingScopes) == 0 {
		return "No configured scopes grant the required action."
	}
	return "This operation requires one of the following scopes: " + strings.Join(matchingScopes, ", ")
}
