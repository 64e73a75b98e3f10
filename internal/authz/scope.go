package authz

import (
	"slices"
	"strings"

	"github.com/enrolsync/arlo-catalog-sync/internal/config"
)

// ExtractScopes returns the OAuth scopes of a token.
// Both "scope" (space-separated string, RFC 6749) and "scp" (string array) are read;
// "scope" wins when both are present.
func ExtractScopes(claims map[string]any) []string {
	if scopeStr, ok := claims["scope"].(string); ok && scopeStr != "" {
		return strings.Fields(scopeStr)
	}

	if scpArr, ok := claims["scp"].([]any); ok {
		scopes := make([]string, 0, len(scpArr))
		for _, s := range scpArr {
			if str, ok := s.(string); ok {
				scopes = append(scopes, str)
			}
		}
		return scopes
	}

	return nil
}

// MapScopesToActions returns the sorted, de-duplicated actions granted to scopes
func MapScopesToActions(scopes []string, mapping []config.ScopeMappingEntry) []string {
	actions := []string{}
	for _, entry := range mapping {
		if !slices.Contains(scopes, entry.Scope) {
			continue
		}
		for _, action := range entry.Actions {
			if !slices.Contains(actions, action) {
				actions = append(actions, action)
			}
		}
	}
	slices.Sort(actions)
	return actions
}
