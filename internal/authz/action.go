package authz

import (
	"net/http"
	"strings"

	"github.com/enrolsync/arlo-catalog-sync/internal/config"
)

// Action aliases from config for convenience within the authz package.
const (
	ActionRead  = config.ActionRead
	ActionWrite = config.ActionWrite
	ActionAdmin = config.ActionAdmin
)

const tenantsPrefix = "/v1/tenants/"

// RouteAction returns the action a request needs.
// Reads need read, manual syncs need write, anything else needs admin.
func RouteAction(method, path string) string {
	if method == http.MethodGet || method == http.MethodHead {
		return ActionRead
	}
	if method == http.MethodPost && isSyncTrigger(path) {
		return ActionWrite
	}
	return ActionAdmin
}

// isSyncTrigger matches /v1/tenants/{platform}/sync
func isSyncTrigger(path string) bool {
	platform, rest, found := strings.Cut(strings.TrimPrefix(path, tenantsPrefix), "/")
	return strings.HasPrefix(path, tenantsPrefix) && found && platform != "" && rest == "sync"
}

// extractPlatform returns the tenant a /v1/tenants/{platform}/... path addresses
func extractPlatform(path string) string {
	if !strings.HasPrefix(path, tenantsPrefix) {
		return ""
	}
	platform, _, _ := strings.Cut(strings.TrimPrefix(path, tenantsPrefix), "/")
	return platform
}
