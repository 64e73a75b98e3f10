// Package authz provides scope based authorization for the admin API.
package authz

import (
	"context"
	"slices"
)

// Authorizer decides whether a caller may perform an action.
type Authorizer interface {
	Authorize(ctx context.Context, req Request) (Decision, error)
}

// Request represents an authorization request.
type Request struct {
	// GrantedActions are the actions granted to the caller by the scope mapping.
	GrantedActions []string

	// Action is the required action (read, write, admin).
	Action string

	// Platform is the tenant addressed by the request, empty for global resources.
	Platform string
}

// Decision represents the result of an authorization check.
type Decision struct {
	// Allowed indicates whether the request is permitted.
	Allowed bool

	// Reason explains the decision.
	Reason string
}

// actionAuthorizer permits a request when the required action was granted
type actionAuthorizer struct{}

// NewActionAuthorizer returns an Authorizer that allows exactly the granted actions
func NewActionAuthorizer() Authorizer {
	return actionAuthorizer{}
}

func (actionAuthorizer) Authorize(_ context.Context, req Request) (Decision, error) {
	if slices.Contains(req.GrantedActions, req.Action) {
		return Decision{Allowed: true, Reason: "granted " + req.Action}, nil
	}
	return Decision{Allowed: false, Reason: "missing " + req.Action}, nil
}
