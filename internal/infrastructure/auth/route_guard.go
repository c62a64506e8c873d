package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
)

// roleAnonymous is the casbin subject used before anyone signs in
const roleAnonymous = "anonymous"

// RouteGuard wraps the casbin enforcer that maps session roles onto the
// facade's route space. Plan-based feature gating is a separate concern; this
// only answers "may this role reach this route at all".
type RouteGuard struct {
	E *casbin.Enforcer
}

// NewRouteGuard creates a route guard from the RBAC model and CSV policy files
func NewRouteGuard(modelPath, policyPath string) (*RouteGuard, error) {
	e, err := casbin.NewEnforcer(modelPath, policyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to build casbin enforcer: %w", err)
	}
	return &RouteGuard{E: e}, nil
}

// NewRouteGuardWithEnforcer wraps an existing enforcer (used by tests)
func NewRouteGuardWithEnforcer(e *casbin.Enforcer) *RouteGuard {
	return &RouteGuard{E: e}
}

// Allowed checks whether the role may perform method on path. An empty role
// is enforced as anonymous.
func (g *RouteGuard) Allowed(role, path, method string) (bool, error) {
	if role == "" {
		role = roleAnonymous
	}
	return g.E.Enforce("role_"+role, path, method)
}
