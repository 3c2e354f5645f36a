// Package authz is the single request-time authorization decision point.
// Handlers never check roles ad hoc; they declare a scope and let Require
// decide.
package authz

import (
	"fmt"

	"github.com/jigardalal/engageNinja-sub004/internal/model"
	"github.com/jigardalal/engageNinja-sub004/internal/session"
)

// Scope is the closed set of access levels an action can demand.
type Scope int

const (
	// ScopeTenantMember admits any member of the target tenant. Platform
	// admins pass regardless of membership.
	ScopeTenantMember Scope = iota

	// ScopeTenantAdmin admits tenant-local administrators acting through
	// their own membership role. Platform admins do not bypass this; they
	// gain it by switching into the tenant, which grants an admin
	// membership.
	ScopeTenantAdmin

	// ScopePlatformAdmin admits platform administrators only, for
	// cross-tenant surface: tenant creation, the global tag registry,
	// audit logs and statistics.
	ScopePlatformAdmin
)

func (s Scope) String() string {
	switch s {
	case ScopeTenantMember:
		return "tenant-member"
	case ScopeTenantAdmin:
		return "tenant-admin"
	case ScopePlatformAdmin:
		return "platform-admin"
	default:
		return "unknown"
	}
}

// Require decides whether the session may perform an action at the given
// scope against tenantID (ignored for platform scope). A nil view means no
// valid session: model.ErrUnauthenticated. A valid session without the
// required role or tenant yields model.ErrForbidden. The two are distinct
// so callers can answer 401 versus 403.
func Require(v *session.View, scope Scope, tenantID uint) error {
	if v == nil {
		return model.ErrUnauthenticated
	}

	switch scope {
	case ScopePlatformAdmin:
		if v.IsPlatformAdmin {
			return nil
		}
		return fmt.Errorf("%s scope: %w", scope, model.ErrForbidden)

	case ScopeTenantMember:
		if v.IsPlatformAdmin {
			return nil
		}
		if activeMatches(v, tenantID) {
			if _, ok := v.HasMembership(tenantID); ok {
				return nil
			}
		}
		return fmt.Errorf("%s scope on tenant %d: %w", scope, tenantID, model.ErrForbidden)

	case ScopeTenantAdmin:
		if activeMatches(v, tenantID) {
			if ref, ok := v.HasMembership(tenantID); ok && ref.Role == model.RoleAdmin {
				return nil
			}
		}
		return fmt.Errorf("%s scope on tenant %d: %w", scope, tenantID, model.ErrForbidden)

	default:
		return fmt.Errorf("%s scope: %w", scope, model.ErrForbidden)
	}
}

func activeMatches(v *session.View, tenantID uint) bool {
	return v.ActiveTenantID != nil && *v.ActiveTenantID == tenantID
}
