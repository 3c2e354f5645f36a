// Package session issues and mutates per-login session contexts. A session
// binds one authenticated identity to at most one active tenant; the manager
// owns all mutation so the active-tenant pointer is never observed out of
// step with the membership snapshot.
package session

import (
	"sync"
	"time"
)

// MembershipRef is the session's snapshot of one membership row.
type MembershipRef struct {
	ID       uint   `json:"id"`
	TenantID uint   `json:"tenant_id"`
	Role     string `json:"role"`
}

// View is an immutable copy of a session's state, safe to read without
// holding the session lock.
type View struct {
	UserID          uint
	Email           string
	IsPlatformAdmin bool
	ActiveTenantID  *uint
	Memberships     []MembershipRef
}

// HasMembership reports the membership for tenantID, if any.
func (v View) HasMembership(tenantID uint) (MembershipRef, bool) {
	for _, m := range v.Memberships {
		if m.TenantID == tenantID {
			return m, true
		}
	}
	return MembershipRef{}, false
}

// Session is one authenticated login. All fields are guarded by mu and only
// the Manager mutates them; handlers read through View.
type Session struct {
	token string

	mu   sync.Mutex
	view View

	// lastSeen is guarded by the manager's lock, not mu.
	lastSeen time.Time
}

// Token returns the opaque session token.
func (s *Session) Token() string {
	return s.token
}

// View returns a copy of the session state, including a copied membership
// slice, taken under the session lock.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.clone()
}

func (v View) clone() View {
	out := v
	out.Memberships = make([]MembershipRef, len(v.Memberships))
	copy(out.Memberships, v.Memberships)
	if v.ActiveTenantID != nil {
		id := *v.ActiveTenantID
		out.ActiveTenantID = &id
	}
	return out
}
