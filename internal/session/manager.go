package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jigardalal/engageNinja-sub004/internal/model"
	"github.com/jigardalal/engageNinja-sub004/internal/repository"
	"github.com/jigardalal/engageNinja-sub004/prometheus"
)

// Manager owns every live session, keyed by opaque token. Sessions expire
// after a configurable idle window; each successful lookup slides the
// window. Different sessions never share state, so one lock per session is
// enough to serialize mutation.
type Manager struct {
	memberships repository.MembershipRepository
	tenants     repository.TenantRepository
	idleTimeout time.Duration

	mu       sync.Mutex
	sessions map[string]*Session

	now func() time.Time
}

// NewManager creates a session manager with the given idle timeout.
func NewManager(memberships repository.MembershipRepository, tenants repository.TenantRepository, idleTimeout time.Duration) *Manager {
	return &Manager{
		memberships: memberships,
		tenants:     tenants,
		idleTimeout: idleTimeout,
		sessions:    make(map[string]*Session),
		now:         time.Now,
	}
}

// Create builds a session for an authenticated user. When the user has
// exactly one membership its tenant becomes active immediately; with zero or
// several, the caller must select one before tenant-scoped operations.
func (m *Manager) Create(ctx context.Context, user *model.User) (*Session, error) {
	memberships, err := m.memberships.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load memberships: %w", err)
	}

	view := View{
		UserID:          user.ID,
		Email:           user.Email,
		IsPlatformAdmin: user.IsPlatformAdmin,
		Memberships:     toRefs(memberships),
	}
	if len(view.Memberships) == 1 {
		id := view.Memberships[0].TenantID
		view.ActiveTenantID = &id
	}

	s := &Session{
		token:    uuid.NewString(),
		view:     view,
		lastSeen: m.now(),
	}

	m.mu.Lock()
	m.sweepExpired(s.lastSeen)
	m.sessions[s.token] = s
	m.mu.Unlock()
	prometheus.IncreaseActiveSessions()

	return s, nil
}

// sweepExpired drops every session past the idle window, so abandoned logins
// do not accumulate while their tokens are never looked up again. Caller
// holds m.mu.
func (m *Manager) sweepExpired(now time.Time) {
	for token, s := range m.sessions {
		if now.Sub(s.lastSeen) > m.idleTimeout {
			delete(m.sessions, token)
			prometheus.DecreaseActiveSessions()
		}
	}
}

// Get resolves a token to its session, sliding the idle window. An expired
// session is removed and reported exactly like a missing one.
func (m *Manager) Get(token string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return nil, model.ErrUnauthenticated
	}

	now := m.now()
	if now.Sub(s.lastSeen) > m.idleTimeout {
		delete(m.sessions, token)
		prometheus.DecreaseActiveSessions()
		return nil, model.ErrUnauthenticated
	}
	s.lastSeen = now
	return s, nil
}

// Invalidate destroys the session. Subsequent lookups fail with
// model.ErrUnauthenticated.
func (m *Manager) Invalidate(token string) {
	m.mu.Lock()
	_, existed := m.sessions[token]
	delete(m.sessions, token)
	m.mu.Unlock()
	if existed {
		prometheus.DecreaseActiveSessions()
	}
}

// Len reports the number of live sessions, for metrics.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// SelectTenant points the session at tenantID. Members switch directly.
// Platform admins switching into a tenant they do not belong to get a
// membership with role=admin created through a conflict-safe upsert, so
// concurrent calls converge on one row; the snapshot is refreshed before the
// pointer moves. Everyone else gets model.ErrForbidden and no row.
//
// The returned bool reports whether a membership was auto-created, so the
// caller can audit it.
func (m *Manager) SelectTenant(ctx context.Context, s *Session, tenantID uint) (View, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.view.HasMembership(tenantID); ok {
		id := tenantID
		s.view.ActiveTenantID = &id
		return s.view.clone(), false, nil
	}

	if !s.view.IsPlatformAdmin {
		return View{}, false, fmt.Errorf("tenant %d: %w", tenantID, model.ErrForbidden)
	}

	if _, err := m.tenants.GetByID(ctx, tenantID); err != nil {
		return View{}, false, err
	}

	if err := m.memberships.Upsert(ctx, &model.Membership{
		UserID:   s.view.UserID,
		TenantID: tenantID,
		Role:     model.RoleAdmin,
	}); err != nil {
		return View{}, false, fmt.Errorf("upsert membership: %w", err)
	}

	memberships, err := m.memberships.ListByUser(ctx, s.view.UserID)
	if err != nil {
		return View{}, false, fmt.Errorf("reload memberships: %w", err)
	}
	s.view.Memberships = toRefs(memberships)

	id := tenantID
	s.view.ActiveTenantID = &id
	return s.view.clone(), true, nil
}

func toRefs(memberships []model.Membership) []MembershipRef {
	refs := make([]MembershipRef, 0, len(memberships))
	for _, m := range memberships {
		refs = append(refs, MembershipRef{ID: m.ID, TenantID: m.TenantID, Role: m.Role})
	}
	return refs
}
