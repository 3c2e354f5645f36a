package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jigardalal/engageNinja-sub004/internal/model"
)

// fakeMembershipRepo mimics the storage-level uniqueness constraint on
// (user_id, tenant_id): duplicate upserts are silent no-ops.
type fakeMembershipRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[[2]uint]model.Membership
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{rows: make(map[[2]uint]model.Membership)}
}

func (f *fakeMembershipRepo) ListByUser(_ context.Context, userID uint) ([]model.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Membership
	for key, row := range f.rows {
		if key[0] == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeMembershipRepo) Upsert(_ context.Context, m *model.Membership) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]uint{m.UserID, m.TenantID}
	if _, exists := f.rows[key]; exists {
		return nil
	}
	f.nextID++
	m.ID = f.nextID
	f.rows[key] = *m
	return nil
}

func (f *fakeMembershipRepo) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.rows)), nil
}

func (f *fakeMembershipRepo) add(userID, tenantID uint, role string) {
	_ = f.Upsert(context.Background(), &model.Membership{UserID: userID, TenantID: tenantID, Role: role})
}

type fakeTenantRepo struct {
	mu      sync.Mutex
	tenants map[uint]model.Tenant
}

func newFakeTenantRepo(ids ...uint) *fakeTenantRepo {
	f := &fakeTenantRepo{tenants: make(map[uint]model.Tenant)}
	for _, id := range ids {
		f.tenants[id] = model.Tenant{ID: id, Status: model.TenantStatusActive}
	}
	return f
}

func (f *fakeTenantRepo) Create(_ context.Context, t *model.Tenant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = uint(len(f.tenants) + 1)
	f.tenants[t.ID] = *t
	return nil
}

func (f *fakeTenantRepo) GetByID(_ context.Context, id uint) (*model.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tenants[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &t, nil
}

func (f *fakeTenantRepo) List(context.Context) ([]model.Tenant, error) { return nil, nil }
func (f *fakeTenantRepo) Update(_ context.Context, t *model.Tenant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tenants[t.ID] = *t
	return nil
}
func (f *fakeTenantRepo) Count(context.Context) (int64, error) { return int64(len(f.tenants)), nil }

func newTestManager(memberships *fakeMembershipRepo, tenants *fakeTenantRepo) *Manager {
	return NewManager(memberships, tenants, 30*time.Minute)
}

func TestCreateSingleMembershipAutoSelects(t *testing.T) {
	memberships := newFakeMembershipRepo()
	memberships.add(1, 42, model.RoleAdmin)
	m := newTestManager(memberships, newFakeTenantRepo(42))

	s, err := m.Create(context.Background(), &model.User{ID: 1, Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	v := s.View()
	if v.ActiveTenantID == nil || *v.ActiveTenantID != 42 {
		t.Fatalf("active tenant = %v, want 42", v.ActiveTenantID)
	}
}

func TestCreateMultipleMembershipsRequiresSelection(t *testing.T) {
	memberships := newFakeMembershipRepo()
	memberships.add(1, 42, model.RoleMember)
	memberships.add(1, 43, model.RoleMember)
	m := newTestManager(memberships, newFakeTenantRepo(42, 43))

	s, err := m.Create(context.Background(), &model.User{ID: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if v := s.View(); v.ActiveTenantID != nil {
		t.Fatalf("active tenant = %d, want unset", *v.ActiveTenantID)
	}
	if got := len(s.View().Memberships); got != 2 {
		t.Fatalf("memberships = %d, want 2", got)
	}
}

func TestCreateNoMembershipsLeavesActiveUnset(t *testing.T) {
	m := newTestManager(newFakeMembershipRepo(), newFakeTenantRepo())

	s, err := m.Create(context.Background(), &model.User{ID: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if v := s.View(); v.ActiveTenantID != nil {
		t.Fatal("active tenant should be unset with no memberships")
	}
}

func TestSelectTenantAsMember(t *testing.T) {
	memberships := newFakeMembershipRepo()
	memberships.add(1, 42, model.RoleMember)
	memberships.add(1, 43, model.RoleMember)
	m := newTestManager(memberships, newFakeTenantRepo(42, 43))

	s, _ := m.Create(context.Background(), &model.User{ID: 1})

	v, created, err := m.SelectTenant(context.Background(), s, 43)
	if err != nil {
		t.Fatalf("SelectTenant: %v", err)
	}
	if created {
		t.Error("no membership should be created for an existing member")
	}
	if v.ActiveTenantID == nil || *v.ActiveTenantID != 43 {
		t.Fatalf("active tenant = %v, want 43", v.ActiveTenantID)
	}
}

func TestSelectTenantForbiddenForNonMember(t *testing.T) {
	memberships := newFakeMembershipRepo()
	memberships.add(1, 42, model.RoleMember)
	m := newTestManager(memberships, newFakeTenantRepo(42, 99))

	s, _ := m.Create(context.Background(), &model.User{ID: 1})

	_, _, err := m.SelectTenant(context.Background(), s, 99)
	if !errors.Is(err, model.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if n, _ := memberships.Count(context.Background()); n != 1 {
		t.Fatalf("membership rows = %d, want 1 (no row created)", n)
	}
	if v := s.View(); v.ActiveTenantID == nil || *v.ActiveTenantID != 42 {
		t.Fatal("active tenant must be unchanged after a forbidden switch")
	}
}

func TestSelectTenantPlatformAdminAutoCreates(t *testing.T) {
	memberships := newFakeMembershipRepo()
	m := newTestManager(memberships, newFakeTenantRepo(7))

	s, _ := m.Create(context.Background(), &model.User{ID: 1, IsPlatformAdmin: true})

	v, created, err := m.SelectTenant(context.Background(), s, 7)
	if err != nil {
		t.Fatalf("SelectTenant: %v", err)
	}
	if !created {
		t.Error("expected membership auto-creation")
	}
	ref, ok := v.HasMembership(7)
	if !ok {
		t.Fatal("refreshed snapshot must include the new membership")
	}
	if ref.Role != model.RoleAdmin {
		t.Errorf("role = %q, want admin", ref.Role)
	}
	if v.ActiveTenantID == nil || *v.ActiveTenantID != 7 {
		t.Fatalf("active tenant = %v, want 7", v.ActiveTenantID)
	}
}

func TestSelectTenantPlatformAdminUnknownTenant(t *testing.T) {
	m := newTestManager(newFakeMembershipRepo(), newFakeTenantRepo())

	s, _ := m.Create(context.Background(), &model.User{ID: 1, IsPlatformAdmin: true})

	_, _, err := m.SelectTenant(context.Background(), s, 12345)
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSelectTenantConcurrentAutoCreateSingleRow(t *testing.T) {
	memberships := newFakeMembershipRepo()
	m := newTestManager(memberships, newFakeTenantRepo(7))

	s, _ := m.Create(context.Background(), &model.User{ID: 1, IsPlatformAdmin: true})

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := m.SelectTenant(context.Background(), s, 7)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent SelectTenant: %v", err)
		}
	}
	if n, _ := memberships.Count(context.Background()); n != 1 {
		t.Fatalf("membership rows = %d, want exactly 1", n)
	}
	v := s.View()
	if v.ActiveTenantID == nil || *v.ActiveTenantID != 7 {
		t.Fatal("active tenant must end up at 7")
	}
	if len(v.Memberships) != 1 {
		t.Fatalf("snapshot memberships = %d, want 1", len(v.Memberships))
	}
}

func TestGetUnknownTokenUnauthenticated(t *testing.T) {
	m := newTestManager(newFakeMembershipRepo(), newFakeTenantRepo())
	if _, err := m.Get("no-such-token"); !errors.Is(err, model.ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
}

func TestInvalidateDestroysSession(t *testing.T) {
	m := newTestManager(newFakeMembershipRepo(), newFakeTenantRepo())
	s, _ := m.Create(context.Background(), &model.User{ID: 1})

	if _, err := m.Get(s.Token()); err != nil {
		t.Fatalf("Get before invalidate: %v", err)
	}
	m.Invalidate(s.Token())
	if _, err := m.Get(s.Token()); !errors.Is(err, model.ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
}

func TestCreateSweepsAbandonedSessions(t *testing.T) {
	m := newTestManager(newFakeMembershipRepo(), newFakeTenantRepo())
	current := time.Now()
	m.now = func() time.Time { return current }

	stale, _ := m.Create(context.Background(), &model.User{ID: 1})

	// A later login past the idle window reaps the abandoned session even
	// though its token is never looked up again.
	current = current.Add(31 * time.Minute)
	fresh, err := m.Create(context.Background(), &model.User{ID: 2})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if m.Len() != 1 {
		t.Fatalf("live sessions = %d, want 1", m.Len())
	}
	if _, err := m.Get(stale.Token()); !errors.Is(err, model.ErrUnauthenticated) {
		t.Fatalf("stale token err = %v, want ErrUnauthenticated", err)
	}
	if _, err := m.Get(fresh.Token()); err != nil {
		t.Fatalf("fresh token: %v", err)
	}
}

func TestIdleExpiryBehavesLikeLogout(t *testing.T) {
	m := newTestManager(newFakeMembershipRepo(), newFakeTenantRepo())
	current := time.Now()
	m.now = func() time.Time { return current }

	s, _ := m.Create(context.Background(), &model.User{ID: 1})

	// Within the window the lookup slides it forward.
	current = current.Add(20 * time.Minute)
	if _, err := m.Get(s.Token()); err != nil {
		t.Fatalf("Get within idle window: %v", err)
	}

	// Another 20 minutes is still within the slid window.
	current = current.Add(20 * time.Minute)
	if _, err := m.Get(s.Token()); err != nil {
		t.Fatalf("Get after sliding: %v", err)
	}

	// Past the window the session is gone, exactly like logout.
	current = current.Add(31 * time.Minute)
	if _, err := m.Get(s.Token()); !errors.Is(err, model.ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
	if m.Len() != 0 {
		t.Fatalf("expired session must be removed, have %d", m.Len())
	}
}
