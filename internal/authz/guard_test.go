package authz

import (
	"errors"
	"testing"

	"github.com/jigardalal/engageNinja-sub004/internal/model"
	"github.com/jigardalal/engageNinja-sub004/internal/session"
)

func view(platformAdmin bool, active *uint, memberships ...session.MembershipRef) *session.View {
	return &session.View{
		UserID:          1,
		IsPlatformAdmin: platformAdmin,
		ActiveTenantID:  active,
		Memberships:     memberships,
	}
}

func ptr(v uint) *uint { return &v }

func TestRequireNoSession(t *testing.T) {
	if err := Require(nil, ScopeTenantMember, 1); !errors.Is(err, model.ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
}

func TestRequire(t *testing.T) {
	member42 := session.MembershipRef{ID: 1, TenantID: 42, Role: model.RoleMember}
	admin42 := session.MembershipRef{ID: 1, TenantID: 42, Role: model.RoleAdmin}

	cases := []struct {
		name     string
		view     *session.View
		scope    Scope
		tenantID uint
		wantErr  error
	}{
		{
			name:     "member acts in active tenant",
			view:     view(false, ptr(42), member42),
			scope:    ScopeTenantMember,
			tenantID: 42,
		},
		{
			name:     "member targets other tenant",
			view:     view(false, ptr(42), member42),
			scope:    ScopeTenantMember,
			tenantID: 43,
			wantErr:  model.ErrForbidden,
		},
		{
			name:     "no active tenant selected",
			view:     view(false, nil, member42),
			scope:    ScopeTenantMember,
			tenantID: 42,
			wantErr:  model.ErrForbidden,
		},
		{
			name:     "member lacks admin role",
			view:     view(false, ptr(42), member42),
			scope:    ScopeTenantAdmin,
			tenantID: 42,
			wantErr:  model.ErrForbidden,
		},
		{
			name:     "tenant admin acts in active tenant",
			view:     view(false, ptr(42), admin42),
			scope:    ScopeTenantAdmin,
			tenantID: 42,
		},
		{
			name:     "platform admin bypasses membership for member scope",
			view:     view(true, nil),
			scope:    ScopeTenantMember,
			tenantID: 42,
		},
		{
			name:     "platform admin without membership denied tenant-admin scope",
			view:     view(true, ptr(42)),
			scope:    ScopeTenantAdmin,
			tenantID: 42,
			wantErr:  model.ErrForbidden,
		},
		{
			name:     "platform admin with auto-created membership passes tenant-admin scope",
			view:     view(true, ptr(42), admin42),
			scope:    ScopeTenantAdmin,
			tenantID: 42,
		},
		{
			name:     "platform scope requires platform admin",
			view:     view(false, ptr(42), admin42),
			scope:    ScopePlatformAdmin,
			wantErr:  model.ErrForbidden,
		},
		{
			name:  "platform admin passes platform scope without active tenant",
			view:  view(true, nil),
			scope: ScopePlatformAdmin,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Require(tc.view, tc.scope, tc.tenantID)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("Require: %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Require: %v, want %v", err, tc.wantErr)
			}
		})
	}
}
