// Package tenantsvc provisions tenants, keeps their tag copies in sync with
// the global registry, and curates the registry itself. Every privileged
// mutation records through the audit recorder at its commit point.
package tenantsvc

import (
	"context"
	"fmt"

	"github.com/jigardalal/engageNinja-sub004/internal/audit"
	"github.com/jigardalal/engageNinja-sub004/internal/model"
	"github.com/jigardalal/engageNinja-sub004/internal/repository"
)

// Service bundles tenant provisioning, tag synchronization and global tag
// registry operations.
type Service struct {
	tenants     repository.TenantRepository
	memberships repository.MembershipRepository
	globalTags  repository.GlobalTagRepository
	tenantTags  repository.TenantTagRepository
	recorder    *audit.Recorder
}

func NewService(
	tenants repository.TenantRepository,
	memberships repository.MembershipRepository,
	globalTags repository.GlobalTagRepository,
	tenantTags repository.TenantTagRepository,
	recorder *audit.Recorder,
) *Service {
	return &Service{
		tenants:     tenants,
		memberships: memberships,
		globalTags:  globalTags,
		tenantTags:  tenantTags,
		recorder:    recorder,
	}
}

// CreateTenant creates a workspace and seeds it with a one-time copy of the
// currently active global tags. Tags added to the registry afterwards reach
// the tenant only through SyncGlobalTags.
func (s *Service) CreateTenant(ctx context.Context, name string, actorUserID uint) (*model.Tenant, error) {
	tenant := &model.Tenant{
		Name:   name,
		Status: model.TenantStatusActive,
	}
	if err := s.tenants.Create(ctx, tenant); err != nil {
		return nil, fmt.Errorf("create tenant: %w", err)
	}

	if err := s.seedActiveTags(ctx, tenant.ID); err != nil {
		return nil, err
	}

	if err := s.recorder.Record(ctx, actorUserID, "tenant.create",
		fmt.Sprintf("tenant:%d", tenant.ID), map[string]string{"name": name}); err != nil {
		return nil, err
	}
	return tenant, nil
}

// Provision creates a tenant owned by a freshly signed-up user: the tenant,
// an admin membership for the owner, and the active-tag snapshot.
func (s *Service) Provision(ctx context.Context, name string, ownerUserID uint) (*model.Tenant, error) {
	tenant, err := s.CreateTenant(ctx, name, ownerUserID)
	if err != nil {
		return nil, err
	}

	if err := s.memberships.Upsert(ctx, &model.Membership{
		UserID:   ownerUserID,
		TenantID: tenant.ID,
		Role:     model.RoleAdmin,
	}); err != nil {
		return nil, fmt.Errorf("create owner membership: %w", err)
	}
	return tenant, nil
}

// UpdateStatus moves a tenant between active and suspended.
func (s *Service) UpdateStatus(ctx context.Context, tenantID uint, status string, actorUserID uint) (*model.Tenant, error) {
	if status != model.TenantStatusActive && status != model.TenantStatusSuspended {
		return nil, fmt.Errorf("status %q: %w", status, model.ErrValidation)
	}

	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	previous := tenant.Status
	tenant.Status = status
	if err := s.tenants.Update(ctx, tenant); err != nil {
		return nil, fmt.Errorf("update tenant: %w", err)
	}

	if err := s.recorder.Record(ctx, actorUserID, "tenant.update",
		fmt.Sprintf("tenant:%d", tenantID),
		map[string]string{"status": status, "previous_status": previous}); err != nil {
		return nil, err
	}
	return tenant, nil
}

// seedActiveTags copies every active global tag into the tenant, skipping
// name collisions via the insert-or-skip path.
func (s *Service) seedActiveTags(ctx context.Context, tenantID uint) error {
	active, err := s.globalTags.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active global tags: %w", err)
	}
	if len(active) == 0 {
		return nil
	}

	names := make([]string, 0, len(active))
	for _, tag := range active {
		names = append(names, tag.Name)
	}
	if _, err := s.tenantTags.InsertMissing(ctx, tenantID, names); err != nil {
		return fmt.Errorf("seed tenant tags: %w", err)
	}
	return nil
}
