package tenantsvc

import (
	"context"
	"fmt"
)

// SyncGlobalTags reconciles a tenant's tag set against the registry, adding
// only the active global tags the tenant is missing. It is idempotent: with
// no registry change between calls the second call adds nothing. Concurrent
// invocations for the same tenant are safe; the (tenant_id, name) constraint
// makes duplicate inserts no-ops, so reported counts sum to the number of
// distinct rows created.
func (s *Service) SyncGlobalTags(ctx context.Context, tenantID uint, actorUserID uint) (int, error) {
	if _, err := s.tenants.GetByID(ctx, tenantID); err != nil {
		return 0, err
	}

	active, err := s.globalTags.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("list active global tags: %w", err)
	}

	existing, err := s.tenantTags.ListNames(ctx, tenantID)
	if err != nil {
		return 0, fmt.Errorf("list tenant tags: %w", err)
	}
	have := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		have[name] = struct{}{}
	}

	var missing []string
	for _, tag := range active {
		if _, ok := have[tag.Name]; !ok {
			missing = append(missing, tag.Name)
		}
	}

	// The set difference above is advisory; the unique constraint decides.
	added, err := s.tenantTags.InsertMissing(ctx, tenantID, missing)
	if err != nil {
		return 0, fmt.Errorf("insert tenant tags: %w", err)
	}

	if err := s.recorder.Record(ctx, actorUserID, "tenant.sync_global_tags",
		fmt.Sprintf("tenant:%d", tenantID), map[string]int{"added": added}); err != nil {
		return 0, err
	}
	return added, nil
}
