package tenantsvc

import (
	"context"
	"errors"
	"fmt"

	"github.com/jigardalal/engageNinja-sub004/internal/model"
)

// CreateGlobalTag adds a shared label definition. Names are unique among
// non-archived tags; an archived tag's name may be reused.
func (s *Service) CreateGlobalTag(ctx context.Context, name string, actorUserID uint) (*model.GlobalTag, error) {
	if _, err := s.globalTags.FindActiveByName(ctx, name); err == nil {
		return nil, fmt.Errorf("global tag %q: %w", name, model.ErrConflict)
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	tag := &model.GlobalTag{
		Name:   name,
		Status: model.TagStatusActive,
	}
	if err := s.globalTags.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("create global tag: %w", err)
	}

	if err := s.recorder.Record(ctx, actorUserID, "global_tag.create",
		fmt.Sprintf("global_tag:%d", tag.ID), map[string]string{"name": name}); err != nil {
		return nil, err
	}
	return tag, nil
}

// UpdateGlobalTagStatus archives or reactivates a registry tag. Tenant
// copies are untouched: archival only stops future inheritance.
func (s *Service) UpdateGlobalTagStatus(ctx context.Context, tagID uint, status string, actorUserID uint) (*model.GlobalTag, error) {
	if status != model.TagStatusActive && status != model.TagStatusArchived {
		return nil, fmt.Errorf("status %q: %w", status, model.ErrValidation)
	}

	tag, err := s.globalTags.GetByID(ctx, tagID)
	if err != nil {
		return nil, err
	}

	previous := tag.Status
	tag.Status = status
	if err := s.globalTags.Update(ctx, tag); err != nil {
		return nil, fmt.Errorf("update global tag: %w", err)
	}

	if err := s.recorder.Record(ctx, actorUserID, "global_tag.update",
		fmt.Sprintf("global_tag:%d", tagID),
		map[string]string{"status": status, "previous_status": previous}); err != nil {
		return nil, err
	}
	return tag, nil
}

// ListGlobalTags returns the whole registry, archived entries included.
func (s *Service) ListGlobalTags(ctx context.Context) ([]model.GlobalTag, error) {
	return s.globalTags.List(ctx)
}
