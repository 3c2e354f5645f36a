// Package repository defines the persistence interfaces consumed by the
// session, audit and tenant services, plus their gorm/Postgres
// implementations. Services depend on the interfaces so tests can substitute
// in-memory fakes.
package repository

import (
	"context"

	"github.com/jigardalal/engageNinja-sub004/internal/model"
)

// UserRepository is the durable store of identities.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uint) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Count(ctx context.Context) (int64, error)
}

// TenantRepository is the durable store of workspaces.
type TenantRepository interface {
	Create(ctx context.Context, tenant *model.Tenant) error
	GetByID(ctx context.Context, id uint) (*model.Tenant, error)
	List(ctx context.Context) ([]model.Tenant, error)
	Update(ctx context.Context, tenant *model.Tenant) error
	Count(ctx context.Context) (int64, error)
}

// MembershipRepository is the source of truth for tenant access. Upsert must
// be conflict-safe on (user_id, tenant_id): a duplicate insert is a no-op,
// never a visible error.
type MembershipRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]model.Membership, error)
	Upsert(ctx context.Context, membership *model.Membership) error
	Count(ctx context.Context) (int64, error)
}

// GlobalTagRepository is the shared label registry.
type GlobalTagRepository interface {
	Create(ctx context.Context, tag *model.GlobalTag) error
	GetByID(ctx context.Context, id uint) (*model.GlobalTag, error)
	Update(ctx context.Context, tag *model.GlobalTag) error
	List(ctx context.Context) ([]model.GlobalTag, error)
	ListActive(ctx context.Context) ([]model.GlobalTag, error)
	// FindActiveByName reports a non-archived tag with the given name, or
	// model.ErrNotFound.
	FindActiveByName(ctx context.Context, name string) (*model.GlobalTag, error)
}

// TenantTagRepository holds per-tenant tag copies. InsertMissing relies on
// the (tenant_id, name) unique index with insert-or-skip semantics and
// returns the number of rows actually inserted, so concurrent callers'
// counts sum to the number of distinct new rows.
type TenantTagRepository interface {
	ListNames(ctx context.Context, tenantID uint) ([]string, error)
	InsertMissing(ctx context.Context, tenantID uint, names []string) (int, error)
}

// AuditLogRepository is append-only storage for the audit trail.
type AuditLogRepository interface {
	Append(ctx context.Context, entry *model.AuditLog) error
	Query(ctx context.Context, filter model.AuditFilter) ([]model.AuditLog, error)
}

// MessageRepository exposes the read-only message counter for stats.
type MessageRepository interface {
	Count(ctx context.Context) (int64, error)
}

// SettingRepository stores platform configuration keys.
type SettingRepository interface {
	Upsert(ctx context.Context, key, value string) error
	List(ctx context.Context) ([]model.Setting, error)
}
