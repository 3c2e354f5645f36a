package model

import (
	"time"

	"gorm.io/gorm"
)

// Tenant-scoped roles
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Membership is the (user, tenant, role) binding that grants tenant-scoped
// access. The composite unique index makes creation an idempotent upsert:
// concurrent inserts for the same pair converge on one row. Memberships are
// never automatically removed.
type Membership struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_memberships_user_tenant"`
	TenantID  uint           `json:"tenant_id" gorm:"not null;uniqueIndex:idx_memberships_user_tenant"`
	Role      string         `json:"role" gorm:"type:varchar(20);not null;default:'member'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	User   User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Tenant Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}
