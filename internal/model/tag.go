package model

import (
	"time"

	"gorm.io/gorm"
)

// Global tag lifecycle statuses
const (
	TagStatusActive   = "active"
	TagStatusArchived = "archived"
)

// GlobalTag is a shared label definition curated by platform admins. Names
// are unique among non-archived tags (enforced at the service layer so an
// archived name can be reused). Only the status changes after creation.
type GlobalTag struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(100);not null;index"`
	Status    string         `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TenantTag is a tenant's own copy of a label. Copies are seeded at
// provisioning and by synchronization, then live independently of the
// global tag they came from. Names are unique within a tenant.
type TenantTag struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	TenantID  uint           `json:"tenant_id" gorm:"not null;uniqueIndex:idx_tenant_tags_tenant_name"`
	Name      string         `json:"name" gorm:"type:varchar(100);not null;uniqueIndex:idx_tenant_tags_tenant_name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
