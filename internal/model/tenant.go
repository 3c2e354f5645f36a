package model

import (
	"time"

	"gorm.io/gorm"
)

// Tenant lifecycle statuses
const (
	TenantStatusActive    = "active"
	TenantStatusSuspended = "suspended"
)

// Tenant represents an isolated customer workspace. Tenants are never
// deleted; suspension is the only lifecycle transition.
type Tenant struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"type:varchar(100);not null"`
	Status       string         `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	Description  string         `json:"description" gorm:"type:text"`
	BillingEmail string         `json:"billing_email" gorm:"type:varchar(100)"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}
