package model

import "time"

// Message is the minimal tenant-scoped record behind the cross-tenant
// message counter in /admin/stats. Delivery, templating and provider
// integrations live outside this service.
type Message struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TenantID  uint      `json:"tenant_id" gorm:"not null;index"`
	Channel   string    `json:"channel" gorm:"type:varchar(20)"`
	Status    string    `json:"status" gorm:"type:varchar(20)"`
	CreatedAt time.Time `json:"created_at"`
}
