package model

import "time"

// AuditLog is an immutable append-only record of a privileged mutation.
// Entries are never updated or deleted; ordering is newest-first by
// created_at with the auto-increment id breaking timestamp ties.
type AuditLog struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ActorUserID uint      `json:"actor_user_id" gorm:"not null;index"`
	Action      string    `json:"action" gorm:"type:varchar(100);not null;index"`
	Target      string    `json:"target" gorm:"type:varchar(200)"`
	Payload     string    `json:"payload,omitempty" gorm:"type:jsonb"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

// AuditFilter narrows an audit log query. Limit is already normalized by the
// recorder before it reaches storage.
type AuditFilter struct {
	Action       string
	ActionPrefix bool
	ActorUserID  *uint
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}
