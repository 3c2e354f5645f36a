package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User represents the user model stored in the database. Emails are stored
// lowercased so lookups are case-insensitive. Users are never hard-deleted;
// Disabled soft-disables the account.
type User struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	Email           string         `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Password        string         `json:"-" gorm:"type:varchar(255)"`
	Name            string         `json:"name" gorm:"type:varchar(100)"`
	Phone           string         `json:"phone" gorm:"type:varchar(30)"`
	Timezone        string         `json:"timezone" gorm:"type:varchar(50)"`
	IsPlatformAdmin bool           `json:"is_platform_admin" gorm:"default:false"`
	Disabled        bool           `json:"disabled" gorm:"default:false"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
