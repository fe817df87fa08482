package model

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog is an append-only record of a mutating action. UserID is
// nullable with ON DELETE SET NULL so entries survive the referenced
// user; entries are never updated or deleted by the application.
type AuditLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    *uint          `gorm:"index" json:"user_id"`
	Action    string         `gorm:"size:255;not null" json:"action"`
	Details   datatypes.JSON `gorm:"type:jsonb" json:"details,omitempty"`
	CreatedAt time.Time      `json:"timestamp"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
}

// TableName keeps the original singular table name.
func (AuditLog) TableName() string {
	return "audit_log"
}
