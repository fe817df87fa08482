package services

import (
	"encoding/json"
	"log"

	"github.com/campushub/campus-hub-api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditService appends entries to the audit log. Writes are
// best-effort: a failed audit write is logged and swallowed so it
// never rolls back or fails the primary mutation it describes.
type AuditService struct {
	db *gorm.DB
}

// NewAuditService creates a new audit service
func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Record appends one audit entry. details is optional structured
// metadata stored as JSON; pass nil when there is none.
func (s *AuditService) Record(userID *uint, action string, details interface{}) {
	entry := model.AuditLog{
		UserID: userID,
		Action: action,
	}

	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			log.Printf("audit: failed to encode details for %q: %v", action, err)
		} else {
			entry.Details = datatypes.JSON(raw)
		}
	}

	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("audit: failed to record %q: %v", action, err)
	}
}
