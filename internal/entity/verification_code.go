package entity

import (
	"time"

	"github.com/google/uuid"
)

// VerificationCode is a short-lived 6-digit email secret. Rows are never
// deleted; consumed and superseded codes stay behind as an audit trail.
type VerificationCode struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	Email string `gorm:"type:varchar(255);not null"`
	Code  string `gorm:"type:varchar(6);not null;index"`

	ExpiresAt time.Time
	Verified  bool `gorm:"default:false"`

	CreatedAt time.Time
}
