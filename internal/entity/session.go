package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is one refresh-token lineage for a device. Only the token hash is
// stored; rotation swaps the hash in place, so the row outlives any single
// token and RefreshedAt records the last rotation.
type Session struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	TokenHash string `gorm:"type:text;not null;uniqueIndex"`

	DeviceID   string  `gorm:"type:varchar(255);not null"`
	DeviceName string  `gorm:"type:varchar(100)"`
	IPAddress  *string `gorm:"type:varchar(45)"`
	UserAgent  *string `gorm:"type:text"`

	ExpiresAt   time.Time
	RevokedAt   *time.Time
	RefreshedAt *time.Time

	CreatedAt time.Time
}

// Live reports whether the session can still mint access tokens at now.
func (s *Session) Live(now time.Time) bool {
	return s.RevokedAt == nil && s.ExpiresAt.After(now)
}
