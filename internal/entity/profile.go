package entity

import (
	"time"

	"github.com/google/uuid"
)

type ProfileStatus string

const (
	ProfilePending  ProfileStatus = "pending"
	ProfileApproved ProfileStatus = "approved"
	ProfileRejected ProfileStatus = "rejected"
)

// Profile carries the approval status that gates toolkit access. One row per
// account, created at registration; only verification and admin decisions
// mutate it. Status moves are reversible (an admin may re-approve a rejected
// account).
type Profile struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	Email  string        `gorm:"type:varchar(255);not null"`
	Status ProfileStatus `gorm:"type:profile_status;default:'pending';not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
