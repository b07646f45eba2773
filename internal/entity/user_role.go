package entity

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// UserRole grants a role by row presence. An admin row makes the account an
// administrator regardless of its profile status.
type UserRole struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_user_roles_user_role,unique"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	Role Role `gorm:"type:app_role;not null;index:idx_user_roles_user_role,unique"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
