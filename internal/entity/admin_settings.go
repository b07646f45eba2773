package entity

import (
	"time"

	"github.com/google/uuid"
)

// AdminSettings is a singleton row: contact links shown to locked-out users,
// the global maintenance flag, and the last broadcast for display. Created
// lazily on the first admin write.
type AdminSettings struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	TelegramLink   *string `gorm:"type:text"`
	WhatsappNumber *string `gorm:"type:varchar(32)"`
	ToolkitURL     *string `gorm:"type:text"`

	AppUpdateMode bool `gorm:"default:false;not null"`

	LastMessageSent *string `gorm:"type:text"`
	MessageSentAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
