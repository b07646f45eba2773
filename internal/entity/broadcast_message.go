package entity

import (
	"time"

	"github.com/google/uuid"
)

type MessageType string

const (
	MessageBroadcast MessageType = "broadcast"
)

type BroadcastMessage struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Text string      `gorm:"type:text;not null"`
	Type MessageType `gorm:"type:varchar(32);default:'broadcast';not null"`

	SentBy *uuid.UUID `gorm:"type:uuid"`
	SentAt time.Time
}
