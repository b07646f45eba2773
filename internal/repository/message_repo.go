package repository

import (
	"context"

	"gatekeeper/internal/entity"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.BroadcastMessage) error
	ListRecent(ctx context.Context, limit int) ([]entity.BroadcastMessage, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *entity.BroadcastMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) ListRecent(ctx context.Context, limit int) ([]entity.BroadcastMessage, error) {
	var messages []entity.BroadcastMessage
	query := r.db.WithContext(ctx).Order("sent_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
