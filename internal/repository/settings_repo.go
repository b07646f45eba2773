package repository

import (
	"context"
	"errors"

	"gatekeeper/internal/entity"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	// Get returns the singleton row, or nil when no admin has written yet.
	Get(ctx context.Context) (*entity.AdminSettings, error)
	Create(ctx context.Context, settings *entity.AdminSettings) error
	// Patch updates only the given columns on the singleton row.
	Patch(ctx context.Context, fields map[string]any) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*entity.AdminSettings, error) {
	var settings entity.AdminSettings
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Limit(1).
		First(&settings).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &settings, err
}

func (r *settingsRepository) Create(ctx context.Context, settings *entity.AdminSettings) error {
	return r.db.WithContext(ctx).Create(settings).Error
}

func (r *settingsRepository) Patch(ctx context.Context, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&entity.AdminSettings{}).
		Where("1 = 1").
		Updates(fields).
		Error
}
