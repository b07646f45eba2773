package repository

import (
	"context"
	"errors"
	"time"

	"gatekeeper/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VerificationCodeRepository interface {
	Create(ctx context.Context, code *entity.VerificationCode) error
	// FindLive returns the most recent unverified, unexpired row matching the
	// submitted code, or nil when none qualifies.
	FindLive(ctx context.Context, userID uuid.UUID, code string, now time.Time) (*entity.VerificationCode, error)
	MarkVerified(ctx context.Context, id uuid.UUID) error
	// ExpireOutstanding force-expires every live code for the user, so a
	// freshly issued code is the only one that can still verify.
	ExpireOutstanding(ctx context.Context, userID uuid.UUID, now time.Time) error
}

type verificationCodeRepository struct {
	db *gorm.DB
}

func NewVerificationCodeRepository(db *gorm.DB) VerificationCodeRepository {
	return &verificationCodeRepository{db: db}
}

func (r *verificationCodeRepository) Create(ctx context.Context, code *entity.VerificationCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *verificationCodeRepository) FindLive(
	ctx context.Context,
	userID uuid.UUID,
	code string,
	now time.Time,
) (*entity.VerificationCode, error) {

	var row entity.VerificationCode
	err := r.db.WithContext(ctx).
		Where(`
			user_id = ? AND
			code = ? AND
			verified = false AND
			expires_at > ?
		`, userID, code, now).
		Order("created_at DESC").
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &row, err
}

func (r *verificationCodeRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entity.VerificationCode{}).
		Where("id = ?", id).
		Update("verified", true).
		Error
}

func (r *verificationCodeRepository) ExpireOutstanding(ctx context.Context, userID uuid.UUID, now time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.VerificationCode{}).
		Where("user_id = ? AND verified = false AND expires_at > ?", userID, now).
		Update("expires_at", now).
		Error
}
