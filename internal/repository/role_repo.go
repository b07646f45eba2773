package repository

import (
	"context"

	"gatekeeper/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoleRepository interface {
	HasRole(ctx context.Context, userID uuid.UUID, role entity.Role) (bool, error)
	Grant(ctx context.Context, userID uuid.UUID, role entity.Role) error
	Revoke(ctx context.Context, userID uuid.UUID, role entity.Role) error
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) HasRole(ctx context.Context, userID uuid.UUID, role entity.Role) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error
	return count > 0, err
}

func (r *roleRepository) Grant(ctx context.Context, userID uuid.UUID, role entity.Role) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "role"}},
			DoNothing: true,
		}).
		Create(&entity.UserRole{UserID: userID, Role: role}).Error
}

func (r *roleRepository) Revoke(ctx context.Context, userID uuid.UUID, role entity.Role) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND role = ?", userID, role).
		Delete(&entity.UserRole{}).
		Error
}
