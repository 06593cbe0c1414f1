package repository

import (
	"context"
	"errors"
	"fmt"

	"photoai/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository stores identity provider accounts.
type UserRepository interface {
	Upsert(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, userID string) error
	GetByID(ctx context.Context, userID string) (*model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepo creates a new UserRepository
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Upsert(ctx context.Context, u *model.User) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "profile_picture", "updated_at"}),
	}).Create(u).Error
	if err != nil {
		return fmt.Errorf("upserting user %s: %w", u.ID, err)
	}
	return nil
}

func (r *userRepo) Delete(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", userID).Error; err != nil {
		return fmt.Errorf("deleting user %s: %w", userID, err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, userID string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Take(&u, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching user %s: %w", userID, err)
	}
	return &u, nil
}
