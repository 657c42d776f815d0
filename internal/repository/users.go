package repository

import (
	"context"
	"fmt"

	"cardiomed/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) Get(ctx context.Context, id uint) (*models.User, error) {
	return findByID[models.User](r.db.WithContext(ctx), id)
}

func (r *UserRepository) List(ctx context.Context, page Page) ([]models.User, error) {
	var users []models.User
	err := page.apply(r.db.WithContext(ctx)).Order("id").Find(&users).Error
	return users, err
}

func (r *UserRepository) Save(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// EmailTaken reports whether another user already registered the email
func (r *UserRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

// UsernameTaken reports whether the username is already in use
func (r *UserRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

func (r *UserRepository) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
