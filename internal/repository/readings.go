package repository

import (
	"context"
	"fmt"

	"cardiomed/internal/models"

	"gorm.io/gorm"
)

type ReadingRepository struct {
	db *gorm.DB
}

func NewReadingRepository(db *gorm.DB) *ReadingRepository {
	return &ReadingRepository{db: db}
}

func (r *ReadingRepository) Create(ctx context.Context, reading *models.BloodPressureReading) error {
	if err := r.db.WithContext(ctx).Create(reading).Error; err != nil {
		return fmt.Errorf("failed to save reading: %w", err)
	}
	return nil
}

func (r *ReadingRepository) Get(ctx context.Context, id uint) (*models.BloodPressureReading, error) {
	return findByID[models.BloodPressureReading](r.db.WithContext(ctx), id)
}

// ListByUser returns a page of the user's readings, newest first
func (r *ReadingRepository) ListByUser(ctx context.Context, userID uint, page Page) ([]models.BloodPressureReading, error) {
	var readings []models.BloodPressureReading
	err := page.apply(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("reading_time DESC").
		Find(&readings).Error
	return readings, err
}

// AllByUser returns the user's whole history, oldest first
func (r *ReadingRepository) AllByUser(ctx context.Context, userID uint) ([]models.BloodPressureReading, error) {
	var readings []models.BloodPressureReading
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("reading_time ASC").
		Find(&readings).Error
	return readings, err
}

// SetPhotoURL attaches an uploaded photo to a reading
func (r *ReadingRepository) SetPhotoURL(ctx context.Context, id uint, url string) error {
	result := r.db.WithContext(ctx).Model(&models.BloodPressureReading{}).Where("id = ?", id).Update("photo_url", url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
