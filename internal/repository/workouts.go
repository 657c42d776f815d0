package repository

import (
	"context"

	"cardiomed/internal/models"

	"gorm.io/gorm"
)

type WorkoutRepository struct {
	db *gorm.DB
}

func NewWorkoutRepository(db *gorm.DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

func (r *WorkoutRepository) Create(ctx context.Context, workout *models.WorkoutReminder) error {
	return r.db.WithContext(ctx).Create(workout).Error
}

func (r *WorkoutRepository) Get(ctx context.Context, id uint) (*models.WorkoutReminder, error) {
	return findByID[models.WorkoutReminder](r.db.WithContext(ctx), id)
}

func (r *WorkoutRepository) Save(ctx context.Context, workout *models.WorkoutReminder) error {
	return r.db.WithContext(ctx).Save(workout).Error
}

func (r *WorkoutRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID[models.WorkoutReminder](r.db.WithContext(ctx), id)
}

func (r *WorkoutRepository) ListByUser(ctx context.Context, userID uint, includeCompleted bool) ([]models.WorkoutReminder, error) {
	var workouts []models.WorkoutReminder
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeCompleted {
		q = q.Where("is_completed = ?", false)
	}
	err := q.Order("workout_datetime ASC").Find(&workouts).Error
	return workouts, err
}

func (r *WorkoutRepository) Complete(ctx context.Context, id uint) (*models.WorkoutReminder, error) {
	db := r.db.WithContext(ctx)
	workout, err := findByID[models.WorkoutReminder](db, id)
	if err != nil {
		return nil, err
	}
	if !workout.IsCompleted {
		if err := db.Model(workout).Update("is_completed", true).Error; err != nil {
			return nil, err
		}
		workout.IsCompleted = true
	}
	return workout, nil
}
