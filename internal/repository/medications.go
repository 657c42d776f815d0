package repository

import (
	"context"
	"fmt"
	"time"

	"cardiomed/internal/models"

	"gorm.io/gorm"
)

type MedicationRepository struct {
	db *gorm.DB
}

func NewMedicationRepository(db *gorm.DB) *MedicationRepository {
	return &MedicationRepository{db: db}
}

func (r *MedicationRepository) Create(ctx context.Context, reminder *models.MedicationReminder) error {
	return r.db.WithContext(ctx).Create(reminder).Error
}

// CreateBatch stores an approved medication schedule atomically
func (r *MedicationRepository) CreateBatch(ctx context.Context, reminders []models.MedicationReminder) error {
	if len(reminders) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reminders).Error; err != nil {
			return fmt.Errorf("failed to insert %d medication reminders: %w", len(reminders), err)
		}
		return nil
	})
}

func (r *MedicationRepository) Get(ctx context.Context, id uint) (*models.MedicationReminder, error) {
	return findByID[models.MedicationReminder](r.db.WithContext(ctx), id)
}

func (r *MedicationRepository) Save(ctx context.Context, reminder *models.MedicationReminder) error {
	return r.db.WithContext(ctx).Save(reminder).Error
}

func (r *MedicationRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID[models.MedicationReminder](r.db.WithContext(ctx), id)
}

func (r *MedicationRepository) ListByUser(ctx context.Context, userID uint, includeTaken bool) ([]models.MedicationReminder, error) {
	var reminders []models.MedicationReminder
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeTaken {
		q = q.Where("is_taken = ?", false)
	}
	err := q.Order("schedule_datetime ASC").Find(&reminders).Error
	return reminders, err
}

// MarkTaken flags a dose as taken; taking a dose twice is not an error
func (r *MedicationRepository) MarkTaken(ctx context.Context, id uint) (*models.MedicationReminder, error) {
	db := r.db.WithContext(ctx)
	reminder, err := findByID[models.MedicationReminder](db, id)
	if err != nil {
		return nil, err
	}
	if reminder.IsTaken {
		return reminder, nil
	}
	if err := db.Model(reminder).Update("is_taken", true).Error; err != nil {
		return nil, err
	}
	reminder.IsTaken = true
	return reminder, nil
}

// Upcoming returns untaken doses of a user in [from, to). A zero userID
// matches every user.
func (r *MedicationRepository) Upcoming(ctx context.Context, userID uint, from, to time.Time) ([]models.MedicationReminder, error) {
	var reminders []models.MedicationReminder
	q := r.db.WithContext(ctx).Where("is_taken = ? AND schedule_datetime >= ? AND schedule_datetime < ?", false, from, to)
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	err := q.Order("schedule_datetime ASC").Find(&reminders).Error
	return reminders, err
}
