package repository

import (
	"context"
	"fmt"
	"time"

	"cardiomed/internal/models"

	"gorm.io/gorm"
)

// BPReminderRepository stores BP check reminders
type BPReminderRepository struct {
	db *gorm.DB
}

func NewBPReminderRepository(db *gorm.DB) *BPReminderRepository {
	return &BPReminderRepository{db: db}
}

// CreateBPReminders inserts a whole schedule in one transaction. Either every
// reminder is stored or none is.
func (r *BPReminderRepository) CreateBPReminders(ctx context.Context, reminders []models.BPCheckReminder) error {
	if len(reminders) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reminders).Error; err != nil {
			return fmt.Errorf("failed to insert %d bp reminders: %w", len(reminders), err)
		}
		return nil
	})
}

// ListPendingBPReminders returns incomplete reminders in [from, to), ascending
func (r *BPReminderRepository) ListPendingBPReminders(ctx context.Context, userID uint, from, to time.Time) ([]models.BPCheckReminder, error) {
	var reminders []models.BPCheckReminder
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_completed = ? AND reminder_datetime >= ? AND reminder_datetime < ?", userID, false, from, to).
		Order("reminder_datetime ASC").
		Find(&reminders).Error
	return reminders, err
}

// CompleteBPReminder marks a reminder done. A reminder that is already
// completed is returned as is without an update.
func (r *BPReminderRepository) CompleteBPReminder(ctx context.Context, id uint) (*models.BPCheckReminder, error) {
	db := r.db.WithContext(ctx)
	reminder, err := findByID[models.BPCheckReminder](db, id)
	if err != nil {
		return nil, err
	}
	if reminder.IsCompleted {
		return reminder, nil
	}
	if err := db.Model(reminder).Update("is_completed", true).Error; err != nil {
		return nil, err
	}
	reminder.IsCompleted = true
	return reminder, nil
}

func (r *BPReminderRepository) Create(ctx context.Context, reminder *models.BPCheckReminder) error {
	return r.db.WithContext(ctx).Create(reminder).Error
}

func (r *BPReminderRepository) Get(ctx context.Context, id uint) (*models.BPCheckReminder, error) {
	return findByID[models.BPCheckReminder](r.db.WithContext(ctx), id)
}

func (r *BPReminderRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID[models.BPCheckReminder](r.db.WithContext(ctx), id)
}

// ListByUser returns the user's reminders ordered by due time
func (r *BPReminderRepository) ListByUser(ctx context.Context, userID uint, includeCompleted bool) ([]models.BPCheckReminder, error) {
	var reminders []models.BPCheckReminder
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeCompleted {
		q = q.Where("is_completed = ?", false)
	}
	err := q.Order("reminder_datetime ASC").Find(&reminders).Error
	return reminders, err
}

// DueBPReminders returns incomplete reminders of every user in [from, to)
func (r *BPReminderRepository) DueBPReminders(ctx context.Context, from, to time.Time) ([]models.BPCheckReminder, error) {
	var reminders []models.BPCheckReminder
	err := r.db.WithContext(ctx).
		Where("is_completed = ? AND reminder_datetime >= ? AND reminder_datetime < ?", false, from, to).
		Order("reminder_datetime ASC").
		Find(&reminders).Error
	return reminders, err
}
