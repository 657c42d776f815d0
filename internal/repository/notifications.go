package repository

import (
	"context"
	"time"

	"cardiomed/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SentLog records which reminders have already been emailed
type SentLog struct {
	db *gorm.DB
}

func NewSentLog(db *gorm.DB) *SentLog {
	return &SentLog{db: db}
}

// WasSent reports whether the reminder has been emailed before
func (s *SentLog) WasSent(ctx context.Context, kind string, reminderID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.ReminderSent{}).
		Where("reminder_kind = ? AND reminder_id = ?", kind, reminderID).
		Count(&count).Error
	return count > 0, err
}

// MarkSent records a delivered reminder. Recording the same reminder twice is a no-op.
func (s *SentLog) MarkSent(ctx context.Context, kind string, reminderID, userID uint, at time.Time) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ReminderSent{
			ReminderKind: kind,
			ReminderID:   reminderID,
			UserID:       userID,
			SentAt:       at,
		}).Error
}
