package models

import "time"

// Reminder kinds tracked by the notifier
const (
	ReminderKindBPCheck    = "bp_check"
	ReminderKindMedication = "medication"
)

// ReminderSent tracks which reminders have been emailed to avoid duplicates
type ReminderSent struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ReminderKind string    `gorm:"size:20;not null;uniqueIndex:idx_reminder_sent_kind_id" json:"reminder_kind"`
	ReminderID   uint      `gorm:"not null;uniqueIndex:idx_reminder_sent_kind_id" json:"reminder_id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	SentAt       time.Time `gorm:"not null" json:"sent_at"`
}

// TableName specifies the table name for the ReminderSent model
func (ReminderSent) TableName() string {
	return "reminders_sent"
}
