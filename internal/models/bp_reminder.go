package models

import (
	"time"

	"gorm.io/gorm"
)

// ManualCategory marks a BP check reminder created by hand rather than by the scheduler
const ManualCategory = "manual"

// BPCheckReminder is a future-dated prompt to take a blood pressure reading.
// Rows are created in bulk by the scheduler or singly by the user, and are only
// ever mutated to flip IsCompleted.
type BPCheckReminder struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;index:idx_bp_reminders_user_time" json:"user_id"`
	ReminderDatetime time.Time `gorm:"not null;index:idx_bp_reminders_user_time" json:"reminder_datetime"`
	BPCategory       string    `gorm:"size:30;not null" json:"bp_category"`
	IsCompleted      bool      `gorm:"not null;default:false" json:"is_completed"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
	Notes            *string   `gorm:"type:text" json:"notes"`
}

// BeforeCreate hook for BP check reminders
func (r *BPCheckReminder) BeforeCreate(tx *gorm.DB) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	if r.BPCategory == "" {
		r.BPCategory = ManualCategory
	}
	return nil
}

// IsDue reports whether the reminder is pending and falls inside [now, now+window)
func (r *BPCheckReminder) IsDue(now time.Time, window time.Duration) bool {
	if r.IsCompleted {
		return false
	}
	return !r.ReminderDatetime.Before(now) && r.ReminderDatetime.Before(now.Add(window))
}

// TableName specifies the table name for the BPCheckReminder model
func (BPCheckReminder) TableName() string {
	return "bp_check_reminders"
}

// CreateBPReminderRequest is a manually created BP check reminder
type CreateBPReminderRequest struct {
	ReminderDatetime time.Time `json:"reminder_datetime" binding:"required"`
	BPCategory       string    `json:"bp_category"`
	Notes            *string   `json:"notes"`
}

// BPScheduleRequest asks for a reminder schedule derived from a reading
type BPScheduleRequest struct {
	UserID               uint       `json:"user_id" binding:"required"`
	Systolic             *int       `json:"systolic" binding:"required"`
	Diastolic            *int       `json:"diastolic" binding:"required"`
	FirstCheckTime       *time.Time `json:"first_check_time"`
	PreferredMorningTime string     `json:"preferred_morning_time"`
	PreferredEveningTime string     `json:"preferred_evening_time"`
}

// BPScheduleResponse is the rendered result of a schedule generation or preview
type BPScheduleResponse struct {
	Category            string            `json:"category"`
	CategoryDescription string            `json:"category_description"`
	Advice              string            `json:"advice"`
	TotalReminders      int               `json:"total_reminders"`
	Reminders           []BPCheckReminder `json:"reminders"`
	Urgent              bool              `json:"urgent"`
}
