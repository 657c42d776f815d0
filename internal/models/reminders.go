package models

import (
	"time"

	"gorm.io/gorm"
)

// WorkoutType represents the kind of exercise planned
type WorkoutType string

const (
	WalkingWorkout  WorkoutType = "walking"
	CardioWorkout   WorkoutType = "cardio"
	StrengthWorkout WorkoutType = "strength"
	YogaWorkout     WorkoutType = "yoga"
	OtherWorkout    WorkoutType = "other"
)

// MedicationReminder represents a scheduled medication dose
type MedicationReminder struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;index" json:"user_id"`
	Name             string    `gorm:"size:120;not null" json:"name"`
	Dosage           string    `gorm:"size:120" json:"dosage"`
	ScheduleDatetime time.Time `gorm:"not null;index" json:"schedule_datetime"`
	ScheduleDosage   string    `gorm:"size:120" json:"schedule_dosage"`
	IsTaken          bool      `gorm:"not null;default:false" json:"is_taken"`
	Notes            *string   `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
}

// DoctorAppointmentReminder represents an upcoming doctor visit
type DoctorAppointmentReminder struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	UserID              uint      `gorm:"not null;index" json:"user_id"`
	AppointmentDatetime time.Time `gorm:"not null;index" json:"appointment_datetime"`
	DoctorName          string    `gorm:"size:120;not null" json:"doctor_name"`
	AppointmentType     string    `gorm:"size:60" json:"appointment_type"`
	Location            *Location `gorm:"type:jsonb" json:"location,omitempty"`
	IsCompleted         bool      `gorm:"not null;default:false" json:"is_completed"`
	Notes               *string   `gorm:"type:text" json:"notes"`
	CreatedAt           time.Time `gorm:"not null" json:"created_at"`
}

// WorkoutReminder represents a planned exercise session
type WorkoutReminder struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	UserID          uint        `gorm:"not null;index" json:"user_id"`
	WorkoutDatetime time.Time   `gorm:"not null;index" json:"workout_datetime"`
	WorkoutType     WorkoutType `gorm:"size:30;not null" json:"workout_type"`
	DurationMinutes int         `gorm:"not null" json:"duration_minutes"`
	Location        *string     `gorm:"size:255" json:"location"`
	IsCompleted     bool        `gorm:"not null;default:false" json:"is_completed"`
	Notes           *string     `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time   `gorm:"not null" json:"created_at"`
}

func (m *MedicationReminder) BeforeCreate(tx *gorm.DB) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	return nil
}

func (d *DoctorAppointmentReminder) BeforeCreate(tx *gorm.DB) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	return nil
}

func (w *WorkoutReminder) BeforeCreate(tx *gorm.DB) error {
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now()
	}
	return nil
}

func (MedicationReminder) TableName() string        { return "medication_reminders" }
func (DoctorAppointmentReminder) TableName() string { return "doctor_appointment_reminders" }
func (WorkoutReminder) TableName() string           { return "workout_reminders" }

// CreateMedicationReminderRequest represents a manually entered medication dose
type CreateMedicationReminderRequest struct {
	Name             string    `json:"name" binding:"required"`
	Dosage           string    `json:"dosage"`
	ScheduleDatetime time.Time `json:"schedule_datetime" binding:"required"`
	ScheduleDosage   string    `json:"schedule_dosage"`
	Notes            *string   `json:"notes"`
}

type UpdateMedicationReminderRequest struct {
	Name             *string    `json:"name"`
	Dosage           *string    `json:"dosage"`
	ScheduleDatetime *time.Time `json:"schedule_datetime"`
	ScheduleDosage   *string    `json:"schedule_dosage"`
	IsTaken          *bool      `json:"is_taken"`
	Notes            *string    `json:"notes"`
}

// MedicationScheduleItem is one approved dose of an extracted prescription
type MedicationScheduleItem struct {
	Datetime time.Time `json:"datetime" binding:"required"`
	Dosage   string    `json:"dosage"`
}

// SaveMedicationScheduleRequest stores a reviewed prescription schedule in one go
type SaveMedicationScheduleRequest struct {
	UserID   uint                     `json:"user_id" binding:"required"`
	Name     string                   `json:"name" binding:"required"`
	Dosage   string                   `json:"dosage"`
	Schedule []MedicationScheduleItem `json:"schedule" binding:"required,min=1,dive"`
	Notes    *string                  `json:"notes"`
}

type CreateDoctorAppointmentRequest struct {
	AppointmentDatetime time.Time `json:"appointment_datetime" binding:"required"`
	DoctorName          string    `json:"doctor_name" binding:"required"`
	AppointmentType     string    `json:"appointment_type"`
	PlaceID             string    `json:"place_id"`
	Notes               *string   `json:"notes"`
}

type UpdateDoctorAppointmentRequest struct {
	AppointmentDatetime *time.Time `json:"appointment_datetime"`
	DoctorName          *string    `json:"doctor_name"`
	AppointmentType     *string    `json:"appointment_type"`
	PlaceID             *string    `json:"place_id"`
	Notes               *string    `json:"notes"`
}

type CreateWorkoutRequest struct {
	WorkoutDatetime time.Time   `json:"workout_datetime" binding:"required"`
	WorkoutType     WorkoutType `json:"workout_type" binding:"required,oneof=walking cardio strength yoga other"`
	DurationMinutes int         `json:"duration_minutes" binding:"required,min=1,max=600"`
	Location        *string     `json:"location"`
	Notes           *string     `json:"notes"`
}

type UpdateWorkoutRequest struct {
	WorkoutDatetime *time.Time   `json:"workout_datetime"`
	WorkoutType     *WorkoutType `json:"workout_type" binding:"omitempty,oneof=walking cardio strength yoga other"`
	DurationMinutes *int         `json:"duration_minutes" binding:"omitempty,min=1,max=600"`
	Location        *string      `json:"location"`
	Notes           *string      `json:"notes"`
}
