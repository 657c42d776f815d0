package models

import (
	"time"

	"gorm.io/gorm"
)

// BloodPressureReading is a single cuff measurement taken by a user
type BloodPressureReading struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index:idx_readings_user_time" json:"user_id"`
	Systolic       int       `gorm:"not null" json:"systolic"`
	Diastolic      int       `gorm:"not null" json:"diastolic"`
	Pulse          int       `gorm:"not null" json:"pulse"`
	ReadingTime    time.Time `gorm:"not null;index:idx_readings_user_time" json:"reading_time"`
	Notes          *string   `gorm:"type:text" json:"notes"`
	DeviceID       *string   `gorm:"size:120" json:"device_id"`
	Interpretation string    `gorm:"size:40" json:"interpretation"`
	PhotoURL       *string   `gorm:"size:500" json:"photo_url,omitempty"`
}

// BeforeCreate hook is called before creating a new reading
func (r *BloodPressureReading) BeforeCreate(tx *gorm.DB) error {
	if r.ReadingTime.IsZero() {
		r.ReadingTime = time.Now().UTC()
	}
	return nil
}

// TableName specifies the table name for the BloodPressureReading model
func (BloodPressureReading) TableName() string {
	return "blood_pressure_readings"
}

// CreateReadingRequest represents the data needed to record a reading
type CreateReadingRequest struct {
	Systolic    int        `json:"systolic" binding:"required"`
	Diastolic   int        `json:"diastolic" binding:"required"`
	Pulse       int        `json:"pulse" binding:"required"`
	ReadingTime *time.Time `json:"reading_time"`
	Notes       *string    `json:"notes" binding:"omitempty,max=1000"`
	DeviceID    *string    `json:"device_id"`
}

// ReadingStats summarises a user's reading history
type ReadingStats struct {
	TotalReadings int              `json:"total_readings"`
	Message       string           `json:"message,omitempty"`
	Averages      *ReadingAverages `json:"averages,omitempty"`
	Ranges        *ReadingRanges   `json:"ranges,omitempty"`
	Categories    map[string]int   `json:"categories,omitempty"`
}

type ReadingAverages struct {
	Systolic  float64 `json:"systolic"`
	Diastolic float64 `json:"diastolic"`
	Pulse     float64 `json:"pulse"`
}

type MinMax struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type ReadingRanges struct {
	Systolic  MinMax `json:"systolic"`
	Diastolic MinMax `json:"diastolic"`
}
