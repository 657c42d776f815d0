package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User represents a patient profile in the system
type User struct {
	ID                uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username          string  `gorm:"uniqueIndex;size:30;not null" json:"username"`
	Email             string  `gorm:"uniqueIndex;size:255;not null" json:"email"`
	HashedPassword    string  `gorm:"size:255;not null" json:"-"`
	FullName          string  `gorm:"size:120" json:"full_name"`
	Age               int     `json:"age"`
	Gender            string  `gorm:"size:20" json:"gender"`
	Height            float64 `json:"height"` // cm
	Weight            float64 `json:"weight"` // kg
	MedicalConditions *string `gorm:"type:text" json:"medical_conditions"`
	Medications       *string `gorm:"type:text" json:"medications"`

	TargetSystolic  int  `gorm:"not null;default:120" json:"target_systolic"`
	TargetDiastolic int  `gorm:"not null;default:80" json:"target_diastolic"`
	StressLevel     *int `json:"stress_level,omitempty"`

	DoctorName          *string         `gorm:"size:120" json:"doctor_name,omitempty"`
	LastCheckupDate     *datatypes.Date `json:"last_checkup_date,omitempty"`
	NextAppointmentDate *datatypes.Date `json:"next_appointment_date,omitempty"`

	PreferredMeasurementTime *string        `gorm:"size:20" json:"preferred_measurement_time,omitempty"` // morning, evening, both
	Timezone                 *string        `gorm:"size:64" json:"timezone,omitempty"`
	NotificationPreferences  datatypes.JSON `gorm:"type:jsonb" json:"notification_preferences,omitempty"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook is called before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}
	if u.TargetSystolic == 0 {
		u.TargetSystolic = 120
	}
	if u.TargetDiastolic == 0 {
		u.TargetDiastolic = 80
	}
	return nil
}

// BeforeSave hook is called before saving the user
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// CreateUserRequest represents the data needed to register a patient
type CreateUserRequest struct {
	Username                 string         `json:"username" binding:"required,alphanum,min=3,max=30"`
	Email                    string         `json:"email" binding:"required,email"`
	Password                 string         `json:"password" binding:"required,min=8"`
	FullName                 string         `json:"full_name" binding:"required"`
	Age                      int            `json:"age" binding:"required,min=1,max=120"`
	Gender                   string         `json:"gender" binding:"required"`
	Height                   float64        `json:"height" binding:"required,min=50,max=250"`
	Weight                   float64        `json:"weight" binding:"required,min=20,max=500"`
	MedicalConditions        *string        `json:"medical_conditions"`
	Medications              *string        `json:"medications"`
	TargetSystolic           int            `json:"target_systolic" binding:"omitempty,min=70,max=250"`
	TargetDiastolic          int            `json:"target_diastolic" binding:"omitempty,min=40,max=150"`
	StressLevel              *int           `json:"stress_level" binding:"omitempty,min=1,max=10"`
	DoctorName               *string        `json:"doctor_name"`
	PreferredMeasurementTime *string        `json:"preferred_measurement_time" binding:"omitempty,oneof=morning evening both"`
	Timezone                 *string        `json:"timezone"`
	NotificationPreferences  datatypes.JSON `json:"notification_preferences"`
}

// UpdateUserRequest carries a partial profile update; nil fields are left untouched
type UpdateUserRequest struct {
	FullName                 *string         `json:"full_name"`
	Age                      *int            `json:"age" binding:"omitempty,min=1,max=120"`
	Gender                   *string         `json:"gender"`
	Height                   *float64        `json:"height" binding:"omitempty,min=50,max=250"`
	Weight                   *float64        `json:"weight" binding:"omitempty,min=20,max=500"`
	MedicalConditions        *string         `json:"medical_conditions"`
	Medications              *string         `json:"medications"`
	TargetSystolic           *int            `json:"target_systolic" binding:"omitempty,min=70,max=250"`
	TargetDiastolic          *int            `json:"target_diastolic" binding:"omitempty,min=40,max=150"`
	StressLevel              *int            `json:"stress_level" binding:"omitempty,min=1,max=10"`
	DoctorName               *string         `json:"doctor_name"`
	LastCheckupDate          *datatypes.Date `json:"last_checkup_date"`
	NextAppointmentDate      *datatypes.Date `json:"next_appointment_date"`
	PreferredMeasurementTime *string         `json:"preferred_measurement_time" binding:"omitempty,oneof=morning evening both"`
	Timezone                 *string         `json:"timezone"`
	NotificationPreferences  datatypes.JSON  `json:"notification_preferences"`
}

// Apply copies the non-nil fields of the request onto the user
func (r UpdateUserRequest) Apply(u *User) {
	if r.FullName != nil {
		u.FullName = *r.FullName
	}
	if r.Age != nil {
		u.Age = *r.Age
	}
	if r.Gender != nil {
		u.Gender = *r.Gender
	}
	if r.Height != nil {
		u.Height = *r.Height
	}
	if r.Weight != nil {
		u.Weight = *r.Weight
	}
	if r.MedicalConditions != nil {
		u.MedicalConditions = r.MedicalConditions
	}
	if r.Medications != nil {
		u.Medications = r.Medications
	}
	if r.TargetSystolic != nil {
		u.TargetSystolic = *r.TargetSystolic
	}
	if r.TargetDiastolic != nil {
		u.TargetDiastolic = *r.TargetDiastolic
	}
	if r.StressLevel != nil {
		u.StressLevel = r.StressLevel
	}
	if r.DoctorName != nil {
		u.DoctorName = r.DoctorName
	}
	if r.LastCheckupDate != nil {
		u.LastCheckupDate = r.LastCheckupDate
	}
	if r.NextAppointmentDate != nil {
		u.NextAppointmentDate = r.NextAppointmentDate
	}
	if r.PreferredMeasurementTime != nil {
		u.PreferredMeasurementTime = r.PreferredMeasurementTime
	}
	if r.Timezone != nil {
		u.Timezone = r.Timezone
	}
	if r.NotificationPreferences != nil {
		u.NotificationPreferences = r.NotificationPreferences
	}
}
