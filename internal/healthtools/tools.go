// Package healthtools implements the patient-data tools offered to the
// assistants, both in process and over MCP.
package healthtools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cardiomed/internal/bpreminder"
	"cardiomed/internal/models"
	"cardiomed/internal/repository"
)

const (
	DefaultReadingLimit = 7
	MaxReadingLimit     = 50
)

var ErrUserNotFound = errors.New("user not found")

type userSource interface {
	Get(ctx context.Context, id uint) (*models.User, error)
}

type readingSource interface {
	ListByUser(ctx context.Context, userID uint, page repository.Page) ([]models.BloodPressureReading, error)
}

type reminderSource interface {
	ListUpcoming(ctx context.Context, userID uint, withinHours int) ([]models.BPCheckReminder, error)
}

// Service answers tool calls from stored patient data
type Service struct {
	users     userSource
	readings  readingSource
	reminders reminderSource
}

func NewService(users userSource, readings readingSource, reminders reminderSource) *Service {
	return &Service{users: users, readings: readings, reminders: reminders}
}

type UserArgs struct {
	UserID uint `json:"user_id"`
}

type ReadingArgs struct {
	UserID uint `json:"user_id"`
	Limit  int  `json:"limit,omitempty"`
}

type UpcomingArgs struct {
	UserID uint `json:"user_id"`
	Hours  int  `json:"hours,omitempty"`
}

type ClassifyArgs struct {
	Systolic  int `json:"systolic"`
	Diastolic int `json:"diastolic"`
}

type Profile struct {
	UserID                   uint    `json:"user_id"`
	FullName                 string  `json:"full_name"`
	Age                      int     `json:"age"`
	Gender                   string  `json:"gender"`
	MedicalConditions        *string `json:"medical_conditions,omitempty"`
	Medications              *string `json:"medications,omitempty"`
	TargetSystolic           int     `json:"target_systolic"`
	TargetDiastolic          int     `json:"target_diastolic"`
	PreferredMeasurementTime *string `json:"preferred_measurement_time,omitempty"`
}

type Reading struct {
	Systolic    int       `json:"systolic"`
	Diastolic   int       `json:"diastolic"`
	Pulse       int       `json:"pulse"`
	ReadingTime time.Time `json:"reading_time"`
	Category    string    `json:"category"`
	Notes       *string   `json:"notes,omitempty"`
}

type Classification struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Advice      string `json:"advice"`
	Urgent      bool   `json:"urgent"`
}

// UserProfile returns the parts of a profile relevant to blood pressure care
func (s *Service) UserProfile(ctx context.Context, args UserArgs) (*Profile, error) {
	user, err := s.user(ctx, args.UserID)
	if err != nil {
		return nil, err
	}
	return &Profile{
		UserID:                   user.ID,
		FullName:                 user.FullName,
		Age:                      user.Age,
		Gender:                   user.Gender,
		MedicalConditions:        user.MedicalConditions,
		Medications:              user.Medications,
		TargetSystolic:           user.TargetSystolic,
		TargetDiastolic:          user.TargetDiastolic,
		PreferredMeasurementTime: user.PreferredMeasurementTime,
	}, nil
}

// RecentReadings returns the newest readings of a user, newest first
func (s *Service) RecentReadings(ctx context.Context, args ReadingArgs) ([]Reading, error) {
	if _, err := s.user(ctx, args.UserID); err != nil {
		return nil, err
	}

	limit := args.Limit
	if limit <= 0 {
		limit = DefaultReadingLimit
	}
	if limit > MaxReadingLimit {
		limit = MaxReadingLimit
	}

	readings, err := s.readings.ListByUser(ctx, args.UserID, repository.Page{Limit: limit})
	if err != nil {
		return nil, err
	}

	out := make([]Reading, 0, len(readings))
	for _, r := range readings {
		out = append(out, Reading{
			Systolic:    r.Systolic,
			Diastolic:   r.Diastolic,
			Pulse:       r.Pulse,
			ReadingTime: r.ReadingTime,
			Category:    bpreminder.Classify(r.Systolic, r.Diastolic).String(),
			Notes:       r.Notes,
		})
	}
	return out, nil
}

// UpcomingReminders lists the user's pending BP checks in the next hours
func (s *Service) UpcomingReminders(ctx context.Context, args UpcomingArgs) ([]models.BPCheckReminder, error) {
	hours := args.Hours
	if hours <= 0 {
		hours = bpreminder.DefaultUpcomingHours
	}
	hours = min(hours, bpreminder.MaxUpcomingHours)
	reminders, err := s.reminders.ListUpcoming(ctx, args.UserID, hours)
	if err != nil {
		return nil, err
	}
	if reminders == nil {
		reminders = []models.BPCheckReminder{}
	}
	return reminders, nil
}

// ContextSummary renders a short plain-text picture of the patient for prompts
func (s *Service) ContextSummary(ctx context.Context, userID uint) (string, error) {
	profile, err := s.UserProfile(ctx, UserArgs{UserID: userID})
	if err != nil {
		return "", err
	}
	readings, err := s.RecentReadings(ctx, ReadingArgs{UserID: userID, Limit: DefaultReadingLimit})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Age %d, %s. Target %d/%d mmHg.\n", profile.Age, profile.Gender, profile.TargetSystolic, profile.TargetDiastolic)
	if profile.MedicalConditions != nil && *profile.MedicalConditions != "" {
		fmt.Fprintf(&b, "Conditions: %s\n", *profile.MedicalConditions)
	}
	if profile.Medications != nil && *profile.Medications != "" {
		fmt.Fprintf(&b, "Medications: %s\n", *profile.Medications)
	}
	if len(readings) == 0 {
		b.WriteString("No readings recorded yet.")
		return b.String(), nil
	}
	b.WriteString("Recent readings (newest first):\n")
	for _, r := range readings {
		fmt.Fprintf(&b, "- %s: %d/%d mmHg, pulse %d (%s)\n",
			r.ReadingTime.UTC().Format("2006-01-02 15:04"), r.Systolic, r.Diastolic, r.Pulse, r.Category)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// Classify explains where a reading falls
func Classify(_ context.Context, args ClassifyArgs) (*Classification, error) {
	if args.Systolic <= 0 || args.Diastolic <= 0 {
		return nil, fmt.Errorf("systolic and diastolic must be positive")
	}
	c := bpreminder.Classify(args.Systolic, args.Diastolic)
	info := c.Info()
	return &Classification{
		Category:    c.String(),
		Description: info.Description,
		Advice:      info.Advice,
		Urgent:      c.Urgent(),
	}, nil
}

// CurrentDatetime returns the local wall-clock time
func CurrentDatetime(_ context.Context, _ struct{}) (string, error) {
	return time.Now().Format("2006-01-02 15:04:05"), nil
}

func (s *Service) user(ctx context.Context, id uint) (*models.User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user_id is required")
	}
	user, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrUserNotFound, id)
		}
		return nil, err
	}
	return user, nil
}
