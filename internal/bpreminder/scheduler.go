package bpreminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cardiomed/internal/models"
	"cardiomed/internal/repository"

	"go.uber.org/zap"
)

// DefaultUpcomingHours is the look-ahead window used when the caller gives none
const DefaultUpcomingHours = 24

// MaxUpcomingHours bounds the look-ahead window to one year
const MaxUpcomingHours = 24 * 366

var (
	ErrReminderNotFound = errors.New("bp reminder not found")
	ErrInvalidWindow    = errors.New("upcoming window must be between 1 and 8784 hours")
	ErrNoStore          = errors.New("scheduler has no reminder store")
)

// Store persists BP check reminders
type Store interface {
	// CreateBPReminders inserts all reminders atomically and assigns their IDs in place
	CreateBPReminders(ctx context.Context, reminders []models.BPCheckReminder) error
	// ListPendingBPReminders returns incomplete reminders of a user in [from, to), ascending
	ListPendingBPReminders(ctx context.Context, userID uint, from, to time.Time) ([]models.BPCheckReminder, error)
	// CompleteBPReminder flips the completion flag; repository.ErrNotFound for unknown ids
	CompleteBPReminder(ctx context.Context, id uint) (*models.BPCheckReminder, error)
}

// Request describes a reading to build a schedule from
type Request struct {
	UserID    uint
	Systolic  int
	Diastolic int
	// FirstCheckTime anchors the schedule; nil means now
	FirstCheckTime *time.Time
	// MorningTime and EveningTime are HH:MM; empty means the defaults
	MorningTime string
	EveningTime string
}

// Schedule is the outcome of a generation or preview
type Schedule struct {
	Category  Category
	Info      Info
	Reminders []models.BPCheckReminder
}

// Total is the number of reminders in the schedule
func (s *Schedule) Total() int {
	return len(s.Reminders)
}

// Urgent reports a crisis outcome, which carries no reminders and must be shown
// as an immediate-care advisory
func (s *Schedule) Urgent() bool {
	return s.Category.Urgent()
}

// Response renders the schedule for the API layer
func (s *Schedule) Response() models.BPScheduleResponse {
	reminders := s.Reminders
	if reminders == nil {
		reminders = []models.BPCheckReminder{}
	}
	return models.BPScheduleResponse{
		Category:            s.Category.String(),
		CategoryDescription: s.Info.Description,
		Advice:              s.Info.Advice,
		TotalReminders:      len(reminders),
		Reminders:           reminders,
		Urgent:              s.Urgent(),
	}
}

// Scheduler generates, lists and completes BP check reminders
type Scheduler struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewScheduler creates a scheduler. A nil store limits it to previews.
func NewScheduler(store Store, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the scheduler's time source
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// Generate builds the schedule for a reading and persists it in one bulk insert.
// The returned reminders carry storage-assigned IDs.
func (s *Scheduler) Generate(ctx context.Context, req Request) (*Schedule, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}

	category, times, err := s.plan(req)
	if err != nil {
		return nil, err
	}

	schedule := &Schedule{Category: category, Info: category.Info()}
	if len(times) == 0 {
		s.logger.Warn("Hypertensive crisis reading, no reminders scheduled",
			zap.Uint("user_id", req.UserID),
			zap.Int("systolic", req.Systolic),
			zap.Int("diastolic", req.Diastolic),
		)
		return schedule, nil
	}

	reminders := s.buildReminders(req.UserID, category, times)
	if err := s.store.CreateBPReminders(ctx, reminders); err != nil {
		return nil, fmt.Errorf("failed to save bp reminder schedule: %w", err)
	}
	schedule.Reminders = reminders

	s.logger.Info("BP reminder schedule created",
		zap.Uint("user_id", req.UserID),
		zap.String("category", category.String()),
		zap.Int("reminders", len(reminders)),
	)
	return schedule, nil
}

// Preview builds the same schedule as Generate without touching storage.
// Reminders carry placeholder IDs 1..n.
func (s *Scheduler) Preview(_ context.Context, req Request) (*Schedule, error) {
	category, times, err := s.plan(req)
	if err != nil {
		return nil, err
	}

	schedule := &Schedule{Category: category, Info: category.Info()}
	if len(times) == 0 {
		return schedule, nil
	}

	reminders := s.buildReminders(req.UserID, category, times)
	for i := range reminders {
		reminders[i].ID = uint(i + 1)
	}
	schedule.Reminders = reminders
	return schedule, nil
}

// ListUpcoming returns the user's pending reminders due within the next hours
func (s *Scheduler) ListUpcoming(ctx context.Context, userID uint, withinHours int) ([]models.BPCheckReminder, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	if withinHours <= 0 || withinHours > MaxUpcomingHours {
		return nil, ErrInvalidWindow
	}

	now := s.now()
	reminders, err := s.store.ListPendingBPReminders(ctx, userID, now, now.Add(time.Duration(withinHours)*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming bp reminders: %w", err)
	}
	return reminders, nil
}

// MarkCompleted flags a reminder as done. Completing an already completed
// reminder succeeds and leaves it completed.
func (s *Scheduler) MarkCompleted(ctx context.Context, id uint) (*models.BPCheckReminder, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}

	reminder, err := s.store.CompleteBPReminder(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReminderNotFound
		}
		return nil, fmt.Errorf("failed to complete bp reminder %d: %w", id, err)
	}
	return reminder, nil
}

// plan classifies the reading and computes the reminder instants. A crisis
// returns no instants and skips preference parsing entirely.
func (s *Scheduler) plan(req Request) (Category, []time.Time, error) {
	category := Classify(req.Systolic, req.Diastolic)
	if category.Urgent() {
		return category, nil, nil
	}

	first := s.now().UTC()
	if req.FirstCheckTime != nil && !req.FirstCheckTime.IsZero() {
		first = *req.FirstCheckTime
	}

	morning, err := ParseClock(orDefault(req.MorningTime, DefaultMorningTime))
	if err != nil {
		return "", nil, fmt.Errorf("preferred morning time: %w", err)
	}
	evening, err := ParseClock(orDefault(req.EveningTime, DefaultEveningTime))
	if err != nil {
		return "", nil, fmt.Errorf("preferred evening time: %w", err)
	}

	times, err := ReminderTimes(category, first, morning, evening)
	if err != nil {
		return "", nil, err
	}
	return category, times, nil
}

func (s *Scheduler) buildReminders(userID uint, category Category, times []time.Time) []models.BPCheckReminder {
	createdAt := s.now()
	notes := fmt.Sprintf("BP check reminder - %s", category.Info().Description)

	reminders := make([]models.BPCheckReminder, len(times))
	for i, at := range times {
		n := notes
		reminders[i] = models.BPCheckReminder{
			UserID:           userID,
			ReminderDatetime: at,
			BPCategory:       category.String(),
			CreatedAt:        createdAt,
			Notes:            &n,
		}
	}
	return reminders
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
