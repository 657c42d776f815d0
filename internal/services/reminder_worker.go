package services

import (
	"context"
	"time"

	"cardiomed/internal/models"

	"go.uber.org/zap"
)

type dueBPReminders interface {
	DueBPReminders(ctx context.Context, from, to time.Time) ([]models.BPCheckReminder, error)
}

type upcomingMedications interface {
	Upcoming(ctx context.Context, userID uint, from, to time.Time) ([]models.MedicationReminder, error)
}

type userLookup interface {
	Get(ctx context.Context, id uint) (*models.User, error)
}

type sentLog interface {
	WasSent(ctx context.Context, kind string, reminderID uint) (bool, error)
	MarkSent(ctx context.Context, kind string, reminderID, userID uint, at time.Time) error
}

// ReminderNotifier emails users about BP checks and medication doses that are
// about to fall due. Each reminder is emailed at most once. The notifier only
// reads reminder rows; completion stays with the user.
type ReminderNotifier struct {
	bp          dueBPReminders
	medications upcomingMedications
	users       userLookup
	sent        sentLog
	mailer      ReminderMailer
	interval    time.Duration
	lookahead   time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

func NewReminderNotifier(
	bp dueBPReminders,
	medications upcomingMedications,
	users userLookup,
	sent sentLog,
	mailer ReminderMailer,
	interval, lookahead time.Duration,
	logger *zap.Logger,
) *ReminderNotifier {
	return &ReminderNotifier{
		bp:          bp,
		medications: medications,
		users:       users,
		sent:        sent,
		mailer:      mailer,
		interval:    interval,
		lookahead:   lookahead,
		logger:      logger.Named("notifier"),
		now:         time.Now,
	}
}

// Start runs the notifier until ctx is cancelled
func (n *ReminderNotifier) Start(ctx context.Context) {
	n.logger.Info("Reminder notifier started",
		zap.Duration("interval", n.interval),
		zap.Duration("lookahead", n.lookahead),
	)

	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()

	n.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			n.logger.Info("Reminder notifier stopped")
			return
		case <-ticker.C:
			n.RunOnce(ctx)
		}
	}
}

// RunOnce emails every reminder due inside the look-ahead window that has not
// been emailed yet and returns how many emails went out
func (n *ReminderNotifier) RunOnce(ctx context.Context) int {
	from := n.now()
	to := from.Add(n.lookahead)
	users := make(map[uint]*models.User)
	sent := 0

	bpReminders, err := n.bp.DueBPReminders(ctx, from, to)
	if err != nil {
		n.logger.Error("Failed to load due bp reminders", zap.Error(err))
	}
	for _, r := range bpReminders {
		r := r
		if n.deliver(ctx, users, models.ReminderKindBPCheck, r.ID, r.UserID, func(u *models.User) error {
			return n.mailer.SendBPCheckReminder(ctx, u, r)
		}) {
			sent++
		}
	}

	medications, err := n.medications.Upcoming(ctx, 0, from, to)
	if err != nil {
		n.logger.Error("Failed to load upcoming medication reminders", zap.Error(err))
	}
	for _, m := range medications {
		m := m
		if n.deliver(ctx, users, models.ReminderKindMedication, m.ID, m.UserID, func(u *models.User) error {
			return n.mailer.SendMedicationReminder(ctx, u, m)
		}) {
			sent++
		}
	}

	if sent > 0 {
		n.logger.Info("Sent reminder emails", zap.Int("count", sent))
	}
	return sent
}

func (n *ReminderNotifier) deliver(ctx context.Context, users map[uint]*models.User, kind string, reminderID, userID uint, send func(*models.User) error) bool {
	log := n.logger.With(zap.String("kind", kind), zap.Uint("reminder_id", reminderID), zap.Uint("user_id", userID))

	already, err := n.sent.WasSent(ctx, kind, reminderID)
	if err != nil {
		log.Error("Failed to check reminder log", zap.Error(err))
		return false
	}
	if already {
		return false
	}

	user, ok := users[userID]
	if !ok {
		user, err = n.users.Get(ctx, userID)
		if err != nil {
			log.Warn("Failed to load reminder owner", zap.Error(err))
			return false
		}
		users[userID] = user
	}
	if !user.IsActive || user.Email == "" {
		return false
	}

	if err := send(user); err != nil {
		log.Error("Failed to send reminder email", zap.Error(err))
		return false
	}
	if err := n.sent.MarkSent(ctx, kind, reminderID, userID, n.now()); err != nil {
		log.Error("Failed to record sent reminder", zap.Error(err))
	}
	return true
}
