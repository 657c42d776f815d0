package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"cardiomed/internal/agent"
	"cardiomed/internal/bpreminder"
	"cardiomed/internal/models"
	"cardiomed/internal/repository"
	"cardiomed/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type userStore interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context, page repository.Page) ([]models.User, error)
	Save(ctx context.Context, user *models.User) error
	EmailTaken(ctx context.Context, email string) (bool, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
}

type readingStore interface {
	Create(ctx context.Context, reading *models.BloodPressureReading) error
	Get(ctx context.Context, id uint) (*models.BloodPressureReading, error)
	ListByUser(ctx context.Context, userID uint, page repository.Page) ([]models.BloodPressureReading, error)
	AllByUser(ctx context.Context, userID uint) ([]models.BloodPressureReading, error)
	SetPhotoURL(ctx context.Context, id uint, url string) error
}

type bpReminderStore interface {
	Create(ctx context.Context, reminder *models.BPCheckReminder) error
	Get(ctx context.Context, id uint) (*models.BPCheckReminder, error)
	Delete(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID uint, includeCompleted bool) ([]models.BPCheckReminder, error)
}

type bpScheduler interface {
	Generate(ctx context.Context, req bpreminder.Request) (*bpreminder.Schedule, error)
	Preview(ctx context.Context, req bpreminder.Request) (*bpreminder.Schedule, error)
	ListUpcoming(ctx context.Context, userID uint, withinHours int) ([]models.BPCheckReminder, error)
	MarkCompleted(ctx context.Context, id uint) (*models.BPCheckReminder, error)
}

type medicationStore interface {
	Create(ctx context.Context, reminder *models.MedicationReminder) error
	CreateBatch(ctx context.Context, reminders []models.MedicationReminder) error
	Get(ctx context.Context, id uint) (*models.MedicationReminder, error)
	Save(ctx context.Context, reminder *models.MedicationReminder) error
	Delete(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID uint, includeTaken bool) ([]models.MedicationReminder, error)
	MarkTaken(ctx context.Context, id uint) (*models.MedicationReminder, error)
	Upcoming(ctx context.Context, userID uint, from, to time.Time) ([]models.MedicationReminder, error)
}

type appointmentStore interface {
	Create(ctx context.Context, appt *models.DoctorAppointmentReminder) error
	Get(ctx context.Context, id uint) (*models.DoctorAppointmentReminder, error)
	Save(ctx context.Context, appt *models.DoctorAppointmentReminder) error
	Delete(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID uint, includeCompleted bool) ([]models.DoctorAppointmentReminder, error)
	Complete(ctx context.Context, id uint) (*models.DoctorAppointmentReminder, error)
}

type workoutStore interface {
	Create(ctx context.Context, workout *models.WorkoutReminder) error
	Get(ctx context.Context, id uint) (*models.WorkoutReminder, error)
	Save(ctx context.Context, workout *models.WorkoutReminder) error
	Delete(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID uint, includeCompleted bool) ([]models.WorkoutReminder, error)
	Complete(ctx context.Context, id uint) (*models.WorkoutReminder, error)
}

type advisorService interface {
	Advice(ctx context.Context, userID uint, message string) (*agent.Run, error)
	Status() agent.AdvisorStatus
}

type knowledgeService interface {
	Ask(ctx context.Context, req agent.AskRequest) (*agent.Answer, error)
	Status() agent.KnowledgeStatus
}

// Deps are the collaborators of the HTTP layer. Places, Photos, Advisor and
// Knowledge are optional; their endpoints answer 503 when nil.
type Deps struct {
	Users        userStore
	Readings     readingStore
	BPReminders  bpReminderStore
	Scheduler    bpScheduler
	Medications  medicationStore
	Appointments appointmentStore
	Workouts     workoutStore
	Places       services.PlaceResolver
	Photos       services.PhotoUploader
	Advisor      advisorService
	Knowledge    knowledgeService
}

// Handler serves the REST API
type Handler struct {
	Deps
	logger *zap.Logger
}

func New(deps Deps, logger *zap.Logger) *Handler {
	return &Handler{Deps: deps, logger: logger}
}

// handleError provides a consistent way to handle and log errors
func (h *Handler) handleError(c *gin.Context, status int, message string, err error) {
	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	}
	if id := c.GetString(requestIDKey); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error(message, fields...)
	} else {
		h.logger.Warn(message, fields...)
	}
	c.JSON(status, gin.H{"error": message})
}

// handleStoreError maps repository errors onto responses
func (h *Handler) handleStoreError(c *gin.Context, notFound, failure string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		h.handleError(c, http.StatusNotFound, notFound, err)
		return
	}
	h.handleError(c, http.StatusInternalServerError, failure, err)
}

// HomeHandler handles requests to the root path "/"
func HomeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the CardioMed API"})
}

// HealthHandler is a simple health check endpoint
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// idParam parses a positive numeric path parameter
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// userIDQuery parses the required user_id query parameter
func userIDQuery(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Query("user_id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id query parameter is required"})
		return 0, false
	}
	return uint(id), true
}

// boolQuery parses an optional boolean query parameter
func boolQuery(c *gin.Context, name string, fallback bool) (bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return false, false
	}
	return v, true
}

// pageQuery reads skip and limit; the repository applies the bounds
func pageQuery(c *gin.Context) (repository.Page, bool) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid skip"})
		return repository.Page{}, false
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return repository.Page{}, false
	}
	return repository.Page{Skip: skip, Limit: limit}, true
}

// requireUser loads the user or answers 404
func (h *Handler) requireUser(c *gin.Context, userID uint) (*models.User, bool) {
	user, err := h.Users.Get(c.Request.Context(), userID)
	if err != nil {
		h.handleStoreError(c, "User not found", "Failed to retrieve user", err)
		return nil, false
	}
	return user, true
}

func (h *Handler) unavailable(c *gin.Context, feature string) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": feature + " is not configured"})
}
