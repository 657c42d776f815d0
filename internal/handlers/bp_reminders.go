package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"cardiomed/internal/bpreminder"
	"cardiomed/internal/models"
	"cardiomed/internal/repository"

	"github.com/gin-gonic/gin"
)

// handleScheduleError maps scheduler errors onto responses
func (h *Handler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, bpreminder.ErrInvalidCheckTime),
		errors.Is(err, bpreminder.ErrIdenticalCheckTime),
		errors.Is(err, bpreminder.ErrInvalidWindow):
		h.handleError(c, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, bpreminder.ErrReminderNotFound), errors.Is(err, repository.ErrNotFound):
		h.handleError(c, http.StatusNotFound, "BP reminder not found", err)
	default:
		h.handleError(c, http.StatusInternalServerError, "Failed to process BP reminders", err)
	}
}

func scheduleRequest(req models.BPScheduleRequest) bpreminder.Request {
	return bpreminder.Request{
		UserID:         req.UserID,
		Systolic:       *req.Systolic,
		Diastolic:      *req.Diastolic,
		FirstCheckTime: req.FirstCheckTime,
		MorningTime:    req.PreferredMorningTime,
		EveningTime:    req.PreferredEveningTime,
	}
}

// CreateBPSchedule generates and stores the follow-up checks for a reading.
// A crisis reading answers 200 with urgent set and no reminders.
func (h *Handler) CreateBPSchedule(c *gin.Context) {
	var req models.BPScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}
	if _, ok := h.requireUser(c, req.UserID); !ok {
		return
	}

	schedule, err := h.Scheduler.Generate(c.Request.Context(), scheduleRequest(req))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule.Response())
}

// PreviewBPSchedule computes a schedule without storing it
func (h *Handler) PreviewBPSchedule(c *gin.Context) {
	var req models.BPScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	schedule, err := h.Scheduler.Preview(c.Request.Context(), scheduleRequest(req))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule.Response())
}

// UpcomingBPReminders lists pending checks in the next ?hours (default 24)
func (h *Handler) UpcomingBPReminders(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	hours, err := strconv.Atoi(c.DefaultQuery("hours", strconv.Itoa(bpreminder.DefaultUpcomingHours)))
	if err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid hours", err)
		return
	}
	if _, ok := h.requireUser(c, userID); !ok {
		return
	}

	reminders, err := h.Scheduler.ListUpcoming(c.Request.Context(), userID, hours)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	if reminders == nil {
		reminders = []models.BPCheckReminder{}
	}
	c.JSON(http.StatusOK, gin.H{"upcoming_bp_reminders": reminders})
}

// CompleteBPReminder marks a check as done. Completing twice is not an error.
func (h *Handler) CompleteBPReminder(c *gin.Context) {
	id, ok := idParam(c, "reminder_id")
	if !ok {
		return
	}
	reminder, err := h.Scheduler.MarkCompleted(c.Request.Context(), id)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "BP check reminder marked as completed", "reminder": reminder})
}

// CreateBPReminder stores a single hand-made reminder
func (h *Handler) CreateBPReminder(c *gin.Context) {
	userID, ok := userIDQuery(c)
	if !ok {
		return
	}
	var req models.CreateBPReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}
	if _, ok := h.requireUser(c, userID); !ok {
		return
	}

	reminder := models.BPCheckReminder{
		UserID:           userID,
		ReminderDatetime: req.ReminderDatetime,
		BPCategory:       req.BPCategory,
		Notes:            req.Notes,
	}
	if err := h.BPReminders.Create(c.Request.Context(), &reminder); err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to create BP reminder", err)
		return
	}
	c.JSON(http.StatusCreated, reminder)
}

func (h *Handler) ListBPReminders(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	includeCompleted, ok := boolQuery(c, "include_completed", true)
	if !ok {
		return
	}
	if _, ok := h.requireUser(c, userID); !ok {
		return
	}

	reminders, err := h.BPReminders.ListByUser(c.Request.Context(), userID, includeCompleted)
	if err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to retrieve BP reminders", err)
		return
	}
	c.JSON(http.StatusOK, reminders)
}

func (h *Handler) GetBPReminder(c *gin.Context) {
	id, ok := idParam(c, "reminder_id")
	if !ok {
		return
	}
	reminder, err := h.BPReminders.Get(c.Request.Context(), id)
	if err != nil {
		h.handleStoreError(c, "BP reminder not found", "Failed to retrieve BP reminder", err)
		return
	}
	c.JSON(http.StatusOK, reminder)
}

func (h *Handler) DeleteBPReminder(c *gin.Context) {
	id, ok := idParam(c, "reminder_id")
	if !ok {
		return
	}
	if err := h.BPReminders.Delete(c.Request.Context(), id); err != nil {
		h.handleStoreError(c, "BP reminder not found", "Failed to delete BP reminder", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "BP check reminder deleted successfully"})
}
