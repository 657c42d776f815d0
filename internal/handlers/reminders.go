package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"cardiomed/internal/bpreminder"
	"cardiomed/internal/models"
	"cardiomed/internal/services"

	"github.com/gin-gonic/gin"
)

// Medication reminders

func (h *Handler) CreateMedicationReminder(c *gin.Context) {
	userID, ok := userIDQuery(c)
	if !ok {
		return
	}
	var req models.CreateMedicationReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}
	if _, ok := h.requireUser(c, userID); !ok {
		return
	}

	reminder := models.MedicationReminder{
		UserID:           userID,
		Name:             req.Name,
		Dosage:           req.Dosage,
		ScheduleDatetime: req.ScheduleDatetime,
		ScheduleDosage:   req.ScheduleDosage,
		Notes:            req.Notes,
	}
	if err := h.Medications.Create(c.Request.Context(), &reminder); err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to create reminder", err)
		return
	}
	c.JSON(http.StatusCreated, reminder)
}

func (h *Handler) ListMedicationReminders(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	includeTaken, ok := boolQuery(c, "include_taken", true)
	if !ok {
		return
	}
	if _, ok := h.requireUser(c, userID); !ok {
		return
	}

	reminders, err := h.Medications.ListByUser(c.Request.Context(), userID, includeTaken)
	if err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to retrieve reminders", err)
		return
	}
	c.JSON(http.StatusOK, reminders)
}

func (h *Handler) GetMedicationReminder(c *gin.Context) {
	id, ok := idParam(c, "reminder_id")
	if !ok {
		return
	}
	reminder, err := h.Medications.Get(c.Request.Context(), id)
	if err != nil {
		h.handleStoreError(c, "Reminder not found", "Failed to retrieve reminder", err)
		return
	}
	c.JSON(http.StatusOK, reminder)
}

func (h *Handler) UpdateMedicationReminder(c *gin.Context) {
	id, ok := idParam(c, "reminder_id")
	if !ok {
		return
	}
	var req models.UpdateMedicationReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	ctx := c.Request.Context()
	reminder, err := h.Medications.Get(ctx, id)
	if err != nil {
		h.handleStoreError(c, "Reminder not found", "Failed to retrieve reminder", err)
		return
	}
	if req.Name != nil {
		reminder.Name = *req.Name
	}
	if req.Dosage != nil {
		reminder.Dosage = *req.Dosage
	}
	if req.ScheduleDatetime != nil {
		reminder.ScheduleDatetime = *req.ScheduleDatetime
	}
	if req.ScheduleDosage != nil {
		reminder.ScheduleDosage = *req.ScheduleDosage
	}
	if req.IsTaken != nil {
		reminder.IsTaken = *req.IsTaken
	}
	if req.Notes != nil {
		reminder.Notes = req.Notes
	}
	if err := h.Medications.Save(ctx, reminder); err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to update reminder", err)
		return
	}
	c.JSON(http.StatusOK, reminder)
}

func (h *Handler) DeleteMedicationReminder(c *gin.Context) {
	id, ok := idParam(c, "reminder_id")
	if !ok {
		return
	}
	if err := h.Medications.Delete(c.Request.Context(), id); err != nil {
		h.handleStoreError(c, "Reminder not found", "Failed to delete reminder", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted successfully"})
}

func (h *Handler) MarkMedicationTaken(c *gin.Context) {
	id, ok := idParam(c, "reminder_id")
	if !ok {
		return
	}
	reminder, err := h.Medications.MarkTaken(c.Request.Context(), id)
	if err != nil {
		h.handleStoreError(c, "Reminder not found", "Failed to update reminder", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder marked as taken", "reminder": reminder})
}

// UpcomingMedicationReminders lists doses not yet taken in the next ?hours (default 24)
func (h *Handler) UpcomingMedicationReminders(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	hours, err := strconv.Atoi(c.DefaultQuery("hours", "24"))
	if err != nil || hours <= 0 || hours > bpreminder.MaxUpcomingHours {
		if err == nil {
			err = bpreminder.ErrInvalidWindow
		}
		h.handleError(c, http.StatusBadRequest, "Invalid hours", err)
		return
	}
	if _, ok := h.requireUser(c, userID); !ok {
		return
	}

	now := time.Now().UTC()
	reminders, err := h.Medications.Upcoming(c.Request.Context(), userID, now, now.Add(time.Duration(hours)*time.Hour))
	if err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to retrieve reminders", err)
		return
	}
	if reminders == nil {
		reminders = []models.MedicationReminder{}
	}
	c.JSON(http.StatusOK, gin.H{"upcoming_reminders": reminders})
}

// SaveMedicationSchedule stores an approved list of doses in one transaction
func (h *Handler) SaveMedicationSchedule(c *gin.Context) {
	var req models.SaveMedicationScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}
	if _, ok := h.requireUser(c, req.UserID); !ok {
		return
	}

	reminders := make([]models.MedicationReminder, 0, len(req.Schedule))
	for _, item := range req.Schedule {
		reminders = append(reminders, models.MedicationReminder{
			UserID:           req.UserID,
			Name:             req.Name,
			Dosage:           req.Dosage,
			ScheduleDatetime: item.Datetime,
			ScheduleDosage:   item.Dosage,
			Notes:            req.Notes,
		})
	}
	if err := h.Medications.CreateBatch(c.Request.Context(), reminders); err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to save medication schedule", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":         "Medication schedule saved",
		"reminders_count": len(reminders),
		"reminders":       reminders,
	})
}

// Doctor appointment reminders

// resolveLocation looks up a Place ID. An empty id means no location.
func (h *Handler) resolveLocation(c *gin.Context, placeID string) (*models.Location, bool) {
	if placeID == "" {
		return nil, true
	}
	if h.Places == nil {
		h.unavailable(c, "Location lookup")
		return nil, false
	}
	location, err := h.Places.ResolvePlace(c.Request.Context(), placeID)
	if err != nil {
		if errors.Is(err, services.ErrPlaceNotFound) {
			h.handleError(c, http.StatusBadRequest, "Invalid place_id", err)
			return nil, false
		}
		h.handleError(c, http.StatusBadGateway, "Failed to validate location", err)
		return nil, false
	}
	return location, true
}

func (h *Handler) CreateDoctorAppointment(c *gin.Context) {
	userID, ok := userIDQuery(c)
	if !ok {
		return
	}
	var req models.CreateDoctorAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}
	if _, ok := h.requireUser(c, userID); !ok {
		return
	}
	location, ok := h.resolveLocation(c, req.PlaceID)
	if !ok {
		return
	}

	appt := models.DoctorAppointmentReminder{
		UserID:              userID,
		AppointmentDatetime: req.AppointmentDatetime,
		DoctorName:          req.DoctorName,
		AppointmentType:     req.AppointmentType,
		Location:            location,
		Notes:               req.Notes,
	}
	if err := h.Appointments.Create(c.Request.Context(), &appt); err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to create appointment", err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

func (h *Handler) ListDoctorAppointments(c *gin.Context) {
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

	appts, err := h.Appointments.ListByUser(c.Request.Context(), userID, includeCompleted)
	if err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to retrieve appointments", err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

func (h *Handler) GetDoctorAppointment(c *gin.Context) {
	id, ok := idParam(c, "reminder_id")
	if !ok {
		return
	}
	appt, err := h.Appointments.Get(c.Request.Context(), id)
	if err != nil {
		h.handleStoreError(c, "Appointment not found", "Failed to retrieve appointment", err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *Handler) UpdateDoctorAppointment(c *gin.Context) {
	id, ok := idParam(c, "reminder_id")
	if !ok {
		return
	}
	var req models.UpdateDoctorAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	ctx := c.Request.Context()
	appt, err := h.Appointments.Get(ctx, id)
	if err != nil {
		h.handleStoreError(c, "Appointment not found", "Failed to retrieve appointment", err)
		return
	}
	if req.PlaceID != nil {
		location, ok := h.resolveLocation(c, *req.PlaceID)
		if !ok {
			return
		}
		appt.Location = location
	}
	if req.AppointmentDatetime != nil {
		appt.AppointmentDatetime = *req.AppointmentDatetime
	}
	if req.DoctorName != nil {
		appt.DoctorName = *req.DoctorName
	}
	if req.AppointmentType != nil {
		appt.AppointmentType = *req.AppointmentType
	}
	if req.Notes != nil {
		appt.Notes = req.Notes
	}
	if err := h.Appointments.Save(ctx, appt); err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to update appointment", err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *Handler) DeleteDoctorAppointment(c *gin.Context) {
	id, ok := idParam(c, "reminder_id")
	if !ok {
		return
	}
	if err := h.Appointments.Delete(c.Request.Context(), id); err != nil {
		h.handleStoreError(c, "Appointment not found", "Failed to delete appointment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor appointment reminder deleted successfully"})
}

func (h *Handler) CompleteDoctorAppointment(c *gin.Context) {
	id, ok := idParam(c, "reminder_id")
	if !ok {
		return
	}
	appt, err := h.Appointments.Complete(c.Request.Context(), id)
	if err != nil {
		h.handleStoreError(c, "Appointment not found", "Failed to update appointment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor appointment marked as completed", "reminder": appt})
}

// Workout reminders

func (h *Handler) CreateWorkoutReminder(c *gin.Context) {
	userID, ok := userIDQuery(c)
	if !ok {
		return
	}
	var req models.CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}
	if _, ok := h.requireUser(c, userID); !ok {
		return
	}

	workout := models.WorkoutReminder{
		UserID:          userID,
		WorkoutDatetime: req.WorkoutDatetime,
		WorkoutType:     req.WorkoutType,
		DurationMinutes: req.DurationMinutes,
		Location:        req.Location,
		Notes:           req.Notes,
	}
	if err := h.Workouts.Create(c.Request.Context(), &workout); err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to create workout reminder", err)
		return
	}
	c.JSON(http.StatusCreated, workout)
}

func (h *Handler) ListWorkoutReminders(c *gin.Context) {
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

	workouts, err := h.Workouts.ListByUser(c.Request.Context(), userID, includeCompleted)
	if err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to retrieve workout reminders", err)
		return
	}
	c.JSON(http.StatusOK, workouts)
}

func (h *Handler) GetWorkoutReminder(c *gin.Context) {
	id, ok := idParam(c, "reminder_id")
	if !ok {
		return
	}
	workout, err := h.Workouts.Get(c.Request.Context(), id)
	if err != nil {
		h.handleStoreError(c, "Workout reminder not found", "Failed to retrieve workout reminder", err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

func (h *Handler) UpdateWorkoutReminder(c *gin.Context) {
	id, ok := idParam(c, "reminder_id")
	if !ok {
		return
	}
	var req models.UpdateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	ctx := c.Request.Context()
	workout, err := h.Workouts.Get(ctx, id)
	if err != nil {
		h.handleStoreError(c, "Workout reminder not found", "Failed to retrieve workout reminder", err)
		return
	}
	if req.WorkoutDatetime != nil {
		workout.WorkoutDatetime = *req.WorkoutDatetime
	}
	if req.WorkoutType != nil {
		workout.WorkoutType = *req.WorkoutType
	}
	if req.DurationMinutes != nil {
		workout.DurationMinutes = *req.DurationMinutes
	}
	if req.Location != nil {
		workout.Location = req.Location
	}
	if req.Notes != nil {
		workout.Notes = req.Notes
	}
	if err := h.Workouts.Save(ctx, workout); err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to update workout reminder", err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

func (h *Handler) DeleteWorkoutReminder(c *gin.Context) {
	id, ok := idParam(c, "reminder_id")
	if !ok {
		return
	}
	if err := h.Workouts.Delete(c.Request.Context(), id); err != nil {
		h.handleStoreError(c, "Workout reminder not found", "Failed to delete workout reminder", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Workout reminder deleted successfully"})
}

func (h *Handler) CompleteWorkoutReminder(c *gin.Context) {
	id, ok := idParam(c, "reminder_id")
	if !ok {
		return
	}
	workout, err := h.Workouts.Complete(c.Request.Context(), id)
	if err != nil {
		h.handleStoreError(c, "Workout reminder not found", "Failed to update workout reminder", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Workout marked as completed", "reminder": workout})
}
