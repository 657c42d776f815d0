package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"cardiomed/internal/bpreminder"
	"cardiomed/internal/models"
	"cardiomed/internal/services"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	errInvalidSystolic  = errors.New("systolic out of range 70-250")
	errInvalidDiastolic = errors.New("diastolic out of range 40-150")
	errInvalidPulse     = errors.New("pulse out of range 30-220")
)

// validateReading rejects values outside what a cuff can plausibly report
func validateReading(req models.CreateReadingRequest) (string, error) {
	switch {
	case req.Systolic < 70 || req.Systolic > 250:
		return "Invalid systolic reading", errInvalidSystolic
	case req.Diastolic < 40 || req.Diastolic > 150:
		return "Invalid diastolic reading", errInvalidDiastolic
	case req.Pulse < 30 || req.Pulse > 220:
		return "Invalid pulse reading", errInvalidPulse
	}
	return "", nil
}

// CreateReading records a reading for the user in the query string
func (h *Handler) CreateReading(c *gin.Context) {
	userID, ok := userIDQuery(c)
	if !ok {
		return
	}
	var req models.CreateReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}
	if _, ok := h.requireUser(c, userID); !ok {
		return
	}
	if msg, err := validateReading(req); err != nil {
		h.handleError(c, http.StatusBadRequest, msg, err)
		return
	}

	reading := models.BloodPressureReading{
		UserID:         userID,
		Systolic:       req.Systolic,
		Diastolic:      req.Diastolic,
		Pulse:          req.Pulse,
		Notes:          req.Notes,
		DeviceID:       req.DeviceID,
		Interpretation: bpreminder.Classify(req.Systolic, req.Diastolic).Info().Description,
	}
	if req.ReadingTime != nil {
		reading.ReadingTime = req.ReadingTime.UTC()
	}
	if err := h.Readings.Create(c.Request.Context(), &reading); err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to save reading", err)
		return
	}
	c.JSON(http.StatusCreated, reading)
}

// ListReadings returns a user's readings, newest first
func (h *Handler) ListReadings(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	page, ok := pageQuery(c)
	if !ok {
		return
	}
	if _, ok := h.requireUser(c, userID); !ok {
		return
	}

	readings, err := h.Readings.ListByUser(c.Request.Context(), userID, page)
	if err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to retrieve readings", err)
		return
	}
	c.JSON(http.StatusOK, readings)
}

func (h *Handler) ReadingStats(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	if _, ok := h.requireUser(c, userID); !ok {
		return
	}

	readings, err := h.Readings.AllByUser(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to retrieve readings", err)
		return
	}
	c.JSON(http.StatusOK, services.SummarizeReadings(readings))
}

// ExportReadings streams the reading history as an Excel workbook
func (h *Handler) ExportReadings(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	user, ok := h.requireUser(c, userID)
	if !ok {
		return
	}

	readings, err := h.Readings.AllByUser(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to retrieve readings", err)
		return
	}
	data, err := services.ExportReadings(user, readings)
	if err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to export readings", err)
		return
	}

	filename := fmt.Sprintf("bp_readings_%s_%s.xlsx", user.Username, time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// UploadReadingPhoto attaches a photo of the monitor display to a reading
func (h *Handler) UploadReadingPhoto(c *gin.Context) {
	if h.Photos == nil {
		h.unavailable(c, "Photo storage")
		return
	}
	readingID, ok := idParam(c, "reading_id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		h.handleError(c, http.StatusBadRequest, "photo file is required", err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.handleError(c, http.StatusBadRequest, "Failed to read photo", err)
		return
	}
	defer file.Close()

	if err := services.ValidateImageFile(file, fileHeader.Filename, services.MaxPhotoSize); err != nil {
		h.handleError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	ctx := c.Request.Context()
	reading, err := h.Readings.Get(ctx, readingID)
	if err != nil {
		h.handleStoreError(c, "Reading not found", "Failed to retrieve reading", err)
		return
	}

	url, err := h.Photos.UploadReadingPhoto(ctx, file, fileHeader.Filename, reading.ID)
	if err != nil {
		h.handleError(c, http.StatusBadGateway, "Failed to upload photo", err)
		return
	}
	if err := h.Readings.SetPhotoURL(ctx, reading.ID, url); err != nil {
		h.handleStoreError(c, "Reading not found", "Failed to save photo", err)
		return
	}

	reading.PhotoURL = &url
	c.JSON(http.StatusOK, reading)
}
