package handlers

import (
	"errors"
	"net/http"

	"cardiomed/internal/auth"
	"cardiomed/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateUser registers a patient
func (h *Handler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		h.handleError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	ctx := c.Request.Context()
	taken, err := h.Users.EmailTaken(ctx, req.Email)
	if err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to create user", err)
		return
	}
	if taken {
		h.handleError(c, http.StatusConflict, "Email already registered", errors.New("duplicate email"))
		return
	}
	taken, err = h.Users.UsernameTaken(ctx, req.Username)
	if err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to create user", err)
		return
	}
	if taken {
		h.handleError(c, http.StatusConflict, "Username already taken", errors.New("duplicate username"))
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to create user", err)
		return
	}

	user := models.User{
		Username:                 req.Username,
		Email:                    req.Email,
		HashedPassword:           hashed,
		FullName:                 req.FullName,
		Age:                      req.Age,
		Gender:                   req.Gender,
		Height:                   req.Height,
		Weight:                   req.Weight,
		MedicalConditions:        req.MedicalConditions,
		Medications:              req.Medications,
		TargetSystolic:           req.TargetSystolic,
		TargetDiastolic:          req.TargetDiastolic,
		StressLevel:              req.StressLevel,
		DoctorName:               req.DoctorName,
		PreferredMeasurementTime: req.PreferredMeasurementTime,
		Timezone:                 req.Timezone,
		NotificationPreferences:  req.NotificationPreferences,
		IsActive:                 true,
	}
	if err := h.Users.Create(ctx, &user); err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to create user", err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// ListUsers pages through all patients
func (h *Handler) ListUsers(c *gin.Context) {
	page, ok := pageQuery(c)
	if !ok {
		return
	}
	users, err := h.Users.List(c.Request.Context(), page)
	if err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to list users", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	user, ok := h.requireUser(c, userID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser applies a partial profile update
func (h *Handler) UpdateUser(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	user, ok := h.requireUser(c, userID)
	if !ok {
		return
	}
	req.Apply(user)
	if err := h.Users.Save(c.Request.Context(), user); err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to update user", err)
		return
	}
	c.JSON(http.StatusOK, user)
}
