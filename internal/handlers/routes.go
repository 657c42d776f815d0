package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts every endpoint on the router
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/", HomeHandler)
	router.GET("/health", HealthHandler)

	users := router.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.ListUsers)
		users.GET("/:user_id", h.GetUser)
		users.PUT("/:user_id", h.UpdateUser)
	}

	bp := router.Group("/bp")
	{
		bp.POST("/readings", h.CreateReading)
		bp.GET("/readings/:user_id", h.ListReadings)
		bp.GET("/stats/:user_id", h.ReadingStats)
		bp.GET("/export/:user_id", h.ExportReadings)
		bp.POST("/reading/:reading_id/photo", h.UploadReadingPhoto)
	}

	reminders := router.Group("/reminders")
	{
		reminders.POST("/bp-reminder", h.CreateBPReminder)
		reminders.GET("/bp-reminders/:user_id", h.ListBPReminders)
		reminders.GET("/bp-reminder/:reminder_id", h.GetBPReminder)
		reminders.DELETE("/bp-reminder/:reminder_id", h.DeleteBPReminder)
		reminders.POST("/bp-reminder/:reminder_id/complete", h.CompleteBPReminder)
		reminders.POST("/bp-schedule", h.CreateBPSchedule)
		reminders.POST("/bp-preview", h.PreviewBPSchedule)
		reminders.GET("/bp-upcoming/:user_id", h.UpcomingBPReminders)

		reminders.POST("/medication", h.CreateMedicationReminder)
		reminders.GET("/medications/:user_id", h.ListMedicationReminders)
		reminders.GET("/medication/:reminder_id", h.GetMedicationReminder)
		reminders.PUT("/medication/:reminder_id", h.UpdateMedicationReminder)
		reminders.DELETE("/medication/:reminder_id", h.DeleteMedicationReminder)
		reminders.POST("/medication/:reminder_id/taken", h.MarkMedicationTaken)
		reminders.GET("/medication-upcoming/:user_id", h.UpcomingMedicationReminders)
		reminders.POST("/medication-schedule", h.SaveMedicationSchedule)

		reminders.POST("/doctor-appointment", h.CreateDoctorAppointment)
		reminders.GET("/doctor-appointments/:user_id", h.ListDoctorAppointments)
		reminders.GET("/doctor-appointment/:reminder_id", h.GetDoctorAppointment)
		reminders.PUT("/doctor-appointment/:reminder_id", h.UpdateDoctorAppointment)
		reminders.DELETE("/doctor-appointment/:reminder_id", h.DeleteDoctorAppointment)
		reminders.POST("/doctor-appointment/:reminder_id/complete", h.CompleteDoctorAppointment)

		reminders.POST("/workout", h.CreateWorkoutReminder)
		reminders.GET("/workouts/:user_id", h.ListWorkoutReminders)
		reminders.GET("/workout/:reminder_id", h.GetWorkoutReminder)
		reminders.PUT("/workout/:reminder_id", h.UpdateWorkoutReminder)
		reminders.DELETE("/workout/:reminder_id", h.DeleteWorkoutReminder)
		reminders.POST("/workout/:reminder_id/complete", h.CompleteWorkoutReminder)
	}

	advisor := router.Group("/health-advisor")
	{
		advisor.POST("/advice", h.PostAdvice)
		advisor.GET("/advice/:user_id", h.GetAdvice)
		advisor.GET("/status", h.AdvisorStatus)
	}

	knowledge := router.Group("/knowledge-agent")
	{
		knowledge.POST("/ask", h.PostKnowledgeQuestion)
		knowledge.GET("/ask", h.GetKnowledgeQuestion)
		knowledge.GET("/status", h.KnowledgeStatus)
	}
}
