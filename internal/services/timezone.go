package services

import (
	"time"
	_ "time/tzdata"

	"cardiomed/internal/models"
)

const reminderTimeLayout = "Mon Jan 2, 3:04 PM"

// formatInUserZone renders t in the user's timezone, falling back to UTC
func formatInUserZone(t time.Time, user *models.User) string {
	loc := time.UTC
	if user != nil && user.Timezone != nil && *user.Timezone != "" {
		if l, err := time.LoadLocation(*user.Timezone); err == nil {
			loc = l
		}
	}
	return t.In(loc).Format(reminderTimeLayout) + " " + t.In(loc).Format("MST")
}
