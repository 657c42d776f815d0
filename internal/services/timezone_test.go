package services

import (
	"testing"
	"time"

	"cardiomed/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatInUserZone(t *testing.T) {
	at := time.Date(2025, 1, 6, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, "Mon Jan 6, 3:30 PM UTC", formatInUserZone(at, &models.User{}))

	bogus := "Mars/Olympus"
	assert.Equal(t, "Mon Jan 6, 3:30 PM UTC", formatInUserZone(at, &models.User{Timezone: &bogus}))

	tokyo := "Asia/Tokyo"
	assert.Equal(t, "Tue Jan 7, 12:30 AM JST", formatInUserZone(at, &models.User{Timezone: &tokyo}))
}
