package bpreminder

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultMorningTime = "07:00"
	DefaultEveningTime = "19:00"
)

var (
	ErrInvalidCheckTime   = errors.New("invalid check time")
	ErrIdenticalCheckTime = errors.New("morning and evening check times must differ")
)

// Clock is a time of day with minute precision
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses an HH:MM string. Anything else is rejected rather than
// silently replaced by a default.
func ParseClock(s string) (Clock, error) {
	trimmed := strings.TrimSpace(s)
	t, err := time.Parse("15:04", trimmed)
	if err != nil {
		return Clock{}, fmt.Errorf("%w: %q is not HH:MM", ErrInvalidCheckTime, s)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// On returns the instant at this clock time on the calendar day of t, offset by
// days, in t's location. Seconds and sub-seconds are zero.
func (c Clock) On(t time.Time, days int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+days, c.Hour, c.Minute, 0, 0, t.Location())
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
