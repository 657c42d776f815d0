package bpreminder

import (
	"slices"
	"time"
)

// Policy describes how often a category is re-checked
type Policy struct {
	// IntervalDays spaces reminders at the clock time of the first check.
	// Zero means reminders are pinned to the preferred times of day instead.
	IntervalDays int
	// Count is the number of reminders for interval policies and the number of
	// days for pinned policies.
	Count int
	// TwiceDaily adds an evening reminder to every pinned day.
	TwiceDaily bool
}

var policies = map[Category]Policy{
	Normal:             {IntervalDays: 14, Count: 4},
	Elevated:           {IntervalDays: 3, Count: 6},
	Stage1:             {Count: 7},
	Stage2:             {Count: 7, TwiceDaily: true},
	HypertensiveCrisis: {},
}

// PolicyFor returns the monitoring policy of a category
func PolicyFor(c Category) Policy {
	return policies[c]
}

// Total is the number of reminders the policy produces
func (p Policy) Total() int {
	if p.TwiceDaily {
		return p.Count * 2
	}
	return p.Count
}

// ReminderTimes computes the reminder instants for a category, sorted ascending.
// first anchors the calendar; morning and evening only matter for pinned policies.
func ReminderTimes(c Category, first time.Time, morning, evening Clock) ([]time.Time, error) {
	p := PolicyFor(c)
	if p.TwiceDaily && morning == evening {
		return nil, ErrIdenticalCheckTime
	}

	times := make([]time.Time, 0, p.Total())
	switch {
	case p.IntervalDays > 0:
		for i := 0; i < p.Count; i++ {
			times = append(times, first.AddDate(0, 0, i*p.IntervalDays))
		}
	default:
		for day := 0; day < p.Count; day++ {
			times = append(times, morning.On(first, day))
			if p.TwiceDaily {
				times = append(times, evening.On(first, day))
			}
		}
	}

	slices.SortFunc(times, func(a, b time.Time) int { return a.Compare(b) })
	return times, nil
}
