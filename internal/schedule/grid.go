// Package schedule implements the pure parts of the booking engine: the
// daily time grid and the availability computation over a rolling window.
// It touches no storage; callers feed it holiday and booked-slot sets.
package schedule

import (
	"fmt"
	"time"
)

// Layouts for the date and time-of-day string forms used throughout the
// booking engine and its storage rows.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Policy is the reservation policy the engine runs under: the daily
// open-close window, the slot step, the same-day lead time and the length
// of the rolling booking window.
type Policy struct {
	OpenTime     string
	CloseTime    string
	SlotInterval time.Duration
	LeadTime     time.Duration
	WindowDays   int
}

// Grid returns the ordered time-of-day slots of one business day as "HH:MM"
// strings, from OpenTime inclusive to CloseTime exclusive.
func (p Policy) Grid() ([]string, error) {
	open, err := time.Parse(TimeLayout, p.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("parse open time %q: %w", p.OpenTime, err)
	}
	closing, err := time.Parse(TimeLayout, p.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("parse close time %q: %w", p.CloseTime, err)
	}
	if p.SlotInterval <= 0 {
		return nil, fmt.Errorf("slot interval must be positive, got %s", p.SlotInterval)
	}

	var grid []string
	for t := open; t.Before(closing); t = t.Add(p.SlotInterval) {
		grid = append(grid, t.Format(TimeLayout))
	}
	return grid, nil
}

// Window returns the WindowDays consecutive dates starting at asOf's date,
// each normalized to midnight UTC.
func (p Policy) Window(asOf time.Time) []time.Time {
	start := DateOf(asOf)
	dates := make([]time.Time, 0, p.WindowDays)
	for i := 0; i < p.WindowDays; i++ {
		dates = append(dates, start.AddDate(0, 0, i))
	}
	return dates
}

// OnGrid reports whether a "HH:MM" value is one of the policy's slots.
func (p Policy) OnGrid(timeOfDay string) bool {
	grid, err := p.Grid()
	if err != nil {
		return false
	}
	for _, t := range grid {
		if t == timeOfDay {
			return true
		}
	}
	return false
}

// DateOf strips the time-of-day from t, keeping the calendar date at
// midnight UTC. All date columns and map keys go through this so that
// equality never depends on the caller's location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a "2006-01-02" value to a midnight-UTC date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// SlotTime combines a date with a "HH:MM" time-of-day into one instant.
func SlotTime(date time.Time, timeOfDay string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, timeOfDay)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time of day %q: %w", timeOfDay, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}
