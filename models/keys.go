package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day format used for log keys and log dates.
const DateLayout = "2006-01-02"

// Logical keys stored per namespace.
const (
	KeyGamification = "gamification"
	KeyProfile      = "profile"
	KeyCustomHabits = "custom-habits"
	KeyHealth       = "health-metrics"
	KeyVisionBoard  = "vision-board"

	logKeyPrefix    = "log-"
	reviewKeyPrefix = "review-"
)

// ParseDate validates a YYYY-MM-DD string and returns the day it names.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed date %q: %w", date, err)
	}
	if t.Format(DateLayout) != date {
		return time.Time{}, fmt.Errorf("malformed date %q", date)
	}
	return t, nil
}

// LogKey returns the logical key of the daily log for date.
func LogKey(date string) string {
	return logKeyPrefix + date
}

// ReviewKey returns the logical key of the last submitted review for a period.
func ReviewKey(period ReviewPeriod) string {
	return reviewKeyPrefix + string(period)
}
