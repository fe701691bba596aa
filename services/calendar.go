package services

import (
	"time"

	"neuroflow/models"

	"github.com/jonboulle/clockwork"
)

// Calendar answers "what day is it" in the configured timezone.
type Calendar struct {
	Clock    clockwork.Clock
	Location *time.Location
}

func NewCalendar(clock clockwork.Clock, loc *time.Location) Calendar {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{Clock: clock, Location: loc}
}

func (c Calendar) Now() time.Time {
	return c.Clock.Now().In(c.Location)
}

// Today returns the current date as YYYY-MM-DD.
func (c Calendar) Today() string {
	return c.Now().Format(models.DateLayout)
}

// DaysBack returns the date n days before t's calendar day.
func DaysBack(t time.Time, n int) string {
	y, m, d := t.Date()
	return time.Date(y, m, d-n, 12, 0, 0, 0, t.Location()).Format(models.DateLayout)
}
