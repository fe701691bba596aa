package services

import (
	"context"
	"fmt"

	"neuroflow/storage"
)

type StreakPolicy string

const (
	// StreakStrict counts an unbroken run ending today. An unsatisfied today yields zero.
	StreakStrict StreakPolicy = "strict"
	// StreakTodayGrace skips an unsatisfied today without breaking the run.
	StreakTodayGrace StreakPolicy = "today_grace"
)

const (
	StreakWindowDays      = 365
	SatisfiedDayThreshold = 5
)

func ParseStreakPolicy(s string) (StreakPolicy, error) {
	switch p := StreakPolicy(s); p {
	case StreakStrict, StreakTodayGrace:
		return p, nil
	case "":
		return StreakStrict, nil
	}
	return "", fmt.Errorf("unknown streak policy %q", s)
}

// StreakCalculator derives the consecutive satisfied-day count from the daily logs.
type StreakCalculator struct {
	Logs     *DailyLogService
	Calendar Calendar
	Policy   StreakPolicy
}

func NewStreakCalculator(logs *DailyLogService, cal Calendar, policy StreakPolicy) *StreakCalculator {
	if policy == "" {
		policy = StreakStrict
	}
	return &StreakCalculator{Logs: logs, Calendar: cal, Policy: policy}
}

// ComputeStreak walks back from today, at most StreakWindowDays days.
func (c *StreakCalculator) ComputeStreak(ctx context.Context, sess storage.Session) (int, error) {
	now := c.Calendar.Now()
	streak := 0
	for i := 0; i < StreakWindowDays; i++ {
		log, err := c.Logs.GetLog(ctx, sess, DaysBack(now, i))
		if err != nil {
			return 0, err
		}
		if log != nil && len(log.CompletedHabitIDs) >= SatisfiedDayThreshold {
			streak++
			continue
		}
		if i == 0 && c.Policy == StreakTodayGrace {
			continue
		}
		break
	}
	return streak, nil
}
