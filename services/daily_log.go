package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"neuroflow/models"
	"neuroflow/storage"

	"go.uber.org/zap"
)

// DefaultQuote is stored with a confirmed plan that carries no quote of its own.
const DefaultQuote = "Action expresses priorities."

// DailyLogService owns the per-date records under log-YYYY-MM-DD.
// It is a plain persistence surface: workflow rules such as "plan once a day" belong to callers.
type DailyLogService struct {
	Store  *storage.Store
	Logger *zap.Logger
}

func NewDailyLogService(store *storage.Store, logger *zap.Logger) *DailyLogService {
	return &DailyLogService{Store: store, Logger: logger}
}

// GetLog returns the log for date, or nil when the day has none.
func (s *DailyLogService) GetLog(ctx context.Context, sess storage.Session, date string) (*models.DailyLog, error) {
	if _, err := models.ParseDate(date); err != nil {
		return nil, invalidArgf("%v", err)
	}
	log, err := storage.Get[models.DailyLog](ctx, s.Store, sess, models.LogKey(date))
	if err != nil || log == nil {
		return nil, err
	}
	// the key is authoritative over the stored copy of the date
	log.Date = date
	if log.CompletedHabitIDs == nil {
		log.CompletedHabitIDs = []string{}
	}
	return log, nil
}

// UpsertLog loads the day's log (or a fresh one), applies mutate and writes the whole record back.
func (s *DailyLogService) UpsertLog(ctx context.Context, sess storage.Session, date string, mutate func(*models.DailyLog) error) (*models.DailyLog, error) {
	if _, err := models.ParseDate(date); err != nil {
		return nil, invalidArgf("%v", err)
	}
	next, err := storage.Update(ctx, s.Store, sess, models.LogKey(date), func(cur *models.DailyLog) (models.DailyLog, error) {
		log := models.NewDailyLog(date)
		if cur != nil {
			log = *cur
			log.Date = date
			if log.CompletedHabitIDs == nil {
				log.CompletedHabitIDs = []string{}
			}
		}
		if err := mutate(&log); err != nil {
			return log, err
		}
		return log, nil
	})
	if err != nil {
		return nil, err
	}
	return &next, nil
}

// ToggleHabitCompletion adds or removes habitID. changed is false for a no-op.
func (s *DailyLogService) ToggleHabitCompletion(ctx context.Context, sess storage.Session, date, habitID string, completed bool) (log *models.DailyLog, changed bool, err error) {
	habitID = strings.TrimSpace(habitID)
	if habitID == "" {
		return nil, false, invalidArgf("habit id is required")
	}
	log, err = s.UpsertLog(ctx, sess, date, func(l *models.DailyLog) error {
		changed = l.SetHabit(habitID, completed)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return log, changed, nil
}

// SetPlan stores plan for date, replacing any earlier one.
func (s *DailyLogService) SetPlan(ctx context.Context, sess storage.Session, date string, plan models.DailyPlan) (*models.DailyLog, error) {
	plan.MIT = strings.TrimSpace(plan.MIT)
	if err := plan.Validate(); err != nil {
		return nil, invalidArgf("%v", err)
	}
	return s.UpsertLog(ctx, sess, date, func(l *models.DailyLog) error {
		p := plan
		p.Top3 = append([]string(nil), plan.Top3...)
		l.Plan = &p
		return nil
	})
}

// SetJournal stores the entry and its stats. A nil stats keeps whatever analysis the day already had.
func (s *DailyLogService) SetJournal(ctx context.Context, sess storage.Session, date, entry string, stats *models.DailyStats) (*models.DailyLog, error) {
	log, _, err := s.setJournal(ctx, sess, date, entry, "", stats)
	return log, err
}

// setJournal also reports whether the day already had an entry before this write.
// mood, when set, replaces the selected mood of kept stats.
func (s *DailyLogService) setJournal(ctx context.Context, sess storage.Session, date, entry, mood string, stats *models.DailyStats) (*models.DailyLog, bool, error) {
	if strings.TrimSpace(entry) == "" {
		return nil, false, invalidArgf("journal entry is empty")
	}
	if stats != nil {
		st := *stats
		st.Clamp()
		stats = &st
	}
	var hadEntry bool
	log, err := s.UpsertLog(ctx, sess, date, func(l *models.DailyLog) error {
		hadEntry = l.Journaled()
		l.JournalEntry = entry
		if stats == nil {
			if l.Stats != nil && mood != "" {
				kept := *l.Stats
				kept.SelectedMood = mood
				l.Stats = &kept
			}
			return nil
		}
		l.Stats = stats
		score := stats.Mood
		l.MoodScore = &score
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return log, hadEntry, nil
}

// NeedsBriefing reports whether the day still lacks a plan.
func (s *DailyLogService) NeedsBriefing(ctx context.Context, sess storage.Session, date string) (bool, error) {
	log, err := s.GetLog(ctx, sess, date)
	if err != nil {
		return false, err
	}
	return log == nil || log.Plan == nil, nil
}

// RecentLogs returns the logs that exist among the days days ending at end, newest first.
// days is capped at StreakWindowDays.
func (s *DailyLogService) RecentLogs(ctx context.Context, sess storage.Session, end time.Time, days int) ([]models.DailyLog, error) {
	if days <= 0 || days > StreakWindowDays {
		return nil, invalidArgf("days must be between 1 and %d, got %d", StreakWindowDays, days)
	}
	var logs []models.DailyLog
	for i := 0; i < days; i++ {
		date := DaysBack(end, i)
		log, err := s.GetLog(ctx, sess, date)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", date, err)
		}
		if log != nil {
			logs = append(logs, *log)
		}
	}
	return logs, nil
}
