package services

import (
	"context"
	"fmt"
	"strings"

	"neuroflow/models"
	"neuroflow/storage"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// HabitCompletion is the outcome of checking a habit off.
type HabitCompletion struct {
	Log     *models.DailyLog `json:"log"`
	Changed bool             `json:"changed"`
	Award   *AwardResult     `json:"award,omitempty"`
	Streak  *StreakResult    `json:"streak,omitempty"`
}

// HabitService ties the habit catalog, the daily log and XP together.
type HabitService struct {
	Store        *storage.Store
	Logs         *DailyLogService
	Gamification *GamificationService
	Profiles     *ProfileService
	Coach        Coach
	Weights      XPWeights
	Logger       *zap.Logger
}

func NewHabitService(store *storage.Store, logs *DailyLogService, game *GamificationService, profiles *ProfileService, coach Coach, logger *zap.Logger) *HabitService {
	return &HabitService{
		Store:        store,
		Logs:         logs,
		Gamification: game,
		Profiles:     profiles,
		Coach:        coach,
		Weights:      DefaultXPWeights,
		Logger:       logger,
	}
}

// ListHabits returns the daily protocol followed by the user's custom habits.
func (s *HabitService) ListHabits(ctx context.Context, sess storage.Session) ([]models.Habit, error) {
	custom, err := storage.Get[models.CustomHabits](ctx, s.Store, sess, models.KeyCustomHabits)
	if err != nil {
		return nil, err
	}
	out := append([]models.Habit{}, models.DailyProtocol...)
	if custom != nil {
		out = append(out, (*custom)...)
	}
	return out, nil
}

// AddCustomHabit appends a daily habit with a generated id of the form custom-<slug>-<8 hex>.
func (s *HabitService) AddCustomHabit(ctx context.Context, sess storage.Session, h models.Habit) (models.Habit, error) {
	h.Title = strings.TrimSpace(h.Title)
	if h.Title == "" {
		return models.Habit{}, invalidArgf("habit title is required")
	}
	base := slug.Make(h.Title)
	if base == "" {
		base = "habit"
	}
	h.ID = fmt.Sprintf("custom-%s-%s", base, uuid.NewString()[:8])
	if h.Category == "" {
		h.Category = models.CategoryMorning
	}
	h.Type = models.HabitDaily

	_, err := storage.Update(ctx, s.Store, sess, models.KeyCustomHabits, func(cur *models.CustomHabits) (models.CustomHabits, error) {
		var list models.CustomHabits
		if cur != nil {
			list = *cur
		}
		return append(list, h), nil
	})
	if err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

// CompleteHabit checks habitID off for date. habitID must be one of ListHabits.
// XP is only awarded when the log actually changed, after which the streak cache and streak badges are refreshed.
func (s *HabitService) CompleteHabit(ctx context.Context, sess storage.Session, date, habitID string) (*HabitCompletion, error) {
	known, err := s.ListHabits(ctx, sess)
	if err != nil {
		return nil, err
	}
	if !containsHabit(known, habitID) {
		return nil, invalidArgf("unknown habit %q", habitID)
	}
	log, changed, err := s.Logs.ToggleHabitCompletion(ctx, sess, date, habitID, true)
	if err != nil {
		return nil, err
	}
	res := &HabitCompletion{Log: log, Changed: changed}
	if !changed {
		return res, nil
	}
	if res.Award, err = s.Gamification.AwardXP(ctx, sess, s.Weights.HabitComplete); err != nil {
		return nil, err
	}
	if res.Streak, err = s.Gamification.SyncStreak(ctx, sess); err != nil {
		return nil, err
	}
	return res, nil
}

func containsHabit(habits []models.Habit, id string) bool {
	for _, h := range habits {
		if h.ID == id {
			return true
		}
	}
	return false
}

// UncompleteHabit unchecks habitID. XP already earned is kept.
func (s *HabitService) UncompleteHabit(ctx context.Context, sess storage.Session, date, habitID string) (*HabitCompletion, error) {
	log, changed, err := s.Logs.ToggleHabitCompletion(ctx, sess, date, habitID, false)
	if err != nil {
		return nil, err
	}
	res := &HabitCompletion{Log: log, Changed: changed}
	if changed {
		if res.Streak, err = s.Gamification.SyncStreak(ctx, sess); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// ShiftState records use of an on-demand state shifter.
func (s *HabitService) ShiftState(ctx context.Context, sess storage.Session, shifterID string) (*AwardResult, error) {
	if _, ok := models.FindStateShifter(shifterID); !ok {
		return nil, invalidArgf("unknown state shifter %q", shifterID)
	}
	return s.Gamification.AwardXP(ctx, sess, s.Weights.StateShift)
}

// SuggestHabits asks the coach for habits fitting the user's goal.
func (s *HabitService) SuggestHabits(ctx context.Context, sess storage.Session) ([]models.HabitSuggestion, error) {
	profile, err := s.Profiles.GetProfile(ctx, sess)
	if err != nil {
		return nil, err
	}
	current, err := s.ListHabits(ctx, sess)
	if err != nil {
		return nil, err
	}
	suggestions, err := s.Coach.SuggestHabits(ctx, profile, current)
	if err != nil {
		return nil, err
	}
	if suggestions == nil {
		suggestions = []models.HabitSuggestion{}
	}
	return suggestions, nil
}
