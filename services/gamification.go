package services

import (
	"context"

	"neuroflow/models"
	"neuroflow/storage"

	"go.uber.org/zap"
)

// XPWeights are the XP values of each rewarded action
type XPWeights struct {
	HabitComplete int
	JournalEntry  int
	Visualization int
	StateShift    int
}

var DefaultXPWeights = XPWeights{
	HabitComplete: 50,
	JournalEntry:  100,
	Visualization: 30,
	StateShift:    25,
}

// AwardResult is the outcome of one AwardXP call.
type AwardResult struct {
	State     models.GamificationState `json:"newState"`
	LeveledUp bool                     `json:"leveledUp"`
	NewBadges []models.Badge           `json:"newBadges"`
}

// StreakResult is the outcome of a streak sync.
type StreakResult struct {
	Streak    int                      `json:"streak"`
	State     models.GamificationState `json:"state"`
	NewBadges []models.Badge           `json:"newBadges"`
}

// GamificationService owns xp, level, badges, unlocked items and the cached streak.
type GamificationService struct {
	Store   *storage.Store
	Streaks *StreakCalculator
	Logger  *zap.Logger
}

func NewGamificationService(store *storage.Store, streaks *StreakCalculator, logger *zap.Logger) *GamificationService {
	return &GamificationService{Store: store, Streaks: streaks, Logger: logger}
}

func loadState(cur *models.GamificationState) models.GamificationState {
	state := models.NewGamificationState()
	if cur != nil {
		state = *cur
	}
	state.Normalize()
	return state
}

// GetState returns the stored state, or the zero-state for a fresh namespace.
func (s *GamificationService) GetState(ctx context.Context, sess storage.Session) (models.GamificationState, error) {
	cur, err := storage.Get[models.GamificationState](ctx, s.Store, sess, models.KeyGamification)
	if err != nil {
		return models.GamificationState{}, err
	}
	return loadState(cur), nil
}

// AwardXP adds amount to xp, re-derives the level and unlocks newly reached XP badges atomically.
func (s *GamificationService) AwardXP(ctx context.Context, sess storage.Session, amount int) (*AwardResult, error) {
	if amount <= 0 {
		return nil, invalidArgf("xp amount must be positive, got %d", amount)
	}

	var res AwardResult
	_, err := storage.Update(ctx, s.Store, sess, models.KeyGamification, func(cur *models.GamificationState) (models.GamificationState, error) {
		state := loadState(cur)
		oldLevel := state.Level

		state.XP += amount
		state.Normalize()

		newBadges := awardXPBadges(&state)
		res = AwardResult{State: state, LeveledUp: state.Level > oldLevel, NewBadges: newBadges}
		return state, nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("🎮 XP awarded",
		zap.String("namespace", sess.Namespace()),
		zap.Int("amount", amount),
		zap.Int("xp", res.State.XP),
		zap.Int("level", res.State.Level),
		zap.Bool("leveled_up", res.LeveledUp),
	)
	for _, b := range res.NewBadges {
		s.Logger.Info("🎖️ badge awarded", zap.String("namespace", sess.Namespace()), zap.String("badge", b.Name))
	}
	return &res, nil
}

// UnlockItem adds a marketplace item to the unlocked set. added is false when it was already there.
func (s *GamificationService) UnlockItem(ctx context.Context, sess storage.Session, itemID string) (state models.GamificationState, added bool, err error) {
	if _, ok := models.FindMarketplaceItem(itemID); !ok {
		return models.GamificationState{}, false, invalidArgf("unknown marketplace item %q", itemID)
	}
	state, err = storage.Update(ctx, s.Store, sess, models.KeyGamification, func(cur *models.GamificationState) (models.GamificationState, error) {
		st := loadState(cur)
		added = false
		if !st.HasItem(itemID) {
			st.UnlockedItems = append(st.UnlockedItems, itemID)
			added = true
		}
		return st, nil
	})
	if err != nil {
		return models.GamificationState{}, false, err
	}
	return state, added, nil
}

// SyncStreak recomputes the streak from the logs, refreshes the cached value and
// unlocks streak badges the new value reaches.
func (s *GamificationService) SyncStreak(ctx context.Context, sess storage.Session) (*StreakResult, error) {
	streak, err := s.Streaks.ComputeStreak(ctx, sess)
	if err != nil {
		return nil, err
	}

	var res StreakResult
	_, err = storage.Update(ctx, s.Store, sess, models.KeyGamification, func(cur *models.GamificationState) (models.GamificationState, error) {
		state := loadState(cur)
		state.Streak = streak
		newBadges := awardStreakBadges(&state, streak)
		res = StreakResult{Streak: streak, State: state, NewBadges: newBadges}
		return state, nil
	})
	if err != nil {
		return nil, err
	}
	for _, b := range res.NewBadges {
		s.Logger.Info("🎖️ badge awarded", zap.String("namespace", sess.Namespace()), zap.String("badge", b.Name), zap.Int("streak", streak))
	}
	return &res, nil
}
