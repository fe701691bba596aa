package services

import (
	"context"
	"errors"
	"strings"

	"neuroflow/models"
	"neuroflow/storage"

	"go.uber.org/zap"
)

// FallbackPlan is offered when the coach cannot produce a suggestion.
var FallbackPlan = models.DailyPlan{MIT: "Focus Work", Top3: []string{"Hydrate", "Move", "Read"}, Quote: "Begin."}

// PlanSuggestion is a proposed plan. Fallback is true when the coach was unavailable.
type PlanSuggestion struct {
	Plan     models.DailyPlan `json:"plan"`
	Fallback bool             `json:"fallback"`
}

// BriefingService runs the morning briefing: suggest a plan, then store the confirmed one.
type BriefingService struct {
	Logs     *DailyLogService
	Profiles *ProfileService
	Coach    Coach
	Logger   *zap.Logger
}

func NewBriefingService(logs *DailyLogService, profiles *ProfileService, coach Coach, logger *zap.Logger) *BriefingService {
	return &BriefingService{Logs: logs, Profiles: profiles, Coach: coach, Logger: logger}
}

// Suggest asks the coach for a plan matching the user's goal.
func (s *BriefingService) Suggest(ctx context.Context, sess storage.Session) (*PlanSuggestion, error) {
	profile, err := s.Profiles.GetProfile(ctx, sess)
	if err != nil {
		return nil, err
	}
	plan, err := s.Coach.SuggestPlan(ctx, profile)
	if err == nil {
		if verr := plan.Validate(); verr != nil {
			err = coachErr("plan", verr)
		}
	}
	if err != nil {
		if !errors.Is(err, ErrCoachUnavailable) {
			return nil, err
		}
		s.Logger.Warn("offering fallback plan", zap.String("namespace", sess.Namespace()), zap.Error(err))
		fb := FallbackPlan
		fb.Top3 = append([]string(nil), FallbackPlan.Top3...)
		return &PlanSuggestion{Plan: fb, Fallback: true}, nil
	}
	return &PlanSuggestion{Plan: *plan}, nil
}

// Submit stores the user-confirmed plan for date.
func (s *BriefingService) Submit(ctx context.Context, sess storage.Session, date, mit string, top3 []string, quote string) (*models.DailyLog, error) {
	goals := make([]string, 0, len(top3))
	for _, g := range top3 {
		goals = append(goals, strings.TrimSpace(g))
	}
	quote = strings.TrimSpace(quote)
	if quote == "" {
		quote = DefaultQuote
	}
	return s.Logs.SetPlan(ctx, sess, date, models.DailyPlan{MIT: mit, Top3: goals, Quote: quote})
}
