package services

import (
	"context"
	"strings"

	"neuroflow/models"
	"neuroflow/storage"

	"go.uber.org/zap"
)

// ReviewRequest is the user's side of a periodic review.
type ReviewRequest struct {
	BigWins        []string `json:"bigWins"`
	LessonsLearned string   `json:"lessonsLearned"`
	NextGoals      []string `json:"nextGoals"`
}

// ReviewService aggregates a period of logs and asks the coach for a debrief.
type ReviewService struct {
	Store    *storage.Store
	Logs     *DailyLogService
	Profiles *ProfileService
	Coach    Coach
	Calendar Calendar
	Logger   *zap.Logger
}

func NewReviewService(store *storage.Store, logs *DailyLogService, profiles *ProfileService, coach Coach, cal Calendar, logger *zap.Logger) *ReviewService {
	return &ReviewService{Store: store, Logs: logs, Profiles: profiles, Coach: coach, Calendar: cal, Logger: logger}
}

// Summarize aggregates the period's logs. Averages cover analyzed days only.
func Summarize(logs []models.DailyLog, days int) models.ReviewSummary {
	sum := models.ReviewSummary{Days: days, LoggedDays: len(logs), Wins: []string{}}
	var analyzed, focus, energy, mood int
	for _, l := range logs {
		sum.Completions += len(l.CompletedHabitIDs)
		if l.Stats == nil {
			continue
		}
		analyzed++
		focus += l.Stats.Focus
		energy += l.Stats.Energy
		mood += l.Stats.Mood
		sum.Wins = append(sum.Wins, l.Stats.Wins...)
	}
	if analyzed > 0 {
		sum.AverageFocus = focus / analyzed
		sum.AverageEnergy = energy / analyzed
		sum.AverageMood = mood / analyzed
	}
	return sum
}

// Submit builds the review for period ending today, gets the debrief and stores it under review-<period>.
// A coach failure stores nothing; the caller resubmits.
func (s *ReviewService) Submit(ctx context.Context, sess storage.Session, periodName string, req ReviewRequest) (*models.Review, error) {
	period, err := models.ParseReviewPeriod(periodName)
	if err != nil {
		return nil, invalidArgf("%v", err)
	}
	now := s.Calendar.Now()
	logs, err := s.Logs.RecentLogs(ctx, sess, now, period.Days())
	if err != nil {
		return nil, err
	}
	summary := Summarize(logs, period.Days())

	if health, err := storage.Get[models.HealthMetrics](ctx, s.Store, sess, models.KeyHealth); err != nil {
		return nil, err
	} else if health != nil && len(logs) > 0 && logs[0].Stats != nil {
		summary.SleepMatrix = []models.SleepFocusPoint{{Date: logs[0].Date, Sleep: health.SleepHours, Focus: logs[0].Stats.Focus}}
	}

	review := models.Review{
		Period:         period,
		StartDate:      DaysBack(now, period.Days()-1),
		EndDate:        DaysBack(now, 0),
		BigWins:        trimAll(req.BigWins),
		LessonsLearned: strings.TrimSpace(req.LessonsLearned),
		NextGoals:      trimAll(req.NextGoals),
		Summary:        summary,
	}

	profile, err := s.Profiles.GetProfile(ctx, sess)
	if err != nil {
		return nil, err
	}
	analysis, err := s.Coach.ReviewDebrief(ctx, ReviewInput{Period: period, Profile: profile, Review: review})
	if err != nil {
		return nil, err
	}
	review.AIAnalysis = analysis

	if err := storage.Put(ctx, s.Store, sess, models.ReviewKey(period), review); err != nil {
		return nil, err
	}
	s.Logger.Info("📊 review stored", zap.String("namespace", sess.Namespace()), zap.String("period", string(period)), zap.Int("logged_days", summary.LoggedDays))
	return &review, nil
}

// Last returns the last submitted review for the period, or nil.
func (s *ReviewService) Last(ctx context.Context, sess storage.Session, periodName string) (*models.Review, error) {
	period, err := models.ParseReviewPeriod(periodName)
	if err != nil {
		return nil, invalidArgf("%v", err)
	}
	return storage.Get[models.Review](ctx, s.Store, sess, models.ReviewKey(period))
}

func trimAll(in []string) []string {
	out := []string{}
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
