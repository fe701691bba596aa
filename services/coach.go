package services

import (
	"context"
	"errors"

	"neuroflow/models"
)

// ReviewInput is what the coach sees when writing a periodic debrief.
type ReviewInput struct {
	Period  models.ReviewPeriod
	Profile models.Profile
	Review  models.Review
}

// GeneratedImage is raw media returned by the coach.
type GeneratedImage struct {
	Data     []byte
	MIMEType string
}

// Coach is the generative-AI collaborator. Calls may fail and are never retried here.
type Coach interface {
	AnalyzeJournal(ctx context.Context, entry string) (*models.DailyStats, error)
	SuggestPlan(ctx context.Context, profile models.Profile) (*models.DailyPlan, error)
	AnalyzeReadiness(ctx context.Context, metrics models.HealthMetrics, profile models.Profile) (*models.ReadinessAnalysis, error)
	ReviewDebrief(ctx context.Context, in ReviewInput) (string, error)
	SuggestHabits(ctx context.Context, profile models.Profile, current []models.Habit) ([]models.HabitSuggestion, error)
	GenerateImage(ctx context.Context, prompt string) (*GeneratedImage, error)
}

var errNoCoach = errors.New("no coach configured")

// OfflineCoach fails every call with ErrCoachUnavailable. It stands in when no API key is set,
// so coach-backed features degrade the same way they do on an outage.
type OfflineCoach struct{}

func (OfflineCoach) AnalyzeJournal(context.Context, string) (*models.DailyStats, error) {
	return nil, coachErr("journal", errNoCoach)
}

func (OfflineCoach) SuggestPlan(context.Context, models.Profile) (*models.DailyPlan, error) {
	return nil, coachErr("plan", errNoCoach)
}

func (OfflineCoach) AnalyzeReadiness(context.Context, models.HealthMetrics, models.Profile) (*models.ReadinessAnalysis, error) {
	return nil, coachErr("readiness", errNoCoach)
}

func (OfflineCoach) ReviewDebrief(context.Context, ReviewInput) (string, error) {
	return "", coachErr("review", errNoCoach)
}

func (OfflineCoach) SuggestHabits(context.Context, models.Profile, []models.Habit) ([]models.HabitSuggestion, error) {
	return nil, coachErr("suggestions", errNoCoach)
}

func (OfflineCoach) GenerateImage(context.Context, string) (*GeneratedImage, error) {
	return nil, coachErr("image", errNoCoach)
}
