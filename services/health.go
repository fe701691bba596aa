package services

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sync"
	"time"

	"neuroflow/models"
	"neuroflow/storage"

	"go.uber.org/zap"
)

// HealthSync is the outcome of a bio sync. Analysis is nil when the coach was unavailable.
type HealthSync struct {
	Metrics  models.HealthMetrics      `json:"metrics"`
	Analysis *models.ReadinessAnalysis `json:"analysis,omitempty"`
}

// HealthService simulates a wearable sync and asks the coach for a readiness read.
type HealthService struct {
	Store    *storage.Store
	Profiles *ProfileService
	Coach    Coach
	Calendar Calendar
	Logger   *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func NewHealthService(store *storage.Store, profiles *ProfileService, coach Coach, cal Calendar, logger *zap.Logger) *HealthService {
	return &HealthService{
		Store:    store,
		Profiles: profiles,
		Coach:    coach,
		Calendar: cal,
		Logger:   logger,
		rng:      rand.New(rand.NewSource(cal.Clock.Now().UnixNano())),
	}
}

// SimulateMetrics draws a metrics sample from r.
func SimulateMetrics(r *rand.Rand, now time.Time) models.HealthMetrics {
	hrv := 30 + r.Intn(50)
	rhr := 45 + r.Intn(20)
	sleepHours := math.Round((5+r.Float64()*4)*10) / 10
	steps := 2000 + r.Intn(10000)

	sleepScore := int(math.Min(100, math.Floor(sleepHours/8*100)))
	if sleepHours < 6 {
		sleepScore -= 20
	}
	activityScore := int(math.Min(100, math.Floor(float64(steps)/10000*100)))

	return models.HealthMetrics{
		HRV:              hrv,
		RestingHeartRate: rhr,
		SleepScore:       sleepScore,
		SleepHours:       sleepHours,
		ActivityScore:    activityScore,
		Steps:            steps,
		LastSynced:       now.UTC().Format(time.RFC3339),
	}
}

// Latest returns the last synced metrics, or nil before the first sync.
func (s *HealthService) Latest(ctx context.Context, sess storage.Session) (*models.HealthMetrics, error) {
	return storage.Get[models.HealthMetrics](ctx, s.Store, sess, models.KeyHealth)
}

// Sync stores a fresh metrics sample, then adds the coach's readiness score when it answers.
func (s *HealthService) Sync(ctx context.Context, sess storage.Session) (*HealthSync, error) {
	s.mu.Lock()
	metrics := SimulateMetrics(s.rng, s.Calendar.Now())
	s.mu.Unlock()

	if err := storage.Put(ctx, s.Store, sess, models.KeyHealth, metrics); err != nil {
		return nil, err
	}

	profile, err := s.Profiles.GetProfile(ctx, sess)
	if err != nil {
		return nil, err
	}
	analysis, err := s.Coach.AnalyzeReadiness(ctx, metrics, profile)
	if err != nil {
		if errors.Is(err, ErrCoachUnavailable) {
			s.Logger.Warn("readiness analysis unavailable", zap.String("namespace", sess.Namespace()), zap.Error(err))
			return &HealthSync{Metrics: metrics}, nil
		}
		return nil, err
	}
	analysis.Score = clampInt(analysis.Score, 0, 100)
	metrics.ReadinessScore = analysis.Score
	if err := storage.Put(ctx, s.Store, sess, models.KeyHealth, metrics); err != nil {
		return nil, err
	}
	return &HealthSync{Metrics: metrics, Analysis: analysis}, nil
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
