// workers/streak_refresh.go
package workers

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"neuroflow/services"
	"neuroflow/storage"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultRefreshConcurrency = 8

// RefreshSummary reports one pass over all stored namespaces.
type RefreshSummary struct {
	Sessions int
	Failed   int
}

// StreakRefreshWorker periodically recomputes every user's cached streak, so streak badges are
// granted and broken streaks reset even for users who stay away.
type StreakRefreshWorker struct {
	store       *storage.Store
	game        *services.GamificationService
	interval    time.Duration
	concurrency int
	logger      *zap.Logger
}

func NewStreakRefreshWorker(store *storage.Store, game *services.GamificationService, interval time.Duration, logger *zap.Logger) *StreakRefreshWorker {
	return &StreakRefreshWorker{
		store:       store,
		game:        game,
		interval:    interval,
		concurrency: defaultRefreshConcurrency,
		logger:      logger.Named("streak-refresh"),
	}
}

// RefreshAll syncs the streak of every namespace in the store. A failing user is logged and
// counted; it does not stop the pass.
func (w *StreakRefreshWorker) RefreshAll(ctx context.Context) (RefreshSummary, error) {
	sessions, err := w.store.Sessions(ctx)
	if err != nil {
		return RefreshSummary{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	var failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(w.concurrency)
	for _, sess := range sessions {
		g.Go(func() error {
			if ctx.Err() != nil {
				failed.Add(1)
				return nil
			}
			res, err := w.game.SyncStreak(ctx, sess)
			if err != nil {
				failed.Add(1)
				w.logger.Warn("❌ streak refresh failed", zap.String("namespace", sess.Namespace()), zap.Error(err))
				return nil
			}
			for _, b := range res.NewBadges {
				w.logger.Info("🔥 streak badge unlocked in background", zap.String("namespace", sess.Namespace()), zap.String("badge", b.ID))
			}
			return nil
		})
	}
	_ = g.Wait()

	sum := RefreshSummary{Sessions: len(sessions), Failed: int(failed.Load())}
	w.logger.Info("🔁 streak refresh pass done", zap.Int("sessions", sum.Sessions), zap.Int("failed", sum.Failed))
	return sum, nil
}

// Start schedules RefreshAll every interval, first run immediately, until ctx is done.
func (w *StreakRefreshWorker) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func() {
			if _, err := w.RefreshAll(ctx); err != nil {
				w.logger.Error("streak refresh pass failed", zap.Error(err))
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = sched.Shutdown()
		return fmt.Errorf("failed to schedule streak refresh: %w", err)
	}

	sched.Start()
	w.logger.Info("⏱️ streak refresh worker started", zap.Duration("interval", w.interval))

	go func() {
		<-ctx.Done()
		if err := sched.Shutdown(); err != nil {
			w.logger.Warn("scheduler shutdown", zap.Error(err))
		}
		w.logger.Info("⏹️ streak refresh worker stopped")
	}()
	return nil
}
