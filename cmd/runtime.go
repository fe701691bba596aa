// cmd/runtime.go
package cmd

import (
	"context"
	"fmt"

	"neuroflow/config"
	"neuroflow/handlers"
	"neuroflow/logging"
	"neuroflow/services"
	"neuroflow/storage"
	"neuroflow/utils"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// deps is everything a command needs, built from the config.
type deps struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    *storage.Store
	services handlers.Services
}

// loadDeps loads config, opens storage and wires the services. withCoach decides whether
// the Gemini coach and R2 media store are set up; offline commands skip both.
func loadDeps(ctx context.Context, withCoach bool) (*deps, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	backend, err := storage.Open(ctx, cfg.StorageOptions(), logger)
	if err != nil {
		return nil, err
	}
	store := storage.NewStore(backend, cfg.Storage.Prefix, logger)
	fail := func(err error) (*deps, error) {
		_ = backend.Close()
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return fail(err)
	}
	policy, err := cfg.StreakPolicy()
	if err != nil {
		return fail(err)
	}
	cal := services.NewCalendar(clockwork.NewRealClock(), loc)

	var coach services.Coach = services.OfflineCoach{}
	var media services.MediaUploader
	if withCoach {
		if cfg.Coach.APIKey == "" {
			logger.Warn("⚠️ GEMINI_API_KEY is not set, coach features run in fallback mode")
		} else {
			gc, err := services.NewGenAICoach(ctx, cfg.Coach.APIKey, cfg.GenAIModels(), logger)
			if err != nil {
				return fail(err)
			}
			coach = gc
		}

		if cfg.Media.Enabled() {
			r2, err := utils.NewR2Store(ctx, utils.R2Config{
				AccountID:       cfg.Media.AccountID,
				AccessKeyID:     cfg.Media.AccessKeyID,
				AccessKeySecret: cfg.Media.AccessKeySecret,
				Bucket:          cfg.Media.Bucket,
				CDNBaseURL:      cfg.Media.CDNBaseURL,
			})
			if err != nil {
				return fail(fmt.Errorf("failed to initialize R2 client: %w", err))
			}
			media = r2
		} else {
			logger.Warn("⚠️ R2 is not configured, the vision board cannot store images")
		}
	}

	logs := services.NewDailyLogService(store, logger)
	game := services.NewGamificationService(store, services.NewStreakCalculator(logs, cal, policy), logger)
	profiles := services.NewProfileService(store, logger)

	return &deps{
		cfg:    cfg,
		logger: logger,
		store:  store,
		services: handlers.Services{
			Calendar:     cal,
			Logs:         logs,
			Gamification: game,
			Profiles:     profiles,
			Habits:       services.NewHabitService(store, logs, game, profiles, coach, logger),
			Journal:      services.NewJournalService(logs, cal, game, coach, logger),
			Health:       services.NewHealthService(store, profiles, coach, cal, logger),
			Briefing:     services.NewBriefingService(logs, profiles, coach, logger),
			Review:       services.NewReviewService(store, logs, profiles, coach, cal, logger),
			Vision:       services.NewVisionService(store, game, coach, media, cal, logger),
		},
	}, nil
}

func (r *deps) Close() {
	if err := r.store.Backend().Close(); err != nil {
		r.logger.Warn("failed to close storage", zap.Error(err))
	}
	_ = r.logger.Sync()
}
