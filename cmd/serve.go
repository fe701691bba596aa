// cmd/serve.go
package cmd

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"neuroflow/handlers"
	"neuroflow/middleware"
	"neuroflow/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the streak refresh worker",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := loadDeps(ctx, true)
	if err != nil {
		return err
	}
	defer rt.Close()
	cfg, logger := rt.cfg, rt.logger

	app := fiber.New(fiber.Config{
		BodyLimit:             1 * 1024 * 1024,
		DisableStartupMessage: true,
	})

	origins := strings.Join(cfg.Server.AllowedOrigins, ",")
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-User-ID, X-Session-Token",
		ExposeHeaders:    "Content-Length, Content-Type, X-Request-ID",
		AllowCredentials: origins != "*",
		MaxAge:           86400,
	}))
	// 🔐 only the gateway may call us when a service token is configured
	app.Use(middleware.GatewayAuthMiddleware(cfg.Server.ServiceToken, logger))

	handlers.SetupRoutes(app, rt.services, cfg.Server.JWTSecret, logger)

	worker := workers.NewStreakRefreshWorker(rt.store, rt.services.Gamification, cfg.Streak.RefreshInterval, logger)
	if err := worker.Start(ctx); err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		logger.Info("🛑 shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("🚀 neuroflow listening", zap.String("port", cfg.Server.Port), zap.String("storage", cfg.Storage.Driver))
	return app.Listen(":" + cfg.Server.Port)
}
