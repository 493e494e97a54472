package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"follower-tracker/core/loader"
	"follower-tracker/core/logger"
	"follower-tracker/core/middleware/auth"
	"follower-tracker/core/middleware/rayid"
	"follower-tracker/feature/followers"
	"follower-tracker/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "follower-tracker/docs/swagger"
)

// @title Follower Tracker API
// @version 1.0
// @description API for browsing tracked followers and follow events.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

var serveWatch bool

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Starts the HTTP server and initializes all enabled features.
With --watch the configured target is also reconciled periodically.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Also reconcile tracker.target every tracker.interval_seconds")
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx, false, false)
	if err != nil {
		return err
	}
	defer a.close()
	logg := a.logger

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true, // We log our own startup message
	})

	mgr := loader.NewManager(logg)
	svc := followers.NewService(a.registry, a.events, a.state, a.runner, a.archive, logg)
	mgr.Register(followers.NewFeature(svc))
	mgr.Register(integrity.NewFeature(
		integrity.NewService(a.db, followers.Models(), a.store, a.cfg.Storage, a.cfg.Tracker.ReportPrefix, logg),
	))

	// RayID first so every log line can be traced.
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		start := time.Now()
		err := c.Next()
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}
		if err != nil {
			l.Error("Request error", append(fields, zap.Error(err))...)
			return err
		}
		l.Info("Request handled", fields...)
		return nil
	})

	// Public endpoints
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(a.metrics.Handler()))
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	if !a.cfg.Server.AuthEnabled() {
		logg.Warn("API key not set, the API is unauthenticated")
	}
	app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))

	if err := mgr.LoadAll(app); err != nil {
		return err
	}

	if serveWatch {
		target, err := a.target(nil)
		if err != nil {
			return err
		}
		interval := time.Duration(a.cfg.Tracker.IntervalSeconds) * time.Second
		logg.Info("Watching followers", zap.String("target", target), zap.Duration("interval", interval))
		go func() {
			if err := a.runner.Watch(ctx, target, interval); err != nil {
				logg.Error("Watch stopped", zap.Error(err))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("Starting server", zap.String("address", a.cfg.Server.Address()))
		errCh <- app.Listen(a.cfg.Server.Address())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logg.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logg.Error("Server shutdown failed", zap.Error(err))
	}
	a.pushMetrics()
	return nil
}
