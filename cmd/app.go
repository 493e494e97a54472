package cmd

import (
	"context"
	"fmt"
	"time"

	"follower-tracker/core/config"
	"follower-tracker/core/database"
	"follower-tracker/core/lock"
	"follower-tracker/core/logger"
	"follower-tracker/core/metrics"
	"follower-tracker/core/storage"
	"follower-tracker/feature/followers"
	"follower-tracker/feature/twitter"

	"github.com/juju/clock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds the components shared by the commands.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	store   storage.Client
	locker  lock.Locker
	metrics *metrics.Collector

	tokens   *followers.TokenCache
	registry *followers.Registry
	events   *followers.Recorder
	state    *followers.StateStore
	archive  *followers.ArchiveReporter
	client   *twitter.Client
	runner   *followers.Runner
}

// bootstrap loads configuration and wires every component. The database is
// migrated on connect; storage and the run lock are only created when
// configured. Only interactive commands may prompt for authorization when no
// credential is cached; the others fail and point at the authorize command.
func bootstrap(ctx context.Context, dryRun, interactive bool) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := followers.Migrate(db); err != nil {
		return nil, err
	}
	logg.Debug("Connected to database", zap.String("driver", cfg.Database.Driver))

	a := &app{cfg: cfg, logger: logg, db: db}

	if cfg.Storage.Enabled {
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		if created, err := storage.EnsureBucket(ctx, store, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			logg.Warn("Report bucket unavailable", zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
		} else if created {
			logg.Info("Created report bucket", zap.String("bucket", cfg.Storage.Bucket))
		}
		a.store = store
	}

	if a.locker, err = lock.New(cfg.Redis); err != nil {
		return nil, err
	}
	if a.metrics, err = metrics.NewCollector(); err != nil {
		return nil, err
	}

	a.tokens = followers.NewTokenCache(db, followers.DefaultCredentialName)
	a.registry = followers.NewRegistry(db, logg)
	a.events = followers.NewRecorder(db, logg)
	a.state = followers.NewStateStore(db)

	a.client, err = twitter.New(cfg.Twitter, twitter.Options{
		OnTokenRefresh: a.tokens.Put,
		Logger:         logg.Named("twitter"),
	})
	if err != nil {
		return nil, err
	}

	reporters := followers.MultiReporter{followers.NewLogReporter(logg, cfg.Tracker.ReportSample)}
	if a.store != nil {
		a.archive = followers.NewArchiveReporter(a.store, cfg.Storage.Bucket, cfg.Tracker.ReportPrefix, logg)
		reporters = append(reporters, a.archive)
	}

	reconciler := followers.NewReconciler(followers.Deps{
		Tokens:     a.tokens,
		Accounts:   a.registry,
		Events:     a.events,
		State:      a.state,
		Authorizer: authorizerFor(a.client, interactive),
		Source:     a.client,
		Profiles:   a.client,
		Reporter:   reporters,
		Clock:      clock.WallClock,
		Logger:     logg,
	})
	opts := followers.Options{DryRun: dryRun || cfg.Tracker.DryRun}
	a.runner = followers.NewRunner(reconciler, a.locker, a.metrics, clock.WallClock, opts, logg)

	return a, nil
}

// authorizerFor returns client only for commands attached to a terminal.
func authorizerFor(client *twitter.Client, interactive bool) followers.Authorizer {
	if !interactive || client == nil {
		return nil
	}
	return client
}

// target picks the handle from the arguments, falling back to configuration.
func (a *app) target(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if a.cfg.Tracker.Target != "" {
		return a.cfg.Tracker.Target, nil
	}
	return "", fmt.Errorf("no target handle given and tracker.target is not set")
}

// pushMetrics sends the run metrics to the Pushgateway when one is configured.
func (a *app) pushMetrics() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.metrics.Push(ctx, a.cfg.Metrics); err != nil {
		a.logger.Warn("Metrics push failed", zap.Error(err))
	}
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.logger.Sync()
}
