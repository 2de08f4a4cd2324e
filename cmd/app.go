package cmd

import (
	"context"
	"fmt"
	"time"

	"consolidator/core/backup"
	"consolidator/core/config"
	"consolidator/core/database"
	"consolidator/core/history"
	"consolidator/core/logger"
	"consolidator/core/storage"

	"go.uber.org/zap"
)

// app bundles what every command needs after bootstrapping.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	history *history.Store
	backups *backup.Manager
}

// bootstrap loads configuration and wires the optional collaborators.
// The database and the object store are optional: a failure to reach either
// is logged and the run continues without history or mirroring.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store := history.NewStore(nil)
	if db, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Optional database connection failed, run history disabled", zap.Error(err))
	} else {
		store = history.NewStore(db)
		if err := store.Migrate(ctx); err != nil {
			logg.Warn("Run history migration failed, run history disabled", zap.Error(err))
			store = history.NewStore(nil)
		}
	}

	var mirror storage.Client
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Warn("Failed to create storage client, backups stay local", zap.Error(err))
		} else {
			timeout := time.Duration(cfg.Storage.TimeoutSeconds) * time.Second
			if timeout <= 0 {
				timeout = 30 * time.Second
			}
			bctx, cancel := context.WithTimeout(ctx, timeout)
			err = storage.EnsureBucket(bctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
			cancel()
			if err != nil {
				logg.Warn("Backup bucket unavailable, backups stay local", zap.Error(err))
			} else {
				mirror = client
			}
		}
	}

	return &app{
		cfg:     cfg,
		logger:  logg,
		history: store,
		backups: backup.NewManager(cfg.Backup, mirror, cfg.Storage.Bucket, logg),
	}, nil
}
