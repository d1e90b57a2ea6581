package storage

import (
	"context"
	"fmt"

	"storefront/internal/config"
	"storefront/internal/database"

	"github.com/rs/zerolog"
)

// Open builds the snapshot store selected by cfg.Storage.Backend.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (SnapshotStore, error) {
	logger.Info().Str("backend", cfg.Storage.Backend).Msg("opening cart snapshot store")

	switch cfg.Storage.Backend {
	case config.StorageMemory:
		return NewMemoryStore(), nil

	case config.StorageFile:
		return NewFileStore(cfg.Storage.FileDir, logger)

	case config.StorageRedis:
		return NewRedisStore(ctx, cfg.Redis.Addr, logger)

	case config.StoragePostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := database.Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, err
		}
		store := NewPostgresStore(pool, logger).(*postgresStore)
		store.ownsPool = true
		return store, nil

	case config.StorageS3:
		return NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)

	default:
		return nil, fmt.Errorf("unsupported cart storage: %s", cfg.Storage.Backend)
	}
}
