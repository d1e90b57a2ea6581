package database

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// schema holds the tables the storefront needs. Statements are idempotent.
const schema = `
	CREATE TABLE IF NOT EXISTS cart_snapshots (
		key        TEXT PRIMARY KEY,
		data       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// NewPool creates a new PostgreSQL connection pool.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Int("max_connections", cfg.MaxConnections).
		Msg("creating database connection pool")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// Migrate creates the snapshot table when it does not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		logger.Error().Err(err).Msg("failed to apply database schema")
		return fmt.Errorf("failed to apply database schema: %w", err)
	}

	logger.Info().Msg("database schema up to date")
	return nil
}
