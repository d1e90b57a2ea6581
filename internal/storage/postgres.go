package storage

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// postgresStore keeps snapshots in the cart_snapshots table.
type postgresStore struct {
	pool     *pgxpool.Pool
	ownsPool bool
	logger   zerolog.Logger
}

// NewPostgresStore creates a PostgreSQL-backed snapshot store.
// The schema is expected to exist; see database.Migrate.
func NewPostgresStore(pool *pgxpool.Pool, logger zerolog.Logger) SnapshotStore {
	return &postgresStore{
		pool:   pool,
		logger: logger.With().Str("store", "postgres").Logger(),
	}
}

func (s *postgresStore) Load(ctx context.Context, key string) ([]byte, error) {
	query := `
		SELECT data
		FROM cart_snapshots
		WHERE key = $1
	`

	var data []byte
	err := s.pool.QueryRow(ctx, query, key).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Debug().Str("key", key).Msg("snapshot not found")
			return nil, model.ErrSnapshotNotFound
		}
		s.logger.Error().Err(err).Str("key", key).Msg("failed to query snapshot")
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}

	return data, nil
}

func (s *postgresStore) Save(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO cart_snapshots (key, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`

	if _, err := s.pool.Exec(ctx, query, key, data); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to save snapshot")
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

func (s *postgresStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM cart_snapshots WHERE key = $1`

	if _, err := s.pool.Exec(ctx, query, key); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to delete snapshot")
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	return nil
}

// Close closes the pool only when the store opened it.
func (s *postgresStore) Close() error {
	if s.ownsPool {
		s.pool.Close()
	}
	return nil
}
