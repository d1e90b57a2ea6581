package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/model"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// redisField is the hash field holding the snapshot under each key.
const redisField = "snapshot"

// redisStore keeps snapshots in a Redis hash per key.
type redisStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisStore connects to Redis at addr, which may be a redis:// URL or host:port.
func NewRedisStore(ctx context.Context, addr string, logger zerolog.Logger) (SnapshotStore, error) {
	logger = logger.With().Str("store", "redis").Logger()

	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{
			Addr:         addr,
			MinIdleConns: 1,
			MaxRetries:   3,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
		}
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}

	logger.Info().Str("addr", opts.Addr).Msg("redis snapshot store connected")

	return NewRedisStoreWithClient(client, logger), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client, logger zerolog.Logger) SnapshotStore {
	return &redisStore{
		client: client,
		logger: logger,
	}
}

func (s *redisStore) Load(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.HGet(ctx, key, redisField).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSnapshotNotFound
		}
		s.logger.Error().Err(err).Str("key", key).Msg("redis HGet failed")
		return nil, fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}
	return val, nil
}

func (s *redisStore) Save(ctx context.Context, key string, data []byte) error {
	if err := s.client.HSet(ctx, key, redisField, data).Err(); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("redis HSet failed")
		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("redis Del failed")
		return fmt.Errorf("failed to delete snapshot %s: %w", key, err)
	}
	return nil
}

func (s *redisStore) Close() error {
	return s.client.Close()
}
