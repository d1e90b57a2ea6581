package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// fileStore keeps one JSON file per key inside a directory.
type fileStore struct {
	dir    string
	logger zerolog.Logger
}

// NewFileStore creates a file-backed snapshot store rooted at dir.
func NewFileStore(dir string, logger zerolog.Logger) (SnapshotStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory %s: %w", dir, err)
	}

	return &fileStore{
		dir:    dir,
		logger: logger.With().Str("store", "file").Logger(),
	}, nil
}

// path maps a key to a file name, rejecting keys that would escape dir.
func (s *fileStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid snapshot key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *fileStore) Load(ctx context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, model.ErrSnapshotNotFound
		}
		s.logger.Error().Err(err).Str("file", path).Msg("failed to read snapshot")
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	return data, nil
}

// Save writes to a temp file and renames it so readers never see a partial record.
func (s *fileStore) Save(ctx context.Context, key string, data []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	temp := path + ".tmp"
	if err := os.WriteFile(temp, data, 0o644); err != nil {
		s.logger.Error().Err(err).Str("file", temp).Msg("failed to write snapshot")
		return fmt.Errorf("failed to write snapshot %s: %w", temp, err)
	}

	if err := os.Rename(temp, path); err != nil {
		s.logger.Error().Err(err).Str("file", path).Msg("failed to replace snapshot")
		return fmt.Errorf("failed to replace snapshot %s: %w", path, err)
	}

	return nil
}

func (s *fileStore) Delete(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Error().Err(err).Str("file", path).Msg("failed to delete snapshot")
		return fmt.Errorf("failed to delete snapshot %s: %w", path, err)
	}

	return nil
}

func (s *fileStore) Close() error {
	return nil
}
