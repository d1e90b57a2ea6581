package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"storefront/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
)

// S3API is the subset of the S3 client used by the store.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// s3Store keeps each snapshot as an object under prefix+key+".json".
type s3Store struct {
	client S3API
	bucket string
	prefix string
	logger zerolog.Logger
}

// NewS3Store creates an S3-backed snapshot store using the default AWS credential chain.
func NewS3Store(ctx context.Context, bucket, region, prefix string, logger zerolog.Logger) (SnapshotStore, error) {
	logger = logger.With().Str("store", "s3").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Str("prefix", prefix).
		Msg("S3 snapshot store initialised")

	return NewS3StoreWithClient(s3.NewFromConfig(cfg), bucket, prefix, logger), nil
}

// NewS3StoreWithClient creates an S3-backed store around an existing client.
func NewS3StoreWithClient(client S3API, bucket, prefix string, logger zerolog.Logger) SnapshotStore {
	return &s3Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

func (s *s3Store) objectKey(key string) string {
	return s.prefix + key + ".json"
}

func (s *s3Store) Load(ctx context.Context, key string) ([]byte, error) {
	objectKey := s.objectKey(key)

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, model.ErrSnapshotNotFound
		}
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", objectKey).
			Msg("failed to get object from S3")
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", s.bucket, objectKey, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object %s: %w", objectKey, err)
	}

	return data, nil
}

func (s *s3Store) Save(ctx context.Context, key string, data []byte) error {
	objectKey := s.objectKey(key)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", objectKey).
			Msg("failed to put object to S3")
		return fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", s.bucket, objectKey, err)
	}

	return nil
}

func (s *s3Store) Delete(ctx context.Context, key string) error {
	objectKey := s.objectKey(key)

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", objectKey).
			Msg("failed to delete object from S3")
		return fmt.Errorf("failed to delete object from S3 (bucket=%s, key=%s): %w", s.bucket, objectKey, err)
	}

	return nil
}

func (s *s3Store) Close() error {
	return nil
}
