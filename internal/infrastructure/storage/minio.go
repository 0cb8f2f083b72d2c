package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Adinlo/colrag/internal/config"
	"github.com/Adinlo/colrag/internal/domain/services"
	"github.com/Adinlo/colrag/pkg/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const (
	putAttempts  = 3
	retryBackoff = 500 * time.Millisecond
)

type MinioStorage struct {
	client *minio.Client
	bucket string
}

func NewMinioStorage(cfg config.StorageConfig) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", cfg.Bucket, err)
		}
		logger.Info("bucket created", zap.String("bucket", cfg.Bucket))
	}

	return &MinioStorage{client: client, bucket: cfg.Bucket}, nil
}

// Put writes the payload under key, retrying transient failures with a
// short backoff before giving up.
func (s *MinioStorage) Put(ctx context.Context, key string, content []byte, contentType string) error {
	var lastErr error
	for attempt := 1; attempt <= putAttempts; attempt++ {
		_, lastErr = s.client.PutObject(ctx, s.bucket, key,
			bytes.NewReader(content), int64(len(content)),
			minio.PutObjectOptions{ContentType: contentType},
		)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return lastErr
		}

		logger.Warn("object storage put failed",
			zap.String("key", key),
			zap.Int("attempt", attempt),
			zap.Error(lastErr),
		)
		if attempt < putAttempts {
			select {
			case <-time.After(time.Duration(attempt) * retryBackoff):
			case <-ctx.Done():
				return lastErr
			}
		}
	}
	return lastErr
}

func (s *MinioStorage) Get(ctx context.Context, key string) ([]byte, string, error) {
	object, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", err
	}
	defer object.Close()

	stat, err := object.Stat()
	if err != nil {
		return nil, "", err
	}

	content, err := io.ReadAll(object)
	if err != nil {
		return nil, "", err
	}

	return content, stat.ContentType, nil
}

func (s *MinioStorage) Remove(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

var _ services.ObjectStorage = (*MinioStorage)(nil)
