package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"topreparateurs/internal/config"
	"topreparateurs/internal/usecase/interfaces"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultURLExpiry = 15 * time.Minute

// MinioEvidenceStorage keeps dispute evidence in an S3-compatible bucket.
type MinioEvidenceStorage struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

var _ interfaces.IEvidenceStorage = (*MinioEvidenceStorage)(nil)

// NewMinioEvidenceStorage builds the client. region may be empty, in which
// case the bucket location is looked up on first use.
func NewMinioEvidenceStorage(cfg config.EvidenceConfig, region string) (*MinioEvidenceStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	expiry := cfg.URLExpiry
	if expiry <= 0 {
		expiry = defaultURLExpiry
	}
	return &MinioEvidenceStorage{client: client, bucket: cfg.Bucket, expiry: expiry}, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
func (s *MinioEvidenceStorage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

func (s *MinioEvidenceStorage) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload evidence: %w", err)
	}
	return nil
}

// PresignedURL returns a time-limited download link for key.
func (s *MinioEvidenceStorage) PresignedURL(ctx context.Context, key string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return u.String(), nil
}
