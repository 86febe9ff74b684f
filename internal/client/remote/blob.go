package remote

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// BlobStore uploads binary payloads and hands back download URLs.
type BlobStore interface {
	// EnsureBucket creates the backing bucket if it does not exist yet.
	EnsureBucket(ctx context.Context) error

	// Upload stores data under key and returns a download URL for it.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Presigned download links stay valid for a week, the longest expiry the
// S3 signature scheme allows.
const presignExpiry = 7 * 24 * time.Hour

// MinioConfig carries the connection settings of the S3-compatible backend.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// minioBlobStore implements BlobStore on an S3-compatible backend.
type minioBlobStore struct {
	client *minio.Client
	bucket string
}

// NewMinioBlobStore creates a blob store client. It does not touch the
// network; connectivity is verified later by the sync client's probe.
func NewMinioBlobStore(cfg MinioConfig) (BlobStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &minioBlobStore{client: cli, bucket: cfg.Bucket}, nil
}

func (m *minioBlobStore) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

func (m *minioBlobStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, presignExpiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", key, err)
	}
	return u.String(), nil
}
