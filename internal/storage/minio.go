// Package storage uploads card avatars to S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOConfig holds the object storage connection settings.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string // base for public object URLs; derived from Endpoint when empty
}

// MinIOStorage handles file uploads to MinIO.
type MinIOStorage struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

// NewMinIOStorage connects to MinIO and creates the bucket if it does not exist.
func NewMinIOStorage(ctx context.Context, cfg MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	base := strings.TrimRight(cfg.PublicURL, "/")
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, client.EndpointURL().Host, cfg.Bucket)
	}

	return &MinIOStorage{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: base,
	}, nil
}

// Put uploads data under key.
func (s *MinIOStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType:  contentType,
			CacheControl: "public, max-age=31536000",
		},
	)
	if err != nil {
		return fmt.Errorf("failed to upload to minio: %w", err)
	}
	return nil
}

// Remove deletes the object at key.
func (s *MinIOStorage) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// PublicURL returns the public URL of key.
func (s *MinIOStorage) PublicURL(key string) string {
	return s.publicBase + "/" + key
}

// KeyFromURL returns the object key of a URL produced by PublicURL.
func (s *MinIOStorage) KeyFromURL(url string) (string, bool) {
	return strings.CutPrefix(url, s.publicBase+"/")
}
