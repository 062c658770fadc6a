package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/i32sevit/analiza-tu-pc/internal/domain/analyses"
)

const linkExpiry = 7 * 24 * time.Hour

// Store uploads report artifacts to MinIO/S3 and hands out share links.
type Store struct {
	client     *minio.Client
	bucketName string
	region     string
}

// New connects and makes sure the bucket exists.
func New(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string, useSSL bool) (*Store, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, err
		}
	}

	return &Store{client: cli, bucketName: bucket, region: region}, nil
}

// Healthy reports whether the bucket is reachable.
func (s *Store) Healthy(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucketName)
	return err
}

// Upload puts the blob under key with overwrite semantics.
func (s *Store) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.bucketName, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// ShareLink returns a dereferenceable URL for key. Preferred path is a
// fresh presigned GET; when presigning is not possible the deterministic
// public object URL is reused instead of failing.
func (s *Store) ShareLink(ctx context.Context, key string) (string, analyses.LinkOutcome, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucketName, key, linkExpiry, nil)
	if err == nil {
		return u.String(), analyses.LinkCreated, nil
	}

	// fallback: the object already sits under a stable path, so the
	// public URL (valid for public-read buckets) is reusable
	if _, statErr := s.client.StatObject(ctx, s.bucketName, key, minio.StatObjectOptions{}); statErr != nil {
		return "", analyses.LinkFailed, fmt.Errorf("presign %s: %w", key, err)
	}
	scheme := "http"
	if s.client.EndpointURL().Scheme == "https" {
		scheme = "https"
	}
	url := fmt.Sprintf("%s://%s/%s/%s", scheme, s.client.EndpointURL().Host, s.bucketName, key)
	return url, analyses.LinkReused, nil
}
