package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// MinioStore implements ObjectStore on any S3-compatible endpoint.
type MinioStore struct {
	client    *minio.Client
	bucket    string
	uploadTTL time.Duration
}

// MinioOptions carries the connection settings for NewMinioStore.
type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	UploadTTL time.Duration
}

// NewMinioStore connects to the endpoint and ensures the bucket exists.
func NewMinioStore(ctx context.Context, opts MinioOptions) (*MinioStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: init client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("storage: check bucket %q: %w", opts.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("storage: create bucket %q: %w", opts.Bucket, err)
		}
		log.Info().Str("bucket", opts.Bucket).Msg("created attachment bucket")
	}

	ttl := opts.UploadTTL
	if ttl <= 0 {
		ttl = DefaultUploadTTL
	}
	return &MinioStore{client: client, bucket: opts.Bucket, uploadTTL: ttl}, nil
}

// PresignUpload implements ObjectStore.
func (s *MinioStore) PresignUpload(ctx context.Context, path string) (*SignedUpload, error) {
	u, err := s.client.PresignedPutObject(ctx, s.bucket, path, s.uploadTTL)
	if err != nil {
		return nil, fmt.Errorf("storage: presign %q: %w", path, err)
	}
	return &SignedUpload{URL: u.String(), Path: path}, nil
}

// Download implements ObjectStore.
func (s *MinioStore) Download(ctx context.Context, path string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("storage: get %q: %w", path, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("storage: read %q: %w", path, err)
	}
	return data, nil
}

// Remove implements ObjectStore. A missing object is treated as removed.
func (s *MinioStore) Remove(ctx context.Context, path string) error {
	err := s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.StatusCode == http.StatusNotFound {
			return nil
		}
		return fmt.Errorf("storage: remove %q: %w", path, err)
	}
	return nil
}
