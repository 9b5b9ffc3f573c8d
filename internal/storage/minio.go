// Package storage connects to the S3-compatible object store the service reports on in readiness checks.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Bablu7011/internship-project/internal/config"
)

// ErrBucketMissing is returned by Ping when the configured bucket does not exist.
var ErrBucketMissing = errors.New("bucket does not exist")

// BucketClient is the subset of *minio.Client used here.
type BucketClient interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
}

// Bucket is a handle on one bucket. It is safe for concurrent use.
type Bucket struct {
	client BucketClient
	name   string
}

// NewBucket wraps an existing client.
func NewBucket(client BucketClient, name string) *Bucket {
	return &Bucket{client: client, name: name}
}

// NewMinIO builds a traced MinIO client for cfg. It does not contact the server;
// connectivity is left to Ping so a slow object store cannot block start-up.
func NewMinIO(cfg config.MinIOConfig) (*Bucket, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	transport, err := minio.DefaultTransport(cfg.UseSSL)
	if err != nil {
		return nil, fmt.Errorf("create minio transport: %w", err)
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Transport: otelhttp.NewTransport(transport),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return NewBucket(cli, cfg.Bucket), nil
}

// Name is the bucket name.
func (b *Bucket) Name() string {
	return b.name
}

// Ping checks that the object store answers and the bucket exists.
func (b *Bucket) Ping(ctx context.Context) error {
	exists, err := b.client.BucketExists(ctx, b.name)
	if err != nil {
		return fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrBucketMissing, b.name)
	}
	return nil
}
