package storage

import (
	"context"
	"fmt"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"docdigest/internal/config"
)

// minioSource implements Source on top of an S3-compatible backend (MinIO, AWS S3, etc.).
// It is safe for concurrent use by multiple goroutines.
type minioSource struct {
	client   *minio.Client
	bucket   string
	maxBytes int64
}

// NewMinIO creates a read-only MinIO source. No network call is made here; use Ping to
// check connectivity. Objects larger than maxBytes are rejected.
func NewMinIO(cfg config.MinIOConfig, maxBytes int64) (Source, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &minioSource{client: cli, bucket: cfg.Bucket, maxBytes: maxBytes}, nil
}

// Get downloads an object into memory after checking its size.
func (m *minioSource) Get(ctx context.Context, key string) (*Object, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, mapMinIOError(key, err)
	}
	defer obj.Close()

	st, err := obj.Stat()
	if err != nil {
		return nil, mapMinIOError(key, err)
	}
	if m.maxBytes > 0 && st.Size > m.maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrObjectTooLarge, key, st.Size)
	}

	data, err := readLimited(obj, m.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	return &Object{
		Key:         key,
		ContentType: st.ContentType,
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}

// Ping checks that the configured bucket exists and is reachable.
func (m *minioSource) Ping(ctx context.Context) error {
	ok, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", m.bucket, err)
	}
	if !ok {
		return fmt.Errorf("bucket %s does not exist", m.bucket)
	}
	return nil
}

func mapMinIOError(key string, err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return fmt.Errorf("get %s: %w", key, err)
}
