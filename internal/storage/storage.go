// Package storage reads source documents from an S3-compatible object store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

var (
	ErrNotFound       = errors.New("object not found")
	ErrObjectTooLarge = errors.New("object exceeds size limit")
)

// Object is a fully read document fetched from the store.
type Object struct {
	Key         string
	ContentType string
	Size        int64
	Data        []byte
}

// Source is a read-only view over a bucket.
// Implementations never write or delete objects.
type Source interface {
	// Get reads the object stored under key.
	Get(ctx context.Context, key string) (*Object, error)
	// Ping reports whether the backing bucket is reachable.
	Ping(ctx context.Context) error
}

// readLimited reads r fully, failing once more than limit bytes are seen.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrObjectTooLarge, limit)
	}
	return data, nil
}
