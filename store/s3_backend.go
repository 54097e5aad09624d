package store

import (
	"context"
	"errors"
)

// ErrObjectNotFound is returned by ObjectStorage when an object does not exist
var ErrObjectNotFound = errors.New("object not found")

// ObjectStorage is the subset of an object store used by S3Backend
type ObjectStorage interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
	GetObject(ctx context.Context, key string) ([]byte, error)
}

// S3Backend stores each collection as "<prefix><key>.json" in a bucket
type S3Backend struct {
	objects ObjectStorage
	prefix  string
}

// NewS3Backend creates a backend over an object store
func NewS3Backend(objects ObjectStorage, prefix string) *S3Backend {
	return &S3Backend{objects: objects, prefix: prefix}
}

func (b *S3Backend) Name() string {
	return "s3"
}

func (b *S3Backend) objectKey(key string) string {
	return b.prefix + key + ".json"
}

func (b *S3Backend) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := b.objects.GetObject(ctx, b.objectKey(key))
	if errors.Is(err, ErrObjectNotFound) {
		return nil, ErrKeyNotFound
	}
	return data, err
}

func (b *S3Backend) Write(ctx context.Context, key string, data []byte) error {
	return b.objects.PutObject(ctx, b.objectKey(key), data, "application/json")
}
