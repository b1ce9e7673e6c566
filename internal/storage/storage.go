package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

var (
	// ErrNotFound is returned when no object exists under the key.
	ErrNotFound = errors.New("storage: object not found")
	// ErrExists is returned when a key is already taken. Keys are never overwritten.
	ErrExists = errors.New("storage: object already exists")
	// ErrInvalidKey is returned for keys that could escape their bucket.
	ErrInvalidKey = errors.New("storage: invalid key")
	// ErrUnknownBucket is returned for buckets the store was not configured with.
	ErrUnknownBucket = errors.New("storage: unknown bucket")
)

// Object is an open blob. Callers must close Body.
type Object struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
}

// Storage abstracts the named buckets uploaded files live in.
// The local filesystem implementation can be swapped for an object store.
type Storage interface {
	// Save writes data under key in bucket. Existing keys are never overwritten.
	Save(ctx context.Context, bucket, key string, data io.Reader, contentType string) error

	// Open returns the object stored under key in bucket.
	Open(ctx context.Context, bucket, key string) (*Object, error)
}

// ValidKey reports whether key is a clean relative path inside a bucket.
func ValidKey(key string) bool {
	if key == "" || strings.ContainsAny(key, "\\\x00") || strings.HasPrefix(key, "/") {
		return false
	}
	if path.Clean(key) != key {
		return false
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." || seg == "." {
			return false
		}
	}
	return true
}
