package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
)

// LocalStorage keeps each bucket as a directory under baseDir.
type LocalStorage struct {
	baseDir string
	buckets map[string]bool
}

// NewLocalStorage creates a LocalStorage serving the given buckets.
func NewLocalStorage(baseDir string, buckets ...string) *LocalStorage {
	set := make(map[string]bool, len(buckets))
	for _, b := range buckets {
		set[b] = true
	}
	return &LocalStorage{baseDir: baseDir, buckets: set}
}

var _ Storage = (*LocalStorage)(nil)

func (s *LocalStorage) resolve(bucket, key string) (string, error) {
	if !s.buckets[bucket] {
		return "", fmt.Errorf("%w: %q", ErrUnknownBucket, bucket)
	}
	if !ValidKey(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.baseDir, bucket, filepath.FromSlash(key)), nil
}

func (s *LocalStorage) Save(_ context.Context, bucket, key string, data io.Reader, _ string) error {
	dest, err := s.resolve(bucket, key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}

	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrExists
		}
		return fmt.Errorf("storage: create: %w", err)
	}

	if _, err := io.Copy(f, data); err != nil {
		f.Close()
		_ = os.Remove(dest)
		return fmt.Errorf("storage: write: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dest)
		return fmt.Errorf("storage: close: %w", err)
	}
	return nil
}

func (s *LocalStorage) Open(_ context.Context, bucket, key string) (*Object, error) {
	src, err := s.resolve(bucket, key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("storage: open: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("storage: stat: %w", err)
	}

	ct := mime.TypeByExtension(filepath.Ext(src))
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &Object{Body: f, Size: info.Size(), ContentType: ct}, nil
}
