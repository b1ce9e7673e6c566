package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/devconsult/backend/internal/model"
	"github.com/devconsult/backend/internal/storage"
)

// Upload is one file received from a form.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Uploader stores form files under generated keys. Each bucket has its own key strategy.
type Uploader struct {
	store      storage.Storage
	keys       map[string]storage.KeyFunc
	defaultKey storage.KeyFunc
	now        func() time.Time
}

// NewUploader creates an Uploader. Buckets missing from keys use storage.RandomKey.
func NewUploader(store storage.Storage, keys map[string]storage.KeyFunc) *Uploader {
	return &Uploader{
		store:      store,
		keys:       keys,
		defaultKey: storage.RandomKey,
		now:        time.Now,
	}
}

// Upload writes file into bucket and returns where it was stored.
// Every failure is an *UploadError.
func (u *Uploader) Upload(ctx context.Context, bucket string, file Upload) (model.StoredFile, error) {
	if file.Body == nil {
		return model.StoredFile{}, &UploadError{Bucket: bucket, Err: errors.New("empty upload")}
	}

	keyFn := u.defaultKey
	if fn, ok := u.keys[bucket]; ok {
		keyFn = fn
	}
	key := keyFn(file.Name, u.now())

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := u.store.Save(ctx, bucket, key, file.Body, contentType); err != nil {
		return model.StoredFile{}, &UploadError{Bucket: bucket, Err: err}
	}
	slog.Info("file uploaded", "bucket", bucket, "key", key, "size", file.Size)

	return model.StoredFile{Bucket: bucket, Key: key, OriginalName: file.Name}, nil
}
