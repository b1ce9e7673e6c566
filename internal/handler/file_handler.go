package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strconv"

	"github.com/devconsult/backend/internal/storage"
	"github.com/devconsult/backend/pkg/auth"
)

// DownloadVerifier checks signed download tokens.
type DownloadVerifier interface {
	VerifyDownload(token string) (auth.Download, error)
}

// ObjectOpener opens stored files.
type ObjectOpener interface {
	Open(ctx context.Context, bucket, key string) (*storage.Object, error)
}

// FileHandler serves stored files behind signed download tokens.
type FileHandler struct {
	verifier DownloadVerifier
	opener   ObjectOpener
}

func NewFileHandler(verifier DownloadVerifier, opener ObjectOpener) *FileHandler {
	return &FileHandler{verifier: verifier, opener: opener}
}

// Download handles GET /api/files/{token}
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	d, err := h.verifier.VerifyDownload(r.PathValue("token"))
	if err != nil {
		writeError(w, http.StatusForbidden, "link_expired")
		return
	}

	obj, err := h.opener.Open(r.Context(), d.Bucket, d.Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrUnknownBucket) || errors.Is(err, storage.ErrInvalidKey) {
			slog.Warn("download target missing", "bucket", d.Bucket, "key", d.Key, "error", err)
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		slog.Error("download failed", "bucket", d.Bucket, "key", d.Key, "error", err)
		writeError(w, http.StatusInternalServerError, "download_failed")
		return
	}
	defer obj.Body.Close()

	name := d.Name
	if name == "" {
		name = path.Base(d.Key)
	}
	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	hdr := w.Header()
	hdr.Set("Content-Type", contentType)
	if obj.Size >= 0 {
		hdr.Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	if disposition := mime.FormatMediaType("attachment", map[string]string{"filename": name}); disposition != "" {
		hdr.Set("Content-Disposition", disposition)
	} else {
		hdr.Set("Content-Disposition", "attachment")
	}
	hdr.Set("Cache-Control", "no-store")
	hdr.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, obj.Body); err != nil {
		slog.Error("download interrupted", "bucket", d.Bucket, "key", d.Key, "error", err)
	}
}
