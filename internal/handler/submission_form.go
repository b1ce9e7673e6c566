package handler

import (
	"errors"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/devconsult/backend/internal/service"
	"github.com/devconsult/backend/internal/validation"
)

const (
	// formOverhead is the room left for text fields and multipart framing.
	formOverhead    = 1 << 20
	multipartMemory = 8 << 20
)

var errFileTooLarge = errors.New("file too large")

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// parseMultipart reads a multipart form capped at maxUpload plus formOverhead.
// Callers must call cleanup when done with the returned form.
func parseMultipart(w http.ResponseWriter, r *http.Request, maxUpload int64) (cleanup func(), err error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload+formOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return func() {}, errFileTooLarge
		}
		return func() {}, err
	}
	return func() { _ = r.MultipartForm.RemoveAll() }, nil
}

// formUpload returns the file in field, or nil when none was sent.
func formUpload(r *http.Request, field string, maxUpload int64) (*service.Upload, multipart.File, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if header.Size > maxUpload {
		file.Close()
		return nil, nil, errFileTooLarge
	}
	if header.Size == 0 || header.Filename == "" {
		file.Close()
		return nil, nil, nil
	}
	if validation.TooLong(header.Filename, validation.MaxFileNameLength) {
		file.Close()
		return nil, nil, &validation.Error{Field: field, Message: "File name must be less than 255 characters"}
	}
	return &service.Upload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}, file, nil
}

// writeFormError answers a form that could not be read.
func writeFormError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	switch {
	case errors.Is(err, errFileTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "file_too_large")
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Message, "field": verr.Field})
	default:
		writeError(w, http.StatusBadRequest, "invalid_form")
	}
}

// writeSubmitError maps a submission pipeline error to a response.
func writeSubmitError(w http.ResponseWriter, kind string, err error) {
	var (
		verr  *validation.Error
		uerr  *service.UploadError
		dbErr *service.DatabaseError
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Message, "field": verr.Field})
	case errors.As(err, &uerr):
		writeError(w, http.StatusBadGateway, "upload_failed")
	case errors.As(err, &dbErr):
		writeError(w, http.StatusInternalServerError, "submit_failed")
	default:
		slog.Error("unexpected submission error", "kind", kind, "error", err)
		writeError(w, http.StatusInternalServerError, "submit_failed")
	}
}

func parseConsent(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}

// submitResponse is the JSON body of a recorded submission.
type submitResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
}
