package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/devconsult/backend/internal/service"
	"github.com/devconsult/backend/internal/storage"
	"github.com/devconsult/backend/pkg/auth"
)

// downloadTTL bounds how long a signed file link stays valid.
const downloadTTL = 5 * time.Minute

// SubmissionViewer reads what the dashboard shows.
type SubmissionViewer interface {
	FetchAll(ctx context.Context) service.Submissions
	HasBucket(bucket string) bool
	Open(ctx context.Context, bucket, key string) (*storage.Object, error)
}

// DownloadSigner signs short-lived download tokens.
type DownloadSigner interface {
	SignDownload(d auth.Download, ttl time.Duration) (string, error)
}

// AdminHandler serves the admin JSON API.
type AdminHandler struct {
	adminService service.AdminService
	viewer       SubmissionViewer
	signer       DownloadSigner
	now          func() time.Time
}

func NewAdminHandler(adminService service.AdminService, viewer SubmissionViewer, signer DownloadSigner) *AdminHandler {
	return &AdminHandler{adminService: adminService, viewer: viewer, signer: signer, now: time.Now}
}

type meResponse struct {
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
}

// Me handles GET /api/admin/me (auth required).
// A failed role lookup reports is_admin false.
func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	isAdmin, err := h.adminService.IsAdmin(r.Context(), userID)
	if err != nil {
		slog.Warn("admin check failed", "user_id", userID, "error", err)
		isAdmin = false
	}
	writeJSON(w, http.StatusOK, meResponse{UserID: userID, IsAdmin: isAdmin})
}

type bootstrapRequest struct {
	Secret string `json:"secret"`
}

// Bootstrap handles POST /api/admin/bootstrap (auth required).
func (h *AdminHandler) Bootstrap(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req bootstrapRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	admin, err := h.adminService.BootstrapAdmin(r.Context(), userID, req.Secret)
	if err != nil {
		status, code := bootstrapErrorStatus(err)
		if status == http.StatusInternalServerError {
			slog.Error("admin bootstrap failed", "user_id", userID, "error", err)
		}
		writeError(w, status, code)
		return
	}
	writeJSON(w, http.StatusCreated, admin)
}

func bootstrapErrorStatus(err error) (int, string) {
	var aerr *service.AuthError
	switch {
	case errors.Is(err, service.ErrInvalidBootstrapSecret):
		return http.StatusForbidden, "invalid_secret"
	case errors.Is(err, service.ErrBootstrapUnavailable):
		return http.StatusConflict, "bootstrap_unavailable"
	case errors.As(err, &aerr):
		return http.StatusUnauthorized, "unauthorized"
	default:
		return http.StatusInternalServerError, "bootstrap_failed"
	}
}

type tableError struct {
	Table string `json:"table"`
	Error string `json:"error"`
}

type submissionsResponse struct {
	service.Submissions
	Errors []tableError `json:"errors"`
}

// Submissions handles GET /api/admin/submissions (admin only).
// A table that failed to load is empty and listed in errors.
func (h *AdminHandler) Submissions(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	subs := h.viewer.FetchAll(r.Context())
	resp := submissionsResponse{Submissions: subs, Errors: []tableError{}}
	for _, table := range subs.ErrorTables() {
		resp.Errors = append(resp.Errors, tableError{Table: table, Error: "fetch_failed"})
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, resp)
}

type fileURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// FileURL handles GET /api/admin/files/{bucket}/url?key=&name= (admin only).
func (h *AdminHandler) FileURL(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	link, expiresAt, status, code := h.signFile(r)
	if status != 0 {
		writeError(w, status, code)
		return
	}
	writeJSON(w, http.StatusOK, fileURLResponse{URL: link, ExpiresAt: expiresAt})
}

// signFile signs the object named by the bucket path value and the key and
// name query parameters. A non-zero status means the request was rejected.
func (h *AdminHandler) signFile(r *http.Request) (link string, expiresAt time.Time, status int, code string) {
	bucket := r.PathValue("bucket")
	key := r.URL.Query().Get("key")
	if !h.viewer.HasBucket(bucket) {
		return "", time.Time{}, http.StatusNotFound, "unknown_bucket"
	}
	if !storage.ValidKey(key) {
		return "", time.Time{}, http.StatusBadRequest, "invalid_key"
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		name = path.Base(key)
	}

	token, err := h.signer.SignDownload(auth.Download{Bucket: bucket, Key: key, Name: name}, downloadTTL)
	if err != nil {
		slog.Error("sign download failed", "bucket", bucket, "key", key, "error", err)
		return "", time.Time{}, http.StatusInternalServerError, "sign_failed"
	}
	return "/api/files/" + url.PathEscape(token), h.now().Add(downloadTTL).UTC(), 0, ""
}
