package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/devconsult/backend/internal/notify"
	"github.com/devconsult/backend/internal/validation"
	"github.com/devconsult/backend/pkg/resend"
)

// NotificationSender sends operator notifications and reports the provider result.
type NotificationSender interface {
	SendContact(ctx context.Context, n notify.ContactNotification) (*resend.SendResult, error)
	SendCareer(ctx context.Context, n notify.CareerNotification) (*resend.SendResult, error)
}

// NotificationHandler serves the notification function endpoints.
type NotificationHandler struct {
	sender NotificationSender
}

func NewNotificationHandler(sender NotificationSender) *NotificationHandler {
	return &NotificationHandler{sender: sender}
}

type sendResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// SendContact handles POST /functions/v1/send-contact-notification
func (h *NotificationHandler) SendContact(w http.ResponseWriter, r *http.Request) {
	var n notify.ContactNotification
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, formOverhead)).Decode(&n); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	res, err := h.sender.SendContact(r.Context(), n)
	h.respond(w, notify.ContactFunction, res, err)
}

// SendCareer handles POST /functions/v1/send-career-notification
func (h *NotificationHandler) SendCareer(w http.ResponseWriter, r *http.Request) {
	var n notify.CareerNotification
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, formOverhead)).Decode(&n); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	res, err := h.sender.SendCareer(r.Context(), n)
	h.respond(w, notify.CareerFunction, res, err)
}

func (h *NotificationHandler) respond(w http.ResponseWriter, function string, res *resend.SendResult, err error) {
	var verr *validation.Error
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, sendResponse{Success: true, ID: res.ID})
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, resend.ErrNotConfigured):
		slog.Error("notification not sent", "function", function, "error", err)
		writeError(w, http.StatusInternalServerError, "Email service not configured")
	default:
		slog.Error("notification not sent", "function", function, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to send email")
	}
}
