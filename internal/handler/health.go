package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

type healthResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Database string `json:"database"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		slog.Warn("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:   "unhealthy",
			Message:  "database unavailable",
			Database: "down",
		})
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Message:  "DevConsult API",
		Database: "up",
	})
}
