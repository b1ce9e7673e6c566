package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestRequestLogger_LevelsAndSize(t *testing.T) {
	logs := captureLogs(t)

	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("oops"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/careers", nil))

	out := logs.String()
	if !strings.Contains(out, `"level":"ERROR"`) || !strings.Contains(out, `"status":502`) || !strings.Contains(out, `"bytes":4`) {
		t.Errorf("unexpected log line %s", out)
	}
}

func TestRequestLogger_HidesDownloadToken(t *testing.T) {
	logs := captureLogs(t)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/files/{token}", func(w http.ResponseWriter, r *http.Request) {})
	RequestLogger(mux).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/files/secret-token", nil))

	if strings.Contains(logs.String(), "secret-token") {
		t.Errorf("expected token to be hidden, got %s", logs.String())
	}
}
