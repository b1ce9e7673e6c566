package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCORS_SetsHeaders(t *testing.T) {
	h := New(&mockDB{}, "http://localhost:4321")

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("POST", "/api/contact", nil)
	rec := httptest.NewRecorder()
	h.CORS(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:4321" {
		t.Errorf("expected origin http://localhost:4321, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("expected credentials=true, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); strings.Contains(got, "DELETE") {
		t.Errorf("expected no DELETE in allowed methods, got %q", got)
	}
}

func TestCORS_OptionsPreflight(t *testing.T) {
	h := New(&mockDB{}, "http://localhost:4321")

	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest("OPTIONS", "/api/careers", nil)
	rec := httptest.NewRecorder()
	h.CORS(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for OPTIONS, got %d", rec.Code)
	}
	if called {
		t.Error("inner handler should not be called for OPTIONS preflight")
	}
}
