package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/devconsult/backend/pkg/auth"
)

func TestSecurityHeaders_SetsAllHeaders(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	SecurityHeaders(inner).ServeHTTP(rec, req)

	headers := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
		"X-XSS-Protection":       "0",
		"Permissions-Policy":     "camera=(), microphone=(), geolocation=()",
	}
	for name, want := range headers {
		if got := rec.Header().Get(name); got != want {
			t.Errorf("%s: want %q, got %q", name, want, got)
		}
	}
}

func TestSecurityHeaders_CSP(t *testing.T) {
	req := httptest.NewRequest("GET", "/admin", nil)
	rec := httptest.NewRecorder()
	SecurityHeaders(http.NotFoundHandler()).ServeHTTP(rec, req)

	csp := rec.Header().Get("Content-Security-Policy")
	for _, d := range []string{"default-src", "script-src", "form-action 'self'", "frame-ancestors 'none'"} {
		if !strings.Contains(csp, d) {
			t.Errorf("CSP missing directive %q: %s", d, csp)
		}
	}
	if !strings.Contains(rec.Header().Get("Strict-Transport-Security"), "max-age=") {
		t.Error("expected HSTS max-age")
	}
}

func TestAdminOnly(t *testing.T) {
	g, _ := newTestGate("admin-1")

	var gotUser string
	var gotAdmin bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = auth.UserIDFromContext(r.Context())
		gotAdmin = auth.IsAdminFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	h := AdminOnly(g, testCookie)(inner)

	tests := []struct {
		name string
		req  *http.Request
		want int
	}{
		{"no token", httptest.NewRequest("GET", "/api/admin/submissions", nil), http.StatusUnauthorized},
		{"non-admin", bearerRequest("GET", "/api/admin/submissions", "user-2"), http.StatusForbidden},
		{"lookup error", bearerRequest("GET", "/api/admin/submissions", "broken"), http.StatusForbidden},
		{"admin bearer", bearerRequest("GET", "/api/admin/submissions", "admin-1"), http.StatusOK},
		{"admin cookie", cookieRequest("GET", "/api/admin/submissions", "admin-1"), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUser, gotAdmin = "", false
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, tt.req)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
			if tt.want == http.StatusOK && (gotUser != "admin-1" || !gotAdmin) {
				t.Errorf("expected admin context, got user=%q admin=%v", gotUser, gotAdmin)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	if requireAdmin(rec, req) || rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without user, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = req.WithContext(auth.WithUserID(req.Context(), "u"))
	if requireAdmin(rec, req) || rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 without admin flag, got %d", rec.Code)
	}
}
