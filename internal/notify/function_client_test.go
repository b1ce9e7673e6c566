package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFunctionClient_NotifyContact(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody ContactNotification
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := NewFunctionClient(srv.URL+"/functions/v1/", "tok")
	err := c.NotifyContact(context.Background(), ContactNotification{Name: "Jane", Email: "jane@example.com", Message: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/functions/v1/send-contact-notification" {
		t.Errorf("unexpected path %s", gotPath)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	if gotBody.Name != "Jane" || gotBody.FileName != nil {
		t.Errorf("unexpected body %+v", gotBody)
	}
}

func TestFunctionClient_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("expected no auth header without a token")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Email service not configured"}`))
	}))
	defer srv.Close()

	c := NewFunctionClient(srv.URL, "")
	err := c.NotifyCareer(context.Background(), CareerNotification{Name: "A", Email: "a@b.co", Expertise: "x"})

	var fnErr *FunctionError
	if !errors.As(err, &fnErr) {
		t.Fatalf("expected FunctionError, got %v", err)
	}
	if fnErr.StatusCode != 500 || fnErr.Message != "Email service not configured" {
		t.Errorf("unexpected error %+v", fnErr)
	}
	if fnErr.Function != CareerFunction {
		t.Errorf("expected %s, got %s", CareerFunction, fnErr.Function)
	}
}
