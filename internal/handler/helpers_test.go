package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/devconsult/backend/internal/gate"
	"github.com/devconsult/backend/pkg/auth"
)

const (
	testSecret = "handler-test-secret-0123456789abcdef"
	testCookie = "access_token"
)

var testTokens = auth.NewTokens(testSecret, "")

// mockRoles answers IsAdmin from a fixed set. userID "broken" fails.
type mockRoles struct {
	admins map[string]bool
	calls  int
}

func (m *mockRoles) IsAdmin(_ context.Context, userID string) (bool, error) {
	m.calls++
	if userID == "broken" {
		return false, errors.New("connection reset")
	}
	return m.admins[userID], nil
}

func newTestGate(admins ...string) (*gate.Gate, *mockRoles) {
	roles := &mockRoles{admins: map[string]bool{}}
	for _, a := range admins {
		roles.admins[a] = true
	}
	return gate.New(testTokens, roles), roles
}

func mustToken(userID string) string {
	tok, err := testTokens.Issue(userID, userID+"@example.com", time.Hour)
	if err != nil {
		panic(err)
	}
	return tok
}

func bearerRequest(method, target, userID string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+mustToken(userID))
	}
	return req
}

func cookieRequest(method, target, userID string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if userID != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: mustToken(userID)})
	}
	return req
}
