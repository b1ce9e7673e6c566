package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/devconsult/backend/internal/validation"
	"github.com/devconsult/backend/pkg/resend"
)

type mockSender struct {
	sendFunc func(ctx context.Context, email resend.Email) (*resend.SendResult, error)
}

func (m *mockSender) Send(ctx context.Context, email resend.Email) (*resend.SendResult, error) {
	return m.sendFunc(ctx, email)
}

func newTestService(sender resend.Sender) *Service {
	s := NewService(sender, Config{
		To:           []string{"ops@example.com"},
		FromContact:  "Contact Form <contact@example.com>",
		FromCareer:   "CV Portal <careers@example.com>",
		DashboardURL: "https://example.com/admin",
	})
	s.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	return s
}

func TestService_SendContact(t *testing.T) {
	var sent resend.Email
	svc := newTestService(&mockSender{
		sendFunc: func(_ context.Context, email resend.Email) (*resend.SendResult, error) {
			sent = email
			return &resend.SendResult{ID: "em_123"}, nil
		},
	})

	res, err := svc.SendContact(context.Background(), ContactNotification{Name: "Jane", Email: "jane@example.com", Message: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ID != "em_123" {
		t.Errorf("expected em_123, got %s", res.ID)
	}
	if sent.From != "Contact Form <contact@example.com>" {
		t.Errorf("unexpected from %q", sent.From)
	}
	if len(sent.To) != 1 || sent.To[0] != "ops@example.com" {
		t.Errorf("unexpected to %v", sent.To)
	}
	if sent.Subject != "New Contact Form Submission from Jane" {
		t.Errorf("unexpected subject %q", sent.Subject)
	}
}

func TestService_SendContact_InvalidShapeNotSent(t *testing.T) {
	called := false
	svc := newTestService(&mockSender{
		sendFunc: func(context.Context, resend.Email) (*resend.SendResult, error) {
			called = true
			return &resend.SendResult{ID: "x"}, nil
		},
	})

	err := svc.NotifyContact(context.Background(), ContactNotification{Name: "Jane", Email: "nope", Message: "hi"})
	var verr *validation.Error
	if !errors.As(err, &verr) || verr.Field != "email" {
		t.Fatalf("expected email validation error, got %v", err)
	}
	if called {
		t.Error("expected sender not to be called")
	}
}

func TestService_SendCareer_ProviderError(t *testing.T) {
	svc := newTestService(&mockSender{
		sendFunc: func(context.Context, resend.Email) (*resend.SendResult, error) {
			return nil, &resend.APIError{StatusCode: 422, Message: "invalid from"}
		},
	})

	err := svc.NotifyCareer(context.Background(), CareerNotification{Name: "Amara", Email: "a@b.co", Expertise: "x"})
	var apiErr *resend.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
}

func TestValidateCareer(t *testing.T) {
	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}
	tests := []struct {
		name  string
		n     CareerNotification
		field string
	}{
		{"missing name", CareerNotification{Email: "a@b.co", Expertise: "x"}, "name"},
		{"missing expertise", CareerNotification{Name: "A", Email: "a@b.co"}, "expertise"},
		{"long cv name", CareerNotification{Name: "A", Email: "a@b.co", Expertise: "x", CVFileName: strPtr(string(long))}, "cv_file_name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var verr *validation.Error
			if err := ValidateCareer(tt.n); !errors.As(err, &verr) || verr.Field != tt.field {
				t.Errorf("expected %s error, got %v", tt.field, err)
			}
		})
	}
	if err := ValidateCareer(CareerNotification{Name: "A", Email: "a@b.co", Expertise: "x"}); err != nil {
		t.Errorf("expected valid, got %v", err)
	}
}
