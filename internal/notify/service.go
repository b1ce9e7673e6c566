package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/devconsult/backend/pkg/resend"
)

// Config addresses the notification emails.
type Config struct {
	To           []string
	FromContact  string
	FromCareer   string
	DashboardURL string
}

// Service validates, composes and sends notifications in-process.
type Service struct {
	sender resend.Sender
	cfg    Config
	now    func() time.Time
}

// NewService creates a Service sending through sender.
func NewService(sender resend.Sender, cfg Config) *Service {
	return &Service{sender: sender, cfg: cfg, now: time.Now}
}

var _ Dispatcher = (*Service)(nil)

// SendContact validates n, emails the operator and returns the provider result.
func (s *Service) SendContact(ctx context.Context, n ContactNotification) (*resend.SendResult, error) {
	if err := ValidateContact(n); err != nil {
		return nil, err
	}
	slog.Info("sending contact notification", "name", n.Name, "email", n.Email, "has_attachment", n.FileName != nil)

	msg := ComposeContact(n, s.cfg.DashboardURL, s.now().UTC())
	res, err := s.sender.Send(ctx, resend.Email{
		From:    s.cfg.FromContact,
		To:      s.cfg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return nil, err
	}
	slog.Info("contact notification sent", "email_id", res.ID)
	return res, nil
}

// SendCareer validates n, emails the operator and returns the provider result.
func (s *Service) SendCareer(ctx context.Context, n CareerNotification) (*resend.SendResult, error) {
	if err := ValidateCareer(n); err != nil {
		return nil, err
	}
	slog.Info("sending career notification", "name", n.Name, "email", n.Email, "expertise", n.Expertise)

	msg := ComposeCareer(n, s.now().UTC())
	res, err := s.sender.Send(ctx, resend.Email{
		From:    s.cfg.FromCareer,
		To:      s.cfg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return nil, err
	}
	slog.Info("career notification sent", "email_id", res.ID)
	return res, nil
}

func (s *Service) NotifyContact(ctx context.Context, n ContactNotification) error {
	_, err := s.SendContact(ctx, n)
	return err
}

func (s *Service) NotifyCareer(ctx context.Context, n CareerNotification) error {
	_, err := s.SendCareer(ctx, n)
	return err
}
