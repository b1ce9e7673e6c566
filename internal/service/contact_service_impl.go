package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/devconsult/backend/internal/metrics"
	"github.com/devconsult/backend/internal/model"
	"github.com/devconsult/backend/internal/notify"
	"github.com/devconsult/backend/internal/repository"
	"github.com/devconsult/backend/internal/validation"
)

const kindContact = "contact"

// FileUploader stores one form file. *Uploader is the production implementation.
type FileUploader interface {
	Upload(ctx context.Context, bucket string, file Upload) (model.StoredFile, error)
}

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo     repository.ContactSubmissionRepository
	uploader FileUploader
	notifier notify.Dispatcher
	bucket   string
}

// NewContactService creates a ContactService. Attachments go to bucket.
func NewContactService(repo repository.ContactSubmissionRepository, uploader FileUploader, notifier notify.Dispatcher, bucket string) ContactService {
	return &contactServiceImpl{repo: repo, uploader: uploader, notifier: notifier, bucket: bucket}
}

func (s *contactServiceImpl) Submit(ctx context.Context, in validation.ContactInput, attachment *Upload) (*model.ContactSubmission, error) {
	sub, err := validation.Contact(in)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues(kindContact, metrics.OutcomeValidationError).Inc()
		return nil, err
	}

	if attachment != nil {
		stored, err := s.uploader.Upload(ctx, s.bucket, *attachment)
		if err != nil {
			metrics.SubmissionsTotal.WithLabelValues(kindContact, metrics.OutcomeUploadError).Inc()
			slog.Error("contact attachment upload failed", "error", err)
			return nil, err
		}
		sub.AttachFile(stored)
	}

	if err := s.repo.Create(ctx, &sub); err != nil {
		metrics.SubmissionsTotal.WithLabelValues(kindContact, metrics.OutcomeDatabaseError).Inc()
		attrs := []any{"error", err}
		if sub.HasAttachment() {
			attrs = append(attrs, "orphaned_key", *sub.FilePath, "bucket", s.bucket)
		}
		slog.Error("contact submission insert failed", attrs...)
		return nil, &DatabaseError{Table: "contact_submissions", Err: err}
	}
	metrics.SubmissionsTotal.WithLabelValues(kindContact, metrics.OutcomeSuccess).Inc()
	slog.Info("contact submission recorded", "id", sub.ID, "has_attachment", sub.HasAttachment())

	s.notify(ctx, &sub)
	return &sub, nil
}

func (s *contactServiceImpl) notify(ctx context.Context, sub *model.ContactSubmission) {
	if s.notifier == nil {
		return
	}
	err := s.notifier.NotifyContact(ctx, notify.ContactNotification{
		Name:     sub.Name,
		Email:    sub.Email,
		Message:  sub.Message,
		FileName: sub.FileName,
		FilePath: sub.FilePath,
	})
	logNotification(kindContact, sub.ID, err)
}

// logNotification records a best-effort notification outcome.
func logNotification(kind, submissionID string, err error) {
	if err == nil {
		metrics.NotificationsTotal.WithLabelValues(kind, metrics.OutcomeSuccess).Inc()
		return
	}
	metrics.NotificationsTotal.WithLabelValues(kind, metrics.OutcomeFailure).Inc()
	var nerr error = &NotificationError{Kind: kind, Err: err}
	if errors.Is(err, context.Canceled) {
		slog.Warn("notification cancelled", "submission_id", submissionID, "error", nerr)
		return
	}
	slog.Error("notification failed", "submission_id", submissionID, "error", nerr)
}
