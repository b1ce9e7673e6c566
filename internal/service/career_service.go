package service

import (
	"context"
	"log/slog"

	"github.com/devconsult/backend/internal/metrics"
	"github.com/devconsult/backend/internal/model"
	"github.com/devconsult/backend/internal/notify"
	"github.com/devconsult/backend/internal/repository"
	"github.com/devconsult/backend/internal/validation"
)

const kindCareer = "career"

// CareerService defines the business logic for CV portal submissions.
type CareerService interface {
	Submit(ctx context.Context, in validation.CareerInput, cv *Upload) (*model.CareerSubmission, error)
}

type careerServiceImpl struct {
	repo     repository.CareerSubmissionRepository
	uploader FileUploader
	notifier notify.Dispatcher
	bucket   string
}

// NewCareerService creates a CareerService. CVs go to bucket.
func NewCareerService(repo repository.CareerSubmissionRepository, uploader FileUploader, notifier notify.Dispatcher, bucket string) CareerService {
	return &careerServiceImpl{repo: repo, uploader: uploader, notifier: notifier, bucket: bucket}
}

func (s *careerServiceImpl) Submit(ctx context.Context, in validation.CareerInput, cv *Upload) (*model.CareerSubmission, error) {
	sub, err := validation.Career(in)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues(kindCareer, metrics.OutcomeValidationError).Inc()
		return nil, err
	}

	if cv != nil {
		stored, err := s.uploader.Upload(ctx, s.bucket, *cv)
		if err != nil {
			metrics.SubmissionsTotal.WithLabelValues(kindCareer, metrics.OutcomeUploadError).Inc()
			slog.Error("cv upload failed", "error", err)
			return nil, err
		}
		sub.AttachCV(stored)
	}

	if err := s.repo.Create(ctx, &sub); err != nil {
		metrics.SubmissionsTotal.WithLabelValues(kindCareer, metrics.OutcomeDatabaseError).Inc()
		attrs := []any{"error", err}
		if sub.HasCV() {
			attrs = append(attrs, "orphaned_key", *sub.CVFilePath, "bucket", s.bucket)
		}
		slog.Error("career submission insert failed", attrs...)
		return nil, &DatabaseError{Table: "career_submissions", Err: err}
	}
	metrics.SubmissionsTotal.WithLabelValues(kindCareer, metrics.OutcomeSuccess).Inc()
	slog.Info("career submission recorded", "id", sub.ID, "has_cv", sub.HasCV())

	if s.notifier != nil {
		err := s.notifier.NotifyCareer(ctx, notify.CareerNotification{
			Name:       sub.Name,
			Email:      sub.Email,
			Expertise:  sub.Expertise,
			Message:    sub.Message,
			CVFileName: sub.CVFileName,
		})
		logNotification(kindCareer, sub.ID, err)
	}
	return &sub, nil
}
