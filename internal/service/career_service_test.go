package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/devconsult/backend/internal/model"
	"github.com/devconsult/backend/internal/notify"
	"github.com/devconsult/backend/internal/validation"
)

func validCareerInput() validation.CareerInput {
	return validation.CareerInput{
		Name:      "Amara Okafor",
		Email:     "amara@example.org",
		Expertise: "Trade policy",
		Consent:   true,
	}
}

func TestCareerService_Submit_WithCV(t *testing.T) {
	var saved *model.CareerSubmission
	var notified notify.CareerNotification
	cv := strings.Repeat("x", 2<<20)

	svc := NewCareerService(
		&mockCareerRepo{createFunc: func(_ context.Context, sub *model.CareerSubmission) error {
			saved = sub
			return nil
		}},
		&mockUploader{uploadFunc: func(_ context.Context, bucket string, file Upload) (model.StoredFile, error) {
			if bucket != "cvs" {
				t.Errorf("expected cvs bucket, got %s", bucket)
			}
			if file.Size != int64(len(cv)) {
				t.Errorf("expected size %d, got %d", len(cv), file.Size)
			}
			return model.StoredFile{Bucket: bucket, Key: "1700000000000_cv.pdf", OriginalName: file.Name}, nil
		}},
		&mockDispatcher{careerFunc: func(_ context.Context, n notify.CareerNotification) error {
			notified = n
			return nil
		}},
		"cvs",
	)

	_, err := svc.Submit(context.Background(), validCareerInput(),
		&Upload{Name: "cv.pdf", ContentType: "application/pdf", Size: int64(len(cv)), Body: strings.NewReader(cv)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *saved.CVFileName != "cv.pdf" || *saved.CVFilePath != "1700000000000_cv.pdf" {
		t.Errorf("unexpected cv fields %v %v", *saved.CVFileName, *saved.CVFilePath)
	}
	if notified.CVFileName == nil || *notified.CVFileName != "cv.pdf" {
		t.Errorf("expected cv name in notification, got %+v", notified)
	}
}

func TestCareerService_Submit_ConsentRequired(t *testing.T) {
	svc := NewCareerService(&mockCareerRepo{createFunc: func(context.Context, *model.CareerSubmission) error {
		t.Error("expected no insert")
		return nil
	}}, &mockUploader{}, &mockDispatcher{}, "cvs")

	in := validCareerInput()
	in.Consent = false
	_, err := svc.Submit(context.Background(), in, nil)

	var verr *validation.Error
	if !errors.As(err, &verr) || verr.Field != "consent" {
		t.Fatalf("expected consent error, got %v", err)
	}
}

func TestCareerService_Submit_NotificationFailureIgnored(t *testing.T) {
	svc := NewCareerService(&mockCareerRepo{}, &mockUploader{}, &mockDispatcher{
		careerFunc: func(context.Context, notify.CareerNotification) error {
			return context.DeadlineExceeded
		},
	}, "cvs")

	got, err := svc.Submit(context.Background(), validCareerInput(), nil)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if got.CVFileName != nil {
		t.Error("expected no cv fields")
	}
}

func TestCareerService_Submit_DatabaseError(t *testing.T) {
	svc := NewCareerService(&mockCareerRepo{createFunc: func(context.Context, *model.CareerSubmission) error {
		return errors.New("boom")
	}}, &mockUploader{}, &mockDispatcher{}, "cvs")

	_, err := svc.Submit(context.Background(), validCareerInput(), &Upload{Name: "cv.pdf", Body: strings.NewReader("x")})
	var dberr *DatabaseError
	if !errors.As(err, &dberr) || dberr.Table != "career_submissions" {
		t.Fatalf("expected DatabaseError, got %v", err)
	}
}
