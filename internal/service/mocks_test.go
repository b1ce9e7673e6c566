package service

import (
	"context"

	"github.com/devconsult/backend/internal/model"
	"github.com/devconsult/backend/internal/notify"
)

// ---------------------------------------------------------------------------
// func-field mocks shared by the service tests
// ---------------------------------------------------------------------------

type mockContactRepo struct {
	createFunc func(ctx context.Context, sub *model.ContactSubmission) error
	listFunc   func(ctx context.Context) ([]*model.ContactSubmission, error)
}

func (m *mockContactRepo) Create(ctx context.Context, sub *model.ContactSubmission) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, sub)
	}
	sub.ID = "contact-1"
	return nil
}

func (m *mockContactRepo) List(ctx context.Context) ([]*model.ContactSubmission, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

type mockCareerRepo struct {
	createFunc func(ctx context.Context, sub *model.CareerSubmission) error
	listFunc   func(ctx context.Context) ([]*model.CareerSubmission, error)
}

func (m *mockCareerRepo) Create(ctx context.Context, sub *model.CareerSubmission) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, sub)
	}
	sub.ID = "career-1"
	return nil
}

func (m *mockCareerRepo) List(ctx context.Context) ([]*model.CareerSubmission, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

type mockAdminRepo struct {
	isAdminFunc   func(ctx context.Context, userID string) (bool, error)
	bootstrapFunc func(ctx context.Context, userID string) (*model.Admin, error)
}

func (m *mockAdminRepo) IsAdmin(ctx context.Context, userID string) (bool, error) {
	if m.isAdminFunc != nil {
		return m.isAdminFunc(ctx, userID)
	}
	return false, nil
}

func (m *mockAdminRepo) BootstrapAdmin(ctx context.Context, userID string) (*model.Admin, error) {
	if m.bootstrapFunc != nil {
		return m.bootstrapFunc(ctx, userID)
	}
	return &model.Admin{UserID: userID}, nil
}

type mockUploader struct {
	uploadFunc func(ctx context.Context, bucket string, file Upload) (model.StoredFile, error)
}

func (m *mockUploader) Upload(ctx context.Context, bucket string, file Upload) (model.StoredFile, error) {
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, bucket, file)
	}
	return model.StoredFile{Bucket: bucket, Key: "generated-key", OriginalName: file.Name}, nil
}

type mockDispatcher struct {
	contactFunc func(ctx context.Context, n notify.ContactNotification) error
	careerFunc  func(ctx context.Context, n notify.CareerNotification) error
}

func (m *mockDispatcher) NotifyContact(ctx context.Context, n notify.ContactNotification) error {
	if m.contactFunc != nil {
		return m.contactFunc(ctx, n)
	}
	return nil
}

func (m *mockDispatcher) NotifyCareer(ctx context.Context, n notify.CareerNotification) error {
	if m.careerFunc != nil {
		return m.careerFunc(ctx, n)
	}
	return nil
}
