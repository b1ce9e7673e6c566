package service

import (
	"context"

	"github.com/devconsult/backend/internal/model"
	"github.com/devconsult/backend/internal/validation"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates the form, stores the optional attachment, records the
	// submission and notifies the operator. The returned submission has ID
	// and CreatedAt populated. Notification failures never surface here.
	Submit(ctx context.Context, in validation.ContactInput, attachment *Upload) (*model.ContactSubmission, error)
}
