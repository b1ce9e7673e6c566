// Package notify emails the site operator about new submissions.
// Delivery is best-effort: callers log failures and never surface them to submitters.
package notify

import "context"

// ContactNotification is the body of the contact notification function.
type ContactNotification struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Message  string  `json:"message"`
	FileName *string `json:"file_name,omitempty"`
	FilePath *string `json:"file_path,omitempty"`
}

// CareerNotification is the body of the career notification function.
type CareerNotification struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Expertise  string  `json:"expertise"`
	Message    *string `json:"message,omitempty"`
	CVFileName *string `json:"cv_file_name,omitempty"`
}

// Dispatcher sends submission notifications.
type Dispatcher interface {
	NotifyContact(ctx context.Context, n ContactNotification) error
	NotifyCareer(ctx context.Context, n CareerNotification) error
}
