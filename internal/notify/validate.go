package notify

import (
	"strings"

	"github.com/devconsult/backend/internal/validation"
)

// ValidateContact checks a contact notification body. The function may be
// invoked directly, so the form checks are repeated here.
func ValidateContact(n ContactNotification) error {
	if err := validateIdentity(n.Name, n.Email); err != nil {
		return err
	}
	if strings.TrimSpace(n.Message) == "" {
		return &validation.Error{Field: "message", Message: "Message is required"}
	}
	if validation.TooLong(n.Message, validation.MaxMessageLength) {
		return &validation.Error{Field: "message", Message: "Message must be less than 10000 characters"}
	}
	if n.FileName != nil && validation.TooLong(*n.FileName, validation.MaxFileNameLength) {
		return &validation.Error{Field: "file_name", Message: "File name must be less than 255 characters"}
	}
	return nil
}

// ValidateCareer checks a career notification body.
func ValidateCareer(n CareerNotification) error {
	if err := validateIdentity(n.Name, n.Email); err != nil {
		return err
	}
	if strings.TrimSpace(n.Expertise) == "" {
		return &validation.Error{Field: "expertise", Message: "Expertise is required"}
	}
	if validation.TooLong(n.Expertise, validation.MaxExpertiseLength) {
		return &validation.Error{Field: "expertise", Message: "Expertise must be less than 200 characters"}
	}
	if n.Message != nil && validation.TooLong(*n.Message, validation.MaxMessageLength) {
		return &validation.Error{Field: "message", Message: "Message must be less than 10000 characters"}
	}
	if n.CVFileName != nil && validation.TooLong(*n.CVFileName, validation.MaxFileNameLength) {
		return &validation.Error{Field: "cv_file_name", Message: "File name must be less than 255 characters"}
	}
	return nil
}

func validateIdentity(name, email string) error {
	if strings.TrimSpace(name) == "" {
		return &validation.Error{Field: "name", Message: "Name is required"}
	}
	if validation.TooLong(name, validation.MaxNameLength) {
		return &validation.Error{Field: "name", Message: "Name must be less than 100 characters"}
	}
	if !validation.IsEmail(strings.TrimSpace(email)) {
		return &validation.Error{Field: "email", Message: "Invalid email address"}
	}
	if validation.TooLong(email, validation.MaxEmailLength) {
		return &validation.Error{Field: "email", Message: "Email must be less than 255 characters"}
	}
	return nil
}
