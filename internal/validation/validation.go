// Package validation checks contact and career form input before any network call.
// Checks run in field order and stop at the first violation.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/devconsult/backend/internal/model"
)

// Field length ceilings, counted in runes.
const (
	MaxNameLength      = 100
	MaxEmailLength     = 255
	MaxMessageLength   = 10000
	MaxExpertiseLength = 200
	MaxFileNameLength  = 255
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Error is the first rule a form input violated. Message is shown to the submitter verbatim.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// ContactInput is the raw contact form.
type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// CareerInput is the raw CV portal form.
type CareerInput struct {
	Name      string
	Email     string
	Expertise string
	Message   string
	Consent   bool
}

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// TooLong reports whether s exceeds max runes.
func TooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}

// Contact validates and normalizes a contact form.
func Contact(in ContactInput) (model.ContactSubmission, error) {
	name, email, err := identity(in.Name, in.Email)
	if err != nil {
		return model.ContactSubmission{}, err
	}

	message := strings.TrimSpace(in.Message)
	if message == "" {
		return model.ContactSubmission{}, &Error{Field: "message", Message: "Message is required"}
	}
	if TooLong(message, MaxMessageLength) {
		return model.ContactSubmission{}, &Error{Field: "message", Message: "Message must be less than 10000 characters"}
	}

	return model.ContactSubmission{Name: name, Email: email, Message: message}, nil
}

// Career validates and normalizes a CV portal form. Consent is required.
func Career(in CareerInput) (model.CareerSubmission, error) {
	name, email, err := identity(in.Name, in.Email)
	if err != nil {
		return model.CareerSubmission{}, err
	}

	expertise := strings.TrimSpace(in.Expertise)
	if expertise == "" {
		return model.CareerSubmission{}, &Error{Field: "expertise", Message: "Expertise is required"}
	}
	if TooLong(expertise, MaxExpertiseLength) {
		return model.CareerSubmission{}, &Error{Field: "expertise", Message: "Expertise must be less than 200 characters"}
	}

	sub := model.CareerSubmission{Name: name, Email: email, Expertise: expertise}
	if message := strings.TrimSpace(in.Message); message != "" {
		if TooLong(message, MaxMessageLength) {
			return model.CareerSubmission{}, &Error{Field: "message", Message: "Message must be less than 10000 characters"}
		}
		sub.Message = &message
	}

	if !in.Consent {
		return model.CareerSubmission{}, &Error{Field: "consent", Message: "Please consent to data processing for recruitment purposes."}
	}
	return sub, nil
}

func identity(rawName, rawEmail string) (string, string, error) {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return "", "", &Error{Field: "name", Message: "Name is required"}
	}
	if TooLong(name, MaxNameLength) {
		return "", "", &Error{Field: "name", Message: "Name must be less than 100 characters"}
	}

	email := strings.TrimSpace(rawEmail)
	if !IsEmail(email) {
		return "", "", &Error{Field: "email", Message: "Invalid email address"}
	}
	if TooLong(email, MaxEmailLength) {
		return "", "", &Error{Field: "email", Message: "Email must be less than 255 characters"}
	}
	return name, email, nil
}
