package service

import (
	"errors"
	"fmt"

	"github.com/devconsult/backend/internal/repository"
)

var (
	// ErrBootstrapUnavailable is returned once the first admin has been granted.
	ErrBootstrapUnavailable = repository.ErrBootstrapUnavailable
	// ErrInvalidBootstrapSecret is returned when the bootstrap secret does not match.
	ErrInvalidBootstrapSecret = errors.New("invalid bootstrap secret")
)

// UploadError is a failed file upload. The submission is not recorded.
type UploadError struct {
	Bucket string
	Err    error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload to %s: %v", e.Bucket, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// DatabaseError is a failed read or write of a submissions table.
type DatabaseError struct {
	Table string
	Err   error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Table, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// NotificationError is a failed operator notification. It is logged, never returned to submitters.
type NotificationError struct {
	Kind string
	Err  error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("%s notification: %v", e.Kind, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

// AuthError is a missing or unusable session.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// AdminCheckError is a failed role lookup. Callers treat it as not-admin.
type AdminCheckError struct {
	UserID string
	Err    error
}

func (e *AdminCheckError) Error() string {
	return fmt.Sprintf("admin check for %s: %v", e.UserID, e.Err)
}

func (e *AdminCheckError) Unwrap() error { return e.Err }

// FetchError is a failed dashboard table read. The other table still renders.
type FetchError struct {
	Table string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Table, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
