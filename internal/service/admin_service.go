package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/devconsult/backend/internal/model"
	"github.com/devconsult/backend/internal/repository"
)

// AdminService answers role questions and performs the one-time admin bootstrap.
type AdminService interface {
	// IsAdmin reports whether userID holds the admin role. Lookup failures
	// are returned as *AdminCheckError; callers must treat them as "no".
	IsAdmin(ctx context.Context, userID string) (bool, error)

	// BootstrapAdmin grants userID the admin role when secret matches the
	// configured hash and no admin has ever been bootstrapped.
	BootstrapAdmin(ctx context.Context, userID, secret string) (*model.Admin, error)
}

type adminServiceImpl struct {
	repo       repository.AdminRepository
	secretHash []byte
}

// NewAdminService creates an AdminService. An empty secretHash disables bootstrap.
func NewAdminService(repo repository.AdminRepository, secretHash string) AdminService {
	return &adminServiceImpl{repo: repo, secretHash: []byte(secretHash)}
}

func (s *adminServiceImpl) IsAdmin(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	ok, err := s.repo.IsAdmin(ctx, userID)
	if err != nil {
		return false, &AdminCheckError{UserID: userID, Err: err}
	}
	return ok, nil
}

func (s *adminServiceImpl) BootstrapAdmin(ctx context.Context, userID, secret string) (*model.Admin, error) {
	if userID == "" {
		return nil, &AuthError{Err: errors.New("no authenticated user")}
	}
	if len(s.secretHash) == 0 {
		return nil, ErrBootstrapUnavailable
	}
	if err := bcrypt.CompareHashAndPassword(s.secretHash, []byte(secret)); err != nil {
		slog.Warn("admin bootstrap rejected", "user_id", userID, "reason", "secret mismatch")
		return nil, ErrInvalidBootstrapSecret
	}

	admin, err := s.repo.BootstrapAdmin(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrBootstrapUnavailable) {
			return nil, ErrBootstrapUnavailable
		}
		return nil, err
	}
	slog.Info("admin bootstrapped", "user_id", admin.UserID)
	return admin, nil
}
