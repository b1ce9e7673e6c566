package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/devconsult/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// bootstrapLockKey serializes concurrent bootstrap attempts.
const bootstrapLockKey int64 = 0x61646d696e

// AdminRepository defines the persistence interface for the admin role table.
type AdminRepository interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
	// BootstrapAdmin grants the first admin. It returns ErrBootstrapUnavailable
	// once any admin exists or bootstrap has already happened.
	BootstrapAdmin(ctx context.Context, userID string) (*model.Admin, error)
}

// PgAdminRepository is the PostgreSQL implementation of AdminRepository.
type PgAdminRepository struct {
	pool *pgxpool.Pool
}

func NewPgAdminRepository(pool *pgxpool.Pool) *PgAdminRepository {
	return &PgAdminRepository{pool: pool}
}

var _ AdminRepository = (*PgAdminRepository)(nil)

func (r *PgAdminRepository) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM admins WHERE user_id = $1)`, userID,
	).Scan(&exists)
	return exists, err
}

func (r *PgAdminRepository) BootstrapAdmin(ctx context.Context, userID string) (*model.Admin, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, bootstrapLockKey); err != nil {
		return nil, fmt.Errorf("acquire bootstrap lock: %w", err)
	}

	var hasAdmin bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM admins)`).Scan(&hasAdmin); err != nil {
		return nil, err
	}
	if hasAdmin {
		return nil, ErrBootstrapUnavailable
	}

	tag, err := tx.Exec(ctx,
		`INSERT INTO admin_bootstrap (id, admin_user_id) VALUES (TRUE, $1) ON CONFLICT (id) DO NOTHING`, userID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrBootstrapUnavailable
	}

	var admin model.Admin
	err = tx.QueryRow(ctx,
		`INSERT INTO admins (user_id) VALUES ($1) RETURNING user_id, created_at`, userID,
	).Scan(&admin.UserID, &admin.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxCommitRollback) {
			return nil, ErrBootstrapUnavailable
		}
		return nil, err
	}
	return &admin, nil
}
