package repository

import (
	"context"

	"github.com/devconsult/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ContactSubmissionRepository defines the persistence interface for contact submissions.
// It is defined here (in repository) to avoid an import cycle with service.
type ContactSubmissionRepository interface {
	Create(ctx context.Context, sub *model.ContactSubmission) error
	List(ctx context.Context) ([]*model.ContactSubmission, error)
}

// PgContactSubmissionRepository is the PostgreSQL implementation of ContactSubmissionRepository.
type PgContactSubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactSubmissionRepository creates a PgContactSubmissionRepository backed by the given pool.
func NewPgContactSubmissionRepository(pool *pgxpool.Pool) *PgContactSubmissionRepository {
	return &PgContactSubmissionRepository{pool: pool}
}

// Ensure PgContactSubmissionRepository implements ContactSubmissionRepository at compile time.
var _ ContactSubmissionRepository = (*PgContactSubmissionRepository)(nil)

// Create inserts a contact_submissions row and populates sub.ID and sub.CreatedAt
// from the database RETURNING clause.
func (r *PgContactSubmissionRepository) Create(ctx context.Context, sub *model.ContactSubmission) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO contact_submissions (name, email, message, file_name, file_path)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		sub.Name, sub.Email, sub.Message, sub.FileName, sub.FilePath,
	).Scan(&sub.ID, &sub.CreatedAt)
}

// List returns every contact submission, newest first.
func (r *PgContactSubmissionRepository) List(ctx context.Context) ([]*model.ContactSubmission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, message, file_name, file_path, created_at
		 FROM contact_submissions
		 ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*model.ContactSubmission, error) {
		var s model.ContactSubmission
		err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Message, &s.FileName, &s.FilePath, &s.CreatedAt)
		return &s, err
	})
}
