package repository

import (
	"context"

	"github.com/devconsult/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CareerSubmissionRepository defines the persistence interface for CV portal submissions.
type CareerSubmissionRepository interface {
	Create(ctx context.Context, sub *model.CareerSubmission) error
	List(ctx context.Context) ([]*model.CareerSubmission, error)
}

// PgCareerSubmissionRepository is the PostgreSQL implementation of CareerSubmissionRepository.
type PgCareerSubmissionRepository struct {
	pool *pgxpool.Pool
}

func NewPgCareerSubmissionRepository(pool *pgxpool.Pool) *PgCareerSubmissionRepository {
	return &PgCareerSubmissionRepository{pool: pool}
}

var _ CareerSubmissionRepository = (*PgCareerSubmissionRepository)(nil)

func (r *PgCareerSubmissionRepository) Create(ctx context.Context, sub *model.CareerSubmission) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO career_submissions (name, email, expertise, message, cv_file_name, cv_file_path)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		sub.Name, sub.Email, sub.Expertise, sub.Message, sub.CVFileName, sub.CVFilePath,
	).Scan(&sub.ID, &sub.CreatedAt)
}

// List returns every career submission, newest first.
func (r *PgCareerSubmissionRepository) List(ctx context.Context) ([]*model.CareerSubmission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, expertise, message, cv_file_name, cv_file_path, created_at
		 FROM career_submissions
		 ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*model.CareerSubmission, error) {
		var s model.CareerSubmission
		err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Expertise, &s.Message, &s.CVFileName, &s.CVFilePath, &s.CreatedAt)
		return &s, err
	})
}
