package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/devconsult/backend/internal/metrics"
	"github.com/devconsult/backend/internal/model"
	"github.com/devconsult/backend/internal/repository"
	"github.com/devconsult/backend/internal/storage"
)

// Submissions is what the dashboard renders. A table that failed to load is
// empty and has a matching entry in Errors.
type Submissions struct {
	Contacts []*model.ContactSubmission `json:"contact_submissions"`
	Careers  []*model.CareerSubmission  `json:"career_submissions"`
	Errors   []*FetchError              `json:"-"`
}

// ErrorTables lists the tables that failed to load.
func (s Submissions) ErrorTables() []string {
	tables := make([]string, 0, len(s.Errors))
	for _, e := range s.Errors {
		tables = append(tables, e.Table)
	}
	return tables
}

// Viewer reads submissions and stored files for the admin dashboard.
type Viewer struct {
	contacts repository.ContactSubmissionRepository
	careers  repository.CareerSubmissionRepository
	store    storage.Storage
	buckets  map[string]bool
}

// NewViewer creates a Viewer. Only objects in buckets can be opened.
func NewViewer(contacts repository.ContactSubmissionRepository, careers repository.CareerSubmissionRepository, store storage.Storage, buckets ...string) *Viewer {
	allowed := make(map[string]bool, len(buckets))
	for _, b := range buckets {
		allowed[b] = true
	}
	return &Viewer{contacts: contacts, careers: careers, store: store, buckets: allowed}
}

// FetchAll reads both tables concurrently. One failing table does not hide the other.
func (v *Viewer) FetchAll(ctx context.Context) Submissions {
	var (
		out                   Submissions
		contactErr, careerErr *FetchError
		g                     errgroup.Group
	)

	g.Go(func() error {
		rows, err := v.contacts.List(ctx)
		if err != nil {
			contactErr = &FetchError{Table: "contact_submissions", Err: err}
			return nil
		}
		out.Contacts = rows
		return nil
	})
	g.Go(func() error {
		rows, err := v.careers.List(ctx)
		if err != nil {
			careerErr = &FetchError{Table: "career_submissions", Err: err}
			return nil
		}
		out.Careers = rows
		return nil
	})
	_ = g.Wait()

	for _, fe := range []*FetchError{contactErr, careerErr} {
		if fe == nil {
			continue
		}
		metrics.FetchErrorsTotal.WithLabelValues(fe.Table).Inc()
		slog.Error("dashboard fetch failed", "table", fe.Table, "error", fe.Err)
		out.Errors = append(out.Errors, fe)
	}
	if out.Contacts == nil {
		out.Contacts = []*model.ContactSubmission{}
	}
	if out.Careers == nil {
		out.Careers = []*model.CareerSubmission{}
	}
	return out
}

// Open returns the stored object under key in bucket.
func (v *Viewer) Open(ctx context.Context, bucket, key string) (*storage.Object, error) {
	if !v.buckets[bucket] {
		return nil, fmt.Errorf("open %s: %w", bucket, storage.ErrUnknownBucket)
	}
	if !storage.ValidKey(key) {
		return nil, storage.ErrInvalidKey
	}
	return v.store.Open(ctx, bucket, key)
}

// HasBucket reports whether files in bucket can be opened.
func (v *Viewer) HasBucket(bucket string) bool {
	return v.buckets[bucket]
}
