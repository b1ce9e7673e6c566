package repository

import (
	"context"
)

// DB is the database handle the health check pings. *pgxpool.Pool satisfies it.
type DB interface {
	Ping(ctx context.Context) error
}
