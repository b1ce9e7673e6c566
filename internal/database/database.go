// Package database connects to PostgreSQL and applies the embedded schema migrations.
package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devconsult/backend/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Connect creates a connection pool and pings it.
func Connect(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	slog.Info("connected to database", "host", poolCfg.ConnConfig.Host, "database", poolCfg.ConnConfig.Database)
	return pool, nil
}

// Migrator runs the embedded migrations against one database.
type Migrator struct {
	m *migrate.Migrate
}

// NewMigrator opens a migrator for dbURL (postgres:// URLs are accepted).
func NewMigrator(dbURL string) (*Migrator, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open migration source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, config.MigrateURL(dbURL))
	if err != nil {
		return nil, fmt.Errorf("init migrations: %w", err)
	}
	return &Migrator{m: m}, nil
}

// Up applies all pending migrations. Nothing pending is not an error.
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	mg.logVersion("migrations applied")
	return nil
}

// Down rolls back one migration.
func (mg *Migrator) Down() error {
	if err := mg.m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("roll back migration: %w", err)
	}
	mg.logVersion("migration rolled back")
	return nil
}

// Version reports the applied version. ok is false when nothing has been applied.
func (mg *Migrator) Version() (version uint, dirty bool, ok bool, err error) {
	version, dirty, err = mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, false, nil
	}
	if err != nil {
		return 0, false, false, err
	}
	return version, dirty, true, nil
}

// Close releases the source and database handles.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}

func (mg *Migrator) logVersion(msg string) {
	version, dirty, ok, err := mg.Version()
	if err != nil {
		slog.Warn(msg, "version_error", err)
		return
	}
	slog.Info(msg, "version", version, "dirty", dirty, "applied", ok)
}

// Migrate applies all pending migrations.
func Migrate(dbURL string) error {
	mg, err := NewMigrator(dbURL)
	if err != nil {
		return err
	}
	defer mg.Close()
	return mg.Up()
}
