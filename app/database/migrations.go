package database

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var schemaFS embed.FS

// Migrate brings the schema up to the latest embedded revision.
// Revisions already applied are skipped.
func Migrate(db *DB) error {
	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migrate: open postgres driver: %w", err)
	}

	source, err := iofs.New(schemaFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrate: read embedded schema: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate: apply schema: %w", err)
	}

	revision, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("migrate: read schema revision: %w", err)
	}
	if dirty {
		return fmt.Errorf("migrate: schema revision %d left dirty, repair it before starting", revision)
	}

	slog.Info("Database schema up to date", "revision", revision)

	return nil
}
