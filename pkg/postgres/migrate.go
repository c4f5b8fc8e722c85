package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source driver
)

// RunMigrations applies all pending migrations from source
// (e.g. "file://internal/infrastructure/postgres/migrations").
// An up-to-date schema is not an error.
func RunMigrations(dsn, source string) error {
	return migrateWith(dsn, source, (*migrate.Migrate).Up)
}

// RunMigrationsDown rolls back every migration.
func RunMigrationsDown(dsn, source string) error {
	return migrateWith(dsn, source, (*migrate.Migrate).Down)
}

func migrateWith(dsn, source string, step func(*migrate.Migrate) error) error {
	m, err := migrate.New(source, dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: migrate %s: %w", source, err)
	}
	return nil
}
