package store

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrations embed.FS

// Migrate runs the embedded schema migrations for the store's driver.
func (s *Store) Migrate() error {
	var (
		driver database.Driver
		dir    string
		err    error
	)
	switch s.Driver {
	case DriverSQLite:
		dir = "migrations/sqlite"
		driver, err = sqlite.WithInstance(s.DB, &sqlite.Config{})
	case DriverPostgres:
		dir = "migrations/postgres"
		driver, err = migratepgx.WithInstance(s.DB, &migratepgx.Config{})
	default:
		return fmt.Errorf("unsupported database driver %q", s.Driver)
	}
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	src, err := iofs.New(migrations, dir)
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, s.Driver, driver)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	slog.Info("running database schema migrations", "driver", s.Driver)
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		slog.Info("no database schema migration ran, schema already in latest version")
		return nil
	}
	if err != nil {
		return fmt.Errorf("error during database schema migration: %w", err)
	}
	return nil
}
