package database

import (
	"embed"
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// MigrationSource returns the embedded migration files as a migrate source.
func MigrationSource() (source.Driver, error) {
	return iofs.New(migrationFS, "migrations")
}

// Migrate applies every pending up migration.
func Migrate(databaseURL string, log logrus.FieldLogger) error {
	return run(databaseURL, log, func(m *migrate.Migrate) error { return m.Up() })
}

// Rollback reverts the most recently applied migration. An empty schema is
// left as is.
func Rollback(databaseURL string, log logrus.FieldLogger) error {
	return run(databaseURL, log, func(m *migrate.Migrate) error {
		err := m.Steps(-1)
		if errors.Is(err, os.ErrNotExist) {
			return migrate.ErrNoChange
		}
		return err
	})
}

func run(databaseURL string, log logrus.FieldLogger, step func(*migrate.Migrate) error) (err error) {
	src, err := MigrationSource()
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err == nil {
			err = errors.Join(srcErr, dbErr)
		}
	}()

	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		log.Info("database schema is empty")
		return nil
	case err != nil:
		return fmt.Errorf("read migration version: %w", err)
	case dirty:
		return fmt.Errorf("database schema is dirty at version %d", version)
	}
	log.WithField("version", version).Info("database schema ready")
	return nil
}
