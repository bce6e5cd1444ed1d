package database

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"

	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source

	"equiprent-backend/internal/logger"
)

// Migrate applies all pending migrations from migrationsPath against the
// database at dbURL. A database that is already up to date is not an error.
func Migrate(dbURL, migrationsPath string) error {
	logger.Info("Running database migrations", "path", migrationsPath)

	m, err := migrate.New(migrationsPath, dbURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("Database migrations: no change needed")
			return nil
		}
		return err
	}

	logger.Info("Database migrations applied")
	return nil
}
