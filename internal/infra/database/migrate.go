package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"github.com/onmind/role-service/internal/infra/config"
)

// Migrate applies pending schema migrations from the configured directory.
// Already being at the latest version is not an error.
func Migrate(cfg config.PostgresSettings, log *zap.Logger) error {
	if cfg.MigrationsDir == "" {
		log.Info("no migrations directory configured, skipping migrations")
		return nil
	}

	// golang-migrate selects its pgx/v5 driver by URL scheme.
	dsn := strings.Replace(cfg.DSN(), "postgres://", "pgx5://", 1)

	m, err := migrate.New("file://"+cfg.MigrationsDir, dsn)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("database schema up to date")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("read migration version: %w", err)
	}

	log.Info("database migrations applied",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)

	return nil
}
