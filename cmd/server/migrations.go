package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/bibliobuddy/internal/config"
	"github.com/phrazzld/bibliobuddy/internal/platform/migrations"
)

// migrationTarget returns the driver name, DSN and dialect for the configured
// SQL backend. Key-value backends without a schema are rejected.
func migrationTarget(cfg *config.Config) (string, string, migrations.Dialect, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return "sqlite3", cfg.Storage.SQLitePath, migrations.SQLite, nil
	case config.BackendPostgres:
		return "pgx", cfg.Storage.PostgresURL, migrations.Postgres, nil
	default:
		return "", "", "", fmt.Errorf("storage backend %q has no migrations", cfg.Storage.Backend)
	}
}

// runMigrations executes one goose command against the configured backend.
func runMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	driver, dsn, dialect, err := migrationTarget(cfg)
	if err != nil {
		return err
	}

	var run func(context.Context, *sql.DB, migrations.Dialect, *slog.Logger) error
	switch command {
	case "up":
		run = migrations.Up
	case "down":
		run = migrations.Down
	case "status":
		run = migrations.Status
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("Error closing migration connection", "error", closeErr)
		}
	}()

	return run(ctx, db, dialect, logger)
}
