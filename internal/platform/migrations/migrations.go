// Package migrations embeds the schema for the SQL progress backends and
// applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed sql
var embedded embed.FS

// Dialect selects the migration set.
type Dialect string

// Supported dialects.
const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

func (d Dialect) goose() (goose.Dialect, error) {
	switch d {
	case Postgres:
		return goose.DialectPostgres, nil
	case SQLite:
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("unsupported migration dialect %q", d)
	}
}

// FS returns the migration files for dialect.
func FS(d Dialect) (fs.FS, error) {
	if _, err := d.goose(); err != nil {
		return nil, err
	}
	return fs.Sub(embedded, "sql/"+string(d))
}

func newProvider(db *sql.DB, d Dialect) (*goose.Provider, error) {
	dialect, err := d.goose()
	if err != nil {
		return nil, err
	}
	fsys, err := FS(d)
	if err != nil {
		return nil, fmt.Errorf("opening %s migrations: %w", d, err)
	}
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("creating migration provider: %w", err)
	}
	return provider, nil
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, d Dialect, logger *slog.Logger) error {
	log := migrationLogger(logger, d)

	provider, err := newProvider(db, d)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("applying %s migrations: %w", d, err)
	}
	for _, r := range results {
		log.Info("migration applied",
			slog.Int64("version", r.Source.Version),
			slog.Int64("duration_ms", r.Duration.Milliseconds()))
	}
	if len(results) == 0 {
		log.Debug("schema up to date")
	}
	return nil
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, db *sql.DB, d Dialect, logger *slog.Logger) error {
	log := migrationLogger(logger, d)

	provider, err := newProvider(db, d)
	if err != nil {
		return err
	}

	result, err := provider.Down(ctx)
	if err != nil {
		return fmt.Errorf("rolling back %s migration: %w", d, err)
	}
	log.Info("migration rolled back", slog.Int64("version", result.Source.Version))
	return nil
}

// Status logs the state of every known migration.
func Status(ctx context.Context, db *sql.DB, d Dialect, logger *slog.Logger) error {
	log := migrationLogger(logger, d)

	provider, err := newProvider(db, d)
	if err != nil {
		return err
	}

	statuses, err := provider.Status(ctx)
	if err != nil {
		return fmt.Errorf("reading %s migration status: %w", d, err)
	}
	for _, s := range statuses {
		log.Info("migration status",
			slog.Int64("version", s.Source.Version),
			slog.String("state", string(s.State)),
			slog.Time("applied_at", s.AppliedAt))
	}
	return nil
}

func migrationLogger(logger *slog.Logger, d Dialect) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With(
		slog.String("component", "migrations"),
		slog.String("dialect", string(d)),
	)
}
