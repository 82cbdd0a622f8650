package store

import (
	"context"
	"database/sql"
)

// DBTX is the database/sql surface the SQLite key-value backend writes through.
// The SQLite store passes a *sql.Tx from RunInTransaction for SetMany and
// its *sql.DB for single-key writes.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
