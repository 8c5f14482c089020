package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gnarm/flycatcher-medoo/internal/storage"
	"github.com/gnarm/flycatcher-medoo/pkg/records"
)

// Repository is a SQLite-backed implementation of storage.Repository, minus
// Close which the adapter supplies.
type Repository struct {
	db  *sql.DB
	cfg Config
}

// Open opens a SQLite database. In-memory databases are private to a single
// connection, so the pool is pinned to one connection for them.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if isMemory(dsn) {
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// New wraps an already opened database.
func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// NewRepository opens a SQLite connection using the provided DSN and returns
// a Repository plus a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("sqlite: DSN must not be empty")
	}

	db, err := Open(cfg.DSN)
	if err != nil {
		return nil, nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	// Ignore the error: not every build honours the pragma.
	_, _ = db.ExecContext(ctx, "PRAGMA foreign_keys = ON;")

	closeFn := func() { db.Close() }
	return &Repository{db: db, cfg: cfg}, closeFn, nil
}

// Kind implements storage.Repository.
func (r *Repository) Kind() string { return "sqlite" }

// Insert writes one row.
func (r *Repository) Insert(ctx context.Context, table string, columns []string, values []any) error {
	if len(columns) != len(values) {
		return fmt.Errorf("sqlite: insert %s: %d columns for %d values", table, len(columns), len(values))
	}
	args, err := storage.EncodeValues(values)
	if err != nil {
		return fmt.Errorf("sqlite: insert %s: %w", table, err)
	}
	if _, err := r.db.ExecContext(ctx, insertSQL(table, columns), args...); err != nil {
		return fmt.Errorf("sqlite: insert %s: %w", table, err)
	}
	return nil
}

// Query runs a read statement.
func (r *Repository) Query(ctx context.Context, query string, args ...any) (records.Rows, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query: %w", err)
	}
	return storage.SQLRows(rows), nil
}

// Exec executes an arbitrary statement (typically DDL) and returns the
// affected-row count. SQLite reports 0 for DDL.
func (r *Repository) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	if strings.TrimSpace(query) == "" {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("sqlite: exec: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlite: rows affected: %w", err)
	}
	return n, nil
}

func isMemory(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}
