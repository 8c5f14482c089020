// Package mssql implements a Microsoft SQL Server repository on
// database/sql with the go-mssqldb driver.
package mssql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	mssql "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"

	"github.com/gnarm/flycatcher-medoo/internal/storage"
	"github.com/gnarm/flycatcher-medoo/pkg/records"
)

// Config holds MSSQL repository configuration.
type Config struct {
	DSN    string
	Schema string // catalog lookups; empty means SCHEMA_NAME()
}

// conn is the subset of *sql.DB the repository uses.
type conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Repository is an MSSQL-backed implementation of storage.Repository, minus
// Close which the adapter supplies.
type Repository struct {
	db  conn
	cfg Config
}

// NewRepository constructs a Repository and returns a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	// Validate DSN early to fail fast on obvious mistakes.
	if _, err := msdsn.Parse(cfg.DSN); err != nil {
		return nil, nil, fmt.Errorf("mssql: dsn: %w", err)
	}
	db, err := sql.Open("sqlserver", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("mssql: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("mssql: ping: %w", err)
	}
	closeFn := func() { _ = db.Close() }
	return &Repository{db: db, cfg: cfg}, closeFn, nil
}

// Kind implements storage.Repository.
func (r *Repository) Kind() string { return "mssql" }

// Insert writes one row.
func (r *Repository) Insert(ctx context.Context, table string, columns []string, values []any) error {
	if len(columns) != len(values) {
		return fmt.Errorf("mssql: insert %s: %d columns for %d values", table, len(columns), len(values))
	}
	args, err := storage.EncodeValues(values)
	if err != nil {
		return fmt.Errorf("mssql: insert %s: %w", table, err)
	}
	if _, err := r.db.ExecContext(ctx, insertSQL(table, columns), args...); err != nil {
		return annotate("insert "+table, err)
	}
	return nil
}

// Query runs a read statement.
func (r *Repository) Query(ctx context.Context, query string, args ...any) (records.Rows, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, annotate("query", err)
	}
	return storage.SQLRows(rows), nil
}

// Exec runs a statement and returns the affected-row count.
func (r *Repository) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	if strings.TrimSpace(query) == "" {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, annotate("exec", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mssql: rows affected: %w", err)
	}
	return n, nil
}

// annotate adds the server error number, which mssql.Error.Error() omits.
func annotate(op string, err error) error {
	var msErr mssql.Error
	if errors.As(err, &msErr) {
		return fmt.Errorf("mssql: %s: %w (number %d, state %d)", op, err, msErr.Number, msErr.State)
	}
	return fmt.Errorf("mssql: %s: %w", op, err)
}

// insertSQL renders INSERT INTO [dbo].[t] ([a], [b]) VALUES (@p1, @p2).
func insertSQL(table string, columns []string) string {
	if len(columns) == 0 {
		return "INSERT INTO " + msFQN(table) + " DEFAULT VALUES"
	}
	ph := make([]string, len(columns))
	for i := range ph {
		ph[i] = "@p" + strconv.Itoa(i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		msFQN(table),
		strings.Join(mapIdent(columns), ", "),
		strings.Join(ph, ", "),
	)
}

// catalogQuery counts matching tables in the current database. An empty
// schema falls back to the caller's default schema.
func catalogQuery(schema, table string) (string, []any) {
	return "SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES" +
		" WHERE TABLE_CATALOG = DB_NAME()" +
		" AND TABLE_SCHEMA = COALESCE(NULLIF(@p1, ''), SCHEMA_NAME())" +
		" AND TABLE_NAME = @p2", []any{schema, table}
}

// msIdent safely quotes a SQL Server identifier using [brackets], escaping ].
func msIdent(id string) string { return `[` + strings.ReplaceAll(id, `]`, `]]`) + `]` }

// msFQN quotes a possibly schema-qualified name like "dbo.events" to
// "[dbo].[events]". If no dot is present, returns a single quoted ident.
func msFQN(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = msIdent(p)
	}
	return strings.Join(parts, ".")
}

func mapIdent(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = msIdent(c)
	}
	return out
}
