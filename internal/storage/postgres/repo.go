// Package postgres implements a PostgreSQL-backed storage.Repository on a
// pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gnarm/flycatcher-medoo/internal/storage"
	"github.com/gnarm/flycatcher-medoo/pkg/records"
)

// Config holds Postgres repository configuration derived from storage.Config.
type Config struct {
	DSN    string // connection string for pgxpool
	Schema string // catalog lookups; empty means current_schema()
}

// pool is the subset of *pgxpool.Pool the repository uses.
type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close()
}

var _ pool = (*pgxpool.Pool)(nil)

// Repository is a Postgres-backed implementation of storage.Repository,
// minus Close which the adapter supplies.
type Repository struct {
	pool pool
	cfg  Config
}

// NewRepository opens a pool, pings it, and returns a Repository plus a
// Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("postgres: DSN must not be empty")
	}
	p, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: pgxpool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.Ping(pingCtx); err != nil {
		p.Close()
		return nil, nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return &Repository{pool: p, cfg: cfg}, p.Close, nil
}

// Kind implements storage.Repository.
func (r *Repository) Kind() string { return "postgres" }

// Insert writes one row.
func (r *Repository) Insert(ctx context.Context, table string, columns []string, values []any) error {
	if len(columns) != len(values) {
		return fmt.Errorf("postgres: insert %s: %d columns for %d values", table, len(columns), len(values))
	}
	args, err := storage.EncodeValues(values)
	if err != nil {
		return fmt.Errorf("postgres: insert %s: %w", table, err)
	}
	if _, err := r.pool.Exec(ctx, insertSQL(table, columns), args...); err != nil {
		return annotate("insert "+table, err)
	}
	return nil
}

// Query runs a read statement. pgx.Rows already satisfies records.Rows.
func (r *Repository) Query(ctx context.Context, query string, args ...any) (records.Rows, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, annotate("query", err)
	}
	return rows, nil
}

// Exec implements storage.Repository.Exec for Postgres.
func (r *Repository) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	if strings.TrimSpace(query) == "" {
		return 0, nil
	}
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, annotate("exec", err)
	}
	return tag.RowsAffected(), nil
}

// annotate adds the server-side detail line, which pgconn leaves out of
// PgError.Error().
func annotate(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Detail != "" {
		return fmt.Errorf("postgres: %s: %w (detail: %s)", op, err, pgErr.Detail)
	}
	return fmt.Errorf("postgres: %s: %w", op, err)
}

// insertSQL renders INSERT INTO "s"."t" ("a", "b") VALUES ($1, $2).
func insertSQL(table string, columns []string) string {
	if len(columns) == 0 {
		return "INSERT INTO " + pgFQN(table) + " DEFAULT VALUES"
	}
	ph := make([]string, len(columns))
	for i := range ph {
		ph[i] = "$" + strconv.Itoa(i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pgFQN(table),
		strings.Join(mapIdent(columns), ", "),
		strings.Join(ph, ", "),
	)
}

// catalogQuery counts matching tables in the current database. An empty
// schema falls back to current_schema() on the server.
func catalogQuery(schema, table string) (string, []any) {
	return "SELECT COUNT(*) FROM information_schema.tables" +
		" WHERE table_catalog = current_database()" +
		" AND table_schema = COALESCE(NULLIF($1, ''), current_schema())" +
		" AND table_name = $2", []any{schema, table}
}

// pgIdent safely quotes a single identifier segment for Postgres.
func pgIdent(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` }

// pgFQN quotes a possibly schema-qualified name like "public.events" to
// "public"."events". If no dot is present, returns a single quoted ident.
func pgFQN(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = pgIdent(p)
	}
	return strings.Join(parts, ".")
}

// mapIdent maps a list of column names to their quoted forms.
func mapIdent(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = pgIdent(c)
	}
	return out
}
