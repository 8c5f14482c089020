// Package mysql implements a MySQL/MariaDB repository on database/sql with
// the go-sql-driver connector.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/gnarm/flycatcher-medoo/internal/storage"
	"github.com/gnarm/flycatcher-medoo/pkg/records"
)

// Config holds MySQL repository configuration.
type Config struct {
	DSN    string // go-sql-driver format: user:pass@tcp(host:3306)/db
	Schema string // catalog lookups; empty means DATABASE()
}

// conn is the subset of *sql.DB the repository uses.
type conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Repository is a MySQL-backed implementation of storage.Repository, minus
// Close which the adapter supplies.
type Repository struct {
	db  conn
	cfg Config
}

// NewRepository parses the DSN, opens a pool through a connector, pings it,
// and returns a Repository plus a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	mc, err := mysql.ParseDSN(cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("mysql: dsn: %w", err)
	}
	connector, err := mysql.NewConnector(mc)
	if err != nil {
		return nil, nil, fmt.Errorf("mysql: connector: %w", err)
	}
	db := sql.OpenDB(connector)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("mysql: ping: %w", err)
	}
	closeFn := func() { _ = db.Close() }
	return &Repository{db: db, cfg: cfg}, closeFn, nil
}

// Kind implements storage.Repository.
func (r *Repository) Kind() string { return "mysql" }

// Insert writes one row.
func (r *Repository) Insert(ctx context.Context, table string, columns []string, values []any) error {
	if len(columns) != len(values) {
		return fmt.Errorf("mysql: insert %s: %d columns for %d values", table, len(columns), len(values))
	}
	args, err := storage.EncodeValues(values)
	if err != nil {
		return fmt.Errorf("mysql: insert %s: %w", table, err)
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
		return 0, fmt.Errorf("mysql: rows affected: %w", err)
	}
	return n, nil
}

// annotate adds the SQLSTATE, which MySQLError.Error() only prints when the
// server sent one.
func annotate(op string, err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.SQLState != [5]byte{} {
		return fmt.Errorf("mysql: %s: %w (sqlstate %s)", op, err, string(myErr.SQLState[:]))
	}
	return fmt.Errorf("mysql: %s: %w", op, err)
}

// insertSQL renders INSERT INTO `db`.`t` (`a`, `b`) VALUES (?, ?).
func insertSQL(table string, columns []string) string {
	if len(columns) == 0 {
		return "INSERT INTO " + myFQN(table) + " () VALUES ()"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		myFQN(table),
		strings.Join(mapIdent(columns), ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", "),
	)
}

// catalogQuery counts matching tables. An empty schema falls back to the
// connection's default database.
func catalogQuery(schema, table string) (string, []any) {
	return "SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES" +
		" WHERE TABLE_SCHEMA = COALESCE(NULLIF(?, ''), DATABASE())" +
		" AND TABLE_NAME = ?", []any{schema, table}
}

// myIdent quotes an identifier with backticks, doubling embedded backticks.
func myIdent(id string) string { return "`" + strings.ReplaceAll(id, "`", "``") + "`" }

func myFQN(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = myIdent(p)
	}
	return strings.Join(parts, ".")
}

func mapIdent(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = myIdent(c)
	}
	return out
}
