// Package flycatcher adds three helpers on top of a SQL client: a table
// existence check, CREATE TABLE generation from column options, and an
// insert that fans sequence-valued fields out into one row per element.
//
// A DB wraps any Client; Open builds one from a registered storage backend
// (sqlite, postgres, mssql, mysql).
//
//	db, err := flycatcher.Open(ctx, "sqlite", "file:app.db")
//	if err != nil { ... }
//	defer db.Close()
//
//	_, err = db.Create(ctx, "people", flycatcher.Columns{
//		{Name: "id", Options: flycatcher.ColumnOptions{Type: "INTEGER", PrimaryKey: true}},
//		{Name: "tag", Options: flycatcher.ColumnOptions{Type: "VARCHAR", Length: 32}},
//	}, nil)
//
//	// Two rows: (1, "a") and (1, "b").
//	n, err := db.Insert(ctx, "people", records.Row{
//		{Name: "id", Value: records.Scalar{V: 1}},
//		{Name: "tag", Value: records.Of([]string{"a", "b"})},
//	})
package flycatcher

import (
	"context"
	"fmt"

	"github.com/gnarm/flycatcher-medoo/internal/storage"
	_ "github.com/gnarm/flycatcher-medoo/internal/storage/all"
	"github.com/gnarm/flycatcher-medoo/pkg/records"
)

// Client is the SQL execution component DB delegates to. Every
// storage.Repository satisfies it.
type Client interface {
	// Kind names the dialect ("sqlite", "postgres", ...). It selects the
	// catalog query used by Exists unless WithCatalog overrides it.
	Kind() string
	// Insert writes one row; values align with columns.
	Insert(ctx context.Context, table string, columns []string, values []any) error
	// Query runs a read statement.
	Query(ctx context.Context, query string, args ...any) (records.Rows, error)
	// Exec runs a statement and returns the affected-row count.
	Exec(ctx context.Context, query string, args ...any) (int64, error)
}

// CatalogQuery builds the COUNT(*) statement Exists runs.
type CatalogQuery = storage.CatalogQuery

// DB is a Client plus the schema and labels the helpers need. It holds no
// other state; concurrent use is as safe as the Client's.
type DB struct {
	client  Client
	schema  string
	job     string
	catalog CatalogQuery
}

// Option configures a DB.
type Option func(*DB)

// WithSchema scopes Exists to schema. Without it the connection's current
// schema (database, for MySQL) is used.
func WithSchema(schema string) Option { return func(d *DB) { d.schema = schema } }

// WithCatalog replaces the backend's catalog query.
func WithCatalog(q CatalogQuery) Option { return func(d *DB) { d.catalog = q } }

// WithJob sets the job label on metrics. Default "flycatcher".
func WithJob(job string) Option { return func(d *DB) { d.job = job } }

// New wraps client.
func New(client Client, opts ...Option) *DB {
	d := &DB{client: client, job: "flycatcher"}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Open opens a storage backend of the given kind and wraps it. The schema
// set with WithSchema is passed to the backend as well.
func Open(ctx context.Context, kind, dsn string, opts ...Option) (*DB, error) {
	d := New(nil, opts...)
	repo, err := storage.New(ctx, storage.Config{Kind: kind, DSN: dsn, Schema: d.schema})
	if err != nil {
		return nil, fmt.Errorf("flycatcher: open %s: %w", kind, err)
	}
	d.client = repo
	return d, nil
}

// Client returns the wrapped client.
func (d *DB) Client() Client { return d.client }

// Close closes the client when it can be closed.
func (d *DB) Close() {
	if c, ok := d.client.(interface{ Close() }); ok {
		c.Close()
	}
}

func (d *DB) catalogQuery() (CatalogQuery, error) {
	if d.catalog != nil {
		return d.catalog, nil
	}
	q, err := storage.Catalog(d.client.Kind())
	if err != nil {
		return nil, fmt.Errorf("flycatcher: %w", err)
	}
	return q, nil
}
