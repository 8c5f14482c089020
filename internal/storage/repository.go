// Package storage contains the storage-agnostic contract the database helpers
// delegate to, plus the registries backends plug into.
//
// Backends (sqlite, postgres, mssql, mysql) register a Factory and a
// CatalogQuery for their kind from init. Callers open a Repository with New
// and never import a backend directly; internal/storage/all links them in.
package storage

import (
	"context"

	"github.com/gnarm/flycatcher-medoo/pkg/records"
)

// Repository is an open database handle.
//
// Insert writes one row. values align with columns; records.JSON and
// records.Opaque values are encoded with EncodeValue before they reach the
// driver. Query runs a read statement. Exec runs DDL/DML and returns the
// affected-row count reported by the driver.
//
// Errors from the driver are returned wrapped with %w and never retried.
type Repository interface {
	Kind() string
	Insert(ctx context.Context, table string, columns []string, values []any) error
	Query(ctx context.Context, query string, args ...any) (records.Rows, error)
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Close()
}
