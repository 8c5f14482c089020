package flycatcher

import (
	"context"
	"errors"

	"github.com/gnarm/flycatcher-medoo/pkg/records"
)

type insertCall struct {
	table   string
	columns []string
	values  []any
}

// fakeClient records every call. failAt makes the Nth insert (1-based) fail.
type fakeClient struct {
	kind    string
	inserts []insertCall
	queries []string
	args    [][]any
	execs   []string

	failAt   int
	execN    int64
	execErr  error
	queryErr error
	rows     *fakeRows
	closed   bool
}

var errInsert = errors.New("insert failed")

func (f *fakeClient) Kind() string {
	if f.kind == "" {
		return "sqlite"
	}
	return f.kind
}

func (f *fakeClient) Insert(ctx context.Context, table string, columns []string, values []any) error {
	f.inserts = append(f.inserts, insertCall{table: table, columns: columns, values: values})
	if f.failAt > 0 && len(f.inserts) == f.failAt {
		return errInsert
	}
	return nil
}

func (f *fakeClient) Query(ctx context.Context, query string, args ...any) (records.Rows, error) {
	f.queries = append(f.queries, query)
	f.args = append(f.args, args)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if f.rows == nil {
		return &fakeRows{}, nil
	}
	return f.rows, nil
}

func (f *fakeClient) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	f.execs = append(f.execs, query)
	return f.execN, f.execErr
}

func (f *fakeClient) Close() { f.closed = true }

// fakeRows yields counts, one per row.
type fakeRows struct {
	counts  []int64
	pos     int
	scanErr error
	err     error
	closed  bool
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.counts) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	*(dest[0].(*int64)) = r.counts[r.pos-1]
	return nil
}

func (r *fakeRows) Err() error { return r.err }
func (r *fakeRows) Close()     { r.closed = true }
