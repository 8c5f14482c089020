package flycatcher

import (
	"context"
	"errors"
	"testing"

	"github.com/gnarm/flycatcher-medoo/internal/storage"
	"github.com/gnarm/flycatcher-medoo/pkg/records"
)

func openMemDB(tb testing.TB, opts ...Option) *DB {
	tb.Helper()
	db, err := Open(context.Background(), "sqlite", ":memory:", opts...)
	if err != nil {
		tb.Fatalf("Open(sqlite, :memory:): %v", err)
	}
	tb.Cleanup(db.Close)
	return db
}

func queryInt(tb testing.TB, db *DB, query string, args ...any) int64 {
	tb.Helper()
	rows, err := db.Client().Query(context.Background(), query, args...)
	if err != nil {
		tb.Fatalf("query %q: %v", query, err)
	}
	defer rows.Close()
	var n int64
	if !rows.Next() {
		tb.Fatalf("query %q returned no rows (err=%v)", query, rows.Err())
	}
	if err := rows.Scan(&n); err != nil {
		tb.Fatalf("scan %q: %v", query, err)
	}
	return n
}

var peopleColumns = Columns{
	{Name: "id", Options: ColumnOptions{Type: "INTEGER"}},
	{Name: "tag", Options: ColumnOptions{Type: "VARCHAR", Length: 16}},
	{Name: "meta", Options: ColumnOptions{Type: "TEXT"}},
	{Name: "blob", Options: ColumnOptions{Type: "BLOB"}},
}

func TestSQLite_CreateThenExists(t *testing.T) {
	t.Parallel()

	db := openMemDB(t, WithSchema("main"))
	ctx := context.Background()

	ok, err := db.Exists(ctx, "people")
	if err != nil || ok {
		t.Fatalf("Exists(before) = %v, %v; want false", ok, err)
	}

	if _, err := db.Create(ctx, "people", peopleColumns, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}
	// IF NOT EXISTS makes a second call a no-op.
	if _, err := db.Create(ctx, "people", peopleColumns, nil); err != nil {
		t.Fatalf("Create again: %v", err)
	}

	ok, err = db.Exists(ctx, "people")
	if err != nil || !ok {
		t.Fatalf("Exists(after) = %v, %v; want true", ok, err)
	}
}

func TestSQLite_ExistsIsScopedToSchema(t *testing.T) {
	t.Parallel()

	db := openMemDB(t)
	ctx := context.Background()
	if _, err := db.Client().Exec(ctx, "ATTACH DATABASE ':memory:' AS other"); err != nil {
		t.Fatalf("attach: %v", err)
	}
	cols := Columns{{Name: "id", Options: ColumnOptions{Type: "INTEGER"}}}
	if _, err := db.Create(ctx, "other.t", cols, nil); err != nil {
		t.Fatalf("Create(other.t): %v", err)
	}

	tests := []struct {
		name   string
		schema string
		want   bool
	}{
		{name: "default schema", schema: "", want: false},
		{name: "main", schema: "main", want: false},
		{name: "attached", schema: "other", want: true},
	}
	for _, tt := range tests {
		scoped := New(db.Client(), WithSchema(tt.schema))
		ok, err := scoped.Exists(ctx, "t")
		if err != nil {
			t.Fatalf("%s: Exists() error = %v", tt.name, err)
		}
		if ok != tt.want {
			t.Errorf("%s: Exists(t) = %v, want %v", tt.name, ok, tt.want)
		}
	}
}

func TestSQLite_InsertFanOutAndEncodedFields(t *testing.T) {
	t.Parallel()

	db := openMemDB(t)
	ctx := context.Background()
	if _, err := db.Create(ctx, "people", peopleColumns, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}

	n, err := db.InsertTagged(ctx, "people",
		[]string{"id", "tag", "meta(JSON)", "blob(SERIALIZE)"},
		map[string]any{
			"id":              []any{1, 2},
			"tag":             []any{"a", "b", "c"},
			"meta(JSON)":      map[string]any{"k": []any{1, 2}},
			"blob(SERIALIZE)": []any{"x", "y"},
		},
	)
	if err != nil {
		t.Fatalf("InsertTagged: %v", err)
	}
	if n != 6 {
		t.Fatalf("InsertTagged n = %d, want 6", n)
	}
	if got := queryInt(t, db, "SELECT COUNT(*) FROM people"); got != 6 {
		t.Fatalf("rows = %d, want 6", got)
	}
	if got := queryInt(t, db, "SELECT COUNT(*) FROM people WHERE meta = ?", `{"k":[1,2]}`); got != 6 {
		t.Fatalf("rows with JSON meta = %d, want 6", got)
	}

	rows, err := db.Client().Query(ctx, "SELECT blob FROM people LIMIT 1")
	if err != nil {
		t.Fatalf("select blob: %v", err)
	}
	var blob []byte
	if !rows.Next() || rows.Scan(&blob) != nil {
		rows.Close()
		t.Fatalf("no blob row (err=%v)", rows.Err())
	}
	rows.Close()
	var back []string
	if err := storage.DecodeOpaque(blob, &back); err != nil || len(back) != 2 || back[1] != "y" {
		t.Fatalf("opaque blob = %v (err=%v)", back, err)
	}
}

func TestSQLite_InsertStopsAtFirstErrorWithoutRollback(t *testing.T) {
	t.Parallel()

	db := openMemDB(t)
	ctx := context.Background()
	cols := Columns{{Name: "id", Options: ColumnOptions{Type: "INTEGER", PrimaryKey: true}}}
	if _, err := db.Create(ctx, "ids", cols, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}

	n, err := db.Insert(ctx, "ids", records.Row{{Name: "id", Value: records.Of([]int{1, 2, 2, 3})}})
	if err == nil {
		t.Fatalf("Insert() error = nil, want duplicate key")
	}
	if n != 2 {
		t.Fatalf("Insert() n = %d, want 2", n)
	}
	if got := queryInt(t, db, "SELECT COUNT(*) FROM ids"); got != 2 {
		t.Fatalf("rows = %d, want 2 kept", got)
	}
}

func TestSQLite_CreateRejectsBadColumn(t *testing.T) {
	t.Parallel()

	db := openMemDB(t)
	ctx := context.Background()
	_, err := db.Create(ctx, "t", Columns{{Name: "a"}}, nil)
	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("Create() error = %v, want *ConfigurationError", err)
	}
	if ok, _ := db.Exists(ctx, "t"); ok {
		t.Fatalf("table created despite configuration error")
	}
}

func TestOpen_UnknownKind(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), "oracle", "x"); err == nil {
		t.Fatalf("Open(oracle) error = nil")
	}
}
