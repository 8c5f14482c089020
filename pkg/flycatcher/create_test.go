package flycatcher

import (
	"context"
	"errors"
	"testing"
)

func TestCreate_BuildsStatementInColumnOrder(t *testing.T) {
	t.Parallel()

	fc := &fakeClient{execN: 0}
	cols := Columns{
		{Name: "id", Options: ColumnOptions{Type: "INT", Length: 10, Unsigned: true, PrimaryKey: true, AutoIncrement: true}},
		{Name: "name", Options: ColumnOptions{Type: "VARCHAR", Length: 255}},
		{Name: "bio", Options: ColumnOptions{Type: "TEXT"}},
	}

	n, err := New(fc).Create(context.Background(), "people", cols, map[string]any{"engine": "InnoDB"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if n != 0 {
		t.Fatalf("Create() = %d, want 0", n)
	}
	want := "CREATE TABLE IF NOT EXISTS people (id INT(10) UNSIGNED PRIMARY KEY AUTO_INCREMENT, name VARCHAR(255), bio TEXT)"
	if len(fc.execs) != 1 || fc.execs[0] != want {
		t.Fatalf("execs = %q, want [%q]", fc.execs, want)
	}
}

func TestCreate_ReturnsClientCount(t *testing.T) {
	t.Parallel()

	fc := &fakeClient{execN: 7}
	n, err := New(fc).Create(context.Background(), "t", Columns{{Name: "a", Options: ColumnOptions{Type: "INT"}}}, nil)
	if err != nil || n != 7 {
		t.Fatalf("Create() = %d, %v; want 7", n, err)
	}
}

func TestCreate_InvalidColumnSendsNothing(t *testing.T) {
	t.Parallel()

	fc := &fakeClient{}
	cols := Columns{
		{Name: "ok", Options: ColumnOptions{Type: "INT"}},
		{Name: "bad", Options: ColumnOptions{Length: 3}},
	}
	_, err := New(fc).Create(context.Background(), "t", cols, nil)

	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("Create() error = %v, want *ConfigurationError", err)
	}
	if ce.Column != "bad" {
		t.Fatalf("ConfigurationError.Column = %q, want bad", ce.Column)
	}
	if len(fc.execs) != 0 {
		t.Fatalf("statement sent despite invalid column: %v", fc.execs)
	}
}

func TestCreate_ExecError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	fc := &fakeClient{execErr: boom}
	_, err := New(fc).Create(context.Background(), "t", Columns{{Name: "a", Options: ColumnOptions{Type: "INT"}}}, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("Create() error = %v, want %v", err, boom)
	}
}

func TestParseAndMapOptions(t *testing.T) {
	t.Parallel()

	o, err := ParseOptions(map[string]any{"type": "INT", "length": 11, "unsigned": true})
	if err != nil {
		t.Fatalf("ParseOptions() error = %v", err)
	}
	frag, err := MapOptions(o)
	if err != nil || frag != "INT(11) UNSIGNED" {
		t.Fatalf("MapOptions() = %q, %v", frag, err)
	}

	_, err = ParseOptions(map[string]any{"type": "INT", "length": "11"})
	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("string length: error = %v, want *ConfigurationError", err)
	}
}
