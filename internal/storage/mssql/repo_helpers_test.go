// Package mssql contains tests for helper utilities used by the MSSQL adapter.
package mssql

import (
	"reflect"
	"strings"
	"testing"
)

// TestMsIdent verifies that msIdent properly brackets SQL Server identifiers
// and escapes closing brackets to avoid syntax errors and injection issues.
func TestMsIdent(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"simple", "[simple]"},
		{"dbo", "[dbo]"},
		{"brack]et", "[brack]]et]"},
		{`weird]]name`, `[weird]]]]name]`},
	}
	for _, tc := range cases {
		if got := msIdent(tc.in); got != tc.want {
			t.Fatalf("msIdent(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

// TestMsFQN verifies that msFQN correctly quotes schema-qualified names using
// bracketed identifier segments, preserving multi-part names.
func TestMsFQN(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"table", "[table]"},
		{"dbo.table", "[dbo].[table]"},
		{"sales.q4.table", "[sales].[q4].[table]"},
	}
	for _, tc := range cases {
		if got := msFQN(tc.in); got != tc.want {
			t.Fatalf("msFQN(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestInsertSQL(t *testing.T) {
	cases := []struct {
		table string
		cols  []string
		want  string
	}{
		{"dbo.users", []string{"id", "name"}, "INSERT INTO [dbo].[users] ([id], [name]) VALUES (@p1, @p2)"},
		{"users", []string{"a"}, "INSERT INTO [users] ([a]) VALUES (@p1)"},
		{"users", nil, "INSERT INTO [users] DEFAULT VALUES"},
	}
	for _, tc := range cases {
		if got := insertSQL(tc.table, tc.cols); got != tc.want {
			t.Fatalf("insertSQL(%q, %v) = %q; want %q", tc.table, tc.cols, got, tc.want)
		}
	}
}

func TestCatalogQuery(t *testing.T) {
	q, args := catalogQuery("dbo", "users")
	for _, want := range []string{"INFORMATION_SCHEMA.TABLES", "DB_NAME()", "SCHEMA_NAME()", "@p1", "@p2"} {
		if !strings.Contains(q, want) {
			t.Fatalf("query %q missing %q", q, want)
		}
	}
	if !reflect.DeepEqual(args, []any{"dbo", "users"}) {
		t.Fatalf("args = %v", args)
	}
}
