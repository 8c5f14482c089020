package sqlite

import "strings"

// insertSQL renders INSERT INTO "t" ("a", "b") VALUES (?, ?).
// With no columns the row takes every column default.
func insertSQL(table string, columns []string) string {
	if len(columns) == 0 {
		return "INSERT INTO " + quoteFQN(table) + " DEFAULT VALUES"
	}
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(quoteFQN(table))
	b.WriteString(" (")
	for i, c := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quoteIdent(c))
	}
	b.WriteString(") VALUES (")
	b.WriteString(strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", "))
	b.WriteString(")")
	return b.String()
}

// catalogQuery counts tables in sqlite_master. The schema (an attached
// database name) cannot be bound, so it is quoted into the statement.
func catalogQuery(schema, table string) (string, []any) {
	from := "sqlite_master"
	if s := strings.TrimSpace(schema); s != "" {
		from = quoteIdent(s) + ".sqlite_master"
	}
	return "SELECT COUNT(*) FROM " + from + " WHERE type = 'table' AND name = ?", []any{table}
}

func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

func quoteFQN(fqn string) string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, quoteIdent(p))
	}
	return strings.Join(out, ".")
}
