// Package ddl renders CREATE TABLE statements from ordered column
// definitions.
//
// The output is dialect-light (MySQL flavoured modifiers, no
// identifier quoting). It does not:
//
//   - quote or escape table names, column names or types; they are emitted
//     as given, so callers must not pass untrusted input,
//   - add NOT NULL, DEFAULT or table-level constraints.
package ddl

import (
	"fmt"
	"strconv"
	"strings"
)

// MapOptions renders the column fragment
//
//	<TYPE>[(<LENGTH>)][ UNSIGNED][ PRIMARY KEY][ AUTO_INCREMENT]
//
// with modifiers in that fixed order. A missing Type returns a
// *ConfigurationError.
func MapOptions(o ColumnOptions) (string, error) {
	if strings.TrimSpace(o.Type) == "" {
		return "", missingType()
	}

	var sb strings.Builder
	sb.WriteString(o.Type)
	if o.HasLength || o.Length != 0 {
		sb.WriteByte('(')
		sb.WriteString(strconv.Itoa(o.Length))
		sb.WriteByte(')')
	}
	if o.Unsigned {
		sb.WriteString(" UNSIGNED")
	}
	if o.PrimaryKey {
		sb.WriteString(" PRIMARY KEY")
	}
	if o.AutoIncrement {
		sb.WriteString(" AUTO_INCREMENT")
	}
	return sb.String(), nil
}

// BuildCreateTableSQL renders
//
//	CREATE TABLE IF NOT EXISTS <table> (<col1> <fragment1>, <col2> <fragment2>, ...)
//
// Columns keep slice order. The first invalid column aborts with a
// *ConfigurationError naming it.
func BuildCreateTableSQL(table string, cols Columns) (string, error) {
	table = strings.TrimSpace(table)
	if table == "" {
		return "", fmt.Errorf("ddl: table name must not be empty")
	}
	if len(cols) == 0 {
		return "", fmt.Errorf("ddl: at least one column is required")
	}

	defs := make([]string, 0, len(cols))
	for _, c := range cols {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return "", fmt.Errorf("ddl: column with empty name in table %s", table)
		}
		frag, err := MapOptions(c.Options)
		if err != nil {
			return "", withColumn(err, name)
		}
		defs = append(defs, name+" "+frag)
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(defs, ", ")), nil
}
