package ddl

import (
	"fmt"
	"strings"
)

// ColumnOptions describes a single column. Only Type is required.
//
// Fields:
//   - Type: SQL type emitted verbatim (e.g., VARCHAR, INT, TEXT). Not escaped.
//   - Length: rendered as TYPE(LENGTH) when HasLength is set or Length is
//     non-zero
//   - HasLength: the length option was given, so a zero Length renders "(0)"
//   - Unsigned, PrimaryKey, AutoIncrement: modifiers rendered when true
type ColumnOptions struct {
	Type          string
	Length        int
	HasLength     bool
	Unsigned      bool
	PrimaryKey    bool
	AutoIncrement bool
}

// Column pairs a column name with its options.
type Column struct {
	Name    string
	Options ColumnOptions
}

// Columns is an ordered column list. CREATE TABLE renders columns in slice
// order.
type Columns []Column

// Names returns the column names in order.
func (cs Columns) Names() []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

// ConfigurationError reports invalid column options. It is returned before
// any statement reaches the database.
type ConfigurationError struct {
	// Column is the offending column, when known.
	Column string
	// Option is the option key at fault ("type", "length", ...).
	Option string
	Reason string
}

func (e *ConfigurationError) Error() string {
	var sb strings.Builder
	sb.WriteString("ddl: ")
	if e.Column != "" {
		fmt.Fprintf(&sb, "column %q: ", e.Column)
	}
	if e.Option != "" {
		sb.WriteString(e.Option)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Reason)
	return sb.String()
}

// withColumn returns err with Column filled in when err is a
// *ConfigurationError that does not name one yet.
func withColumn(err error, column string) error {
	if ce, ok := err.(*ConfigurationError); ok && ce.Column == "" {
		cp := *ce
		cp.Column = column
		return &cp
	}
	return err
}
