package flycatcher

import "github.com/gnarm/flycatcher-medoo/internal/ddl"

// Column definitions accepted by Create.
type (
	ColumnOptions = ddl.ColumnOptions
	Column        = ddl.Column
	Columns       = ddl.Columns
)

// ConfigurationError reports invalid column options. Create returns it
// before any statement is sent; match it with errors.As.
type ConfigurationError = ddl.ConfigurationError

// ParseOptions converts a loose option map ({"type": "VARCHAR", "length": 255})
// into ColumnOptions.
func ParseOptions(m map[string]any) (ColumnOptions, error) { return ddl.ParseOptions(m) }

// MapOptions renders the column definition fragment for o, e.g.
// "INT(10) UNSIGNED PRIMARY KEY AUTO_INCREMENT".
func MapOptions(o ColumnOptions) (string, error) { return ddl.MapOptions(o) }

// Step names used in metrics.
const (
	StepExists = "exists"
	StepCreate = "create"
	StepInsert = "insert"
)
