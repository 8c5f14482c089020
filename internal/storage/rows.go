package storage

import (
	"database/sql"

	"github.com/gnarm/flycatcher-medoo/pkg/records"
)

// sqlRows adapts *sql.Rows to records.Rows; Close errors are dropped
// because rows.Err already reports iteration failures.
type sqlRows struct{ *sql.Rows }

func (r sqlRows) Close() { _ = r.Rows.Close() }

// SQLRows wraps a database/sql result set.
func SQLRows(rows *sql.Rows) records.Rows { return sqlRows{rows} }
