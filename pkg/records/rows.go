package records

// Rows is a forward-only cursor over a query result. *pgx.Rows satisfies it
// directly; *sql.Rows needs the adapter in internal/storage.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}
