// Package sqlite implements a SQLite-backed storage.Repository.
package sqlite

// Config holds SQLite repository configuration derived from storage.Config.
type Config struct {
	// DSN is a SQLite connection string or file path, e.g.:
	//   "file:app.db?cache=shared"
	//   ":memory:"
	DSN string

	// Schema names an attached database ("main", "temp" or an ATTACH alias)
	// for catalog lookups. Empty means "main".
	Schema string
}
