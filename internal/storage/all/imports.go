// Package all links every built-in storage backend into the binary.
//
// Importing it for side effects registers these kinds with the storage
// factory and catalog registries:
//
//   - "sqlite"   (internal/storage/sqlite)
//   - "postgres" (internal/storage/postgres)
//   - "mssql"    (internal/storage/mssql)
//   - "mysql"    (internal/storage/mysql)
//
// Typical usage:
//
//	import _ "github.com/gnarm/flycatcher-medoo/internal/storage/all"
//
//	repo, err := storage.New(ctx, storage.Config{Kind: "postgres", DSN: dsn})
//
// A binary that needs fewer backends can import the wanted packages directly
// instead.
package all

import (
	_ "github.com/gnarm/flycatcher-medoo/internal/storage/mssql"
	_ "github.com/gnarm/flycatcher-medoo/internal/storage/mysql"
	_ "github.com/gnarm/flycatcher-medoo/internal/storage/postgres"
	_ "github.com/gnarm/flycatcher-medoo/internal/storage/sqlite"
)
