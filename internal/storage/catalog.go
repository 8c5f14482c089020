package storage

import (
	"fmt"
	"sync"
)

// CatalogQuery returns a statement that yields a single COUNT(*) row: the
// number of base tables named table in schema. An empty schema means the
// connection's current schema. Names travel as bind arguments wherever the
// dialect allows it.
type CatalogQuery func(schema, table string) (query string, args []any)

var (
	catalogMu sync.RWMutex
	catalogs  = map[string]CatalogQuery{}
)

// RegisterCatalog registers (or replaces) the CatalogQuery for kind.
func RegisterCatalog(kind string, q CatalogQuery) {
	catalogMu.Lock()
	defer catalogMu.Unlock()
	catalogs[kind] = q
}

// Catalog returns the CatalogQuery registered for kind.
func Catalog(kind string) (CatalogQuery, error) {
	catalogMu.RLock()
	q, ok := catalogs[kind]
	catalogMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: no catalog query registered for kind=%q", kind)
	}
	return q, nil
}
