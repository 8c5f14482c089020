package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Config selects and configures a backend.
type Config struct {
	// Kind is the registered backend name: "sqlite", "postgres", "mssql", "mysql".
	Kind string
	// DSN is passed to the backend's driver unchanged.
	DSN string
	// Schema scopes catalog lookups. Empty means the connection's current
	// schema/database.
	Schema string
}

// Factory opens a Repository for cfg.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	factoryMu sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the Factory for kind. Backends call it
// from init.
func Register(kind string, f Factory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	factories[kind] = f
}

// New opens a Repository using the factory registered for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	kind := strings.ToLower(strings.TrimSpace(cfg.Kind))
	factoryMu.RLock()
	f, ok := factories[kind]
	factoryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage.kind=%s", cfg.Kind)
	}
	cfg.Kind = kind
	return f(ctx, cfg)
}

// ListKinds returns a sorted snapshot of the registered backend kinds.
func ListKinds() []string {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
