// Package config defines the JSON job file read by cmd/flycatcher: which
// database to open, which tables to create, and which data files to insert.
//
// Example:
//
//	{
//	  "job": "seed",
//	  "storage": {"kind": "sqlite", "dsn": "file:seed.db"},
//	  "tables": [
//	    {"name": "people", "columns": {
//	      "id":   {"type": "INTEGER", "primary_key": true},
//	      "name": {"type": "VARCHAR", "length": 64}
//	    }}
//	  ],
//	  "data": [
//	    {"table": "people", "path": "people.json"},
//	    {"table": "people", "path": "more.csv", "list_sep": "|"}
//	  ],
//	  "metrics": {"backend": "none"},
//	  "log": {"level": "info"}
//	}
//
// Column order inside "columns" is preserved; it is the order of the
// generated CREATE TABLE.
package config

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gnarm/flycatcher-medoo/internal/ddl"
)

// Config is the top-level object decoded from a job file.
type Config struct {
	// Job labels metrics and log lines for this run.
	Job string `json:"job"`

	Storage Storage       `json:"storage"`
	Tables  []Table       `json:"tables"`
	Data    []DataFile    `json:"data"`
	Metrics MetricsConfig `json:"metrics"`
	Log     LogConfig     `json:"log"`
}

// Storage selects the database backend.
type Storage struct {
	// Kind is one of "sqlite", "postgres", "mssql", "mysql".
	Kind string `json:"kind"`
	// DSN is handed to the backend driver unchanged.
	DSN string `json:"dsn"`
	// Schema scopes existence checks; empty means the connection default.
	Schema string `json:"schema"`
}

// Table describes one CREATE TABLE IF NOT EXISTS.
type Table struct {
	Name    string      `json:"name"`
	Columns ddl.Columns `json:"columns"`
	// Options are table-level options. They are accepted for forward
	// compatibility and not applied to the generated DDL.
	Options Options `json:"options"`
}

// DataFile is a data file inserted into Table. Relative paths are resolved
// against the directory of the job file by Load.
type DataFile struct {
	Table string `json:"table"`
	Path  string `json:"path"`
	// Format is "json" or "csv". Empty means "csv" for a .csv path and
	// "json" otherwise.
	Format string `json:"format"`

	// CSV settings; ignored for JSON files.
	Comma     string `json:"comma"`
	TrimSpace bool   `json:"trim_space"`
	ListSep   string `json:"list_sep"`
}

// ResolvedFormat returns Format, or the format implied by the path
// extension when Format is empty.
func (d DataFile) ResolvedFormat() string {
	if f := strings.ToLower(strings.TrimSpace(d.Format)); f != "" {
		return f
	}
	if strings.EqualFold(filepath.Ext(d.Path), ".csv") {
		return "csv"
	}
	return "json"
}

// MetricsConfig selects a metrics backend: "none" (default), "pushgateway"
// or "datadog".
type MetricsConfig struct {
	Backend        string `json:"backend"`
	PushgatewayURL string `json:"pushgateway_url"`
	DatadogAddr    string `json:"datadog_addr"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `json:"level"`
}

// Options is a free-form JSON object.
type Options map[string]any

// Keys returns the option names, sorted.
func (o Options) Keys() []string {
	out := make([]string, 0, len(o))
	for k := range o {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// UnmarshalJSON implements json.Unmarshaler so that a missing or null "options"
// object in JSON decodes to a non-nil, empty Options map. This simplifies call
// sites by removing the need to nil-check Options values.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
