package config

import (
	"fmt"
	"strings"

	"github.com/gnarm/flycatcher-medoo/internal/ddl"
	"github.com/gnarm/flycatcher-medoo/internal/logging"
	"github.com/gnarm/flycatcher-medoo/internal/parser/csv"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation/lint finding for a Config.
//
// Path is a dotted path into the config (e.g. "storage.kind",
// "tables[1].columns.id"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue has SeverityError.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

var knownStorageKinds = map[string]struct{}{
	"sqlite": {}, "postgres": {}, "mssql": {}, "mysql": {},
}

// Validate performs static validation of a Config. It does not mutate c.
// Callers may decide whether to treat warnings as fatal.
func Validate(c Config) []Issue {
	var issues []Issue

	if strings.TrimSpace(c.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it is used for metrics labeling and identifying runs",
		})
	}
	issues = append(issues, validateStorage(c.Storage)...)
	issues = append(issues, validateTables(c.Tables)...)
	issues = append(issues, validateData(c.Data, c.Tables)...)
	issues = append(issues, validateMetrics(c.Metrics)...)
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "log.level",
			Message:  err.Error(),
		})
	}
	return issues
}

func validateStorage(s Storage) []Issue {
	var issues []Issue

	kind := strings.ToLower(strings.TrimSpace(s.Kind))
	if kind == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  "storage.kind must not be empty",
		})
	} else if _, ok := knownStorageKinds[kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q; ensure a matching backend is registered", s.Kind),
		})
	}
	if strings.TrimSpace(s.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.dsn",
			Message:  "storage.dsn must not be empty",
		})
	}
	return issues
}

func validateTables(tables []Table) []Issue {
	var issues []Issue
	seen := map[string]int{}

	for i, t := range tables {
		base := fmt.Sprintf("tables[%d]", i)
		name := strings.TrimSpace(t.Name)
		if name == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     base + ".name",
				Message:  "table name must not be empty",
			})
		} else if j, dup := seen[name]; dup {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     base + ".name",
				Message:  fmt.Sprintf("table %q already declared at tables[%d]", name, j),
			})
		} else {
			seen[name] = i
		}

		if len(t.Columns) == 0 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     base + ".columns",
				Message:  "at least one column is required",
			})
		}
		for _, col := range t.Columns {
			path := base + ".columns." + col.Name
			if strings.TrimSpace(col.Name) == "" {
				issues = append(issues, Issue{Severity: SeverityError, Path: base + ".columns", Message: "column name must not be empty"})
				continue
			}
			if _, err := ddl.MapOptions(col.Options); err != nil {
				issues = append(issues, Issue{Severity: SeverityError, Path: path, Message: err.Error()})
			}
		}

		if len(t.Options) > 0 {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     base + ".options",
				Message:  fmt.Sprintf("table options %v are accepted but not applied", t.Options.Keys()),
			})
		}
	}
	return issues
}

func validateData(files []DataFile, tables []Table) []Issue {
	var issues []Issue

	declared := map[string]bool{}
	for _, t := range tables {
		declared[strings.TrimSpace(t.Name)] = true
	}
	for i, d := range files {
		base := fmt.Sprintf("data[%d]", i)
		if strings.TrimSpace(d.Table) == "" {
			issues = append(issues, Issue{Severity: SeverityError, Path: base + ".table", Message: "data table must not be empty"})
		} else if !declared[d.Table] {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     base + ".table",
				Message:  fmt.Sprintf("table %q is not declared in tables; it must already exist", d.Table),
			})
		}
		if strings.TrimSpace(d.Path) == "" {
			issues = append(issues, Issue{Severity: SeverityError, Path: base + ".path", Message: "data path must not be empty"})
		}
		switch d.ResolvedFormat() {
		case "json":
		case "csv":
			if _, err := csv.ParseComma(d.Comma); err != nil {
				issues = append(issues, Issue{Severity: SeverityError, Path: base + ".comma", Message: err.Error()})
			}
		default:
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     base + ".format",
				Message:  fmt.Sprintf("unsupported format %q (want json or csv)", d.Format),
			})
		}
	}
	return issues
}

func validateMetrics(m MetricsConfig) []Issue {
	switch strings.ToLower(m.Backend) {
	case "", "none":
		return nil
	case "pushgateway", "prom", "prometheus":
		if strings.TrimSpace(m.PushgatewayURL) == "" {
			return []Issue{{
				Severity: SeverityWarning,
				Path:     "metrics.pushgateway_url",
				Message:  "pushgateway backend without a URL; PUSHGATEWAY_URL or the default will be used",
			}}
		}
		return nil
	case "datadog", "dogstatsd":
		return nil
	default:
		return []Issue{{
			Severity: SeverityWarning,
			Path:     "metrics.backend",
			Message:  fmt.Sprintf("unknown metrics backend %q; metrics will be disabled", m.Backend),
		}}
	}
}
