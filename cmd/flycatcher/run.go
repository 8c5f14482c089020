package main

import (
	"context"
	"fmt"
	"io"

	"github.com/gnarm/flycatcher-medoo/internal/config"
	"github.com/gnarm/flycatcher-medoo/internal/datasource"
	"github.com/gnarm/flycatcher-medoo/internal/logging"
	"github.com/gnarm/flycatcher-medoo/internal/metrics"
	csvparser "github.com/gnarm/flycatcher-medoo/internal/parser/csv"
	jsonparser "github.com/gnarm/flycatcher-medoo/internal/parser/json"
	"github.com/gnarm/flycatcher-medoo/pkg/flycatcher"
	"github.com/gnarm/flycatcher-medoo/pkg/records"
)

// counters holds per-run statistics for the summary line.
type counters struct {
	tables   int64 // tables declared
	existing int64 // tables already present before Create
	source   int64 // rows read from data files
	inserted int64 // rows handed to the database after fan-out
}

// openSource opens a local file or fetches a URL.
func openSource(ctx context.Context, path string) (io.ReadCloser, error) {
	return datasource.For(path, nil).Open(ctx)
}

// openDB is a test hook; the default opens a registered storage backend.
var openDB = func(ctx context.Context, cfg config.Config) (*flycatcher.DB, error) {
	return flycatcher.Open(ctx, cfg.Storage.Kind, cfg.Storage.DSN,
		flycatcher.WithSchema(cfg.Storage.Schema),
		flycatcher.WithJob(cfg.Job),
	)
}

// run creates every declared table, then inserts every data file in order.
// The first error stops the run; rows already inserted stay.
func run(ctx context.Context, cfg config.Config) error {
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	var c counters
	for _, t := range cfg.Tables {
		if err := ensureTable(ctx, db, t, &c); err != nil {
			return err
		}
	}
	for _, d := range cfg.Data {
		if err := loadFile(ctx, db, cfg.Job, d, &c); err != nil {
			return err
		}
	}

	logSummary(&c)
	return nil
}

func ensureTable(ctx context.Context, db *flycatcher.DB, t config.Table, c *counters) error {
	c.tables++
	ok, err := db.Exists(ctx, t.Name)
	if err != nil {
		return fmt.Errorf("table %s: %w", t.Name, err)
	}
	if ok {
		c.existing++
		logging.Infof("table: %s already exists", t.Name)
	}
	if _, err := db.Create(ctx, t.Name, t.Columns, t.Options); err != nil {
		return fmt.Errorf("table %s: %w", t.Name, err)
	}
	if !ok {
		logging.Infof("table: %s created (%d columns)", t.Name, len(t.Columns))
	}
	return nil
}

func loadFile(ctx context.Context, db *flycatcher.DB, job string, d config.DataFile, c *counters) error {
	f, err := openSource(ctx, d.Path)
	if err != nil {
		return fmt.Errorf("data %s: %w", d.Path, err)
	}
	defer f.Close()

	var rows, inserted int64
	err = streamRows(ctx, d, f, func(line int, row records.Row) error {
		rows++
		metrics.RecordRow(job, "source", 1)
		n, err := db.Insert(ctx, d.Table, row)
		inserted += int64(n)
		if err != nil {
			return fmt.Errorf("row %d: %w", line, err)
		}
		return nil
	})
	c.source += rows
	c.inserted += inserted
	if err != nil {
		return fmt.Errorf("data %s: %w", d.Path, err)
	}
	logging.Infof("data: %s -> %s rows=%d inserted=%d", d.Path, d.Table, rows, inserted)
	return nil
}

// streamRows picks the reader for the file's format.
func streamRows(ctx context.Context, d config.DataFile, r io.Reader, fn func(line int, row records.Row) error) error {
	switch format := d.ResolvedFormat(); format {
	case "json":
		return jsonparser.StreamRows(ctx, r, fn)
	case "csv":
		comma, err := csvparser.ParseComma(d.Comma)
		if err != nil {
			return err
		}
		opt := csvparser.Options{Comma: comma, TrimSpace: d.TrimSpace, ListSep: d.ListSep}
		return csvparser.StreamRows(ctx, r, opt, fn)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func logSummary(c *counters) {
	logging.Infof("summary: tables=%d existing=%d source_rows=%d inserted=%d",
		c.tables, c.existing, c.source, c.inserted)
}
