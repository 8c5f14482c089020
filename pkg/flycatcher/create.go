package flycatcher

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gnarm/flycatcher-medoo/internal/ddl"
	"github.com/gnarm/flycatcher-medoo/internal/logging"
	"github.com/gnarm/flycatcher-medoo/internal/metrics"
)

// Create runs CREATE TABLE IF NOT EXISTS for table with columns in order and
// returns the affected-row count the client reports (typically 0 for DDL).
//
// Invalid column options fail with *ConfigurationError before anything is
// sent. tableOptions are accepted and not applied.
//
// Table and column names are emitted unquoted, while Insert and Exists use
// the name as given. On engines that fold unquoted identifiers (Postgres
// lowers them) a mixed-case name such as "People" is created as "people"
// and later calls with "People" will not find it; use lower-case names
// there.
func (d *DB) Create(ctx context.Context, table string, columns Columns, tableOptions map[string]any) (n int64, err error) {
	start := time.Now()
	defer func() { metrics.RecordStep(d.job, StepCreate, err, time.Since(start)) }()

	stmt, err := ddl.BuildCreateTableSQL(table, columns)
	if err != nil {
		return 0, err
	}
	if len(tableOptions) > 0 {
		keys := make([]string, 0, len(tableOptions))
		for k := range tableOptions {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		logging.Debugf("flycatcher: create table=%s ignoring table options %v", table, keys)
	}

	n, err = d.client.Exec(ctx, stmt)
	if err != nil {
		return 0, fmt.Errorf("flycatcher: create %s: %w", table, err)
	}
	logging.Debugf("flycatcher: create table=%s columns=%d affected=%d", table, len(columns), n)
	return n, nil
}
