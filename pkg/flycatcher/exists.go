package flycatcher

import (
	"context"
	"fmt"
	"time"

	"github.com/gnarm/flycatcher-medoo/internal/logging"
	"github.com/gnarm/flycatcher-medoo/internal/metrics"
)

// Exists reports whether table is present in the catalog. It issues one
// COUNT(*) query filtered by schema and table name; names are bound, never
// spliced into the statement. A result set with no rows counts as absent.
func (d *DB) Exists(ctx context.Context, table string) (ok bool, err error) {
	start := time.Now()
	defer func() { metrics.RecordStep(d.job, StepExists, err, time.Since(start)) }()

	q, err := d.catalogQuery()
	if err != nil {
		return false, err
	}
	query, args := q(d.schema, table)

	rows, err := d.client.Query(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("flycatcher: exists %s: %w", table, err)
	}
	defer rows.Close()

	var n int64
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return false, fmt.Errorf("flycatcher: exists %s: scan: %w", table, err)
		}
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("flycatcher: exists %s: %w", table, err)
	}

	logging.Debugf("flycatcher: exists table=%s schema=%q count=%d", table, d.schema, n)
	return n != 0, nil
}
