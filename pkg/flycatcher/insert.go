package flycatcher

import (
	"context"
	"fmt"
	"time"

	"github.com/gnarm/flycatcher-medoo/internal/logging"
	"github.com/gnarm/flycatcher-medoo/internal/metrics"
	"github.com/gnarm/flycatcher-medoo/pkg/records"
)

// Insert writes row into table, expanding records.FanOut fields.
//
// The first FanOut field in row order is expanded: for each element, a copy
// of the row with that field replaced by the element is inserted
// recursively, so elements that are FanOut themselves expand on the next
// pass and later FanOut fields are reached once the earlier ones are
// scalars. Rows without FanOut fields become exactly one client Insert.
// records.JSON and records.Opaque fields are never expanded. An empty
// FanOut produces no rows.
//
// Insert returns the number of rows handed to the client. The first client
// error stops the traversal; rows already written stay written.
func (d *DB) Insert(ctx context.Context, table string, row records.Row) (n int, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordStep(d.job, StepInsert, err, time.Since(start))
		metrics.RecordRow(d.job, "inserted", int64(n))
	}()

	err = d.insert(ctx, table, row, &n)
	logging.Debugf("flycatcher: insert table=%s rows=%d", table, n)
	return n, err
}

// InsertTagged is Insert for rows written in the tagged-name convention:
// "col(JSON)" stores the value as JSON, "col(SERIALIZE)" as an opaque blob,
// and an untagged slice fans out. keys gives the column order.
func (d *DB) InsertTagged(ctx context.Context, table string, keys []string, data map[string]any) (int, error) {
	row, err := records.FromTagged(keys, data)
	if err != nil {
		return 0, fmt.Errorf("flycatcher: insert %s: %w", table, err)
	}
	return d.Insert(ctx, table, row)
}

func (d *DB) insert(ctx context.Context, table string, row records.Row, n *int) error {
	for i, f := range row {
		fan, ok := f.Value.(records.FanOut)
		if !ok {
			continue
		}
		for _, v := range fan {
			if err := d.insert(ctx, table, row.With(i, v), n); err != nil {
				return err
			}
		}
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.client.Insert(ctx, table, row.Columns(), row.Values()); err != nil {
		return fmt.Errorf("flycatcher: insert %s: %w", table, err)
	}
	*n++
	return nil
}
