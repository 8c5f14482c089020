package json

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gnarm/flycatcher-medoo/pkg/records"
)

// StreamRows reads row objects from r and calls fn once per row, in file
// order. Accepted shapes:
//
//   - a root array of objects: [ {...}, {...} ]
//   - a single object: { ... }
//   - NDJSON / concatenated values of either of the above
//
// Keys use the tagged-name convention ("meta(JSON)", "blob(SERIALIZE)") and
// are converted with records.ParseTagged. line is the 1-based row counter.
// The first error from fn stops the stream and is returned unwrapped.
func StreamRows(ctx context.Context, r io.Reader, fn func(line int, row records.Row) error) error {
	dec := NewDecoder(r)
	line := 0

	emit := func(kvs []KV) error {
		line++
		if err := ctx.Err(); err != nil {
			return err
		}
		row, err := toRow(kvs)
		if err != nil {
			return fmt.Errorf("json: row %d: %w", line, err)
		}
		return fn(line, row)
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("json: row %d: %w", line+1, err)
		}

		switch tok {
		case json.Delim('['):
			for dec.More() {
				kvs, err := DecodeObject(dec)
				if err != nil {
					return fmt.Errorf("json: row %d: %w", line+1, err)
				}
				if err := emit(kvs); err != nil {
					return err
				}
			}
			if _, err := dec.Token(); err != nil {
				return fmt.Errorf("json: close array: %w", err)
			}

		case json.Delim('{'):
			kvs, err := decodeMembers(dec)
			if err != nil {
				return fmt.Errorf("json: row %d: %w", line+1, err)
			}
			if err := emit(kvs); err != nil {
				return err
			}

		default:
			return fmt.Errorf("json: unsupported root value %v (want object or array)", tok)
		}
	}
}

func toRow(kvs []KV) (records.Row, error) {
	row := make(records.Row, 0, len(kvs))
	for _, kv := range kvs {
		f := records.ParseTagged(kv.Key, kv.Value)
		if row.Index(f.Name) >= 0 {
			return nil, fmt.Errorf("duplicate column %q", f.Name)
		}
		row = append(row, f)
	}
	return row, nil
}
