// Package csv streams CSV data files as rows for the insert path.
//
// The first record is the header; names are trimmed and NFC-normalized so a
// column name matches regardless of how its accents were encoded. Header
// cells use the tagged-name
// convention: a "meta(JSON)" or "blob(SERIALIZE)" cell holds JSON text that
// is decoded before it is wrapped, so structured values survive a CSV round
// trip. Other cells are strings; with ListSep set, an untagged cell that
// contains the separator is split and fans out like a JSON array would.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"

	jsonparser "github.com/gnarm/flycatcher-medoo/internal/parser/json"
	"github.com/gnarm/flycatcher-medoo/pkg/records"
)

const utf8BOM = "\uFEFF"

// Options control the CSV reader.
type Options struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune
	// TrimSpace trims leading and trailing white space from every cell.
	TrimSpace bool
	// ListSep, when non-empty, splits untagged cells into a fan-out.
	ListSep string
}

// StreamRows reads r and calls fn once per data record, in file order. line
// is the 1-based record number, header excluded. A record whose width
// differs from the header is an error; the first error stops the stream.
// Errors from fn are returned unwrapped.
func StreamRows(ctx context.Context, r io.Reader, opt Options, fn func(line int, row records.Row) error) error {
	cr := csv.NewReader(r)
	if opt.Comma != 0 {
		cr.Comma = opt.Comma
	}
	cr.FieldsPerRecord = -1

	h, err := cr.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("csv: read header: %w", err)
	}
	headers := normalizeHeaders(h)

	line := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		line++
		if err != nil {
			return fmt.Errorf("csv: row %d: %w", line, err)
		}
		if len(rec) != len(headers) {
			return fmt.Errorf("csv: row %d: incorrect number of fields: expected %d, got %d", line, len(headers), len(rec))
		}

		row, err := toRow(headers, rec, opt)
		if err != nil {
			return fmt.Errorf("csv: row %d: %w", line, err)
		}
		if err := fn(line, row); err != nil {
			return err
		}
	}
}

func normalizeHeaders(h []string) []string {
	res := make([]string, len(h))
	for i, col := range h {
		c := strings.TrimSpace(col)
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		res[i] = norm.NFC.String(c)
	}
	return res
}

func toRow(headers, rec []string, opt Options) (records.Row, error) {
	row := make(records.Row, 0, len(rec))
	for i, cell := range rec {
		if opt.TrimSpace {
			cell = strings.TrimSpace(cell)
		}
		name := headers[i]

		var f records.Field
		if strings.Contains(name, records.TagJSON) || strings.Contains(name, records.TagSerialize) {
			v, err := decodeCell(cell)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", name, err)
			}
			f = records.ParseTagged(name, v)
		} else {
			f = records.Field{Name: name, Value: cellValue(cell, opt.ListSep)}
		}

		if row.Index(f.Name) >= 0 {
			return nil, fmt.Errorf("duplicate column %q", f.Name)
		}
		row = append(row, f)
	}
	return row, nil
}

// decodeCell parses the JSON text of a tagged cell. An empty cell is nil.
func decodeCell(cell string) (any, error) {
	if cell == "" {
		return nil, nil
	}
	var v any
	dec := jsonparser.NewDecoder(strings.NewReader(cell))
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return jsonparser.Normalize(v), nil
}

func cellValue(cell, sep string) records.Value {
	if sep == "" || !strings.Contains(cell, sep) {
		return records.Scalar{V: cell}
	}
	parts := strings.Split(cell, sep)
	out := make(records.FanOut, len(parts))
	for i, p := range parts {
		out[i] = records.Scalar{V: p}
	}
	return out
}

// ParseComma returns the single rune of s, or ',' when s is empty.
func ParseComma(s string) (rune, error) {
	if s == "" {
		return ',', nil
	}
	if s == `\t` {
		return '\t', nil
	}
	rs := []rune(s)
	if len(rs) != 1 || rs[0] == '"' || rs[0] == '\r' || rs[0] == '\n' {
		return 0, fmt.Errorf("csv: invalid delimiter %q", s)
	}
	return rs[0], nil
}
