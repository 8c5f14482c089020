package records

import (
	"fmt"
	"strings"
)

// Column-name suffixes understood by ParseTagged.
const (
	TagJSON      = "(JSON)"
	TagSerialize = "(SERIALIZE)"
)

// ParseTagged converts a name/value pair written in the tagged-name
// convention into a Field:
//
//	"meta(JSON)"      -> Field{"meta", JSON{v}}
//	"blob(SERIALIZE)" -> Field{"blob", Opaque{v}}
//	"tags" + []any    -> Field{"tags", FanOut{...}}
//	anything else     -> Field{name, Scalar{v}}
func ParseTagged(name string, v any) Field {
	switch {
	case strings.Contains(name, TagJSON):
		return Field{Name: strings.Replace(name, TagJSON, "", 1), Value: JSON{V: v}}
	case strings.Contains(name, TagSerialize):
		return Field{Name: strings.Replace(name, TagSerialize, "", 1), Value: Opaque{V: v}}
	default:
		return Field{Name: name, Value: Of(v)}
	}
}

// FromTagged builds a Row from a tagged-name map. Go maps are unordered, so
// keys fixes the column order; every key must be present in m and every
// entry of m must be listed in keys.
func FromTagged(keys []string, m map[string]any) (Row, error) {
	if len(keys) != len(m) {
		return nil, fmt.Errorf("records: %d keys for %d values", len(keys), len(m))
	}
	row := make(Row, 0, len(keys))
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			return nil, fmt.Errorf("records: key %q not in row", k)
		}
		f := ParseTagged(k, v)
		if row.Index(f.Name) >= 0 {
			return nil, fmt.Errorf("records: duplicate column %q", f.Name)
		}
		row = append(row, f)
	}
	return row, nil
}
