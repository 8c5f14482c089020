package ddl

import (
	"encoding/json"
	"math"
	"strings"

	jsonparser "github.com/gnarm/flycatcher-medoo/internal/parser/json"
)

// Option keys accepted by ParseOptions. Unknown keys are ignored.
const (
	OptType          = "type"
	OptLength        = "length"
	OptUnsigned      = "unsigned"
	OptPrimaryKey    = "primary_key"
	OptAutoIncrement = "auto_increment"
)

// ParseOptions converts a loose option map into ColumnOptions.
//
//   - "type" must be present and a non-empty string. Other value kinds (a
//     number, a bool) are rejected rather than spliced into the DDL.
//   - "length", when present and non-nil, must be an integer: Go integer
//     kinds or an integral json.Number. Numeric strings and floats fail.
//     A present length is always rendered, so 0 yields "(0)".
//   - boolean modifiers are set only when the value is exactly true; any
//     other value (including "true" or 1) leaves them off.
func ParseOptions(m map[string]any) (ColumnOptions, error) {
	var o ColumnOptions

	switch t := m[OptType].(type) {
	case nil:
		return o, missingType()
	case string:
		if strings.TrimSpace(t) == "" {
			return o, missingType()
		}
		o.Type = t
	default:
		return o, &ConfigurationError{Option: OptType, Reason: "must be a string"}
	}

	if v, ok := m[OptLength]; ok && v != nil {
		n, ok := asInt(v)
		if !ok {
			return o, &ConfigurationError{Option: OptLength, Reason: "must be an integer"}
		}
		o.Length = n
		o.HasLength = true
	}

	o.Unsigned = isTrue(m[OptUnsigned])
	o.PrimaryKey = isTrue(m[OptPrimaryKey])
	o.AutoIncrement = isTrue(m[OptAutoIncrement])
	return o, nil
}

// UnmarshalJSON decodes a JSON object of column name to option object,
// keeping the order the columns were written in:
//
//	{"id": {"type": "INT", "primary_key": true}, "name": {"type": "VARCHAR", "length": 255}}
func (cs *Columns) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*cs = nil
		return nil
	}
	kvs, err := jsonparser.UnmarshalObject(b)
	if err != nil {
		return err
	}
	out := make(Columns, 0, len(kvs))
	for _, kv := range kvs {
		m, ok := kv.Value.(map[string]any)
		if !ok {
			return &ConfigurationError{Column: kv.Key, Reason: "options must be an object"}
		}
		opts, err := ParseOptions(m)
		if err != nil {
			return withColumn(err, kv.Key)
		}
		out = append(out, Column{Name: kv.Key, Options: opts})
	}
	*cs = out
	return nil
}

// MarshalJSON writes the same object shape UnmarshalJSON reads.
func (cs Columns) MarshalJSON() ([]byte, error) {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, c := range cs {
		if i > 0 {
			sb.WriteByte(',')
		}
		k, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		m := map[string]any{OptType: c.Options.Type}
		if c.Options.HasLength || c.Options.Length != 0 {
			m[OptLength] = c.Options.Length
		}
		if c.Options.Unsigned {
			m[OptUnsigned] = true
		}
		if c.Options.PrimaryKey {
			m[OptPrimaryKey] = true
		}
		if c.Options.AutoIncrement {
			m[OptAutoIncrement] = true
		}
		v, err := json.Marshal(m)
		if err != nil {
			return nil, err
		}
		sb.Write(k)
		sb.WriteByte(':')
		sb.Write(v)
	}
	sb.WriteByte('}')
	return []byte(sb.String()), nil
}

func missingType() error {
	return &ConfigurationError{Option: OptType, Reason: "you must specify the column type, e.g. VARCHAR, INT"}
}

func isTrue(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return fitInt(n)
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return fitInt(int64(n))
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return fitInt(int64(n))
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return fitInt(int64(n))
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return fitInt(i)
	default:
		return 0, false
	}
}

func fitInt(n int64) (int, bool) {
	if n > math.MaxInt || n < math.MinInt {
		return 0, false
	}
	return int(n), true
}
