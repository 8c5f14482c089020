// Package json decodes JSON documents while keeping object member order.
//
// encoding/json decodes objects into Go maps, which drops the order members
// were written in. Column definitions and row data both depend on that order
// (CREATE TABLE column order, fan-out order), so top-level objects are read
// token by token here. Nested values still go through encoding/json.
//
// Numbers are decoded with UseNumber and normalized: integral values become
// int64, everything else float64. This keeps "length": 255 an integer and
// "length": 25.5 a float, which the DDL option checks rely on.
package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// KV is one object member in document order.
type KV struct {
	Key   string
	Value any
}

// NewDecoder returns a json.Decoder with UseNumber enabled.
func NewDecoder(r io.Reader) *json.Decoder {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return dec
}

// UnmarshalObject decodes b, which must hold a single JSON object.
func UnmarshalObject(b []byte) ([]KV, error) {
	dec := NewDecoder(bytes.NewReader(b))
	kvs, err := DecodeObject(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("json: trailing data after object")
	}
	return kvs, nil
}

// DecodeObject reads the next value from dec, which must be an object.
func DecodeObject(dec *json.Decoder) ([]KV, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("json: expected object, got %v", tok)
	}
	return decodeMembers(dec)
}

// decodeMembers reads object members up to and including the closing brace.
// The opening brace must already be consumed.
func decodeMembers(dec *json.Decoder) ([]KV, error) {
	var out []KV
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("json: read key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("json: expected object key, got %v", tok)
		}
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("json: decode %q: %w", key, err)
		}
		out = append(out, KV{Key: key, Value: Normalize(raw)})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("json: close object: %w", err)
	}
	return out, nil
}

// Normalize converts json.Number values (at any depth) to int64 or float64.
func Normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(string(t), 64); err == nil {
			return f
		}
		return string(t)
	case []any:
		for i := range t {
			t[i] = Normalize(t[i])
		}
		return t
	case map[string]any:
		for k := range t {
			t[k] = Normalize(t[k])
		}
		return t
	default:
		return v
	}
}
