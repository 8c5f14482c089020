package storage

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/vmihailenco/msgpack"

	"github.com/gnarm/flycatcher-medoo/pkg/records"
)

// EncodeValue converts a row value into something a driver accepts:
//
//   - records.JSON    -> JSON text (string)
//   - records.Opaque  -> msgpack bytes
//   - records.Scalar  -> its payload, encoded by the rules below
//   - maps, slices and arrays other than []byte -> msgpack bytes
//   - driver.Valuer and everything else -> unchanged
//
// A records.FanOut here means the caller skipped expansion; it is an error.
func EncodeValue(v any) (any, error) {
	switch t := v.(type) {
	case nil, []byte, driver.Valuer:
		return v, nil
	case records.Scalar:
		return EncodeValue(t.V)
	case records.JSON:
		b, err := json.Marshal(t.V)
		if err != nil {
			return nil, fmt.Errorf("storage: encode json: %w", err)
		}
		return string(b), nil
	case records.Opaque:
		return encodeOpaque(t.V)
	case records.FanOut:
		return nil, fmt.Errorf("storage: unexpanded fan-out value with %d elements", len(t))
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return encodeOpaque(v)
	default:
		return v, nil
	}
}

// EncodeValues applies EncodeValue to each element. The input is not
// modified.
func EncodeValues(values []any) ([]any, error) {
	out := make([]any, len(values))
	for i, v := range values {
		enc, err := EncodeValue(v)
		if err != nil {
			return nil, err
		}
		out[i] = enc
	}
	return out, nil
}

// DecodeOpaque reverses the msgpack encoding applied to records.Opaque
// values.
func DecodeOpaque(b []byte, v any) error {
	if err := msgpack.Unmarshal(b, v); err != nil {
		return fmt.Errorf("storage: decode opaque: %w", err)
	}
	return nil
}

func encodeOpaque(v any) ([]byte, error) {
	b, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("storage: encode opaque: %w", err)
	}
	return b, nil
}
