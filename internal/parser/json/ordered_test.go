package json

import (
	"reflect"
	"strings"
	"testing"
)

func TestUnmarshalObject_KeepsOrder(t *testing.T) {
	t.Parallel()

	kvs, err := UnmarshalObject([]byte(`{"z": 1, "a": 2.5, "m": "x", "n": null, "o": {"k": 3}, "l": [1, 2]}`))
	if err != nil {
		t.Fatalf("UnmarshalObject() error = %v", err)
	}

	want := []KV{
		{Key: "z", Value: int64(1)},
		{Key: "a", Value: 2.5},
		{Key: "m", Value: "x"},
		{Key: "n", Value: nil},
		{Key: "o", Value: map[string]any{"k": int64(3)}},
		{Key: "l", Value: []any{int64(1), int64(2)}},
	}
	if !reflect.DeepEqual(kvs, want) {
		t.Fatalf("UnmarshalObject() = %#v\nwant %#v", kvs, want)
	}
}

func TestUnmarshalObject_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "array root", in: `[1]`, want: "expected object"},
		{name: "trailing data", in: `{"a":1} {"b":2}`, want: "trailing data"},
		{name: "broken value", in: `{"a": }`, want: `decode "a"`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := UnmarshalObject([]byte(tt.in))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestNormalize_LargeAndFractional(t *testing.T) {
	t.Parallel()

	kvs, err := UnmarshalObject([]byte(`{"big": 9007199254740993, "f": 1e3, "neg": -4}`))
	if err != nil {
		t.Fatalf("UnmarshalObject() error = %v", err)
	}
	if got := kvs[0].Value; got != int64(9007199254740993) {
		t.Errorf("big = %#v, want exact int64", got)
	}
	// 1e3 is not an integer literal for json.Number.Int64.
	if got := kvs[1].Value; got != float64(1000) {
		t.Errorf("f = %#v, want float64(1000)", got)
	}
	if got := kvs[2].Value; got != int64(-4) {
		t.Errorf("neg = %#v, want int64(-4)", got)
	}
}
