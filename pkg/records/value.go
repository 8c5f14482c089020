// Package records defines the row model handed to the insert path: an ordered
// list of named fields whose values are one of four explicit variants.
//
// The variants replace the older convention of encoding value handling in
// column names ("name(JSON)", "name(SERIALIZE)"). ParseTagged still accepts
// that convention at the edges (data files, map-based callers) and converts
// it into the typed form.
package records

import "reflect"

// Value is the closed set of field values. The unexported marker method keeps
// implementations inside this package.
type Value interface {
	value()
}

// Scalar is a plain column value passed to the driver unchanged. Maps are
// scalars too: only sequences fan out.
type Scalar struct{ V any }

// JSON is structured data the execution layer stores as a JSON document.
// It is never expanded, even when V is a slice.
type JSON struct{ V any }

// Opaque is structured data the execution layer serializes into a binary
// blob. It is never expanded, even when V is a slice.
type Opaque struct{ V any }

// FanOut holds one value per physical row to insert. Elements may be
// FanOut themselves; they expand on the next pass.
type FanOut []Value

func (Scalar) value() {}
func (JSON) value()   {}
func (Opaque) value() {}
func (FanOut) value() {}

// Of wraps a raw Go value. Slices and arrays other than []byte become a
// FanOut (recursively), a Value is returned as is, everything else becomes a
// Scalar.
func Of(v any) Value {
	switch t := v.(type) {
	case nil:
		return Scalar{}
	case Value:
		return t
	case []byte:
		return Scalar{V: t}
	case []any:
		out := make(FanOut, len(t))
		for i, e := range t {
			out[i] = Of(e)
		}
		return out
	}
	rv := reflect.ValueOf(v)
	if k := rv.Kind(); k != reflect.Slice && k != reflect.Array {
		return Scalar{V: v}
	}
	out := make(FanOut, rv.Len())
	for i := range out {
		out[i] = Of(rv.Index(i).Interface())
	}
	return out
}

// Raw unwraps a Scalar; JSON and Opaque are returned wrapped so the
// execution layer can encode them. FanOut values are returned as is.
func Raw(v Value) any {
	if s, ok := v.(Scalar); ok {
		return s.V
	}
	return v
}
