package records

import (
	"reflect"
	"strings"
	"testing"
)

func TestOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want Value
	}{
		{name: "nil", in: nil, want: Scalar{}},
		{name: "int", in: 7, want: Scalar{V: 7}},
		{name: "string", in: "x", want: Scalar{V: "x"}},
		{name: "bytes stay scalar", in: []byte("ab"), want: Scalar{V: []byte("ab")}},
		{name: "map stays scalar", in: map[string]any{"k": 1}, want: Scalar{V: map[string]any{"k": 1}}},
		{name: "value passthrough", in: JSON{V: []any{1}}, want: JSON{V: []any{1}}},
		{name: "any slice", in: []any{1, "a"}, want: FanOut{Scalar{V: 1}, Scalar{V: "a"}}},
		{name: "typed slice", in: []string{"a", "b"}, want: FanOut{Scalar{V: "a"}, Scalar{V: "b"}}},
		{name: "array", in: [2]int{1, 2}, want: FanOut{Scalar{V: 1}, Scalar{V: 2}}},
		{
			name: "nested",
			in:   []any{[]any{1, 2}, 3},
			want: FanOut{FanOut{Scalar{V: 1}, Scalar{V: 2}}, Scalar{V: 3}},
		},
		{name: "empty slice", in: []any{}, want: FanOut{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Of(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Of(%#v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRaw(t *testing.T) {
	t.Parallel()

	if got := Raw(Scalar{V: 3}); got != 3 {
		t.Fatalf("Raw(Scalar) = %#v, want 3", got)
	}
	j := JSON{V: []any{1, 2}}
	if got := Raw(j); !reflect.DeepEqual(got, j) {
		t.Fatalf("Raw(JSON) = %#v, want wrapper kept", got)
	}
	o := Opaque{V: map[string]any{"a": 1}}
	if got := Raw(o); !reflect.DeepEqual(got, o) {
		t.Fatalf("Raw(Opaque) = %#v, want wrapper kept", got)
	}
}

func TestParseTagged(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		column string
		value  any
		want   Field
	}{
		{
			name:   "json tag keeps sequence intact",
			column: "meta(JSON)",
			value:  []any{1, 2},
			want:   Field{Name: "meta", Value: JSON{V: []any{1, 2}}},
		},
		{
			name:   "serialize tag is stripped",
			column: "blob(SERIALIZE)",
			value:  []any{"a"},
			want:   Field{Name: "blob", Value: Opaque{V: []any{"a"}}},
		},
		{
			name:   "untagged sequence fans out",
			column: "tags",
			value:  []any{"a", "b"},
			want:   Field{Name: "tags", Value: FanOut{Scalar{V: "a"}, Scalar{V: "b"}}},
		},
		{
			name:   "untagged scalar",
			column: "name",
			value:  "ada",
			want:   Field{Name: "name", Value: Scalar{V: "ada"}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ParseTagged(tt.column, tt.value); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ParseTagged(%q) = %#v, want %#v", tt.column, got, tt.want)
			}
		})
	}
}

func TestFromTagged(t *testing.T) {
	t.Parallel()

	row, err := FromTagged(
		[]string{"id", "tags", "extra(JSON)"},
		map[string]any{"id": 1, "tags": []any{"x", "y"}, "extra(JSON)": []any{1}},
	)
	if err != nil {
		t.Fatalf("FromTagged() error = %v", err)
	}
	if got, want := row.Columns(), []string{"id", "tags", "extra"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Columns() = %v, want %v", got, want)
	}

	errCases := []struct {
		name string
		keys []string
		m    map[string]any
		want string
	}{
		{name: "missing key", keys: []string{"a", "b"}, m: map[string]any{"a": 1, "c": 2}, want: `key "b" not in row`},
		{name: "count mismatch", keys: []string{"a"}, m: map[string]any{"a": 1, "b": 2}, want: "1 keys for 2 values"},
		{name: "tag collision", keys: []string{"a", "a(JSON)"}, m: map[string]any{"a": 1, "a(JSON)": 2}, want: `duplicate column "a"`},
	}
	for _, tc := range errCases {
		if _, err := FromTagged(tc.keys, tc.m); err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: error = %v, want containing %q", tc.name, err, tc.want)
		}
	}
}

func TestRowWithLeavesOriginalUntouched(t *testing.T) {
	t.Parallel()

	r := Row{{Name: "a", Value: Scalar{V: 1}}, {Name: "b", Value: FanOut{Scalar{V: 2}}}}
	c := r.With(1, Scalar{V: 2})

	if _, ok := r[1].Value.(FanOut); !ok {
		t.Fatalf("original row mutated: %#v", r)
	}
	if got := c.Values(); !reflect.DeepEqual(got, []any{1, 2}) {
		t.Fatalf("copy Values() = %#v, want [1 2]", got)
	}
}

func TestRowSetAndGet(t *testing.T) {
	t.Parallel()

	var r Row
	r.Set("a", Scalar{V: 1})
	r.Set("b", Scalar{V: 2})
	r.Set("a", Scalar{V: 3})

	if len(r) != 2 {
		t.Fatalf("len = %d, want 2", len(r))
	}
	v, ok := r.Get("a")
	if !ok || !reflect.DeepEqual(v, Scalar{V: 3}) {
		t.Fatalf("Get(a) = %#v, %v", v, ok)
	}
	if _, ok := r.Get("zz"); ok {
		t.Fatalf("Get(zz) found a value")
	}
}
