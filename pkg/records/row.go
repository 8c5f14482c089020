package records

// Field is one named column value.
type Field struct {
	Name  string
	Value Value
}

// Row is an ordered set of fields. Order is significant: it drives fan-out
// order and the column order of the generated INSERT.
type Row []Field

// With returns a copy of r with field i set to v. r is left untouched.
func (r Row) With(i int, v Value) Row {
	out := make(Row, len(r))
	copy(out, r)
	out[i].Value = v
	return out
}

// Index returns the position of the named field, or -1.
func (r Row) Index(name string) int {
	for i, f := range r {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Get returns the value of the named field.
func (r Row) Get(name string) (Value, bool) {
	if i := r.Index(name); i >= 0 {
		return r[i].Value, true
	}
	return nil, false
}

// Columns returns the field names in order.
func (r Row) Columns() []string {
	out := make([]string, len(r))
	for i, f := range r {
		out[i] = f.Name
	}
	return out
}

// Values returns the field values in order, unwrapped with Raw.
func (r Row) Values() []any {
	out := make([]any, len(r))
	for i, f := range r {
		out[i] = Raw(f.Value)
	}
	return out
}

// Set appends a field, or replaces the value of an existing one in place.
func (r *Row) Set(name string, v Value) {
	if i := r.Index(name); i >= 0 {
		(*r)[i].Value = v
		return
	}
	*r = append(*r, Field{Name: name, Value: v})
}
