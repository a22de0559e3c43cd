package param

type valueKind uint8

const (
	kindPlain valueKind = iota
	kindTyped
	kindStrategy
)

// Value is the tagged union bound to a single statement cell: a plain
// native value, a (value, TypeTag) pair, or an id-strategy sentinel that
// insert normalization materializes before SQL is built.
type Value struct {
	kind     valueKind
	raw      any
	tag      TypeTag
	strategy IDStrategy
}

// Of wraps a plain native value; its type tag is inferred at bind time.
func Of(v any) Value {
	return Value{kind: kindPlain, raw: v}
}

// Typed wraps a value with an explicit type tag.
func Typed(v any, tag TypeTag) Value {
	return Value{kind: kindTyped, raw: v, tag: tag}
}

// TypedLegacy wraps a value with a legacy integer driver type code.
func TypedLegacy(v any, code int) Value {
	return Typed(v, MapLegacyCode(code))
}

// Default returns the sentinel that renders as the DEFAULT keyword and
// contributes no bound parameter. Used for server-generated columns.
func Default() Value {
	return Value{kind: kindTyped, tag: TagDefault}
}

// Generated returns an id-strategy sentinel for the identity column.
func Generated(s IDStrategy) Value {
	return Value{kind: kindStrategy, strategy: s}
}

// Raw returns the underlying native value.
func (v Value) Raw() any {
	return v.raw
}

// Tag returns the explicit type tag and whether one was set.
func (v Value) Tag() (TypeTag, bool) {
	return v.tag, v.kind == kindTyped
}

// IsDefault reports whether the value is the DEFAULT sentinel.
func (v Value) IsDefault() bool {
	return v.kind == kindTyped && v.tag == TagDefault
}

// Strategy returns the id-generation strategy and whether the value is a
// strategy sentinel.
func (v Value) Strategy() (IDStrategy, bool) {
	return v.strategy, v.kind == kindStrategy
}

// Field is one named cell of a row.
type Field struct {
	Column string
	Value  Value
}

// Row is an ordered sequence of column/value pairs. Order is preserved
// exactly as given by the caller; the generated SQL and the flattened
// parameter list both follow it.
type Row []Field

// Columns returns the column names in row order.
func (r Row) Columns() []string {
	cols := make([]string, len(r))
	for i, f := range r {
		cols[i] = f.Column
	}
	return cols
}

// Value returns the value for the column and whether the row has it.
func (r Row) Value(column string) (Value, bool) {
	for _, f := range r {
		if f.Column == column {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Has reports whether the row contains the column.
func (r Row) Has(column string) bool {
	_, ok := r.Value(column)
	return ok
}

// Set replaces the value of an existing column in place, or appends the
// column when absent, and returns the resulting row.
func (r Row) Set(column string, v Value) Row {
	for i, f := range r {
		if f.Column == column {
			r[i].Value = v
			return r
		}
	}
	return append(r, Field{Column: column, Value: v})
}

// Clone returns a copy of the row that can be mutated independently.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}
