package placeholder

import (
	"database/sql/driver"
	"slices"
	"testing"

	dbal "github.com/alexk136/dbal-manager"
	"github.com/alexk136/dbal-manager/dialect"
	"github.com/alexk136/dbal-manager/param"
)

func TestFlatten_Plain(t *testing.T) {
	rows := []param.Row{
		{{Column: "id", Value: param.Of(1)}, {Column: "name", Value: param.Of("a")}},
		{{Column: "id", Value: param.Of(2)}, {Column: "name", Value: param.Of("b")}},
	}

	params, types, err := Flatten(rows, nil, dialect.MySQL)
	if err != nil {
		t.Fatalf("Flatten() error: %v", err)
	}
	if want := []any{1, "a", 2, "b"}; !slices.Equal(params, want) {
		t.Errorf("params = %v, want %v", params, want)
	}
	wantTypes := []param.WireType{param.WireInteger, param.WireString, param.WireInteger, param.WireString}
	if !slices.Equal(types, wantTypes) {
		t.Errorf("types = %v, want %v", types, wantTypes)
	}
}

func TestFlatten_DefaultSentinelSkipped(t *testing.T) {
	rows := []param.Row{
		{{Column: "id", Value: param.Default()}, {Column: "name", Value: param.Of("a")}},
	}

	params, types, err := Flatten(rows, nil, dialect.MySQL)
	if err != nil {
		t.Fatalf("Flatten() error: %v", err)
	}
	if want := []any{"a"}; !slices.Equal(params, want) {
		t.Errorf("params = %v, want %v", params, want)
	}
	if len(types) != 1 {
		t.Errorf("len(types) = %d, want 1", len(types))
	}
}

// The keyed shape binds, for every set column, each row's where values
// followed by the set value, then one trailing run per distinct where
// combination.
func TestFlatten_Keyed(t *testing.T) {
	rows := []param.Row{
		{{Column: "id", Value: param.Of(1)}, {Column: "name", Value: param.Of("a")}, {Column: "age", Value: param.Of(30)}},
		{{Column: "id", Value: param.Of(2)}, {Column: "name", Value: param.Of("b")}, {Column: "age", Value: param.Of(40)}},
	}

	params, _, err := Flatten(rows, []string{"id"}, dialect.MySQL)
	if err != nil {
		t.Fatalf("Flatten() error: %v", err)
	}
	want := []any{
		1, "a", 2, "b", // name arms
		1, 30, 2, 40, // age arms
		1, 2, // distinct where runs
	}
	if !slices.Equal(params, want) {
		t.Errorf("params = %v, want %v", params, want)
	}
}

func TestFlatten_KeyedDeduplicatesWhereRuns(t *testing.T) {
	rows := []param.Row{
		{{Column: "id", Value: param.Of(1)}, {Column: "name", Value: param.Of("a")}},
		{{Column: "id", Value: param.Of(1)}, {Column: "name", Value: param.Of("b")}},
		{{Column: "id", Value: param.Of(2)}, {Column: "name", Value: param.Of("c")}},
	}

	params, _, err := Flatten(rows, []string{"id"}, dialect.MySQL)
	if err != nil {
		t.Fatalf("Flatten() error: %v", err)
	}
	// Three CASE arms, but only two distinct where runs.
	want := []any{1, "a", 1, "b", 2, "c", 1, 2}
	if !slices.Equal(params, want) {
		t.Errorf("params = %v, want %v", params, want)
	}
}

func TestFlatten_KeyedSkipsMissingAndDefaultCells(t *testing.T) {
	rows := []param.Row{
		{{Column: "id", Value: param.Of(1)}, {Column: "name", Value: param.Of("a")}},
		{{Column: "id", Value: param.Of(2)}, {Column: "age", Value: param.Of(40)}},
		{{Column: "id", Value: param.Of(3)}, {Column: "name", Value: param.Default()}},
	}

	params, _, err := Flatten(rows, []string{"id"}, dialect.MySQL)
	if err != nil {
		t.Fatalf("Flatten() error: %v", err)
	}
	// Row 2 has no name cell and row 3's is DEFAULT, so name contributes
	// one arm; age contributes one arm; three distinct where runs.
	want := []any{1, "a", 2, 40, 1, 2, 3}
	if !slices.Equal(params, want) {
		t.Errorf("params = %v, want %v", params, want)
	}
}

func TestFlatten_WhereFieldErrors(t *testing.T) {
	t.Run("missing where field", func(t *testing.T) {
		rows := []param.Row{{{Column: "name", Value: param.Of("a")}}}
		_, _, err := Flatten(rows, []string{"id"}, dialect.MySQL)
		if !dbal.IsValidation(err) {
			t.Errorf("Flatten() error = %v, want validation error", err)
		}
	})

	t.Run("default in where field", func(t *testing.T) {
		rows := []param.Row{{
			{Column: "id", Value: param.Default()},
			{Column: "name", Value: param.Of("a")},
		}}
		_, _, err := Flatten(rows, []string{"id"}, dialect.MySQL)
		if !dbal.IsValidation(err) {
			t.Errorf("Flatten() error = %v, want validation error", err)
		}
	})
}

func TestFlatten_EmptyBatch(t *testing.T) {
	_, _, err := Flatten(nil, nil, dialect.MySQL)
	if !dbal.IsValidation(err) {
		t.Errorf("Flatten() error = %v, want validation error", err)
	}
}

func TestFlatten_StrategySentinelRejected(t *testing.T) {
	rows := []param.Row{{{Column: "id", Value: param.Generated(param.StrategyUUID)}}}
	_, _, err := Flatten(rows, nil, dialect.MySQL)
	if !dbal.IsValidation(err) {
		t.Errorf("Flatten() error = %v, want validation error", err)
	}
}

// valuerString satisfies driver.Valuer.
type valuerString string

func (v valuerString) Value() (driver.Value, error) { return string(v) + "!", nil }

func TestFlatten_ValuerUnwrapped(t *testing.T) {
	rows := []param.Row{{{Column: "name", Value: param.Of(valuerString("hi"))}}}

	params, types, err := Flatten(rows, nil, dialect.MySQL)
	if err != nil {
		t.Fatalf("Flatten() error: %v", err)
	}
	if len(params) != 1 || params[0] != "hi!" {
		t.Errorf("params = %v, want [hi!]", params)
	}
	if types[0] != param.WireString {
		t.Errorf("types[0] = %v, want STRING", types[0])
	}
}

func TestFlatten_ArraySerialization(t *testing.T) {
	rows := []param.Row{{{Column: "tags", Value: param.Typed([]string{"a", "b"}, param.TagArray)}}}

	t.Run("mysql", func(t *testing.T) {
		params, _, err := Flatten(rows, nil, dialect.MySQL)
		if err != nil {
			t.Fatalf("Flatten() error: %v", err)
		}
		if params[0] != `["a","b"]` {
			t.Errorf("params[0] = %v, want JSON text", params[0])
		}
	})

	t.Run("postgres", func(t *testing.T) {
		params, _, err := Flatten(rows, nil, dialect.Postgres)
		if err != nil {
			t.Fatalf("Flatten() error: %v", err)
		}
		if params[0] != `{"a","b"}` {
			t.Errorf("params[0] = %v, want array literal", params[0])
		}
	})
}

func TestFlatten_JSONSerialization(t *testing.T) {
	rows := []param.Row{{{Column: "meta", Value: param.Typed(map[string]int{"n": 1}, param.TagJSON)}}}

	for _, d := range []dialect.Dialect{dialect.MySQL, dialect.Postgres} {
		params, _, err := Flatten(rows, nil, d)
		if err != nil {
			t.Fatalf("Flatten(%v) error: %v", d, err)
		}
		if params[0] != `{"n":1}` {
			t.Errorf("params[0] = %v, want JSON text", params[0])
		}
	}

	// Pre-serialized JSON strings pass through untouched.
	pre := []param.Row{{{Column: "meta", Value: param.Typed(`{"k":true}`, param.TagJSONB)}}}
	params, _, err := Flatten(pre, nil, dialect.Postgres)
	if err != nil {
		t.Fatalf("Flatten() error: %v", err)
	}
	if params[0] != `{"k":true}` {
		t.Errorf("params[0] = %v, want passthrough", params[0])
	}
}

func TestSetColumns(t *testing.T) {
	rows := []param.Row{
		{{Column: "id", Value: param.Of(1)}, {Column: "name", Value: param.Of("a")}},
		{{Column: "id", Value: param.Of(2)}, {Column: "age", Value: param.Of(3)}},
	}

	got := SetColumns(rows, []string{"id"})
	if want := []string{"name", "age"}; !slices.Equal(got, want) {
		t.Errorf("SetColumns() = %v, want %v", got, want)
	}
}

func TestDistinctWhere(t *testing.T) {
	rows := []param.Row{
		{{Column: "a", Value: param.Of(1)}, {Column: "b", Value: param.Of("x")}},
		{{Column: "a", Value: param.Of(1)}, {Column: "b", Value: param.Of("x")}},
		{{Column: "a", Value: param.Of(1)}, {Column: "b", Value: param.Of("y")}},
	}

	got, err := DistinctWhere(rows, []string{"a", "b"}, dialect.MySQL)
	if err != nil {
		t.Fatalf("DistinctWhere() error: %v", err)
	}
	if want := []int{0, 2}; !slices.Equal(got, want) {
		t.Errorf("DistinctWhere() = %v, want %v", got, want)
	}
}

func TestDistinctWhere_BytesComparedByContent(t *testing.T) {
	rows := []param.Row{
		{{Column: "k", Value: param.Of([]byte{1, 2})}},
		{{Column: "k", Value: param.Of([]byte{1, 2})}},
		{{Column: "k", Value: param.Of([]byte{9})}},
	}

	got, err := DistinctWhere(rows, []string{"k"}, dialect.MySQL)
	if err != nil {
		t.Fatalf("DistinctWhere() error: %v", err)
	}
	if want := []int{0, 2}; !slices.Equal(got, want) {
		t.Errorf("DistinctWhere() = %v, want %v", got, want)
	}
}
