package placeholder

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	dbal "github.com/alexk136/dbal-manager"
	"github.com/alexk136/dbal-manager/dialect"
	"github.com/alexk136/dbal-manager/param"
)

// Flatten reduces a batch of rows to one flat parameter list and the
// matching wire-type list, in the exact order the generated SQL binds
// them.
//
// Without whereFields (insert and delete-by-id shapes) parameters follow
// each row's own column order, row by row. With whereFields (the bulk
// update CASE/WHEN shape) the columns are partitioned into set columns
// and where columns: for every set column, every row containing it
// contributes its where values followed by the set value; after all set
// columns, one run of where values is appended per distinct where-value
// combination, in first-encountered order.
//
// DEFAULT-sentinel cells contribute no parameter at all.
func Flatten(rows []param.Row, whereFields []string, d dialect.Dialect) ([]any, []param.WireType, error) {
	if len(rows) == 0 {
		return nil, nil, dbal.Validationf("batch rows must not be empty")
	}

	if len(whereFields) == 0 {
		return flattenPlain(rows, d)
	}
	return flattenKeyed(rows, whereFields, d)
}

func flattenPlain(rows []param.Row, d dialect.Dialect) ([]any, []param.WireType, error) {
	var (
		params []any
		types  []param.WireType
	)
	for _, row := range rows {
		for _, f := range row {
			val, wire, bound, err := extract(f.Value, d)
			if err != nil {
				return nil, nil, err
			}
			if !bound {
				continue
			}
			params = append(params, val)
			types = append(types, wire)
		}
	}
	return params, types, nil
}

func flattenKeyed(rows []param.Row, whereFields []string, d dialect.Dialect) ([]any, []param.WireType, error) {
	whereVals, whereTypes, err := extractWhere(rows, whereFields, d)
	if err != nil {
		return nil, nil, err
	}

	var (
		params []any
		types  []param.WireType
	)
	for _, column := range SetColumns(rows, whereFields) {
		for i, row := range rows {
			v, ok := row.Value(column)
			if !ok {
				continue
			}
			val, wire, bound, err := extract(v, d)
			if err != nil {
				return nil, nil, err
			}
			if !bound {
				continue
			}
			params = append(params, whereVals[i]...)
			types = append(types, whereTypes[i]...)
			params = append(params, val)
			types = append(types, wire)
		}
	}

	// One trailing run per distinct where-value combination, mirroring
	// the deduplicated OR conditions in the generated WHERE clause.
	for _, i := range distinctWhereRows(whereVals) {
		params = append(params, whereVals[i]...)
		types = append(types, whereTypes[i]...)
	}
	return params, types, nil
}

// DistinctWhere returns the indexes of the rows that contribute a WHERE
// condition: the first row of each distinct where-value combination, in
// first-encountered order. The SQL builders consult it so the
// deduplicated OR clause matches the trailing parameter runs Flatten
// emits.
func DistinctWhere(rows []param.Row, whereFields []string, d dialect.Dialect) ([]int, error) {
	whereVals, _, err := extractWhere(rows, whereFields, d)
	if err != nil {
		return nil, err
	}
	return distinctWhereRows(whereVals), nil
}

// extractWhere resolves every row's where-field values up front so the
// CASE runs and the trailing WHERE runs bind identical values.
func extractWhere(rows []param.Row, whereFields []string, d dialect.Dialect) ([][]any, [][]param.WireType, error) {
	vals := make([][]any, len(rows))
	types := make([][]param.WireType, len(rows))
	for i, row := range rows {
		vals[i] = make([]any, 0, len(whereFields))
		types[i] = make([]param.WireType, 0, len(whereFields))
		for _, field := range whereFields {
			v, ok := row.Value(field)
			if !ok {
				return nil, nil, dbal.Validationf("row #%d is missing where-field %q", i, field)
			}
			val, wire, bound, err := extract(v, d)
			if err != nil {
				return nil, nil, err
			}
			if !bound {
				return nil, nil, dbal.Validationf("row #%d uses the DEFAULT sentinel in where-field %q", i, field)
			}
			vals[i] = append(vals[i], val)
			types[i] = append(types[i], wire)
		}
	}
	return vals, types, nil
}

// SetColumns returns the union of all rows' non-where columns in
// first-seen order. The SQL builders iterate set columns in this exact
// order so their CASE arms line up with the flattened parameters.
func SetColumns(rows []param.Row, whereFields []string) []string {
	where := make(map[string]struct{}, len(whereFields))
	for _, f := range whereFields {
		where[f] = struct{}{}
	}
	var (
		cols []string
		seen = make(map[string]struct{})
	)
	for _, row := range rows {
		for _, f := range row {
			if _, ok := where[f.Column]; ok {
				continue
			}
			if _, ok := seen[f.Column]; ok {
				continue
			}
			seen[f.Column] = struct{}{}
			cols = append(cols, f.Column)
		}
	}
	return cols
}

// distinctWhereRows returns the indexes of rows whose where-value tuple
// was not seen on an earlier row, in first-encountered order. Tuples are
// compared structurally, not through a joined string key.
func distinctWhereRows(whereVals [][]any) []int {
	var distinct []int
	for i := range whereVals {
		dup := false
		for _, j := range distinct {
			if tupleEqual(whereVals[i], whereVals[j]) {
				dup = true
				break
			}
		}
		if !dup {
			distinct = append(distinct, i)
		}
	}
	return distinct
}

func tupleEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !scalarEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func scalarEqual(a, b any) bool {
	if ab, ok := a.([]byte); ok {
		bb, ok := b.([]byte)
		return ok && bytes.Equal(ab, bb)
	}
	if _, ok := b.([]byte); ok {
		return false
	}
	return a == b
}

// extract resolves one cell to its bound value and wire type. The
// returned bool is false for the DEFAULT sentinel, which contributes no
// parameter. Values implementing driver.Valuer are unwrapped to their
// underlying scalar first; tagged values keep their explicit type and
// untagged values get a guessed one; sequence-typed values are replaced
// by their dialect-specific serialized text.
func extract(v param.Value, d dialect.Dialect) (any, param.WireType, bool, error) {
	if strategy, ok := v.Strategy(); ok {
		return nil, 0, false, dbal.Validationf("id strategy %d reached parameter binding without normalization", strategy)
	}

	raw := v.Raw()
	if valuer, ok := raw.(driver.Valuer); ok {
		unwrapped, err := valuer.Value()
		if err != nil {
			return nil, 0, false, fmt.Errorf("unwrap value: %w", err)
		}
		raw = unwrapped
	}

	tag, tagged := v.Tag()
	if !tagged {
		tag = param.Guess(raw)
	}
	if tag == param.TagDefault {
		return nil, 0, false, nil
	}

	switch tag {
	case param.TagArray, param.TagFloatArray:
		serialized, err := param.SerializeArray(raw, d)
		if err != nil {
			return nil, 0, false, err
		}
		raw = serialized
	case param.TagJSON, param.TagJSONB:
		if _, ok := raw.(string); !ok {
			b, err := json.Marshal(raw)
			if err != nil {
				return nil, 0, false, fmt.Errorf("serialize json: %w", err)
			}
			raw = string(b)
		}
	}
	return raw, param.ToWire(tag), true, nil
}
