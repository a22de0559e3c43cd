package bulk

import (
	"time"

	"github.com/alexk136/dbal-manager/dialect"
	"github.com/alexk136/dbal-manager/param"
)

// normalizeInsert prepares rows for insertion: identity strategy
// sentinels are materialized, the created-at role column is filled when
// absent and the updated-at role column is always refreshed. Input rows
// are not mutated.
func (w *writer) normalizeInsert(rows []param.Row) []param.Row {
	timestamp := time.Now().Format(w.cfg.TimestampFormat)
	out := make([]param.Row, len(rows))
	for i, row := range rows {
		r := row.Clone()
		r = w.materializeID(r)
		r = w.ensureCreatedAt(r, timestamp)
		out[i] = w.setUpdatedAt(r, timestamp)
	}
	return out
}

// normalizeUpdate refreshes the updated-at role column on every row; it
// touches neither identity nor created-at.
func (w *writer) normalizeUpdate(rows []param.Row) []param.Row {
	timestamp := time.Now().Format(w.cfg.TimestampFormat)
	out := make([]param.Row, len(rows))
	for i, row := range rows {
		out[i] = w.setUpdatedAt(row.Clone(), timestamp)
	}
	return out
}

// materializeID replaces an id-strategy sentinel on the identity column
// with a concrete value. Server-generated strategies become the DEFAULT
// sentinel on PostgreSQL and an explicit wire NULL elsewhere.
func (w *writer) materializeID(row param.Row) param.Row {
	column := w.idColumn()
	v, ok := row.Value(column)
	if !ok {
		return row
	}
	strategy, ok := v.Strategy()
	if !ok {
		return row
	}

	switch strategy {
	case param.StrategyUUID:
		return row.Set(column, param.Typed(generateUUID(), param.TagUUID))
	case param.StrategyUID:
		return row.Set(column, param.Typed(generateUID(), param.TagString))
	case param.StrategyInt:
		return row.Set(column, param.Typed(randomID(), param.TagInteger))
	case param.StrategyString:
		return row.Set(column, param.Typed(stringID(), param.TagString))
	case param.StrategyAutoIncrement, param.StrategyDefault:
		if w.exec.Dialect() == dialect.Postgres {
			return row.Set(column, param.Default())
		}
		return row.Set(column, param.Typed(nil, param.TagNull))
	default:
		return row
	}
}

func (w *writer) ensureCreatedAt(row param.Row, timestamp string) param.Row {
	column := w.cfg.FieldNames.CreatedAt
	if column == "" {
		return row
	}
	if v, ok := row.Value(column); ok && v.Raw() != nil {
		return row
	}
	return row.Set(column, param.Typed(timestamp, param.TagString))
}

func (w *writer) setUpdatedAt(row param.Row, timestamp string) param.Row {
	column := w.cfg.FieldNames.UpdatedAt
	if column == "" {
		return row
	}
	return row.Set(column, param.Typed(timestamp, param.TagString))
}

// clientSideIDs reports whether no row of the batch relies on a
// server-side id strategy, which is the eligibility condition for
// parallel chunk execution.
func (w *writer) clientSideIDs(rows []param.Row) bool {
	column := w.idColumn()
	for _, row := range rows {
		v, ok := row.Value(column)
		if !ok {
			continue
		}
		if strategy, ok := v.Strategy(); ok && !strategy.ClientSide() {
			return false
		}
	}
	return true
}
