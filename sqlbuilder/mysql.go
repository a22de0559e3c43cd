package sqlbuilder

import (
	"strconv"
	"strings"

	dbal "github.com/alexk136/dbal-manager"
	"github.com/alexk136/dbal-manager/dialect"
	"github.com/alexk136/dbal-manager/param"
	"github.com/alexk136/dbal-manager/placeholder"
	"github.com/alexk136/dbal-manager/sqlcache"
)

// MySQLBuilder generates MySQL-family SQL: backtick-quoted identifiers,
// `?` placeholders, INSERT IGNORE and ON DUPLICATE KEY UPDATE conflict
// handling.
type MySQLBuilder struct {
	names FieldNames
	cache *sqlcache.Cache
}

// Dialect implements Builder.
func (b *MySQLBuilder) Dialect() dialect.Dialect {
	return dialect.MySQL
}

// InsertSQL implements Builder.
func (b *MySQLBuilder) InsertSQL(table string, rows []param.Row, ignoreDuplicates bool) (string, error) {
	if err := validateTableName(table); err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", dbal.Validationf("insert rows must not be empty")
	}
	fields := rows[0].Columns()
	if err := validateFieldNames(fields); err != nil {
		return "", err
	}

	verb := "INSERT"
	if ignoreDuplicates {
		verb = "INSERT IGNORE"
	}
	key := table + "|" + verb + "|" + strconv.Itoa(len(rows)) + "|" + shapeFingerprint(rows)
	if sql, ok := b.cache.Get(key); ok {
		return sql, nil
	}

	sql, err := buildInsert(dialect.MySQL, verb, table, fields, rows, "")
	if err != nil {
		return "", err
	}
	b.cache.Set(key, sql)
	return sql, nil
}

// UpdateSQL implements Builder.
func (b *MySQLBuilder) UpdateSQL(table string, rows []param.Row, whereFields []string) (string, error) {
	if err := validateUpdateInput(table, rows, whereFields); err != nil {
		return "", err
	}
	distinct, err := placeholder.DistinctWhere(rows, whereFields, dialect.MySQL)
	if err != nil {
		return "", err
	}

	key := table + "|UPDATE|" + strings.Join(whereFields, ",") + "|" + strconv.Itoa(len(rows)) +
		"|" + shapeFingerprint(rows) + "|" + distinctFingerprint(distinct)
	if sql, ok := b.cache.Get(key); ok {
		return sql, nil
	}

	sql, err := buildUpdate(dialect.MySQL, table, rows, whereFields, distinct)
	if err != nil {
		return "", err
	}
	b.cache.Set(key, sql)
	return sql, nil
}

// UpsertSQL implements Builder. The updated-at role column, when
// configured, is appended to the replace fields with Replace semantics
// unless already present.
func (b *MySQLBuilder) UpsertSQL(table string, rows []param.Row, replaceFields []ReplaceField) (string, error) {
	if err := validateTableName(table); err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", dbal.Validationf("upsert rows must not be empty")
	}
	replaceFields = augmentReplaceFields(replaceFields, b.names)
	if err := validateReplaceFields(replaceFields); err != nil {
		return "", err
	}

	key := table + "|UPSERT|" + strconv.Itoa(len(rows)) + "|" + shapeFingerprint(rows) +
		"|" + replaceFingerprint(replaceFields)
	if sql, ok := b.cache.Get(key); ok {
		return sql, nil
	}

	insertSQL, err := b.InsertSQL(table, rows, false)
	if err != nil {
		return "", err
	}

	assignments := make([]string, len(replaceFields))
	for i, f := range replaceFields {
		col := dialect.MySQL.Quote(f.Column)
		switch f.Kind {
		case Replace:
			assignments[i] = col + " = VALUES(" + col + ")"
		case Increment:
			assignments[i] = col + " = " + col + " + VALUES(" + col + ")"
		case Decrement:
			assignments[i] = col + " = " + col + " - VALUES(" + col + ")"
		case Condition:
			assignments[i] = col + " = " + f.Condition
		}
	}

	sql := insertSQL + " ON DUPLICATE KEY UPDATE " + strings.Join(assignments, ", ")
	b.cache.Set(key, sql)
	return sql, nil
}

// DeleteSQL implements Builder.
func (b *MySQLBuilder) DeleteSQL(table string, idCount int) (string, error) {
	return buildDelete(dialect.MySQL, b.cache, b.names, table, idCount)
}

// augmentReplaceFields appends the updated-at role column with Replace
// semantics when configured and not already present.
func augmentReplaceFields(fields []ReplaceField, names FieldNames) []ReplaceField {
	if names.UpdatedAt == "" || containsField(fields, names.UpdatedAt) {
		return fields
	}
	out := make([]ReplaceField, len(fields), len(fields)+1)
	copy(out, fields)
	return append(out, ReplaceField{Column: names.UpdatedAt, Kind: Replace})
}
