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

// PostgresBuilder generates PostgreSQL-family SQL: double-quoted
// identifiers, numbered `$n` placeholders, ON CONFLICT DO NOTHING and
// ON CONFLICT ... DO UPDATE conflict handling with EXCLUDED references.
type PostgresBuilder struct {
	names FieldNames
	cache *sqlcache.Cache
}

// Dialect implements Builder.
func (b *PostgresBuilder) Dialect() dialect.Dialect {
	return dialect.Postgres
}

// InsertSQL implements Builder. Duplicate handling uses the trailing
// ON CONFLICT DO NOTHING form instead of MySQL's INSERT IGNORE.
func (b *PostgresBuilder) InsertSQL(table string, rows []param.Row, ignoreDuplicates bool) (string, error) {
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

	mode := "INSERT"
	suffix := ""
	if ignoreDuplicates {
		mode = "IGNORE"
		suffix = " ON CONFLICT DO NOTHING"
	}
	key := table + "|" + mode + "|" + strconv.Itoa(len(rows)) + "|" + shapeFingerprint(rows)
	if sql, ok := b.cache.Get(key); ok {
		return sql, nil
	}

	sql, err := buildInsert(dialect.Postgres, "INSERT", table, fields, rows, suffix)
	if err != nil {
		return "", err
	}
	b.cache.Set(key, sql)
	return sql, nil
}

// UpdateSQL implements Builder.
func (b *PostgresBuilder) UpdateSQL(table string, rows []param.Row, whereFields []string) (string, error) {
	if err := validateUpdateInput(table, rows, whereFields); err != nil {
		return "", err
	}
	distinct, err := placeholder.DistinctWhere(rows, whereFields, dialect.Postgres)
	if err != nil {
		return "", err
	}

	key := table + "|UPDATE|" + strings.Join(whereFields, ",") + "|" + strconv.Itoa(len(rows)) +
		"|" + shapeFingerprint(rows) + "|" + distinctFingerprint(distinct)
	if sql, ok := b.cache.Get(key); ok {
		return sql, nil
	}

	sql, err := buildUpdate(dialect.Postgres, table, rows, whereFields, distinct)
	if err != nil {
		return "", err
	}
	b.cache.Set(key, sql)
	return sql, nil
}

// UpsertSQL implements Builder. The conflict target is the caller's
// replace-field columns plus the identity role column; the updated-at
// role column joins the assignment list only.
func (b *PostgresBuilder) UpsertSQL(table string, rows []param.Row, replaceFields []ReplaceField) (string, error) {
	if err := validateTableName(table); err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", dbal.Validationf("upsert rows must not be empty")
	}
	// Conflict target before augmentation: updated-at is never part of
	// a unique index.
	conflictColumns := b.conflictColumns(replaceFields)
	replaceFields = augmentReplaceFields(replaceFields, b.names)
	if err := validateReplaceFields(replaceFields); err != nil {
		return "", err
	}
	if len(conflictColumns) == 0 {
		return "", dbal.Validationf("conflict fields must be specified for a PostgreSQL upsert")
	}
	if err := validateFieldNames(conflictColumns); err != nil {
		return "", err
	}

	key := table + "|UPSERT|" + strconv.Itoa(len(rows)) + "|" + shapeFingerprint(rows) +
		"|" + replaceFingerprint(replaceFields) + "|" + strings.Join(conflictColumns, ",")
	if sql, ok := b.cache.Get(key); ok {
		return sql, nil
	}

	insertSQL, err := b.InsertSQL(table, rows, false)
	if err != nil {
		return "", err
	}

	quotedConflict := make([]string, len(conflictColumns))
	for i, c := range conflictColumns {
		quotedConflict[i] = dialect.Postgres.Quote(c)
	}

	assignments := make([]string, len(replaceFields))
	for i, f := range replaceFields {
		col := dialect.Postgres.Quote(f.Column)
		switch f.Kind {
		case Replace:
			assignments[i] = col + " = EXCLUDED." + col
		case Increment:
			assignments[i] = col + " = " + col + " + EXCLUDED." + col
		case Decrement:
			assignments[i] = col + " = " + col + " - EXCLUDED." + col
		case Condition:
			assignments[i] = col + " = " + f.Condition
		}
	}

	sql := insertSQL + " ON CONFLICT (" + strings.Join(quotedConflict, ", ") + ") DO UPDATE SET " +
		strings.Join(assignments, ", ")
	b.cache.Set(key, sql)
	return sql, nil
}

// DeleteSQL implements Builder.
func (b *PostgresBuilder) DeleteSQL(table string, idCount int) (string, error) {
	return buildDelete(dialect.Postgres, b.cache, b.names, table, idCount)
}

// conflictColumns returns the caller's replace-field columns plus the
// identity role column when configured and not already present. It runs
// before the updated-at augmentation so a timestamp column never leaks
// into the conflict target.
func (b *PostgresBuilder) conflictColumns(fields []ReplaceField) []string {
	cols := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		cols = append(cols, f.Column)
	}
	if b.names.ID != "" && !containsField(fields, b.names.ID) {
		cols = append(cols, b.names.ID)
	}
	return cols
}
