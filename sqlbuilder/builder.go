// Package sqlbuilder generates dialect-correct SQL text for bulk
// insert, update, upsert and delete operations. One builder exists per
// dialect; each owns a bounded shape-keyed cache of generated SQL.
// Values never appear in the generated text, only positional
// placeholders and the DEFAULT keyword, which is what keeps the cache
// sound.
package sqlbuilder

import (
	"regexp"
	"strconv"
	"strings"

	dbal "github.com/alexk136/dbal-manager"
	"github.com/alexk136/dbal-manager/dialect"
	"github.com/alexk136/dbal-manager/param"
	"github.com/alexk136/dbal-manager/sqlcache"
)

// FieldNames maps logical column roles to actual column names. The
// engine consumes it; it is owned by configuration. An empty name
// disables the role.
type FieldNames struct {
	ID        string
	CreatedAt string
	UpdatedAt string
	DeletedAt string
}

// DefaultFieldNames enables only the identity role, mapped to "id".
func DefaultFieldNames() FieldNames {
	return FieldNames{ID: "id"}
}

// ReplaceKind selects how an upsert resolves a conflicting column.
type ReplaceKind int

const (
	// Replace overwrites the column with the incoming value.
	Replace ReplaceKind = iota
	// Increment adds the incoming value to the stored one.
	Increment
	// Decrement subtracts the incoming value from the stored one.
	Decrement
	// Condition assigns a caller-supplied literal SQL fragment.
	Condition
)

// ReplaceField describes one upsert conflict resolution. The Condition
// fragment is used only with the Condition kind and is emitted verbatim
// into the generated SQL.
type ReplaceField struct {
	Column    string
	Kind      ReplaceKind
	Condition string
}

// Builder produces the SQL text for the engine's four bulk operations.
// Implementations are safe for concurrent use.
type Builder interface {
	// InsertSQL builds a multi-row INSERT, optionally ignoring
	// duplicate-key conflicts. DEFAULT-sentinel cells render as the
	// literal DEFAULT keyword.
	InsertSQL(table string, rows []param.Row, ignoreDuplicates bool) (string, error)
	// UpdateSQL builds a single-statement multi-row UPDATE using
	// CASE/WHEN arms keyed by the where fields.
	UpdateSQL(table string, rows []param.Row, whereFields []string) (string, error)
	// UpsertSQL builds an insert with dialect-specific conflict
	// handling over the replace fields.
	UpsertSQL(table string, rows []param.Row, replaceFields []ReplaceField) (string, error)
	// DeleteSQL builds a delete of idCount rows by the identity role
	// column.
	DeleteSQL(table string, idCount int) (string, error)
	// Dialect reports which dialect the builder emits.
	Dialect() dialect.Dialect
}

// New returns the builder for the dialect. An unrecognized dialect is a
// configuration error at construction time, not a per-call error.
func New(d dialect.Dialect, names FieldNames) (Builder, error) {
	cache, err := sqlcache.New(sqlcache.DefaultCapacity)
	if err != nil {
		return nil, err
	}
	switch d {
	case dialect.MySQL:
		return &MySQLBuilder{names: names, cache: cache}, nil
	case dialect.Postgres:
		return &PostgresBuilder{names: names, cache: cache}, nil
	default:
		return nil, dbal.Validationf("unsupported dialect %v", d)
	}
}

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validIdentifier checks a table or column name against the identifier
// grammar before it is quoted into SQL.
func validIdentifier(name string) bool {
	return identifierRe.MatchString(name)
}

func validateTableName(table string) error {
	if !validIdentifier(table) {
		return dbal.Validationf("invalid table name: %q", table)
	}
	return nil
}

func validateFieldNames(fields []string) error {
	for _, f := range fields {
		if !validIdentifier(f) {
			return dbal.Validationf("invalid field name: %q", f)
		}
	}
	return nil
}

// shapeFingerprint summarizes the row batch for cache keying: each
// row's column list in order, with DEFAULT-sentinel cells marked. Two
// batches with equal fingerprints always produce identical SQL.
func shapeFingerprint(rows []param.Row) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte(';')
		}
		for j, f := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(f.Column)
			if f.Value.IsDefault() {
				b.WriteByte('*')
			}
		}
	}
	return b.String()
}

// distinctFingerprint encodes which rows collapse into which WHERE
// conditions, so batches with duplicate keys cannot reuse SQL cached
// for a duplicate-free batch of the same size.
func distinctFingerprint(distinct []int) string {
	parts := make([]string, len(distinct))
	for i, idx := range distinct {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ",")
}

// replaceFingerprint encodes the replace-field list for upsert cache
// keys.
func replaceFingerprint(fields []ReplaceField) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Column + ":" + strconv.Itoa(int(f.Kind)) + ":" + f.Condition
	}
	return strings.Join(parts, ",")
}

func validateReplaceFields(fields []ReplaceField) error {
	for _, f := range fields {
		if !validIdentifier(f.Column) {
			return dbal.Validationf("invalid field name: %q", f.Column)
		}
		switch f.Kind {
		case Replace, Increment, Decrement, Condition:
		default:
			return dbal.Validationf("unknown upsert replace kind: %d", f.Kind)
		}
	}
	return nil
}

// containsField reports whether the replace-field list already names
// the column.
func containsField(fields []ReplaceField, column string) bool {
	for _, f := range fields {
		if f.Column == column {
			return true
		}
	}
	return false
}
