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

// buildInsert assembles the multi-row VALUES statement. Placeholder
// tokens are generated in row-major order, matching Flatten without
// where fields; DEFAULT-sentinel cells render as the literal keyword
// and consume no token.
func buildInsert(d dialect.Dialect, verb, table string, fields []string, rows []param.Row, suffix string) (string, error) {
	tokens := placeholder.ForDialect(d)

	var sb strings.Builder
	sb.WriteString(verb)
	sb.WriteString(" INTO ")
	sb.WriteString(d.Quote(table))
	sb.WriteString(" (")
	for i, f := range fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(d.Quote(f))
	}
	sb.WriteString(") VALUES ")

	for i, row := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for j, f := range fields {
			if j > 0 {
				sb.WriteString(", ")
			}
			v, ok := row.Value(f)
			if !ok {
				return "", dbal.Validationf("row #%d is missing field %q", i, f)
			}
			if v.IsDefault() {
				sb.WriteString("DEFAULT")
			} else {
				sb.WriteString(tokens.Next())
			}
		}
		sb.WriteByte(')')
	}
	sb.WriteString(suffix)
	return sb.String(), nil
}

func validateUpdateInput(table string, rows []param.Row, whereFields []string) error {
	if err := validateTableName(table); err != nil {
		return err
	}
	if len(whereFields) == 0 {
		return dbal.Validationf("bulk update requires at least one where-field to generate CASE conditions")
	}
	if err := validateFieldNames(whereFields); err != nil {
		return err
	}
	if len(rows) == 0 {
		return dbal.Validationf("update rows must not be empty")
	}
	for _, row := range rows {
		if err := validateFieldNames(row.Columns()); err != nil {
			return err
		}
	}
	return nil
}

// buildUpdate assembles the CASE/WHEN statement. Token order follows
// the Flatten contract exactly: per set column, per row containing it,
// the where condition tokens then the THEN token; finally one WHERE
// condition per distinct where-value combination.
func buildUpdate(d dialect.Dialect, table string, rows []param.Row, whereFields []string, distinct []int) (string, error) {
	tokens := placeholder.ForDialect(d)

	whereCond := func(row param.Row) string {
		parts := make([]string, len(whereFields))
		for i, f := range whereFields {
			parts[i] = d.Quote(f) + " = " + tokens.Next()
		}
		return "(" + strings.Join(parts, " AND ") + ")"
	}

	var clauses []string
	for _, column := range placeholder.SetColumns(rows, whereFields) {
		var arms []string
		for _, row := range rows {
			v, ok := row.Value(column)
			if !ok || v.IsDefault() {
				continue
			}
			arms = append(arms, "WHEN "+whereCond(row)+" THEN "+tokens.Next())
		}
		if len(arms) == 0 {
			continue
		}
		quoted := d.Quote(column)
		clauses = append(clauses, quoted+" = CASE "+strings.Join(arms, " ")+" ELSE "+quoted+" END")
	}
	if len(clauses) == 0 {
		return "", dbal.Validationf("bulk update has no settable columns outside the where-fields")
	}

	conds := make([]string, len(distinct))
	for i, idx := range distinct {
		conds[i] = whereCond(rows[idx])
	}

	return "UPDATE " + d.Quote(table) + " SET " + strings.Join(clauses, ", ") +
		" WHERE " + strings.Join(conds, " OR "), nil
}

// buildDelete assembles the IN-list delete over the identity role
// column.
func buildDelete(d dialect.Dialect, cache *sqlcache.Cache, names FieldNames, table string, idCount int) (string, error) {
	if err := validateTableName(table); err != nil {
		return "", err
	}
	if idCount <= 0 {
		return "", dbal.Validationf("id list must not be empty")
	}
	idColumn := names.ID
	if idColumn == "" {
		idColumn = "id"
	}
	if !validIdentifier(idColumn) {
		return "", dbal.Validationf("invalid field name: %q", idColumn)
	}

	key := table + "|DELETE|BY_ID|" + strconv.Itoa(idCount)
	if sql, ok := cache.Get(key); ok {
		return sql, nil
	}

	tokens := placeholder.ForDialect(d)
	list := make([]string, idCount)
	for i := range list {
		list[i] = tokens.Next()
	}
	sql := "DELETE FROM " + d.Quote(table) + " WHERE " + d.Quote(idColumn) +
		" IN (" + strings.Join(list, ", ") + ")"
	cache.Set(key, sql)
	return sql, nil
}
