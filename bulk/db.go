package bulk

import (
	"context"
	"database/sql"

	"github.com/alexk136/dbal-manager/dialect"
	"github.com/alexk136/dbal-manager/param"
)

// DB adapts a database/sql handle to the Executor interface. It passes
// driver errors through unclassified; the write executors own
// classification.
type DB struct {
	db      *sql.DB
	dialect dialect.Dialect
}

// OpenDB wraps an open database handle for the given dialect.
func OpenDB(d dialect.Dialect, db *sql.DB) *DB {
	return &DB{db: db, dialect: d}
}

// Dialect implements Executor.
func (c *DB) Dialect() dialect.Dialect {
	return c.dialect
}

// Execute implements Executor.
func (c *DB) Execute(ctx context.Context, query string, params []any, types []param.WireType) (int64, error) {
	args := make([]any, len(params))
	for i, p := range params {
		args[i] = driverArg(p, types[i])
	}
	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// driverArg coerces a bound value where the wire type requires it;
// drivers convert the remaining native types themselves.
func driverArg(v any, w param.WireType) any {
	if w == param.WireNull {
		return nil
	}
	return v
}
