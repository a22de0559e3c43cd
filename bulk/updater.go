package bulk

import (
	"context"

	"github.com/alexk136/dbal-manager/param"
	"github.com/alexk136/dbal-manager/placeholder"
	"github.com/alexk136/dbal-manager/sqlbuilder"
)

// Updater performs single-statement multi-row updates using the
// CASE/WHEN construction.
type Updater struct {
	writer
}

// NewUpdater creates an Updater over the execution collaborator and a
// dialect-matched SQL builder.
func NewUpdater(exec Executor, builder sqlbuilder.Builder, cfg Config) *Updater {
	return &Updater{writer: newWriter(exec, builder, cfg)}
}

// UpdateMany updates the batch in chunks and returns the summed
// affected-row count. Rows are matched by whereFields; when empty, the
// identity role column is used. The updated-at role column is refreshed
// on every row. An empty batch returns zero without issuing SQL.
func (u *Updater) UpdateMany(ctx context.Context, table string, rows []param.Row, whereFields []string) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if len(whereFields) == 0 {
		whereFields = []string{u.idColumn()}
	}

	limit := u.chunkLimit(true)
	return runChunks(ctx, limit, chunks(rows, u.cfg.ChunkSize), func(ctx context.Context, chunk []param.Row) (int64, error) {
		normalized := u.normalizeUpdate(chunk)
		query, err := u.builder.UpdateSQL(table, normalized, whereFields)
		if err != nil {
			return 0, err
		}
		params, types, err := placeholder.Flatten(normalized, whereFields, u.exec.Dialect())
		if err != nil {
			return 0, err
		}
		return u.executeSQL(ctx, table, "update", query, params, types, len(chunk))
	})
}

// UpdateOne updates a single row.
func (u *Updater) UpdateOne(ctx context.Context, table string, row param.Row, whereFields []string) (int64, error) {
	return u.UpdateMany(ctx, table, []param.Row{row}, whereFields)
}
