package bulk

import (
	"context"
	"time"

	dbal "github.com/alexk136/dbal-manager"
	"github.com/alexk136/dbal-manager/param"
	"github.com/alexk136/dbal-manager/placeholder"
	"github.com/alexk136/dbal-manager/sqlbuilder"
)

// Deleter performs bulk physical and soft deletes by id.
type Deleter struct {
	writer
}

// NewDeleter creates a Deleter over the execution collaborator and a
// dialect-matched SQL builder.
func NewDeleter(exec Executor, builder sqlbuilder.Builder, cfg Config) *Deleter {
	return &Deleter{writer: newWriter(exec, builder, cfg)}
}

// DeleteMany deletes rows by the identity role column in chunks and
// returns the summed affected-row count. An empty id list returns zero
// without issuing SQL.
func (d *Deleter) DeleteMany(ctx context.Context, table string, ids []any) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	idColumn := d.idColumn()

	limit := d.chunkLimit(true)
	return runChunks(ctx, limit, chunks(ids, d.cfg.ChunkSize), func(ctx context.Context, chunk []any) (int64, error) {
		query, err := d.builder.DeleteSQL(table, len(chunk))
		if err != nil {
			return 0, err
		}
		rows := make([]param.Row, len(chunk))
		for i, id := range chunk {
			rows[i] = param.Row{{Column: idColumn, Value: param.Of(id)}}
		}
		params, types, err := placeholder.Flatten(rows, nil, d.exec.Dialect())
		if err != nil {
			return 0, err
		}
		return d.executeSQL(ctx, table, "delete", query, params, types, len(chunk))
	})
}

// DeleteOne deletes a single row by id.
func (d *Deleter) DeleteOne(ctx context.Context, table string, id any) (int64, error) {
	return d.DeleteMany(ctx, table, []any{id})
}

// DeleteSoftMany marks rows as deleted by setting the deleted-at role
// column instead of removing them. It requires the deleted-at role to
// be configured. An empty id list returns zero without issuing SQL.
func (d *Deleter) DeleteSoftMany(ctx context.Context, table string, ids []any) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	deletedAt := d.cfg.FieldNames.DeletedAt
	if deletedAt == "" {
		return 0, dbal.Validationf("soft delete requires a configured deleted-at column")
	}
	idColumn := d.idColumn()
	timestamp := time.Now().Format(d.cfg.TimestampFormat)
	whereFields := []string{idColumn}

	limit := d.chunkLimit(true)
	return runChunks(ctx, limit, chunks(ids, d.cfg.ChunkSize), func(ctx context.Context, chunk []any) (int64, error) {
		rows := make([]param.Row, len(chunk))
		for i, id := range chunk {
			rows[i] = param.Row{
				{Column: deletedAt, Value: param.Typed(timestamp, param.TagString)},
				{Column: idColumn, Value: param.Of(id)},
			}
		}
		query, err := d.builder.UpdateSQL(table, rows, whereFields)
		if err != nil {
			return 0, err
		}
		params, types, err := placeholder.Flatten(rows, whereFields, d.exec.Dialect())
		if err != nil {
			return 0, err
		}
		return d.executeSQL(ctx, table, "soft_delete", query, params, types, len(chunk))
	})
}

// DeleteSoftOne soft-deletes a single row by id.
func (d *Deleter) DeleteSoftOne(ctx context.Context, table string, id any) (int64, error) {
	return d.DeleteSoftMany(ctx, table, []any{id})
}
