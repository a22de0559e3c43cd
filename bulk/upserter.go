package bulk

import (
	"context"
	"slices"

	dbal "github.com/alexk136/dbal-manager"
	"github.com/alexk136/dbal-manager/param"
	"github.com/alexk136/dbal-manager/placeholder"
	"github.com/alexk136/dbal-manager/sqlbuilder"
)

// Upserter performs bulk insert-or-update operations.
type Upserter struct {
	writer
}

// NewUpserter creates an Upserter over the execution collaborator and a
// dialect-matched SQL builder.
func NewUpserter(exec Executor, builder sqlbuilder.Builder, cfg Config) *Upserter {
	return &Upserter{writer: newWriter(exec, builder, cfg)}
}

// UpsertMany inserts the batch in chunks, resolving conflicts per the
// replace fields, and returns the summed affected-row count. Every row
// must carry the same column-key set, in the same order, since the
// generated placeholders follow the first row's shape. Rows go through
// insert normalization; the builder augments the replace-field list
// with the updated-at role column. An empty batch returns zero without
// issuing SQL.
func (u *Upserter) UpsertMany(ctx context.Context, table string, rows []param.Row, replaceFields []sqlbuilder.ReplaceField) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	first := rows[0].Columns()
	for i, row := range rows[1:] {
		if !slices.Equal(row.Columns(), first) {
			return 0, dbal.Validationf("row #%d has mismatched fields in upsert data", i+1)
		}
	}

	limit := u.chunkLimit(u.clientSideIDs(rows))
	return runChunks(ctx, limit, chunks(rows, u.cfg.ChunkSize), func(ctx context.Context, chunk []param.Row) (int64, error) {
		normalized := u.normalizeInsert(chunk)
		query, err := u.builder.UpsertSQL(table, normalized, replaceFields)
		if err != nil {
			return 0, err
		}
		params, types, err := placeholder.Flatten(normalized, nil, u.exec.Dialect())
		if err != nil {
			return 0, err
		}
		return u.executeSQL(ctx, table, "upsert", query, params, types, len(chunk))
	})
}

// UpsertOne upserts a single row.
func (u *Upserter) UpsertOne(ctx context.Context, table string, row param.Row, replaceFields []sqlbuilder.ReplaceField) (int64, error) {
	return u.UpsertMany(ctx, table, []param.Row{row}, replaceFields)
}
