package bulk

import (
	"context"
	"slices"

	dbal "github.com/alexk136/dbal-manager"
	"github.com/alexk136/dbal-manager/param"
	"github.com/alexk136/dbal-manager/placeholder"
	"github.com/alexk136/dbal-manager/sqlbuilder"
)

// Inserter performs bulk inserts.
type Inserter struct {
	writer
}

// NewInserter creates an Inserter over the execution collaborator and a
// dialect-matched SQL builder.
func NewInserter(exec Executor, builder sqlbuilder.Builder, cfg Config) *Inserter {
	return &Inserter{writer: newWriter(exec, builder, cfg)}
}

// InsertMany inserts the batch in chunks and returns the summed
// affected-row count. Every row must carry the same column-key set; an
// empty batch returns zero without issuing SQL. With ignoreDuplicates,
// duplicate-key conflicts are skipped instead of failing.
func (ins *Inserter) InsertMany(ctx context.Context, table string, rows []param.Row, ignoreDuplicates bool) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	first := rows[0].Columns()
	for i, row := range rows[1:] {
		if !slices.Equal(row.Columns(), first) {
			return 0, dbal.Validationf("row #%d has mismatched fields in insert data", i+1)
		}
	}

	limit := ins.chunkLimit(ins.clientSideIDs(rows))
	return runChunks(ctx, limit, chunks(rows, ins.cfg.ChunkSize), func(ctx context.Context, chunk []param.Row) (int64, error) {
		normalized := ins.normalizeInsert(chunk)
		query, err := ins.builder.InsertSQL(table, normalized, ignoreDuplicates)
		if err != nil {
			return 0, err
		}
		params, types, err := placeholder.Flatten(normalized, nil, ins.exec.Dialect())
		if err != nil {
			return 0, err
		}
		return ins.executeSQL(ctx, table, "insert", query, params, types, len(chunk))
	})
}

// InsertOne inserts a single row.
func (ins *Inserter) InsertOne(ctx context.Context, table string, row param.Row, ignoreDuplicates bool) (int64, error) {
	return ins.InsertMany(ctx, table, []param.Row{row}, ignoreDuplicates)
}
