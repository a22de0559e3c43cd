package bulk

import (
	"context"
	"errors"
	"slices"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	dbal "github.com/alexk136/dbal-manager"
	"github.com/alexk136/dbal-manager/dialect"
	"github.com/alexk136/dbal-manager/metrics"
	"github.com/alexk136/dbal-manager/param"
	"github.com/alexk136/dbal-manager/sqlbuilder"
)

// Executor is the execution collaborator the engine depends on: it
// sends one statement with its bound parameters and reports the
// affected-row count. Failures carry the native driver error;
// classification happens in the executors. Cancellation is delegated
// entirely to the collaborator through the context.
type Executor interface {
	Execute(ctx context.Context, query string, params []any, types []param.WireType) (int64, error)
	Dialect() dialect.Dialect
}

// writer is the shared core of the Inserter, Updater, Upserter and
// Deleter.
type writer struct {
	exec    Executor
	builder sqlbuilder.Builder
	cfg     Config
}

func newWriter(exec Executor, builder sqlbuilder.Builder, cfg Config) writer {
	return writer{exec: exec, builder: builder, cfg: cfg.withDefaults()}
}

func (w *writer) idColumn() string {
	if w.cfg.FieldNames.ID != "" {
		return w.cfg.FieldNames.ID
	}
	return "id"
}

// executeSQL runs one statement, records metrics and classifies any
// failure.
func (w *writer) executeSQL(ctx context.Context, table, operation, query string, params []any, types []param.WireType, rowCount int) (int64, error) {
	w.cfg.Logger.Debug("executing bulk statement",
		"table", table, "operation", operation, "rows", rowCount, "params", len(params))

	start := time.Now()
	affected, err := w.exec.Execute(ctx, query, params, types)
	metrics.StatementsTotal.WithLabelValues(table, operation).Inc()
	metrics.StatementLatency.WithLabelValues(table, operation).Observe(time.Since(start).Seconds())
	metrics.ChunkSize.WithLabelValues(operation).Observe(float64(rowCount))
	if err != nil {
		classified := dbal.Classify(err)
		metrics.WriteErrors.WithLabelValues(errorClass(classified)).Inc()
		w.cfg.Logger.Debug("bulk statement failed",
			"table", table, "operation", operation, "error", classified)
		return 0, classified
	}
	return affected, nil
}

func errorClass(err error) string {
	var (
		unique *dbal.UniqueConstraintError
		check  *dbal.CheckConstraintError
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.As(err, &unique):
		return "unique_violation"
	case errors.As(err, &check):
		return "check_violation"
	default:
		return "write_failure"
	}
}

// chunks splits a batch into slices of at most size elements.
func chunks[T any](items []T, size int) [][]T {
	var out [][]T
	for c := range slices.Chunk(items, size) {
		out = append(out, c)
	}
	return out
}

// runChunks issues one statement per chunk and sums the affected-row
// counts. With limit <= 1 chunks run strictly sequentially: a later
// chunk is not issued until the previous statement completed, since its
// rows may depend on side effects of earlier ones. A larger limit runs
// chunks concurrently through an errgroup; callers enable it only for
// batches whose id generation is fully client-side.
func runChunks[T any](ctx context.Context, limit int, batches [][]T, fn func(context.Context, []T) (int64, error)) (int64, error) {
	if limit <= 1 || len(batches) == 1 {
		var total int64
		for _, batch := range batches {
			n, err := fn(ctx, batch)
			if err != nil {
				return 0, err
			}
			total += n
		}
		return total, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	var total atomic.Int64
	for _, batch := range batches {
		g.Go(func() error {
			n, err := fn(ctx, batch)
			if err != nil {
				return err
			}
			total.Add(n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return total.Load(), nil
}

// chunkLimit resolves the effective concurrency for a batch: the
// configured parallelism when the batch is eligible, sequential
// otherwise.
func (w *writer) chunkLimit(eligible bool) int {
	if !eligible {
		return 1
	}
	return w.cfg.ParallelChunks
}
