// Package bulk orchestrates the engine's write operations: it
// normalizes row batches, chunks them by configured size, asks the
// dialect's SQL builder for statement text and the placeholder strategy
// for flattened parameters, executes through the collaborator and
// aggregates affected-row counts. Low-level driver failures surface as
// the classified error taxonomy of the root package.
package bulk

import (
	"log/slog"

	"github.com/alexk136/dbal-manager/sqlbuilder"
)

// DefaultTimestampFormat is the layout used for generated created-at,
// updated-at and deleted-at values.
const DefaultTimestampFormat = "2006-01-02 15:04:05"

// Config holds the write executors' configuration. The engine consumes
// it; loading it from files or the environment is the config package's
// concern.
type Config struct {
	// ChunkSize caps the number of rows per issued statement (1000
	// default).
	ChunkSize int
	// ParallelChunks enables concurrent chunk execution when greater
	// than one. Chunks stay sequential for batches whose id generation
	// is not fully client-side, regardless of this setting.
	ParallelChunks int
	// FieldNames maps logical column roles to actual column names.
	FieldNames sqlbuilder.FieldNames
	// TimestampFormat is the layout for generated timestamps.
	TimestampFormat string
	// Logger receives debug-level statement logging. Nil disables it.
	Logger *slog.Logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ChunkSize:       1000,
		FieldNames:      sqlbuilder.DefaultFieldNames(),
		TimestampFormat: DefaultTimestampFormat,
	}
}

func (c Config) withDefaults() Config {
	if c.ChunkSize <= 0 {
		c.ChunkSize = 1000
	}
	if c.TimestampFormat == "" {
		c.TimestampFormat = DefaultTimestampFormat
	}
	if c.FieldNames == (sqlbuilder.FieldNames{}) {
		c.FieldNames = sqlbuilder.DefaultFieldNames()
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}
