// Package config loads the engine configuration from an INI file with
// environment variable overrides.
package config

import (
	"os"
	"strconv"

	"gopkg.in/ini.v1"

	"github.com/alexk136/dbal-manager/bulk"
	"github.com/alexk136/dbal-manager/sqlbuilder"
)

// Config holds the full engine configuration.
type Config struct {
	Bulk     Bulk
	Database Database
}

// Bulk configures the write executors.
type Bulk struct {
	ChunkSize       int
	ParallelChunks  int
	TimestampFormat string
	Fields          sqlbuilder.FieldNames
}

// Database selects the driver and DSN for the execution collaborator.
type Database struct {
	Driver string
	DSN    string
}

// Load reads configuration from an INI file with environment variable
// overrides.
func Load(path string) (*Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, err
	}

	bulkSec := file.Section("bulk")
	fieldsSec := file.Section("fields")
	dbSec := file.Section("database")

	config := &Config{
		Bulk: Bulk{
			ChunkSize:       bulkSec.Key("chunk_size").MustInt(1000),
			ParallelChunks:  bulkSec.Key("parallel_chunks").MustInt(1),
			TimestampFormat: bulkSec.Key("timestamp_format").MustString(bulk.DefaultTimestampFormat),
			Fields: sqlbuilder.FieldNames{
				ID:        fieldsSec.Key("id").MustString("id"),
				CreatedAt: fieldsSec.Key("created_at").String(),
				UpdatedAt: fieldsSec.Key("updated_at").String(),
				DeletedAt: fieldsSec.Key("deleted_at").String(),
			},
		},
		Database: Database{
			Driver: dbSec.Key("driver").MustString("mysql"),
			DSN:    dbSec.Key("dsn").String(),
		},
	}

	// Environment variable overrides
	if v := os.Getenv("DBAL_CHUNK_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Bulk.ChunkSize = n
		}
	}
	if v := os.Getenv("DBAL_PARALLEL_CHUNKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Bulk.ParallelChunks = n
		}
	}
	if v := os.Getenv("DBAL_DB_DRIVER"); v != "" {
		config.Database.Driver = v
	}
	if v := os.Getenv("DBAL_DB_DSN"); v != "" {
		config.Database.DSN = v
	}

	return config, nil
}

// BulkConfig converts the loaded settings into the executors'
// configuration.
func (c *Config) BulkConfig() bulk.Config {
	return bulk.Config{
		ChunkSize:       c.Bulk.ChunkSize,
		ParallelChunks:  c.Bulk.ParallelChunks,
		FieldNames:      c.Bulk.Fields,
		TimestampFormat: c.Bulk.TimestampFormat,
	}
}
