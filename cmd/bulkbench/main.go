// Command bulkbench measures bulk write throughput against a real
// database using the engine's four operations.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"github.com/alexk136/dbal-manager/bulk"
	"github.com/alexk136/dbal-manager/config"
	"github.com/alexk136/dbal-manager/dialect"
	"github.com/alexk136/dbal-manager/metrics"
	"github.com/alexk136/dbal-manager/param"
	"github.com/alexk136/dbal-manager/sqlbuilder"
)

func main() {
	configPath := flag.String("config", "config.ini", "Path to configuration file")
	metricsAddr := flag.String("metrics", ":9090", "Metrics endpoint address")
	table := flag.String("table", "bulkbench", "Benchmark table name")
	rows := flag.Int("rows", 10000, "Rows per round")
	rounds := flag.Int("rounds", 5, "Number of rounds per operation")
	verbose := flag.Bool("v", false, "Enable debug statement logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	metrics.Init()
	go func() {
		http.Handle("/metrics", metrics.Handler())
		log.Printf("Metrics endpoint at http://localhost%s/metrics", *metricsAddr)
		if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
			log.Printf("Metrics server error: %v", err)
		}
	}()

	d, err := dialect.FromDriverName(cfg.Database.Driver)
	if err != nil {
		log.Fatalf("Failed to resolve dialect: %v", err)
	}

	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	bulkCfg := cfg.BulkConfig()
	if *verbose {
		bulkCfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	manager, err := bulk.New(bulk.OpenDB(d, db), bulkCfg)
	if err != nil {
		log.Fatalf("Failed to create bulk manager: %v", err)
	}

	ctx := context.Background()
	if err := setupTable(ctx, db, d, *table); err != nil {
		log.Fatalf("Failed to set up table: %v", err)
	}

	runRounds(ctx, manager, *table, *rows, *rounds)
}

func setupTable(ctx context.Context, db *sql.DB, d dialect.Dialect, table string) error {
	drop := "DROP TABLE IF EXISTS " + d.Quote(table)
	if _, err := db.ExecContext(ctx, drop); err != nil {
		return err
	}
	var create string
	if d == dialect.Postgres {
		create = "CREATE TABLE " + d.Quote(table) +
			" (id BIGINT PRIMARY KEY, name TEXT, counter BIGINT DEFAULT 0, updated_at TIMESTAMP NULL)"
	} else {
		create = "CREATE TABLE " + d.Quote(table) +
			" (id BIGINT PRIMARY KEY, name VARCHAR(255), counter BIGINT DEFAULT 0, updated_at DATETIME NULL)"
	}
	_, err := db.ExecContext(ctx, create)
	return err
}

func runRounds(ctx context.Context, manager *bulk.Manager, table string, rowCount, rounds int) {
	for round := 0; round < rounds; round++ {
		batch := make([]param.Row, rowCount)
		for i := range batch {
			batch[i] = param.Row{
				{Column: "id", Value: param.Of(int64(round*rowCount + i + 1))},
				{Column: "name", Value: param.Of("bench")},
				{Column: "counter", Value: param.Of(1)},
			}
		}

		start := time.Now()
		inserted, err := manager.Inserter().InsertMany(ctx, table, batch, false)
		report("insert", round, inserted, rowCount, start, err)

		start = time.Now()
		updated, err := manager.Updater().UpdateMany(ctx, table, batch, nil)
		report("update", round, updated, rowCount, start, err)

		start = time.Now()
		upserted, err := manager.Upserter().UpsertMany(ctx, table, batch, []sqlbuilder.ReplaceField{
			{Column: "counter", Kind: sqlbuilder.Increment},
		})
		report("upsert", round, upserted, rowCount, start, err)

		ids := make([]any, rowCount)
		for i := range ids {
			ids[i] = int64(round*rowCount + i + 1)
		}
		start = time.Now()
		deleted, err := manager.Deleter().DeleteMany(ctx, table, ids)
		report("delete", round, deleted, rowCount, start, err)
	}
}

func report(operation string, round int, affected int64, rows int, start time.Time, err error) {
	if err != nil {
		log.Printf("[%s] round %d failed: %v", operation, round, err)
		return
	}
	elapsed := time.Since(start)
	log.Printf("[%s] round %d: %d rows affected, %.0f rows/sec",
		operation, round, affected, float64(rows)/elapsed.Seconds())
}
