// Package metrics exposes Prometheus metrics for the bulk write
// engine: statements issued, chunk sizes, statement latency and
// classified write failures.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// StatementsTotal counts SQL statements issued by table and operation.
	StatementsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dbal_statements_total",
			Help: "Total number of bulk SQL statements issued",
		},
		[]string{"table", "operation"},
	)

	// StatementLatency tracks per-statement execution latency.
	StatementLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dbal_statement_latency_seconds",
			Help:    "Bulk statement execution latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"table", "operation"},
	)

	// ChunkSize observes the number of rows per issued statement.
	ChunkSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dbal_chunk_rows",
			Help:    "Rows per bulk statement chunk",
			Buckets: prometheus.ExponentialBuckets(1, 4, 7),
		},
		[]string{"operation"},
	)

	// WriteErrors counts classified write failures.
	WriteErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dbal_write_errors_total",
			Help: "Total write failures by error class",
		},
		[]string{"class"},
	)

	once sync.Once
)

// Init registers all metrics with Prometheus. Safe to call more than
// once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(StatementsTotal)
		prometheus.MustRegister(StatementLatency)
		prometheus.MustRegister(ChunkSize)
		prometheus.MustRegister(WriteErrors)
	})
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
