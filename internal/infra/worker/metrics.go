package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"cybernewshub/internal/pkg/config"
)

// WorkerMetrics provides Prometheus metrics for the scheduled worker.
// It embeds the shared ConfigMetrics for configuration fallback monitoring
// and adds run-level metrics for the cron-triggered ingestion job.
//
// Embedded metrics (from ConfigMetrics):
//   - worker_config_load_timestamp
//   - worker_config_validation_errors_total
//   - worker_config_fallbacks_total
//   - worker_config_fallback_active
//
// Worker-specific metrics:
//   - worker_ingestion_runs_total: runs by status (success/failure)
//   - worker_ingestion_run_duration_seconds: run duration histogram
//   - worker_ingestion_articles_stored_total: new articles stored across runs
//   - worker_ingestion_last_success_timestamp: Unix time of the last good run
type WorkerMetrics struct {
	*config.ConfigMetrics

	// IngestionRunsTotal counts scheduled runs by outcome.
	IngestionRunsTotal *prometheus.CounterVec

	// IngestionRunDuration measures how long one scheduled run takes.
	// Buckets cover 1s up to 30m, matching the run timeout range.
	IngestionRunDuration prometheus.Histogram

	// IngestionArticlesStoredTotal counts new articles stored by scheduled runs.
	IngestionArticlesStoredTotal prometheus.Counter

	// IngestionLastSuccessTimestamp records when the last run succeeded.
	// Alerting on its age catches a silently stuck scheduler.
	IngestionLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates the worker metrics. Registration happens through
// promauto at construction time.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		IngestionRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_ingestion_runs_total",
			Help: "Total number of scheduled ingestion runs by status (success/failure)",
		}, []string{"status"}),

		IngestionRunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_ingestion_run_duration_seconds",
			Help:    "Duration of scheduled ingestion runs in seconds",
			Buckets: []float64{1, 5, 30, 60, 300, 900, 1800},
		}),

		IngestionArticlesStoredTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_ingestion_articles_stored_total",
			Help: "Total number of new articles stored by scheduled ingestion runs",
		}),

		IngestionLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_ingestion_last_success_timestamp",
			Help: "Unix timestamp of the last successful scheduled ingestion run",
		}),
	}
}

// MustRegister is a no-op kept for the standard metrics initialization shape;
// promauto registers everything in NewWorkerMetrics.
func (m *WorkerMetrics) MustRegister() {}

// RecordRun increments the run counter. Status is "success" or "failure".
func (m *WorkerMetrics) RecordRun(status string) {
	m.IngestionRunsTotal.WithLabelValues(status).Inc()
}

// RecordRunDuration observes one run's duration in seconds.
func (m *WorkerMetrics) RecordRunDuration(seconds float64) {
	m.IngestionRunDuration.Observe(seconds)
}

// RecordArticlesStored adds the number of new articles one run stored.
func (m *WorkerMetrics) RecordArticlesStored(count int) {
	m.IngestionArticlesStoredTotal.Add(float64(count))
}

// RecordLastSuccess marks now as the last successful run.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.IngestionLastSuccessTimestamp.SetToCurrentTime()
}
