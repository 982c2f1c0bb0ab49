package worker

import (
	"fmt"
	"log/slog"
	"time"

	"cybernewshub/internal/pkg/config"
)

// WorkerConfig controls the scheduled ingestion worker: when runs fire, how
// long one run may take, how it fetches, and which ports the operational
// endpoints listen on.
//
// Configuration sources:
//   - Environment variables (loaded via LoadConfigFromEnv)
//   - Default values (provided by DefaultConfig)
//
// Loading is fail-open: an invalid value falls back to its default with a
// warning and a metrics increment, so a bad deployment never prevents the
// worker from starting.
type WorkerConfig struct {
	// CronSchedule is the cron expression for ingestion runs.
	// Format: "minute hour day month weekday"
	// Default: "0 */12 * * *" (every 12 hours)
	CronSchedule string

	// Timezone is the IANA timezone name for cron scheduling.
	// Default: "UTC"
	Timezone string

	// FetchTimeout is the maximum duration for one ingestion run. The run's
	// context is cancelled when it expires.
	// Default: 30 minutes
	FetchTimeout time.Duration

	// MaxWorkers is the fetch concurrency passed to the orchestrator.
	// Range: 1-20
	// Default: 10
	MaxWorkers int

	// OnlyRecent restricts scheduled runs to entries published within the
	// last RecentDays days. Manual runs through the API choose their own
	// window.
	// Default: false
	OnlyRecent bool

	// RecentDays is the lookback window used when OnlyRecent is set.
	// Range: 1-90
	// Default: 1
	RecentDays int

	// HealthPort is the port for the liveness/readiness HTTP server.
	// Range: 1024-65535
	// Default: 9091
	HealthPort int

	// MetricsPort is the port for the Prometheus scrape endpoint.
	// Range: 1024-65535
	// Default: 9092
	MetricsPort int
}

// DefaultConfig returns production-ready worker defaults: a run every 12
// hours in UTC, bounded at 30 minutes, fetching with 10 workers.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule: "0 */12 * * *",
		Timezone:     "UTC",
		FetchTimeout: 30 * time.Minute,
		MaxWorkers:   10,
		OnlyRecent:   false,
		RecentDays:   1,
		HealthPort:   9091,
		MetricsPort:  9092,
	}
}

// Validate checks every field and returns all failures together, so a broken
// deployment surfaces every problem at once instead of one per restart.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.FetchTimeout); err != nil {
		errs = append(errs, fmt.Errorf("fetch timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.MaxWorkers, 1, 20); err != nil {
		errs = append(errs, fmt.Errorf("max workers: %w", err))
	}
	if err := config.ValidateIntRange(c.RecentDays, 1, 90); err != nil {
		errs = append(errs, fmt.Errorf("recent days: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}
	if err := config.ValidateIntRange(c.MetricsPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("metrics port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads worker configuration from environment variables
// with validation and automatic fallback to defaults on failure.
//
// Environment variables:
//   - FETCH_CRON_SCHEDULE: cron expression (default: "0 */12 * * *")
//   - WORKER_TIMEZONE: IANA timezone name (default: "UTC")
//   - FETCH_TIMEOUT: duration string, e.g. "30m" (default: 30 minutes)
//   - FETCH_MAX_WORKERS: integer 1-20 (default: 10)
//   - FETCH_ONLY_RECENT: boolean (default: false)
//   - FETCH_RECENT_DAYS: integer 1-90 (default: 1)
//   - WORKER_HEALTH_PORT: integer 1024-65535 (default: 9091)
//   - WORKER_METRICS_PORT: integer 1024-65535 (default: 9092)
//
// The returned config is always valid; the error is always nil (fail-open).
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	warn := func(field string, result config.ConfigLoadResult) {
		if !result.FallbackApplied {
			return
		}
		fallbackApplied = true
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field, "default")
		for _, warning := range result.Warnings {
			logger.Warn("configuration fallback applied",
				slog.String("field", field),
				slog.String("warning", warning))
		}
	}

	result := config.LoadEnvWithFallback("FETCH_CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = result.Value.(string)
	warn("cron_schedule", result)

	result = config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	warn("timezone", result)

	result = config.LoadEnvDuration("FETCH_TIMEOUT", cfg.FetchTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 1*time.Minute, 4*time.Hour)
	})
	cfg.FetchTimeout = result.Value.(time.Duration)
	warn("fetch_timeout", result)

	result = config.LoadEnvInt("FETCH_MAX_WORKERS", cfg.MaxWorkers, func(v int) error {
		return config.ValidateIntRange(v, 1, 20)
	})
	cfg.MaxWorkers = result.Value.(int)
	warn("max_workers", result)

	result = config.LoadEnvBool("FETCH_ONLY_RECENT", cfg.OnlyRecent)
	cfg.OnlyRecent = result.Value.(bool)
	warn("only_recent", result)

	result = config.LoadEnvInt("FETCH_RECENT_DAYS", cfg.RecentDays, func(v int) error {
		return config.ValidateIntRange(v, 1, 90)
	})
	cfg.RecentDays = result.Value.(int)
	warn("recent_days", result)

	result = config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = result.Value.(int)
	warn("health_port", result)

	result = config.LoadEnvInt("WORKER_METRICS_PORT", cfg.MetricsPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.MetricsPort = result.Value.(int)
	warn("metrics_port", result)

	metrics.SetFallbackActive("", fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
