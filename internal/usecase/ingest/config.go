package ingest

import (
	"fmt"

	"cybernewshub/pkg/config"
)

const (
	defaultMaxArticles   = 5000
	defaultRetentionDays = 90
	defaultMaxWorkers    = 10
	defaultRecentDays    = 1

	// maxWorkerCap bounds concurrency regardless of the requested worker
	// count, to avoid hammering feed hosts from one IP.
	maxWorkerCap = 20
)

// Config holds the storage bounds enforced after every ingestion run.
type Config struct {
	// MaxArticles is the storage capacity ceiling. After inserting a batch,
	// the oldest articles by published date are evicted until at most this
	// many remain.
	// Default: 5000
	MaxArticles int

	// RetentionDays is how long articles are kept. Articles published before
	// now minus this window are swept after every run.
	// Default: 90
	RetentionDays int
}

// DefaultConfig returns the standard storage bounds.
func DefaultConfig() Config {
	return Config{
		MaxArticles:   defaultMaxArticles,
		RetentionDays: defaultRetentionDays,
	}
}

// LoadConfig reads the storage bounds from the environment.
//
// Environment variables:
//   - MAX_ARTICLES: capacity ceiling (default: 5000)
//   - ARTICLE_RETENTION_DAYS: retention window in days (default: 90)
func LoadConfig() (Config, error) {
	cfg := Config{
		MaxArticles:   config.GetEnvInt("MAX_ARTICLES", defaultMaxArticles),
		RetentionDays: config.GetEnvInt("ARTICLE_RETENTION_DAYS", defaultRetentionDays),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("ingest configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c Config) Validate() error {
	if c.MaxArticles < 1 {
		return fmt.Errorf("max articles must be positive, got %d", c.MaxArticles)
	}
	if c.RetentionDays < 1 {
		return fmt.Errorf("retention days must be positive, got %d", c.RetentionDays)
	}
	return nil
}

// Params controls one ingestion run. The zero value requests a full run with
// default concurrency.
type Params struct {
	// MaxWorkers is the requested fetch concurrency. Zero means the default
	// of 10; the effective value is additionally capped at 20 and at the
	// number of feeds.
	MaxWorkers int

	// OnlyRecent drops entries published more than RecentDays*24h before the
	// run started.
	OnlyRecent bool

	// RecentDays is the lookback window used when OnlyRecent is set.
	// Zero means 1.
	RecentDays int

	// Countries restricts the run to feeds whose home country is listed.
	// Empty means all feeds.
	Countries []string
}

// workerCount resolves the effective fetch concurrency for a feed count.
func (p Params) workerCount(feedCount int) int {
	workers := p.MaxWorkers
	if workers <= 0 {
		workers = defaultMaxWorkers
	}
	if workers > maxWorkerCap {
		workers = maxWorkerCap
	}
	if workers > feedCount {
		workers = feedCount
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// recentCutoffDays resolves the lookback window used when OnlyRecent is set.
func (p Params) recentCutoffDays() int {
	if p.RecentDays <= 0 {
		return defaultRecentDays
	}
	return p.RecentDays
}
