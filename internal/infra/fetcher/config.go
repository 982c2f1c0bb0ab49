// Package fetcher fetches and parses RSS/Atom feeds with HTTP conditional
// request support. A feed that has not changed since the last run is detected
// twice over: by 304 Not Modified against stored validators, and by a SHA-256
// hash of the body for servers that ignore conditional headers.
package fetcher

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// browserUserAgent is sent on every feed request. Several feeds (notably
// government ones behind CDNs) reject default Go client user agents.
const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// FeedFetchConfig holds the configuration for feed fetching operations.
type FeedFetchConfig struct {
	// Timeout is the maximum duration for a single feed request. Some feeds
	// are slow, so this is more generous than a typical API timeout.
	// Default: 15s
	Timeout time.Duration

	// MaxEntriesPerFeed caps how many of a feed's most recent entries are
	// processed per run. Keeps one huge feed from dominating a run.
	// Default: 20
	MaxEntriesPerFeed int

	// MaxDescriptionLength truncates stored descriptions to this many bytes
	// after HTML stripping.
	// Default: 500
	MaxDescriptionLength int

	// MaxRedirects is the maximum number of HTTP redirects to follow.
	// Default: 5
	MaxRedirects int

	// DenyPrivateIPs blocks feed URLs resolving to private, loopback, or
	// link-local addresses. Should always be true in production.
	// Default: true
	DenyPrivateIPs bool
}

// DefaultFeedFetchConfig returns production-ready defaults.
func DefaultFeedFetchConfig() FeedFetchConfig {
	return FeedFetchConfig{
		Timeout:              15 * time.Second,
		MaxEntriesPerFeed:    20,
		MaxDescriptionLength: 500,
		MaxRedirects:         5,
		DenyPrivateIPs:       true,
	}
}

// Validate checks that the configuration values are valid and safe.
func (c *FeedFetchConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxEntriesPerFeed < 1 || c.MaxEntriesPerFeed > 500 {
		return fmt.Errorf("max entries per feed must be between 1 and 500, got %d", c.MaxEntriesPerFeed)
	}
	if c.MaxDescriptionLength < 0 {
		return fmt.Errorf("max description length must be non-negative, got %d", c.MaxDescriptionLength)
	}
	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}
	return nil
}

// LoadFeedFetchConfig loads configuration from environment variables,
// falling back to defaults, and validates the result.
//
// Environment variables:
//   - FEED_FETCH_TIMEOUT: duration string, e.g., "15s" (default: 15s)
//   - MAX_ARTICLES_PER_FEED: integer (default: 20)
//   - FEED_MAX_DESCRIPTION_LENGTH: integer (default: 500)
//   - FEED_FETCH_MAX_REDIRECTS: integer (default: 5)
//   - FEED_FETCH_DENY_PRIVATE_IPS: "true" or "false" (default: true)
func LoadFeedFetchConfig() (FeedFetchConfig, error) {
	cfg := DefaultFeedFetchConfig()

	if val := os.Getenv("FEED_FETCH_TIMEOUT"); val != "" {
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid FEED_FETCH_TIMEOUT: %v (expected format: '15s', '1m')", err)
		}
		cfg.Timeout = parsed
	}

	if val := os.Getenv("MAX_ARTICLES_PER_FEED"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid MAX_ARTICLES_PER_FEED: %v", err)
		}
		cfg.MaxEntriesPerFeed = parsed
	}

	if val := os.Getenv("FEED_MAX_DESCRIPTION_LENGTH"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid FEED_MAX_DESCRIPTION_LENGTH: %v", err)
		}
		cfg.MaxDescriptionLength = parsed
	}

	if val := os.Getenv("FEED_FETCH_MAX_REDIRECTS"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid FEED_FETCH_MAX_REDIRECTS: %v", err)
		}
		cfg.MaxRedirects = parsed
	}

	if val := os.Getenv("FEED_FETCH_DENY_PRIVATE_IPS"); val != "" {
		cfg.DenyPrivateIPs = val == "true"
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}
