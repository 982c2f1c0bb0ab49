package repository

import (
	"context"

	"cybernewshub/internal/domain/entity"
)

// FeedCacheRepository persists per-feed HTTP validator state (ETag,
// Last-Modified, content hash) between ingestion runs so unchanged feeds can
// be skipped.
type FeedCacheRepository interface {
	// Get returns the cache entry for a feed URL, or (nil, nil) if the feed
	// has never been fetched.
	Get(ctx context.Context, feedURL string) (*entity.FeedCacheEntry, error)

	// Upsert stores or replaces the cache entry for entry.FeedURL.
	Upsert(ctx context.Context, entry *entity.FeedCacheEntry) error
}
