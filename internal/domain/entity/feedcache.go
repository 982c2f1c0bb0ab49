package entity

import "time"

// FeedCacheEntry holds per-feed conditional-fetch metadata.
// At most one entry exists per feed URL; entries are created or updated after
// every fetch attempt and never deleted automatically.
type FeedCacheEntry struct {
	FeedURL      string
	ETag         string
	LastModified string
	ContentHash  string
	LastFetched  time.Time
}
