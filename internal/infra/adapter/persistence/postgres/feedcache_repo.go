package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"cybernewshub/internal/domain/entity"
	"cybernewshub/internal/repository"
	"cybernewshub/internal/resilience/circuitbreaker"
)

type FeedCacheRepo struct {
	db *circuitbreaker.DBCircuitBreaker
}

func NewFeedCacheRepo(db *sql.DB) repository.FeedCacheRepository {
	return &FeedCacheRepo{db: circuitbreaker.NewDBCircuitBreaker(db)}
}

func (repo *FeedCacheRepo) Get(ctx context.Context, feedURL string) (*entity.FeedCacheEntry, error) {
	const query = `
SELECT feed_url, etag, last_modified, content_hash, last_fetched
FROM feed_cache
WHERE feed_url = $1
LIMIT 1`
	var entry entity.FeedCacheEntry
	err := repo.db.QueryRowContext(ctx, query, feedURL).
		Scan(&entry.FeedURL, &entry.ETag, &entry.LastModified, &entry.ContentHash, &entry.LastFetched)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &entry, nil
}

func (repo *FeedCacheRepo) Upsert(ctx context.Context, entry *entity.FeedCacheEntry) error {
	const query = `
INSERT INTO feed_cache (feed_url, etag, last_modified, content_hash, last_fetched)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (feed_url) DO UPDATE SET
       etag          = EXCLUDED.etag,
       last_modified = EXCLUDED.last_modified,
       content_hash  = EXCLUDED.content_hash,
       last_fetched  = EXCLUDED.last_fetched`
	_, err := repo.db.ExecContext(ctx, query,
		entry.FeedURL, entry.ETag, entry.LastModified, entry.ContentHash, entry.LastFetched)
	if err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	return nil
}
