package repository

import (
	"context"
	"time"

	"cybernewshub/internal/domain/entity"
)

// SortOrder controls result ordering by published date.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

// ArticleFilters contains optional filters for article listing.
// Zero values mean "no filter".
type ArticleFilters struct {
	// Category filters by content type (News, Research, Event, Alert).
	Category string
	// PublisherType filters by publisher type (Industry, Government, Vendor, Research).
	PublisherType string
	// Source filters by exact source name.
	Source string
	// Search is a case-insensitive substring match over title or description.
	Search string
	// Days keeps articles published within the last N days.
	Days int
	// Countries keeps articles whose country_region contains any of the
	// given country names. The column stores a comma-joined list, so each
	// country is matched as a substring.
	Countries []string
}

// ArticleStats is the aggregate view returned by Stats.
type ArticleStats struct {
	TotalArticles   int64
	RecentArticles  int64 // published within the last 24 hours
	ByPublisherType map[string]int64
	ByContentType   map[string]int64
	OldestArticle   *time.Time
}

// ArticleRepository defines persistence for articles. The link column is the
// identity of an article: inserts silently skip links that already exist.
type ArticleRepository interface {
	// InsertBatch stores the given articles, skipping any whose link is
	// already present. Returns the number of rows actually inserted.
	InsertBatch(ctx context.Context, articles []*entity.Article) (int64, error)

	// ExistsByLinkBatch checks which of the given links already exist, in a
	// single query. Links absent from the result map do not exist.
	ExistsByLinkBatch(ctx context.Context, links []string) (map[string]bool, error)

	// List returns articles matching the filters, ordered by published date,
	// with LIMIT/OFFSET paging. Articles with a published date more than 24
	// hours in the future are excluded.
	List(ctx context.Context, filters ArticleFilters, sort SortOrder, offset, limit int) ([]*entity.Article, error)

	// Count returns the number of articles matching the filters, under the
	// same future-date exclusion as List.
	Count(ctx context.Context, filters ArticleFilters) (int64, error)

	// ListAll returns every stored article. Used by re-categorization.
	ListAll(ctx context.Context) ([]*entity.Article, error)

	// Stats returns aggregate counts, optionally restricted to articles
	// published within the last days (0 = all).
	Stats(ctx context.Context, days int) (*ArticleStats, error)

	// UpdateClassification rewrites the derived content_type and
	// country_region columns for one article.
	UpdateClassification(ctx context.Context, id int64, contentType entity.ContentType, countryRegion string) error

	// DeleteOlderThan removes articles published before the cutoff.
	// Returns the number of rows deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// TrimToCapacity removes the oldest articles by published date until at
	// most capacity rows remain. Returns the number of rows deleted.
	TrimToCapacity(ctx context.Context, capacity int) (int64, error)

	// DeleteBySource removes all articles from the named source.
	// Returns the number of rows deleted.
	DeleteBySource(ctx context.Context, source string) (int64, error)

	// DeleteByLink removes the article with the given link.
	// Returns the number of rows deleted (0 or 1).
	DeleteByLink(ctx context.Context, link string) (int64, error)

	// DistinctSources returns the sorted set of source names in storage.
	DistinctSources(ctx context.Context) ([]string, error)

	// DistinctCategories returns the sorted set of content types in storage.
	DistinctCategories(ctx context.Context) ([]string, error)

	// DistinctPublisherTypes returns the sorted set of publisher types in storage.
	DistinctPublisherTypes(ctx context.Context) ([]string, error)

	// DistinctCountryRegions returns the raw country_region values in
	// storage. Values are comma-joined lists; callers split them.
	DistinctCountryRegions(ctx context.Context) ([]string, error)
}
