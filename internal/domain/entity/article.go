// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Article and FeedCacheEntry, along
// with their validation rules and domain-specific errors.
package entity

import "time"

// PublisherType is the coarse classification of a feed source's owner.
type PublisherType string

const (
	PublisherIndustry   PublisherType = "Industry"
	PublisherGovernment PublisherType = "Government"
	PublisherVendor     PublisherType = "Vendor"
	PublisherResearch   PublisherType = "Research"
)

// ContentType is the coarse classification of an article's subject.
type ContentType string

const (
	ContentNews          ContentType = "News"
	ContentResearch      ContentType = "Research"
	ContentEvent         ContentType = "Event"
	ContentAlert         ContentType = "Alert"
	ContentUncategorized ContentType = "Uncategorized"
)

// GlobalRegion is the country tag for articles with no detectable country.
const GlobalRegion = "Global"

// Article represents a news article entity in the system.
// Link is the natural key: no two stored articles ever share the same link.
// CountryRegion holds a comma-joined, sorted set of country names, or "Global".
type Article struct {
	ID            int64
	Title         string
	Link          string
	Description   string
	Source        string
	PublisherType PublisherType
	ContentType   ContentType
	CountryRegion string
	PublishedDate time.Time
	FetchedDate   time.Time
}

// Validate checks that the article has the minimum required fields for storage.
func (a *Article) Validate() error {
	if a.Link == "" {
		return ErrEmptyLink
	}
	if a.Title == "" {
		return ErrEmptyTitle
	}
	if a.CountryRegion == "" {
		a.CountryRegion = GlobalRegion
	}
	if a.ContentType == "" {
		a.ContentType = ContentNews
	}
	return nil
}
