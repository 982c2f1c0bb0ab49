// Package article provides the HTTP handlers for the article API: filtered
// listing, aggregate stats, distinct filter values, the manual ingestion
// trigger, and maintenance operations.
package article

import (
	"time"

	"cybernewshub/internal/domain/entity"
)

// DTO is the JSON representation of one stored article.
type DTO struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Link          string    `json:"link"`
	Description   string    `json:"description"`
	Source        string    `json:"source"`
	PublisherType string    `json:"publisher_type"`
	ContentType   string    `json:"content_type"`
	CountryRegion string    `json:"country_region"`
	PublishedDate time.Time `json:"published_date"`
	FetchedDate   time.Time `json:"fetched_date"`
}

func toDTO(a *entity.Article) DTO {
	return DTO{
		ID:            a.ID,
		Title:         a.Title,
		Link:          a.Link,
		Description:   a.Description,
		Source:        a.Source,
		PublisherType: string(a.PublisherType),
		ContentType:   string(a.ContentType),
		CountryRegion: a.CountryRegion,
		PublishedDate: a.PublishedDate,
		FetchedDate:   a.FetchedDate,
	}
}
