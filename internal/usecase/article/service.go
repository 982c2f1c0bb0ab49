package article

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"cybernewshub/internal/common/pagination"
	"cybernewshub/internal/domain/entity"
	"cybernewshub/internal/feeds"
	"cybernewshub/internal/geo"
	"cybernewshub/internal/observability/metrics"
	"cybernewshub/internal/repository"
	"cybernewshub/internal/usecase/classify"
)

// Service provides article query and maintenance use cases.
type Service struct {
	Repo     repository.ArticleRepository
	Catalog  feeds.Catalog
	Detector *geo.Detector
	// Keyword is the deterministic tier used by re-categorization. The LLM
	// tiers are deliberately not consulted there: re-running the chain over
	// thousands of stored articles would burn API quota for marginal gain.
	Keyword *classify.KeywordClassifier
}

// NewService creates an article service.
func NewService(repo repository.ArticleRepository, catalog feeds.Catalog, detector *geo.Detector, keyword *classify.KeywordClassifier) *Service {
	return &Service{
		Repo:     repo,
		Catalog:  catalog,
		Detector: detector,
		Keyword:  keyword,
	}
}

// ListResult is one page of articles plus paging metadata.
type ListResult struct {
	Articles []*entity.Article
	Total    int64
	Page     int
	PerPage  int
	Pages    int
}

// List returns one page of articles matching the filters.
func (s *Service) List(ctx context.Context, filters repository.ArticleFilters, sortOrder repository.SortOrder, params pagination.Params) (*ListResult, error) {
	total, err := s.Repo.Count(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}

	articles, err := s.Repo.List(ctx, filters, sortOrder, params.Offset(), params.PerPage)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	return &ListResult{
		Articles: articles,
		Total:    total,
		Page:     params.Page,
		PerPage:  params.PerPage,
		Pages:    pagination.TotalPages(total, params.PerPage),
	}, nil
}

// Stats returns aggregate article counts, optionally restricted to the last
// days (0 = all time).
func (s *Service) Stats(ctx context.Context, days int) (*repository.ArticleStats, error) {
	if days < 0 {
		days = 0
	}
	stats, err := s.Repo.Stats(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("article stats: %w", err)
	}
	return stats, nil
}

// Cleanup deletes articles published more than days ago and returns the
// number deleted.
func (s *Service) Cleanup(ctx context.Context, days int) (int64, error) {
	if days < 1 {
		return 0, ErrInvalidDays
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	deleted, err := s.Repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup articles: %w", err)
	}
	metrics.RecordArticlesPruned("manual", int(deleted))
	slog.Info("cleanup completed",
		slog.Int("days", days),
		slog.Int64("deleted", deleted))
	return deleted, nil
}

// DeleteBySource deletes every article from the named source and returns the
// number deleted.
func (s *Service) DeleteBySource(ctx context.Context, source string) (int64, error) {
	if source == "" {
		return 0, ErrEmptySource
	}
	deleted, err := s.Repo.DeleteBySource(ctx, source)
	if err != nil {
		return 0, fmt.Errorf("delete articles by source: %w", err)
	}
	metrics.RecordArticlesPruned("source", int(deleted))
	slog.Info("deleted articles by source",
		slog.String("source", source),
		slog.Int64("deleted", deleted))
	return deleted, nil
}

// DeleteByLink deletes the article with the given link. Returns
// ErrArticleNotFound if no article matched.
func (s *Service) DeleteByLink(ctx context.Context, link string) error {
	if link == "" {
		return ErrEmptyLink
	}
	deleted, err := s.Repo.DeleteByLink(ctx, link)
	if err != nil {
		return fmt.Errorf("delete article by link: %w", err)
	}
	if deleted == 0 {
		return ErrArticleNotFound
	}
	metrics.RecordArticlesPruned("manual", int(deleted))
	return nil
}

// ReCategorizeResult reports how many stored articles changed in a
// re-categorization pass.
type ReCategorizeResult struct {
	CategoriesUpdated int
	RegionsUpdated    int
}

// ReCategorize recomputes content type (keyword tier) and country/region for
// every stored article, rewriting only rows where either value changed.
// Detection is idempotent, so repeated runs on unchanged dictionaries are
// no-ops.
func (s *Service) ReCategorize(ctx context.Context) (*ReCategorizeResult, error) {
	articles, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles for re-categorization: %w", err)
	}

	result := &ReCategorizeResult{}
	for _, art := range articles {
		category := s.Keyword.Score(classify.Input{
			Title:       art.Title,
			Description: art.Description,
			Link:        art.Link,
			Source:      art.Source,
		})
		region := s.Detector.Detect(geo.Input{
			SourceName:    art.Source,
			Link:          art.Link,
			Title:         art.Title,
			Description:   art.Description,
			HomeCountries: s.Catalog.SourceCountries(art.Source),
		})

		categoryChanged := category != art.ContentType
		regionChanged := region != art.CountryRegion
		if !categoryChanged && !regionChanged {
			continue
		}

		if err := s.Repo.UpdateClassification(ctx, art.ID, category, region); err != nil {
			return result, fmt.Errorf("update classification for article %d: %w", art.ID, err)
		}
		if categoryChanged {
			result.CategoriesUpdated++
		}
		if regionChanged {
			result.RegionsUpdated++
		}
	}

	slog.Info("re-categorization completed",
		slog.Int("articles", len(articles)),
		slog.Int("categories_updated", result.CategoriesUpdated),
		slog.Int("regions_updated", result.RegionsUpdated))
	return result, nil
}

// Sources returns the distinct source names in storage.
func (s *Service) Sources(ctx context.Context) ([]string, error) {
	return s.Repo.DistinctSources(ctx)
}

// Categories returns the distinct content types in storage.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.Repo.DistinctCategories(ctx)
}

// PublisherTypes returns the distinct publisher types in storage.
func (s *Service) PublisherTypes(ctx context.Context) ([]string, error) {
	return s.Repo.DistinctPublisherTypes(ctx)
}

// Countries returns the filterable country list: every country seen in
// storage (comma-joined values split first) unioned with the full supported
// set, "Global" removed, sorted.
func (s *Service) Countries(ctx context.Context) ([]string, error) {
	stored, err := s.Repo.DistinctCountryRegions(ctx)
	if err != nil {
		return nil, fmt.Errorf("distinct country regions: %w", err)
	}

	set := make(map[string]bool)
	for _, value := range stored {
		for _, country := range geo.SplitRegions(value) {
			if country != entity.GlobalRegion {
				set[country] = true
			}
		}
	}
	for _, country := range geo.SupportedCountries {
		set[country] = true
	}

	out := make([]string, 0, len(set))
	for country := range set {
		out = append(out, country)
	}
	sort.Strings(out)
	return out, nil
}
