// Package ingest orchestrates one aggregation run: fetch all configured feeds
// in parallel, then merge the results single-threaded — classify, geo-tag,
// dedup, insert — and finally enforce the retention window and capacity
// ceiling.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"cybernewshub/internal/domain/entity"
	"cybernewshub/internal/feeds"
	"cybernewshub/internal/geo"
	"cybernewshub/internal/infra/fetcher"
	"cybernewshub/internal/observability/metrics"
	"cybernewshub/internal/repository"
	"cybernewshub/internal/usecase/classify"
)

// FeedFetcher retrieves one feed, using the cached entry from the previous
// run for conditional requests.
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string, cached *entity.FeedCacheEntry) (fetcher.Result, error)
}

// Categorizer assigns a content category to an article.
type Categorizer interface {
	Classify(ctx context.Context, in classify.Input) classify.Result
}

// Service runs the ingestion pipeline. All dependencies are required except
// none: the catalog, fetcher, repositories, categorizer, and detector must
// all be wired before calling FetchFeeds.
type Service struct {
	Catalog     feeds.Catalog
	Fetcher     FeedFetcher
	ArticleRepo repository.ArticleRepository
	CacheRepo   repository.FeedCacheRepository
	Categorizer Categorizer
	Detector    *geo.Detector
	Config      Config

	now func() time.Time
}

// NewService creates an ingestion service with the provided dependencies.
func NewService(
	catalog feeds.Catalog,
	feedFetcher FeedFetcher,
	articleRepo repository.ArticleRepository,
	cacheRepo repository.FeedCacheRepository,
	categorizer Categorizer,
	detector *geo.Detector,
	cfg Config,
) *Service {
	return &Service{
		Catalog:     catalog,
		Fetcher:     feedFetcher,
		ArticleRepo: articleRepo,
		CacheRepo:   cacheRepo,
		Categorizer: categorizer,
		Detector:    detector,
		Config:      cfg,
		now:         time.Now,
	}
}

// feedOutcome is the result of fetching one source, collected by the worker
// pool and consumed by the single-threaded merge.
type feedOutcome struct {
	source feeds.Source
	result fetcher.Result
	err    error
}

// FetchFeeds runs one full ingestion pass and returns its report. Individual
// feed failures are recorded in the report, not returned as errors; an error
// return means the run itself could not complete (storage failure, context
// cancellation).
func (s *Service) FetchFeeds(ctx context.Context, params Params) (*Report, error) {
	start := s.now()
	defer func() { metrics.RecordIngestionRun(time.Since(start)) }()

	sources := s.Catalog.ForCountries(params.Countries)
	report := &Report{
		Status:        "success",
		MaxArticles:   s.Config.MaxArticles,
		RetentionDays: s.Config.RetentionDays,
	}
	if len(sources) == 0 {
		slog.Info("no feeds matched the requested countries",
			slog.Any("countries", params.Countries))
		return report, nil
	}

	workers := params.workerCount(len(sources))
	slog.Info("fetching feeds",
		slog.Int("feeds", len(sources)),
		slog.Int("workers", workers))

	outcomes := s.fetchAll(ctx, sources, workers)

	if err := s.merge(ctx, outcomes, params, report); err != nil {
		return report, err
	}
	if err := s.enforceBounds(ctx, report); err != nil {
		return report, err
	}

	if total, err := s.ArticleRepo.Count(ctx, repository.ArticleFilters{}); err == nil {
		metrics.UpdateArticlesTotal(int(total))
	}

	slog.Info("ingestion run completed",
		slog.Int("total_fetched", report.TotalFetched),
		slog.Int("new_articles", report.NewArticles),
		slog.Int("successful_feeds", report.SuccessfulFeeds),
		slog.Int("cached_feeds", report.CachedFeeds),
		slog.Int("failed_feeds", report.FailedFeeds),
		slog.Int("duplicates", report.DuplicateArticles),
		slog.Int64("old_articles_deleted", report.OldArticlesDeleted),
		slog.Int64("deleted_for_capacity", report.DeletedForCapacity),
		slog.Duration("duration", time.Since(start)))

	return report, nil
}

// fetchAll fetches every source through a bounded worker pool and returns one
// outcome per source. Fetch errors are captured per-outcome, never returned.
func (s *Service) fetchAll(ctx context.Context, sources []feeds.Source, workers int) []feedOutcome {
	outcomes := make([]feedOutcome, len(sources))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, src := range sources {
		i, src := i, src
		eg.Go(func() error {
			fetchStart := time.Now()
			cached, err := s.CacheRepo.Get(egCtx, src.URL)
			if err != nil {
				slog.Warn("feed cache lookup failed, fetching unconditionally",
					slog.String("source", src.Name),
					slog.Any("error", err))
				cached = nil
			}

			result, err := s.Fetcher.Fetch(egCtx, src.URL, cached)
			outcomes[i] = feedOutcome{source: src, result: result, err: err}

			status := string(result.Status)
			if err != nil {
				status = string(fetcher.StatusFailed)
			}
			metrics.RecordFeedFetch(src.Name, status, time.Since(fetchStart))
			return nil
		})
	}
	// Workers never return errors; Wait only observes context cancellation.
	_ = eg.Wait()

	return outcomes
}

// merge processes fetch outcomes single-threaded: per-entry classification
// and geo detection, in-batch and stored-link dedup, batch insert, and the
// per-feed cache commit.
func (s *Service) merge(ctx context.Context, outcomes []feedOutcome, params Params, report *Report) error {
	var recentCutoff time.Time
	if params.OnlyRecent {
		recentCutoff = s.now().UTC().Add(-time.Duration(params.recentCutoffDays()) * 24 * time.Hour)
	}

	type candidate struct {
		source feeds.Source
		entry  fetcher.Entry
	}
	var candidates []candidate
	seen := make(map[string]bool)

	for _, outcome := range outcomes {
		if outcome.err != nil {
			slog.Warn("feed fetch failed",
				slog.String("source", outcome.source.Name),
				slog.String("feed_url", outcome.source.URL),
				slog.Any("error", outcome.err))
			report.addFailure(outcome.source.Name, outcome.source.URL, truncateError(outcome.err))
			continue
		}
		if outcome.result.Status == fetcher.StatusNotModified {
			report.CachedFeeds++
			continue
		}

		report.SuccessfulFeeds++
		for _, entry := range outcome.result.Entries {
			report.TotalFetched++
			if params.OnlyRecent && entry.Published.Before(recentCutoff) {
				continue
			}
			if seen[entry.Link] {
				report.DuplicateArticles++
				metrics.RecordArticlesSkipped("duplicate", 1)
				continue
			}
			seen[entry.Link] = true
			candidates = append(candidates, candidate{source: outcome.source, entry: entry})
		}
	}

	if len(candidates) > 0 {
		links := make([]string, len(candidates))
		for i, c := range candidates {
			links[i] = c.entry.Link
		}
		existing, err := s.ArticleRepo.ExistsByLinkBatch(ctx, links)
		if err != nil {
			return fmt.Errorf("batch link existence check: %w", err)
		}

		fetchedAt := s.now().UTC()
		articles := make([]*entity.Article, 0, len(candidates))
		perSource := make(map[string]int)
		for _, c := range candidates {
			if existing[c.entry.Link] {
				report.DuplicateArticles++
				metrics.RecordArticlesSkipped("duplicate", 1)
				continue
			}
			article := s.buildArticle(ctx, c.source, c.entry, fetchedAt)
			if err := article.Validate(); err != nil {
				metrics.RecordArticlesSkipped("invalid", 1)
				continue
			}
			articles = append(articles, article)
			perSource[c.source.Name]++
		}

		if len(articles) > 0 {
			inserted, err := s.ArticleRepo.InsertBatch(ctx, articles)
			if err != nil {
				return fmt.Errorf("insert article batch: %w", err)
			}
			report.NewArticles = int(inserted)
			// Rows the conflict clause skipped were stored by a concurrent
			// run between the existence check and the insert.
			report.DuplicateArticles += len(articles) - int(inserted)
			for name, count := range perSource {
				metrics.RecordArticlesIngested(name, count)
			}
		}
	}

	// Commit feed cache entries only after the merge so a failed run retries
	// with the previous validators.
	for _, outcome := range outcomes {
		if outcome.err != nil || outcome.result.Cache == nil {
			continue
		}
		if err := s.CacheRepo.Upsert(ctx, outcome.result.Cache); err != nil {
			slog.Warn("feed cache update failed",
				slog.String("source", outcome.source.Name),
				slog.Any("error", err))
		}
	}

	return nil
}

// buildArticle classifies and geo-tags one feed entry.
func (s *Service) buildArticle(ctx context.Context, src feeds.Source, entry fetcher.Entry, fetchedAt time.Time) *entity.Article {
	classification := s.Categorizer.Classify(ctx, classify.Input{
		Title:       entry.Title,
		Description: entry.Description,
		Link:        entry.Link,
		Source:      src.Name,
	})

	countryRegion := s.Detector.Detect(geo.Input{
		SourceName:    src.Name,
		Link:          entry.Link,
		Title:         entry.Title,
		Description:   entry.Description,
		HomeCountries: s.Catalog.SourceCountries(src.Name),
	})

	return &entity.Article{
		Title:         entry.Title,
		Link:          entry.Link,
		Description:   entry.Description,
		Source:        src.Name,
		PublisherType: src.PublisherType(),
		ContentType:   classification.Category,
		CountryRegion: countryRegion,
		PublishedDate: entry.Published,
		FetchedDate:   fetchedAt,
	}
}

// enforceBounds applies the retention sweep and the capacity trim.
func (s *Service) enforceBounds(ctx context.Context, report *Report) error {
	cutoff := s.now().UTC().AddDate(0, 0, -s.Config.RetentionDays)
	swept, err := s.ArticleRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("retention sweep: %w", err)
	}
	report.OldArticlesDeleted = swept
	metrics.RecordArticlesPruned("retention", int(swept))

	trimmed, err := s.ArticleRepo.TrimToCapacity(ctx, s.Config.MaxArticles)
	if err != nil {
		return fmt.Errorf("capacity trim: %w", err)
	}
	report.DeletedForCapacity = trimmed
	metrics.RecordArticlesPruned("capacity", int(trimmed))

	return nil
}

// truncateError bounds an error string for the report, matching the cap on
// stored failure details.
func truncateError(err error) string {
	msg := err.Error()
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
