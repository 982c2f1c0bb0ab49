package fetcher

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"cybernewshub/internal/domain/entity"
	"cybernewshub/internal/resilience/circuitbreaker"
	"cybernewshub/internal/resilience/retry"
)

// Status describes the outcome of one feed fetch.
type Status string

const (
	// StatusFetched means fresh content was retrieved and parsed.
	StatusFetched Status = "fetched"
	// StatusNotModified means the feed is unchanged since the last run,
	// detected either by 304 Not Modified or by a matching content hash.
	StatusNotModified Status = "not_modified"
	// StatusFailed means the fetch or parse failed.
	StatusFailed Status = "failed"
)

// Entry is one feed item after normalization: HTML stripped, description
// truncated, published date resolved.
type Entry struct {
	Title       string
	Link        string
	Description string
	Published   time.Time
}

// Result is the outcome of fetching one feed. Cache carries the validators
// to persist for the next run; it is set for both fetched and not-modified
// outcomes (a hash match still refreshes last_fetched).
type Result struct {
	Status  Status
	Entries []Entry
	Cache   *entity.FeedCacheEntry
}

// RSS fetches feeds over HTTP with conditional request support and parses
// them with gofeed. Safe for concurrent use.
type RSS struct {
	client         *http.Client
	parser         *gofeed.Parser
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	config         FeedFetchConfig
	now            func() time.Time
}

// NewRSS creates a feed fetcher with the given configuration.
func NewRSS(config FeedFetchConfig) *RSS {
	f := &RSS{
		parser:         gofeed.NewParser(),
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
		config:         config,
		now:            time.Now,
	}

	f.client = &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= f.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
			}
			if err := validateURL(req.URL.String(), f.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}
	return f
}

// Fetch retrieves one feed. The cached entry from the previous run (nil on
// first fetch) supplies the conditional request validators.
func (f *RSS) Fetch(ctx context.Context, feedURL string, cached *entity.FeedCacheEntry) (Result, error) {
	if err := validateURL(feedURL, f.config.DenyPrivateIPs); err != nil {
		return Result{Status: StatusFailed}, err
	}

	var result Result
	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		cbResult, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, feedURL, cached)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed fetch circuit breaker open, request rejected",
					slog.String("feed_url", feedURL),
					slog.String("state", f.circuitBreaker.State().String()))
				return fmt.Errorf("feed fetch unavailable: circuit breaker open")
			}
			return err
		}
		result = cbResult.(Result)
		return nil
	})
	if retryErr != nil {
		return Result{Status: StatusFailed}, retryErr
	}
	return result, nil
}

// doFetch performs one conditional GET and parse without retry or circuit
// breaker.
func (f *RSS) doFetch(ctx context.Context, feedURL string, cached *entity.FeedCacheEntry) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return Result{}, fmt.Errorf("%w: failed to create request: %v", ErrInvalidURL, err)
	}

	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	if cached != nil {
		if cached.ETag != "" {
			req.Header.Set("If-None-Match", cached.ETag)
		}
		if cached.LastModified != "" {
			req.Header.Set("If-Modified-Since", cached.LastModified)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("feed request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotModified {
		// Keep the old validators, just refresh last_fetched.
		entry := &entity.FeedCacheEntry{
			FeedURL:     feedURL,
			LastFetched: f.now().UTC(),
		}
		if cached != nil {
			entry.ETag = cached.ETag
			entry.LastModified = cached.LastModified
			entry.ContentHash = cached.ContentHash
		}
		return Result{Status: StatusNotModified, Cache: entry}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return Result{}, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read feed body: %w", err)
	}

	// Second not-modified signal for servers that ignore conditional
	// headers: an unchanged body hashes to the stored value.
	sum := sha256.Sum256(body)
	contentHash := hex.EncodeToString(sum[:])
	if cached != nil && cached.ContentHash != "" && cached.ContentHash == contentHash {
		entry := &entity.FeedCacheEntry{
			FeedURL:      feedURL,
			ETag:         cached.ETag,
			LastModified: cached.LastModified,
			ContentHash:  cached.ContentHash,
			LastFetched:  f.now().UTC(),
		}
		return Result{Status: StatusNotModified, Cache: entry}, nil
	}

	feed, err := f.parser.ParseString(string(body))
	if err != nil {
		return Result{}, fmt.Errorf("feed parse failed: %w", err)
	}
	if len(feed.Items) == 0 {
		return Result{}, ErrNoEntries
	}

	cacheEntry := &entity.FeedCacheEntry{
		FeedURL:      feedURL,
		ETag:         resp.Header.Get("ETag"),
		LastModified: resp.Header.Get("Last-Modified"),
		ContentHash:  contentHash,
		LastFetched:  f.now().UTC(),
	}

	return Result{
		Status:  StatusFetched,
		Entries: f.normalizeItems(feed.Items),
		Cache:   cacheEntry,
	}, nil
}

// normalizeItems maps parsed feed items to entries, capped at the configured
// per-feed maximum. Items without a link are skipped.
func (f *RSS) normalizeItems(items []*gofeed.Item) []Entry {
	if len(items) > f.config.MaxEntriesPerFeed {
		items = items[:f.config.MaxEntriesPerFeed]
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		if item.Link == "" {
			continue
		}

		title := strings.TrimSpace(item.Title)
		if title == "" {
			title = "No Title"
		}

		description := item.Description
		if description == "" {
			description = item.Content
		}
		description = f.cleanDescription(description)

		entries = append(entries, Entry{
			Title:       title,
			Link:        item.Link,
			Description: description,
			Published:   f.resolvePublished(item),
		})
	}
	return entries
}

// resolvePublished picks the entry's timestamp: published, then updated,
// then the fetch time. All times normalize to UTC.
func (f *RSS) resolvePublished(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC()
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.UTC()
	}
	return f.now().UTC()
}

// cleanDescription strips HTML markup, collapses whitespace, and truncates
// to the configured length.
func (f *RSS) cleanDescription(raw string) string {
	if raw == "" {
		return ""
	}

	text := raw
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw)); err == nil {
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")

	if f.config.MaxDescriptionLength > 0 && len(text) > f.config.MaxDescriptionLength {
		text = text[:f.config.MaxDescriptionLength]
	}
	return text
}
