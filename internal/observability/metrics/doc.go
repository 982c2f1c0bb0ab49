// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Business metrics (feed fetches, ingestion, classification, pruning)
//   - Database query metrics
//   - Application performance metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "cybernewshub/internal/observability/metrics"
//
//	func ingestFeed(source string) {
//	    start := time.Now()
//	    // ... fetch and store entries ...
//	    metrics.RecordFeedFetch(source, "fetched", time.Since(start))
//	    metrics.RecordArticlesIngested(source, 10)
//	}
package metrics
