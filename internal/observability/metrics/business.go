package metrics

import "time"

// RecordArticlesIngested records newly stored articles for a source.
func RecordArticlesIngested(sourceName string, count int) {
	if count > 0 {
		ArticlesIngestedTotal.WithLabelValues(sourceName).Add(float64(count))
	}
}

// RecordArticlesSkipped records feed entries skipped during ingestion.
// Reason should be "duplicate" or "invalid".
func RecordArticlesSkipped(reason string, count int) {
	if count > 0 {
		ArticlesSkippedTotal.WithLabelValues(reason).Add(float64(count))
	}
}

// RecordArticlesPruned records articles deleted by a maintenance operation.
// Reason should be "retention", "capacity", "source", or "manual".
func RecordArticlesPruned(reason string, count int) {
	if count > 0 {
		ArticlesPrunedTotal.WithLabelValues(reason).Add(float64(count))
	}
}

// RecordFeedFetch records the outcome and duration of one feed fetch.
// Status should be "fetched", "not_modified", or "failed".
func RecordFeedFetch(sourceName, status string, duration time.Duration) {
	FeedFetchesTotal.WithLabelValues(sourceName, status).Inc()
	FeedFetchDuration.WithLabelValues(sourceName).Observe(duration.Seconds())
}

// RecordClassification records one classifier tier outcome.
// Outcome should be "accepted" or "fell_through".
func RecordClassification(tier, outcome string) {
	ClassificationsTotal.WithLabelValues(tier, outcome).Inc()
}

// RecordIngestionRun records the duration of a full ingestion run.
func RecordIngestionRun(duration time.Duration) {
	IngestionDuration.Observe(duration.Seconds())
}

// UpdateArticlesTotal updates the total count of articles in the database.
// This gauge should be updated after ingestion and maintenance runs.
func UpdateArticlesTotal(count int) {
	ArticlesTotal.Set(float64(count))
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "select_articles", "insert_article").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
