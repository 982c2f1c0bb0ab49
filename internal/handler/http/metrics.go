package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cybernewshub/internal/handler/http/responsewriter"
	"cybernewshub/internal/observability/metrics"
)

// knownPaths is the fixed route set. Metrics label anything else "other" so
// scanners probing random URLs cannot explode label cardinality.
var knownPaths = map[string]bool{
	"/api/articles":                  true,
	"/api/articles/sources":          true,
	"/api/articles/categories":       true,
	"/api/articles/publisher-types":  true,
	"/api/articles/countries":        true,
	"/api/articles/delete":           true,
	"/api/articles/delete-by-source": true,
	"/api/articles/re-categorize":    true,
	"/api/feeds/fetch":               true,
	"/api/feeds/sources-by-country":  true,
	"/api/stats":                     true,
	"/api/cleanup":                   true,
	"/api/health":                    true,
	"/metrics":                       true,
	"/healthz":                       true,
	"/readyz":                        true,
}

// normalizePath maps a request path onto a bounded label set.
func normalizePath(path string) string {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	if knownPaths[path] {
		return path
	}
	return "other"
}

// MetricsMiddleware records request count, duration, and sizes for every
// request, labeled with a normalized path.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.ActiveConnections.Inc()
		defer metrics.ActiveConnections.Dec()

		wrapped := responsewriter.Wrap(w)
		start := time.Now()
		next.ServeHTTP(wrapped, r)

		requestSize := 0
		if r.ContentLength > 0 {
			requestSize = int(r.ContentLength)
		}
		metrics.RecordHTTPRequest(
			r.Method,
			normalizePath(r.URL.Path),
			strconv.Itoa(wrapped.StatusCode()),
			time.Since(start),
			requestSize,
			wrapped.BytesWritten(),
		)
	})
}

// MetricsHandler returns the Prometheus scrape endpoint handler.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
