package http

import (
	"database/sql"
	"log/slog"
	"net/http"

	"cybernewshub/internal/common/pagination"
	"cybernewshub/internal/feeds"
	harticle "cybernewshub/internal/handler/http/article"
	"cybernewshub/internal/handler/http/requestid"
	"cybernewshub/internal/observability/tracing"
	artUC "cybernewshub/internal/usecase/article"
	"cybernewshub/internal/usecase/ingest"
)

// maxRequestBodyBytes caps request bodies. The largest legitimate body is the
// ingestion trigger's parameter object, so 1MB is generous.
const maxRequestBodyBytes = 1 << 20

// RouterDeps carries everything the API router needs.
type RouterDeps struct {
	DB            *sql.DB
	Version       string
	Articles      *artUC.Service
	Ingest        *ingest.Service
	Catalog       feeds.Catalog
	Bounds        ingest.Config
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// NewRouter builds the full API handler: all routes wrapped in the standard
// middleware chain.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /api/health", &HealthHandler{DB: deps.DB, Version: deps.Version})
	mux.Handle("GET /healthz", &LiveHandler{})
	mux.Handle("GET /readyz", &ReadyHandler{DB: deps.DB})
	mux.Handle("GET /metrics", MetricsHandler())

	harticle.Register(mux, deps.Articles, deps.Ingest, deps.Catalog,
		deps.Bounds, deps.PaginationCfg, deps.Logger)

	// Outermost first: the request ID must exist before anything logs, and
	// tracing must wrap metrics so the span covers the whole request.
	return Chain(mux,
		requestid.Middleware,
		tracing.Middleware,
		Recover(deps.Logger),
		Logging(deps.Logger),
		MetricsMiddleware,
		LimitRequestBody(maxRequestBodyBytes),
	)
}
