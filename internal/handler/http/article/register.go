package article

import (
	"log/slog"
	"net/http"

	"cybernewshub/internal/common/pagination"
	"cybernewshub/internal/feeds"
	artUC "cybernewshub/internal/usecase/article"
	"cybernewshub/internal/usecase/ingest"
)

// Register wires every article API route onto the mux.
func Register(
	mux *http.ServeMux,
	artSvc *artUC.Service,
	ingestSvc *ingest.Service,
	catalog feeds.Catalog,
	bounds ingest.Config,
	paginationCfg pagination.Config,
	logger *slog.Logger,
) {
	mux.Handle("GET /api/articles", ListHandler{
		Svc:           artSvc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET /api/articles/sources", SourcesHandler{artSvc})
	mux.Handle("GET /api/articles/categories", CategoriesHandler{artSvc})
	mux.Handle("GET /api/articles/publisher-types", PublisherTypesHandler{artSvc})
	mux.Handle("GET /api/articles/countries", CountriesHandler{artSvc})
	mux.Handle("GET /api/stats", StatsHandler{Svc: artSvc, Bounds: bounds})
	mux.Handle("GET /api/feeds/sources-by-country", SourcesByCountryHandler{catalog})

	mux.Handle("POST /api/feeds/fetch", FetchHandler{Svc: ingestSvc, Logger: logger})
	mux.Handle("POST /api/cleanup", CleanupHandler{artSvc})
	mux.Handle("POST /api/articles/delete", DeleteByLinkHandler{artSvc})
	mux.Handle("POST /api/articles/delete-by-source", DeleteBySourceHandler{artSvc})
	mux.Handle("POST /api/articles/re-categorize", ReCategorizeHandler{Svc: artSvc, Logger: logger})
}
