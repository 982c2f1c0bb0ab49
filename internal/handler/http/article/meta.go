package article

import (
	"context"
	"net/http"

	"cybernewshub/internal/feeds"
	"cybernewshub/internal/handler/http/respond"
	artUC "cybernewshub/internal/usecase/article"
)

// The distinct-value handlers back the UI filter dropdowns. Each returns a
// sorted list under a single key, never null.

// SourcesHandler serves GET /api/articles/sources.
type SourcesHandler struct{ Svc *artUC.Service }

func (h SourcesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respondList(w, r.Context(), "sources", h.Svc.Sources)
}

// CategoriesHandler serves GET /api/articles/categories.
type CategoriesHandler struct{ Svc *artUC.Service }

func (h CategoriesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respondList(w, r.Context(), "categories", h.Svc.Categories)
}

// PublisherTypesHandler serves GET /api/articles/publisher-types.
type PublisherTypesHandler struct{ Svc *artUC.Service }

func (h PublisherTypesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respondList(w, r.Context(), "publisher_types", h.Svc.PublisherTypes)
}

// CountriesHandler serves GET /api/articles/countries.
type CountriesHandler struct{ Svc *artUC.Service }

func (h CountriesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respondList(w, r.Context(), "countries", h.Svc.Countries)
}

func respondList(w http.ResponseWriter, ctx context.Context, key string, fn func(context.Context) ([]string, error)) {
	values, err := fn(ctx)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	if values == nil {
		values = []string{}
	}
	respond.JSON(w, http.StatusOK, map[string][]string{key: values})
}

// SourcesByCountryHandler serves GET /api/feeds/sources-by-country: the
// catalog's countries mapped to their configured source counts.
type SourcesByCountryHandler struct{ Catalog feeds.Catalog }

type sourcesByCountryResponse struct {
	Countries      map[string]int `json:"countries"`
	TotalCountries int            `json:"total_countries"`
	TotalSources   int            `json:"total_sources"`
}

func (h SourcesByCountryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	counts := h.Catalog.CountriesWithSources()
	total := 0
	for _, n := range counts {
		total += n
	}
	respond.JSON(w, http.StatusOK, sourcesByCountryResponse{
		Countries:      counts,
		TotalCountries: len(counts),
		TotalSources:   total,
	})
}
