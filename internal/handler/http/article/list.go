package article

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"cybernewshub/internal/common/pagination"
	"cybernewshub/internal/handler/http/respond"
	"cybernewshub/internal/repository"
	artUC "cybernewshub/internal/usecase/article"
)

// ListHandler serves GET /api/articles: filtered, sorted, paginated listing.
type ListHandler struct {
	Svc           *artUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

type listResponse struct {
	Articles []DTO `json:"articles"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PerPage  int   `json:"per_page"`
	Pages    int   `json:"pages"`
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	filters, err := parseFilters(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	sortOrder, err := parseSortOrder(r.URL.Query().Get("sort_by"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.Svc.List(r.Context(), filters, sortOrder, params)
	if err != nil {
		h.Logger.Error("failed to list articles",
			slog.Int("page", params.Page),
			slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DTO, 0, len(result.Articles))
	for _, a := range result.Articles {
		dtos = append(dtos, toDTO(a))
	}

	respond.JSON(w, http.StatusOK, listResponse{
		Articles: dtos,
		Total:    result.Total,
		Page:     result.Page,
		PerPage:  result.PerPage,
		Pages:    result.Pages,
	})
}

// parseFilters reads the optional filter parameters from the query string.
func parseFilters(r *http.Request) (repository.ArticleFilters, error) {
	q := r.URL.Query()
	filters := repository.ArticleFilters{
		Category:      q.Get("category"),
		PublisherType: q.Get("publisher_type"),
		Source:        q.Get("source"),
		Search:        q.Get("search"),
	}

	if daysStr := q.Get("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil || days < 1 {
			return filters, fmt.Errorf("invalid query parameter: days must be a positive integer")
		}
		filters.Days = days
	}

	// countries is a comma-joined list, e.g. "Japan,United States".
	if countriesStr := q.Get("countries"); countriesStr != "" {
		for _, country := range strings.Split(countriesStr, ",") {
			if country = strings.TrimSpace(country); country != "" {
				filters.Countries = append(filters.Countries, country)
			}
		}
	}

	return filters, nil
}

func parseSortOrder(sortBy string) (repository.SortOrder, error) {
	switch sortBy {
	case "", "newest":
		return repository.SortNewest, nil
	case "oldest":
		return repository.SortOldest, nil
	default:
		return "", fmt.Errorf("invalid query parameter: sort_by must be newest or oldest")
	}
}
