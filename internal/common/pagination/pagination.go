// Package pagination provides offset-based pagination helpers shared by the
// HTTP handlers: query parameter parsing, offset math, and response metadata.
package pagination

import (
	"fmt"
	"net/http"
	"strconv"

	"cybernewshub/pkg/config"
)

// Config holds pagination limits and defaults.
type Config struct {
	DefaultPage    int
	DefaultPerPage int
	MaxPerPage     int
}

// DefaultConfig returns the standard pagination settings: page 1, 50 items
// per page, capped at 100.
func DefaultConfig() Config {
	return Config{
		DefaultPage:    1,
		DefaultPerPage: 50,
		MaxPerPage:     100,
	}
}

// LoadFromEnv loads pagination settings from the environment.
//
// Environment variables:
//   - PAGINATION_DEFAULT_PER_PAGE: default items per page (default: 50)
//   - PAGINATION_MAX_PER_PAGE: maximum items per page (default: 100)
func LoadFromEnv() Config {
	return Config{
		DefaultPage:    1,
		DefaultPerPage: config.GetEnvInt("PAGINATION_DEFAULT_PER_PAGE", 50),
		MaxPerPage:     config.GetEnvInt("PAGINATION_MAX_PER_PAGE", 100),
	}
}

// Params are the parsed pagination parameters of one request.
type Params struct {
	Page    int // 1-based
	PerPage int
}

// ParseQueryParams reads `page` and `per_page` from the request query string,
// applying defaults for missing values and rejecting invalid ones.
func ParseQueryParams(r *http.Request, cfg Config) (Params, error) {
	params := Params{
		Page:    cfg.DefaultPage,
		PerPage: cfg.DefaultPerPage,
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Page = page
	}

	if perPageStr := r.URL.Query().Get("per_page"); perPageStr != "" {
		perPage, err := strconv.Atoi(perPageStr)
		if err != nil || perPage < 1 || perPage > cfg.MaxPerPage {
			return params, fmt.Errorf("invalid query parameter: per_page must be between 1 and %d", cfg.MaxPerPage)
		}
		params.PerPage = perPage
	}

	return params, nil
}

// Offset returns the database OFFSET for the parameters. Page 1 is offset 0.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// TotalPages returns the page count for a total item count, using ceiling
// division. A total of zero still yields one page.
func TotalPages(total int64, perPage int) int {
	if total == 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
