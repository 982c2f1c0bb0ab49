package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cybernewshub/internal/common/pagination"
)

func TestParseQueryParams(t *testing.T) {
	cfg := pagination.DefaultConfig()

	tests := []struct {
		name    string
		query   string
		want    pagination.Params
		wantErr bool
	}{
		{"defaults", "", pagination.Params{Page: 1, PerPage: 50}, false},
		{"explicit", "page=3&per_page=10", pagination.Params{Page: 3, PerPage: 10}, false},
		{"page only", "page=2", pagination.Params{Page: 2, PerPage: 50}, false},
		{"per_page only", "per_page=25", pagination.Params{Page: 1, PerPage: 25}, false},
		{"max per_page", "per_page=100", pagination.Params{Page: 1, PerPage: 100}, false},
		{"zero page", "page=0", pagination.Params{}, true},
		{"negative page", "page=-1", pagination.Params{}, true},
		{"non-numeric page", "page=abc", pagination.Params{}, true},
		{"per_page over max", "per_page=101", pagination.Params{}, true},
		{"zero per_page", "per_page=0", pagination.Params{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/articles?"+tt.query, nil)
			got, err := pagination.ParseQueryParams(r, cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, PerPage: 50}.Offset())
	assert.Equal(t, 50, pagination.Params{Page: 2, PerPage: 50}.Offset())
	assert.Equal(t, 20, pagination.Params{Page: 3, PerPage: 10}.Offset())
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total   int64
		perPage int
		want    int
	}{
		{0, 50, 1},
		{1, 50, 1},
		{50, 50, 1},
		{51, 50, 2},
		{100, 50, 2},
		{101, 50, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pagination.TotalPages(tt.total, tt.perPage),
			"total=%d per_page=%d", tt.total, tt.perPage)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PAGINATION_DEFAULT_PER_PAGE", "25")
	t.Setenv("PAGINATION_MAX_PER_PAGE", "200")

	cfg := pagination.LoadFromEnv()
	assert.Equal(t, 1, cfg.DefaultPage)
	assert.Equal(t, 25, cfg.DefaultPerPage)
	assert.Equal(t, 200, cfg.MaxPerPage)
}
