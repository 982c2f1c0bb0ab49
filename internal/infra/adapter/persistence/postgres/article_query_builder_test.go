package postgres

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cybernewshub/internal/repository"
)

func TestArticleQueryBuilder_BuildWhereClause(t *testing.T) {
	qb := NewArticleQueryBuilder()

	tests := []struct {
		name       string
		filters    repository.ArticleFilters
		wantClause string
		wantArgs   []interface{}
	}{
		{
			name:       "no filters keeps future-skew guard",
			filters:    repository.ArticleFilters{},
			wantClause: "WHERE published_date <= NOW() + INTERVAL '24 hours'",
			wantArgs:   nil,
		},
		{
			name:    "category filter",
			filters: repository.ArticleFilters{Category: "Alert"},
			wantClause: "WHERE published_date <= NOW() + INTERVAL '24 hours'" +
				" AND content_type = $1",
			wantArgs: []interface{}{"Alert"},
		},
		{
			name: "all scalar filters combine with AND",
			filters: repository.ArticleFilters{
				Category:      "News",
				PublisherType: "Government",
				Source:        "CISA Advisories",
				Search:        "ransomware",
				Days:          7,
			},
			wantClause: "WHERE published_date <= NOW() + INTERVAL '24 hours'" +
				" AND content_type = $1" +
				" AND publisher_type = $2" +
				" AND source = $3" +
				" AND (title ILIKE $4 OR description ILIKE $4)" +
				" AND published_date >= NOW() - ($5 * INTERVAL '1 day')",
			wantArgs: []interface{}{"News", "Government", "CISA Advisories", "%ransomware%", 7},
		},
		{
			name:    "countries expand to OR of substring matches",
			filters: repository.ArticleFilters{Countries: []string{"Japan", "Germany"}},
			wantClause: "WHERE published_date <= NOW() + INTERVAL '24 hours'" +
				" AND (country_region ILIKE $1 OR country_region ILIKE $2)",
			wantArgs: []interface{}{"%Japan%", "%Germany%"},
		},
		{
			name:    "search input escapes ILIKE metacharacters",
			filters: repository.ArticleFilters{Search: "100%_done"},
			wantClause: "WHERE published_date <= NOW() + INTERVAL '24 hours'" +
				" AND (title ILIKE $1 OR description ILIKE $1)",
			wantArgs: []interface{}{`%100\%\_done%`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := qb.BuildWhereClause(tt.filters)
			if clause != tt.wantClause {
				t.Errorf("clause mismatch:\n got: %s\nwant: %s", clause, tt.wantClause)
			}
			if diff := cmp.Diff(tt.wantArgs, args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestArticleQueryBuilder_OrderClause(t *testing.T) {
	qb := NewArticleQueryBuilder()

	if got := qb.OrderClause(repository.SortNewest); !strings.Contains(got, "DESC") {
		t.Errorf("SortNewest = %q, want DESC", got)
	}
	if got := qb.OrderClause(repository.SortOldest); !strings.Contains(got, "ASC") {
		t.Errorf("SortOldest = %q, want ASC", got)
	}
	// Unknown values fall back to newest-first.
	if got := qb.OrderClause(repository.SortOrder("bogus")); !strings.Contains(got, "DESC") {
		t.Errorf("unknown sort = %q, want DESC", got)
	}
}
