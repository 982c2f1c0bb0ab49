// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"strings"

	"cybernewshub/internal/repository"
)

// futureSkewGuard excludes articles whose published date is implausibly far
// in the future. Some feeds ship bad timestamps; anything more than a day
// ahead of the server clock is hidden from queries rather than deleted.
const futureSkewGuard = "published_date <= NOW() + INTERVAL '24 hours'"

// ArticleQueryBuilder builds WHERE clauses for article listing in PostgreSQL.
// This builder is shared between COUNT and SELECT queries to eliminate duplication.
// It uses PostgreSQL-specific features like ILIKE and numbered placeholders ($1, $2, etc.).
type ArticleQueryBuilder struct{}

// NewArticleQueryBuilder creates a new query builder instance.
func NewArticleQueryBuilder() *ArticleQueryBuilder {
	return &ArticleQueryBuilder{}
}

// BuildWhereClause builds the WHERE clause and arguments for article listing.
// All filters combine with AND; the country filter is an OR of substring
// matches because country_region stores a comma-joined list. The future-skew
// guard is always present, so the clause is never empty.
func (qb *ArticleQueryBuilder) BuildWhereClause(filters repository.ArticleFilters) (clause string, args []interface{}) {
	conditions := []string{futureSkewGuard}
	paramIndex := 1

	if filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("content_type = $%d", paramIndex))
		args = append(args, filters.Category)
		paramIndex++
	}

	if filters.PublisherType != "" {
		conditions = append(conditions, fmt.Sprintf("publisher_type = $%d", paramIndex))
		args = append(args, filters.PublisherType)
		paramIndex++
	}

	if filters.Source != "" {
		conditions = append(conditions, fmt.Sprintf("source = $%d", paramIndex))
		args = append(args, filters.Source)
		paramIndex++
	}

	if filters.Search != "" {
		escaped := "%" + escapeILIKE(filters.Search) + "%"
		conditions = append(conditions,
			fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", paramIndex, paramIndex))
		args = append(args, escaped)
		paramIndex++
	}

	if filters.Days > 0 {
		conditions = append(conditions,
			fmt.Sprintf("published_date >= NOW() - ($%d * INTERVAL '1 day')", paramIndex))
		args = append(args, filters.Days)
		paramIndex++
	}

	if len(filters.Countries) > 0 {
		countryConds := make([]string, 0, len(filters.Countries))
		for _, country := range filters.Countries {
			countryConds = append(countryConds, fmt.Sprintf("country_region ILIKE $%d", paramIndex))
			args = append(args, "%"+escapeILIKE(country)+"%")
			paramIndex++
		}
		conditions = append(conditions, "("+strings.Join(countryConds, " OR ")+")")
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// OrderClause returns the ORDER BY clause for the given sort order.
func (qb *ArticleQueryBuilder) OrderClause(sort repository.SortOrder) string {
	if sort == repository.SortOldest {
		return "ORDER BY published_date ASC"
	}
	return "ORDER BY published_date DESC"
}

// escapeILIKE escapes the ILIKE pattern metacharacters in user input so a
// search for "100%" matches the literal text.
func escapeILIKE(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
