package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"cybernewshub/internal/domain/entity"
	"cybernewshub/internal/observability/metrics"
	"cybernewshub/internal/repository"
	"cybernewshub/internal/resilience/circuitbreaker"
)

// articleColumns is the scan column list shared by every SELECT.
const articleColumns = `id, title, link, description, source, publisher_type, content_type, country_region, published_date, fetched_date`

type ArticleRepo struct {
	db           *circuitbreaker.DBCircuitBreaker
	queryBuilder *ArticleQueryBuilder
}

// NewArticleRepo wraps the connection in a circuit breaker so a dead database
// fails requests fast instead of piling up blocked queries.
func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{
		db:           circuitbreaker.NewDBCircuitBreaker(db),
		queryBuilder: NewArticleQueryBuilder(),
	}
}

func scanArticle(rows *sql.Rows) (*entity.Article, error) {
	var article entity.Article
	err := rows.Scan(&article.ID, &article.Title, &article.Link, &article.Description,
		&article.Source, &article.PublisherType, &article.ContentType,
		&article.CountryRegion, &article.PublishedDate, &article.FetchedDate)
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// InsertBatch stores articles in a single multi-row INSERT. Links that
// already exist are skipped via ON CONFLICT DO NOTHING, so concurrent runs
// never violate the unique constraint.
func (repo *ArticleRepo) InsertBatch(ctx context.Context, articles []*entity.Article) (int64, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert_articles", time.Since(start)) }()

	var sb strings.Builder
	sb.WriteString(`
INSERT INTO articles
       (title, link, description, source, publisher_type, content_type, country_region, published_date, fetched_date)
VALUES `)

	args := make([]interface{}, 0, len(articles)*9)
	for i, article := range articles {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 9
		sb.WriteString(fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))
		args = append(args,
			article.Title, article.Link, article.Description, article.Source,
			article.PublisherType, article.ContentType, article.CountryRegion,
			article.PublishedDate, article.FetchedDate,
		)
	}
	sb.WriteString(" ON CONFLICT (link) DO NOTHING")

	res, err := repo.db.ExecContext(ctx, sb.String(), args...)
	if err != nil {
		return 0, fmt.Errorf("InsertBatch: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("InsertBatch: RowsAffected: %w", err)
	}
	return inserted, nil
}

// ExistsByLinkBatch checks link existence in a single query to avoid N+1
// round trips during ingestion.
func (repo *ArticleRepo) ExistsByLinkBatch(ctx context.Context, links []string) (map[string]bool, error) {
	if len(links) == 0 {
		return make(map[string]bool), nil
	}

	placeholders := make([]string, len(links))
	args := make([]interface{}, len(links))
	for i, link := range links {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = link
	}
	query := "SELECT link FROM articles WHERE link IN (" + strings.Join(placeholders, ", ") + ")"

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ExistsByLinkBatch: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]bool, len(links))
	for rows.Next() {
		var link string
		if err := rows.Scan(&link); err != nil {
			return nil, fmt.Errorf("ExistsByLinkBatch: Scan: %w", err)
		}
		result[link] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ExistsByLinkBatch: rows.Err: %w", err)
	}
	return result, nil
}

func (repo *ArticleRepo) List(ctx context.Context, filters repository.ArticleFilters, sort repository.SortOrder, offset, limit int) ([]*entity.Article, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select_articles", time.Since(start)) }()

	whereClause, args := repo.queryBuilder.BuildWhereClause(filters)
	paramIndex := len(args) + 1
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
SELECT %s
FROM articles
%s
%s
LIMIT $%d OFFSET $%d`, articleColumns, whereClause, repo.queryBuilder.OrderClause(sort), paramIndex, paramIndex+1)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, limit)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

func (repo *ArticleRepo) Count(ctx context.Context, filters repository.ArticleFilters) (int64, error) {
	whereClause, args := repo.queryBuilder.BuildWhereClause(filters)
	query := "SELECT COUNT(*) FROM articles " + whereClause

	var count int64
	if err := repo.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *ArticleRepo) ListAll(ctx context.Context) ([]*entity.Article, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM articles
ORDER BY id`, articleColumns)

	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ListAll: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 100)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("ListAll: Scan: %w", err)
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// Stats aggregates counts in one round trip per dimension. The days argument
// restricts every figure except the 24-hour count, which is always relative
// to now.
func (repo *ArticleRepo) Stats(ctx context.Context, days int) (*repository.ArticleStats, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("stats_aggregate", time.Since(start)) }()

	scope := ""
	var args []interface{}
	if days > 0 {
		scope = "WHERE published_date >= NOW() - ($1 * INTERVAL '1 day')"
		args = append(args, days)
	}

	stats := &repository.ArticleStats{
		ByPublisherType: make(map[string]int64),
		ByContentType:   make(map[string]int64),
	}

	totalsQuery := fmt.Sprintf(`
SELECT COUNT(*),
       COUNT(*) FILTER (WHERE published_date >= NOW() - INTERVAL '24 hours'),
       MIN(published_date)
FROM articles %s`, scope)

	var oldest sql.NullTime
	err := repo.db.QueryRowContext(ctx, totalsQuery, args...).
		Scan(&stats.TotalArticles, &stats.RecentArticles, &oldest)
	if err != nil {
		return nil, fmt.Errorf("Stats: totals: %w", err)
	}
	if oldest.Valid {
		stats.OldestArticle = &oldest.Time
	}

	publisherQuery := fmt.Sprintf(`
SELECT publisher_type, COUNT(*)
FROM articles %s
GROUP BY publisher_type`, scope)
	if err := repo.scanGroupCounts(ctx, publisherQuery, args, stats.ByPublisherType); err != nil {
		return nil, fmt.Errorf("Stats: by publisher type: %w", err)
	}

	contentQuery := fmt.Sprintf(`
SELECT content_type, COUNT(*)
FROM articles %s
GROUP BY content_type`, scope)
	if err := repo.scanGroupCounts(ctx, contentQuery, args, stats.ByContentType); err != nil {
		return nil, fmt.Errorf("Stats: by content type: %w", err)
	}

	return stats, nil
}

func (repo *ArticleRepo) scanGroupCounts(ctx context.Context, query string, args []interface{}, dest map[string]int64) error {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		dest[key] = count
	}
	return rows.Err()
}

func (repo *ArticleRepo) UpdateClassification(ctx context.Context, id int64, contentType entity.ContentType, countryRegion string) error {
	const query = `
UPDATE articles SET
       content_type   = $1,
       country_region = $2
WHERE id = $3`
	res, err := repo.db.ExecContext(ctx, query, contentType, countryRegion, id)
	if err != nil {
		return fmt.Errorf("UpdateClassification: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("UpdateClassification: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *ArticleRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM articles WHERE published_date < $1`
	res, err := repo.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("DeleteOlderThan: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteOlderThan: RowsAffected: %w", err)
	}
	return deleted, nil
}

// TrimToCapacity evicts the oldest articles by published date, regardless of
// when they were fetched, until at most capacity rows remain.
func (repo *ArticleRepo) TrimToCapacity(ctx context.Context, capacity int) (int64, error) {
	const query = `
DELETE FROM articles
WHERE id IN (
    SELECT id FROM articles
    ORDER BY published_date ASC
    LIMIT GREATEST((SELECT COUNT(*) FROM articles) - $1, 0)
)`
	res, err := repo.db.ExecContext(ctx, query, capacity)
	if err != nil {
		return 0, fmt.Errorf("TrimToCapacity: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("TrimToCapacity: RowsAffected: %w", err)
	}
	return deleted, nil
}

func (repo *ArticleRepo) DeleteBySource(ctx context.Context, source string) (int64, error) {
	const query = `DELETE FROM articles WHERE source = $1`
	res, err := repo.db.ExecContext(ctx, query, source)
	if err != nil {
		return 0, fmt.Errorf("DeleteBySource: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteBySource: RowsAffected: %w", err)
	}
	return deleted, nil
}

func (repo *ArticleRepo) DeleteByLink(ctx context.Context, link string) (int64, error) {
	const query = `DELETE FROM articles WHERE link = $1`
	res, err := repo.db.ExecContext(ctx, query, link)
	if err != nil {
		return 0, fmt.Errorf("DeleteByLink: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteByLink: RowsAffected: %w", err)
	}
	return deleted, nil
}

func (repo *ArticleRepo) DistinctSources(ctx context.Context) ([]string, error) {
	return repo.distinctColumn(ctx, "source")
}

func (repo *ArticleRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	return repo.distinctColumn(ctx, "content_type")
}

func (repo *ArticleRepo) DistinctPublisherTypes(ctx context.Context) ([]string, error) {
	return repo.distinctColumn(ctx, "publisher_type")
}

func (repo *ArticleRepo) DistinctCountryRegions(ctx context.Context) ([]string, error) {
	return repo.distinctColumn(ctx, "country_region")
}

// distinctColumn lists the distinct non-empty values of one column, sorted.
// The column name is always one of the fixed callers above, never user input.
func (repo *ArticleRepo) distinctColumn(ctx context.Context, column string) ([]string, error) {
	query := fmt.Sprintf(`SELECT DISTINCT %s FROM articles WHERE %s <> '' ORDER BY %s`, column, column, column)

	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", column, err)
	}
	defer func() { _ = rows.Close() }()

	values := make([]string, 0, 16)
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("distinct %s: Scan: %w", column, err)
		}
		values = append(values, value)
	}
	return values, rows.Err()
}
