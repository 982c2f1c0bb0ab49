package db

import (
	"database/sql"
)

// MigrateUp creates the schema. Safe to run on every startup: all statements
// are IF NOT EXISTS.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS articles (
    id             SERIAL PRIMARY KEY,
    title          TEXT NOT NULL,
    link           TEXT NOT NULL UNIQUE,
    description    TEXT NOT NULL DEFAULT '',
    source         TEXT NOT NULL,
    publisher_type VARCHAR(20) NOT NULL DEFAULT 'Industry',
    content_type   VARCHAR(20) NOT NULL DEFAULT 'News',
    country_region TEXT NOT NULL DEFAULT 'Global',
    published_date TIMESTAMPTZ NOT NULL,
    fetched_date   TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS feed_cache (
    feed_url      TEXT PRIMARY KEY,
    etag          TEXT NOT NULL DEFAULT '',
    last_modified TEXT NOT NULL DEFAULT '',
    content_hash  TEXT NOT NULL DEFAULT '',
    last_fetched  TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		// Every listing query orders by published_date.
		`CREATE INDEX IF NOT EXISTS idx_articles_published_date ON articles(published_date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_source ON articles(source)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_content_type ON articles(content_type)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_publisher_type ON articles(publisher_type)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	// pg_trgm speeds up the ILIKE search filters. Ignored when the extension
	// cannot be created (no superuser) — queries still work, just slower.
	_, _ = db.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`)
	searchIndexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_articles_title_gin ON articles USING gin(title gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_description_gin ON articles USING gin(description gin_trgm_ops)`,
	}
	for _, idx := range searchIndexes {
		_, _ = db.Exec(idx)
	}

	return nil
}

// MigrateDown drops the schema. Use with caution: this deletes all data.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS feed_cache`,
		`DROP TABLE IF EXISTS articles CASCADE`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
