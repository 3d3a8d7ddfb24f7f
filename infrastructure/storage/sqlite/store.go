// ABOUTME: SQLite article store, the persistence collaborator of the extraction service
// ABOUTME: Title and content stay serialized JSON; labels and images are JSON arrays

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"yomu-news-api/core/domain"
	coreerrors "yomu-news-api/core/errors"
	"yomu-news-api/infrastructure/sqlitedb"
)

const schema = `
CREATE TABLE IF NOT EXISTS articles (
	url             TEXT PRIMARY KEY,
	title           TEXT NOT NULL,
	labels          TEXT NOT NULL DEFAULT '[]',
	content         TEXT NOT NULL,
	published_date  INTEGER,
	images          TEXT NOT NULL DEFAULT '[]',
	source          TEXT NOT NULL,
	source_domain   TEXT NOT NULL,
	fetch_count     INTEGER NOT NULL DEFAULT 0,
	last_fetched_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_articles_source ON articles(source, last_fetched_at);
`

// Store implements interfaces.ArticleStore on SQLite
type Store struct {
	db *sql.DB
}

// NewStore opens the database at path and creates the schema
func NewStore(path string) (*Store, error) {
	db, err := sqlitedb.Open(path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create articles schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Get returns the article stored under url
func (s *Store) Get(ctx context.Context, url string) (*domain.StoredArticle, error) {
	var (
		a              domain.StoredArticle
		labels, images string
		published      sql.NullInt64
		source         string
		lastFetched    int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT url, title, labels, content, published_date, images, source, source_domain, fetch_count, last_fetched_at
		FROM articles WHERE url = ?`, url,
	).Scan(&a.URL, &a.Title, &labels, &a.Content, &published, &images, &source, &a.SourceDomain, &a.FetchCount, &lastFetched)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &coreerrors.NotFoundError{Resource: "article", ID: url}
	}
	if err != nil {
		return nil, fmt.Errorf("query article: %w", err)
	}

	if err := json.Unmarshal([]byte(labels), &a.Labels); err != nil {
		return nil, fmt.Errorf("decode labels: %w", err)
	}
	if err := json.Unmarshal([]byte(images), &a.Images); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}
	if published.Valid {
		t := time.UnixMilli(published.Int64).UTC()
		a.PublishedDate = &t
	}
	a.Source = domain.SourceID(source)
	a.LastFetchedAt = time.UnixMilli(lastFetched).UTC()
	return &a, nil
}

// Upsert inserts or replaces the article, incrementing its fetch count
func (s *Store) Upsert(ctx context.Context, article *domain.StoredArticle) (*domain.StoredArticle, error) {
	labels, err := json.Marshal(nonNil(article.Labels))
	if err != nil {
		return nil, err
	}
	images, err := json.Marshal(nonNil(article.Images))
	if err != nil {
		return nil, err
	}
	var published sql.NullInt64
	if article.PublishedDate != nil {
		published = sql.NullInt64{Int64: article.PublishedDate.UnixMilli(), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO articles (url, title, labels, content, published_date, images, source, source_domain, fetch_count, last_fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			labels = excluded.labels,
			content = excluded.content,
			published_date = excluded.published_date,
			images = excluded.images,
			source = excluded.source,
			source_domain = excluded.source_domain,
			fetch_count = articles.fetch_count + 1,
			last_fetched_at = excluded.last_fetched_at`,
		article.URL, article.Title, string(labels), article.Content, published, string(images),
		string(article.Source), article.SourceDomain, article.LastFetchedAt.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("upsert article: %w", err)
	}
	return s.Get(ctx, article.URL)
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
