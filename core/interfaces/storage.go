// ABOUTME: Storage interfaces for persisting domain entities
// ABOUTME: Defines contracts for the article persistence collaborator

package interfaces

import (
	"context"

	"yomu-news-api/core/domain"
)

// ArticleStore persists parsed articles keyed by source URL
type ArticleStore interface {
	// Get retrieves an article by URL. Returns a NotFoundError when absent.
	Get(ctx context.Context, url string) (*domain.StoredArticle, error)

	// Upsert inserts or replaces the article. FetchCount is incremented by the store
	// and the stored record is returned.
	Upsert(ctx context.Context, article *domain.StoredArticle) (*domain.StoredArticle, error)
}
