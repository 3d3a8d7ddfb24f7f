// ABOUTME: In-memory article store for development and tests
// ABOUTME: Records are copied on the way in and out so callers cannot mutate stored state

package memory

import (
	"context"
	"sync"

	"yomu-news-api/core/domain"
	coreerrors "yomu-news-api/core/errors"
)

// Store implements interfaces.ArticleStore in memory
type Store struct {
	mu       sync.RWMutex
	articles map[string]domain.StoredArticle
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{articles: make(map[string]domain.StoredArticle)}
}

// Get returns the article stored under url
func (s *Store) Get(ctx context.Context, url string) (*domain.StoredArticle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[url]
	if !ok {
		return nil, &coreerrors.NotFoundError{Resource: "article", ID: url}
	}
	return clone(a), nil
}

// Upsert stores the article, incrementing its fetch count
func (s *Store) Upsert(ctx context.Context, article *domain.StoredArticle) (*domain.StoredArticle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	record := *clone(*article)
	record.FetchCount = 1
	if existing, ok := s.articles[article.URL]; ok {
		record.FetchCount = existing.FetchCount + 1
	}
	s.articles[article.URL] = record
	return clone(record), nil
}

func clone(a domain.StoredArticle) *domain.StoredArticle {
	a.Labels = append([]string(nil), a.Labels...)
	a.Images = append([]string(nil), a.Images...)
	if a.PublishedDate != nil {
		t := *a.PublishedDate
		a.PublishedDate = &t
	}
	return &a
}
