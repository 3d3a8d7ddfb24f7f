package extraction

import (
	"context"

	"yomu-news-api/core/domain"
)

type mockStore struct {
	getFunc    func(ctx context.Context, url string) (*domain.StoredArticle, error)
	upsertFunc func(ctx context.Context, article *domain.StoredArticle) (*domain.StoredArticle, error)
	upserts    []*domain.StoredArticle
}

func (m *mockStore) Get(ctx context.Context, url string) (*domain.StoredArticle, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, url)
	}
	return nil, nil
}

func (m *mockStore) Upsert(ctx context.Context, article *domain.StoredArticle) (*domain.StoredArticle, error) {
	m.upserts = append(m.upserts, article)
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, article)
	}
	saved := *article
	saved.FetchCount++
	return &saved, nil
}

type mockFetcher struct {
	fetchFunc func(ctx context.Context, url string) ([]byte, error)
	calls     int
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	m.calls++
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, url)
	}
	return nil, nil
}
