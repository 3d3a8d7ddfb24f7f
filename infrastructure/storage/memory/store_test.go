package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yomu-news-api/core/domain"
	coreerrors "yomu-news-api/core/errors"
)

func TestStore_GetMissing(t *testing.T) {
	_, err := NewStore().Get(context.Background(), "https://www3.nhk.or.jp/a")
	assert.True(t, coreerrors.IsNotFound(err))
}

func TestStore_UpsertCountsFetches(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	article := &domain.StoredArticle{
		URL:           "https://www3.nhk.or.jp/a",
		Title:         `[{"kind":"text","content":"雪"}]`,
		Labels:        []string{"天気"},
		LastFetchedAt: time.Now(),
	}

	saved, err := s.Upsert(ctx, article)
	require.NoError(t, err)
	assert.Equal(t, 1, saved.FetchCount)

	saved, err = s.Upsert(ctx, article)
	require.NoError(t, err)
	assert.Equal(t, 2, saved.FetchCount)

	got, err := s.Get(ctx, article.URL)
	require.NoError(t, err)
	assert.Equal(t, 2, got.FetchCount)
	assert.Equal(t, article.Title, got.Title)
}

func TestStore_CopiesRecords(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	labels := []string{"天気"}

	_, err := s.Upsert(ctx, &domain.StoredArticle{URL: "u", Labels: labels})
	require.NoError(t, err)
	labels[0] = "changed"

	got, _ := s.Get(ctx, "u")
	got.Labels = append(got.Labels, "extra")

	again, _ := s.Get(ctx, "u")
	assert.Equal(t, []string{"天気"}, again.Labels)
}
