package mappers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yomu-news-api/core/domain"
	"yomu-news-api/core/headlines"
	"yomu-news-api/core/interfaces"
)

func rubyNode(t *testing.T, kanji, reading string) domain.ContentNode {
	t.Helper()
	n, ok := domain.NewRuby(kanji, reading)
	require.True(t, ok)
	return n
}

func TestToFetchNewsResponse_WireShape(t *testing.T) {
	fetched := time.Date(2024, 12, 18, 3, 0, 0, 0, time.UTC)
	resp := ToFetchNewsResponse(&interfaces.FetchNewsResult{
		Article: &domain.ParsedArticle{
			Title:  []domain.ContentNode{rubyNode(t, "雪", "ゆき")},
			Source: "nhk-easy",
		},
		SourceDomain:  "www3.nhk.or.jp",
		FetchCount:    3,
		LastFetchedAt: fetched,
	})

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var wire map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, []interface{}{}, wire["labels"])
	assert.Equal(t, []interface{}{}, wire["content"])
	assert.Equal(t, []interface{}{}, wire["images"])
	assert.Nil(t, wire["published_date"])
	assert.Contains(t, wire, "published_date")
	assert.Equal(t, "www3.nhk.or.jp", wire["source_domain"])
	assert.Equal(t, float64(3), wire["fetch_count"])
	assert.Equal(t, "2024-12-18T03:00:00Z", wire["last_fetched_at"])
	assert.Equal(t, []interface{}{
		map[string]interface{}{"kind": "ruby", "kanji": "雪", "reading": "ゆき"},
	}, wire["title"])
}

func TestToSentencesResponse(t *testing.T) {
	article := &domain.ParsedArticle{
		Title: []domain.ContentNode{domain.NewText("ニュース")},
		Content: []domain.Paragraph{
			{Content: []domain.ContentNode{rubyNode(t, "雪", "ゆき"), domain.NewText("です。"), domain.NewText("寒い。")}},
			{Content: []domain.ContentNode{domain.NewText("終わり")}},
		},
	}

	resp := ToSentencesResponse("https://www3.nhk.or.jp/a", article)

	assert.Equal(t, "ニュース", resp.Title)
	require.Len(t, resp.Sentences, 3)
	assert.Equal(t, "雪です。", resp.Sentences[0].Text)
	assert.Equal(t, "ゆきです。", resp.Sentences[0].Reading)
	assert.Equal(t, 0, resp.Sentences[1].Paragraph)
	assert.Equal(t, 2, resp.Sentences[2].Index)
	assert.Equal(t, 1, resp.Sentences[2].Paragraph)
}

func TestToHeadlinesResponse(t *testing.T) {
	published := time.Date(2024, 12, 18, 2, 0, 0, 0, time.UTC)
	resp := ToHeadlinesResponse("nhk-easy", []headlines.Headline{
		{Title: "大雪", Link: "https://www3.nhk.or.jp/a", Published: &published, Source: "nhk-easy"},
	})
	assert.Equal(t, "nhk-easy", resp.Source)
	require.Len(t, resp.Headlines, 1)
	assert.Equal(t, "大雪", resp.Headlines[0].Title)

	empty := ToHeadlinesResponse("nhk-easy", nil)
	assert.NotNil(t, empty.Headlines)
}
