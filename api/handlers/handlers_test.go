package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yomu-news-api/core/adapters"
	"yomu-news-api/core/domain"
	coreerrors "yomu-news-api/core/errors"
	"yomu-news-api/core/headlines"
	"yomu-news-api/core/interfaces"
	"yomu-news-api/core/workers"
)

const articleURL = "https://www3.nhk.or.jp/news/easy/k10014669321000/k10014669321000.html"

func sampleResult(t *testing.T) *interfaces.FetchNewsResult {
	t.Helper()
	snow, ok := domain.NewRuby("大雪", "おおゆき")
	require.True(t, ok)
	published := time.Date(2024, 12, 18, 2, 45, 0, 0, time.UTC)
	return &interfaces.FetchNewsResult{
		Article: &domain.ParsedArticle{
			Title:  []domain.ContentNode{snow, domain.NewText("で電車が止まる")},
			Labels: []string{},
			Content: []domain.Paragraph{
				{Content: []domain.ContentNode{snow, domain.NewText("が降りました。"), domain.NewText("電車が止まりました。")}},
			},
			PublishedDate: &published,
			Images:        []string{"https://www3.nhk.or.jp/news/easy/a.jpg"},
			Source:        "nhk-easy",
		},
		SourceDomain:  "www3.nhk.or.jp",
		FetchCount:    2,
		LastFetchedAt: time.Date(2024, 12, 18, 3, 0, 0, 0, time.UTC),
	}
}

func decodeError(t *testing.T, body []byte) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestArticleHandler_RegisterRoutes(t *testing.T) {
	_, api := humatest.New(t)
	NewArticleHandler(&mockArticleService{}).RegisterRoutes(api)

	paths := api.OpenAPI().Paths
	require.NotNil(t, paths["/fetch-news"])
	assert.NotNil(t, paths["/fetch-news"].Get)
	require.NotNil(t, paths["/sentences"])
	assert.NotNil(t, paths["/sentences"].Get)
}

func TestFetchNews_Success(t *testing.T) {
	var gotURL string
	service := &mockArticleService{
		fetchNewsFunc: func(_ context.Context, sourceURL string) (*interfaces.FetchNewsResult, error) {
			gotURL = sourceURL
			return sampleResult(t), nil
		},
	}
	_, api := humatest.New(t)
	NewArticleHandler(service).RegisterRoutes(api)

	resp := api.Get("/fetch-news?source=" + articleURL)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, articleURL, gotURL)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "www3.nhk.or.jp", body["source_domain"])
	assert.Equal(t, float64(2), body["fetch_count"])
	assert.Equal(t, "2024-12-18T02:45:00Z", body["published_date"])
	title := body["title"].([]interface{})
	assert.Equal(t, map[string]interface{}{"kind": "ruby", "kanji": "大雪", "reading": "おおゆき"}, title[0])
	content := body["content"].([]interface{})
	assert.Equal(t, "paragraph", content[0].(map[string]interface{})["kind"])
}

func TestFetchNews_MissingSource(t *testing.T) {
	_, api := humatest.New(t)
	NewArticleHandler(&mockArticleService{}).RegisterRoutes(api)

	resp := api.Get("/fetch-news")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "source parameter is required", decodeError(t, resp.Body.Bytes())["error"])
}

func TestFetchNews_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid url", &coreerrors.ValidationError{Field: "source", Message: "must be an http(s) URL"}, http.StatusBadRequest},
		{"unsupported source", &coreerrors.UnsupportedSourceError{Host: "example.com"}, http.StatusBadRequest},
		{"network failure", fmt.Errorf("fetch article: %w", &coreerrors.ExternalAPIError{StatusCode: 502}), http.StatusInternalServerError},
		{"adapter failure", fmt.Errorf("decode stored article"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockArticleService{
				fetchNewsFunc: func(context.Context, string) (*interfaces.FetchNewsResult, error) {
					return nil, tt.err
				},
			}
			_, api := humatest.New(t)
			NewArticleHandler(service).RegisterRoutes(api)

			resp := api.Get("/fetch-news?source=" + articleURL)
			assert.Equal(t, tt.status, resp.Code)
			body := decodeError(t, resp.Body.Bytes())
			assert.NotEmpty(t, body["error"])
			assert.Equal(t, tt.err.Error(), body["details"])
		})
	}
}

func TestGetSentences(t *testing.T) {
	service := &mockArticleService{
		fetchNewsFunc: func(context.Context, string) (*interfaces.FetchNewsResult, error) {
			return sampleResult(t), nil
		},
	}
	_, api := humatest.New(t)
	NewArticleHandler(service).RegisterRoutes(api)

	resp := api.Get("/sentences?source=" + articleURL)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body struct {
		Title     string `json:"title"`
		Sentences []struct {
			Index   int    `json:"index"`
			Text    string `json:"text"`
			Reading string `json:"reading"`
		} `json:"sentences"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "大雪で電車が止まる", body.Title)
	require.Len(t, body.Sentences, 2)
	assert.Equal(t, "大雪が降りました。", body.Sentences[0].Text)
	assert.Equal(t, "おおゆきが降りました。", body.Sentences[0].Reading)
	assert.Equal(t, 1, body.Sentences[1].Index)
}

func TestSynthesize_ReturnsAudio(t *testing.T) {
	var got domain.SpeechRequest
	service := &mockSpeechService{
		synthesizeFunc: func(_ context.Context, req domain.SpeechRequest) ([]byte, error) {
			got = req
			return []byte("ID3audio"), nil
		},
	}
	_, api := humatest.New(t)
	NewSpeechHandler(service).RegisterRoutes(api)

	resp := api.Post("/tts", map[string]interface{}{
		"text":  "大雪が降りました。",
		"voice": "ja-JP-Neural2-B",
		"speed": 1.5,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, "audio/mpeg", resp.Header().Get("Content-Type"))
	assert.Equal(t, "8", resp.Header().Get("Content-Length"))
	assert.Equal(t, "ID3audio", resp.Body.String())
	assert.Equal(t, domain.SpeechRequest{Text: "大雪が降りました。", Voice: "ja-JP-Neural2-B", Speed: 1.5}, got)
}

func TestSynthesize_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", &coreerrors.ValidationError{Field: "speed", Message: "must be between 0.25 and 4"}, http.StatusBadRequest},
		{"synthesis", &coreerrors.SynthesisError{Voice: "ja-JP-Neural2-B", Message: "quota"}, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockSpeechService{
				synthesizeFunc: func(context.Context, domain.SpeechRequest) ([]byte, error) { return nil, tt.err },
			}
			_, api := humatest.New(t)
			NewSpeechHandler(service).RegisterRoutes(api)

			resp := api.Post("/tts", map[string]interface{}{"text": "テスト", "speed": 9})
			assert.Equal(t, tt.status, resp.Code)
			assert.Equal(t, tt.err.Error(), decodeError(t, resp.Body.Bytes())["details"])
		})
	}
}

func TestListVoices(t *testing.T) {
	service := &mockSpeechService{
		listVoicesFunc: func(context.Context) ([]domain.Voice, error) {
			return []domain.Voice{{Name: "ja-JP-Neural2-B", Gender: "female", LanguageCodes: []string{"ja-JP"}}}, nil
		},
	}
	_, api := humatest.New(t)
	NewSpeechHandler(service).RegisterRoutes(api)

	resp := api.Get("/voices")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Voices []domain.Voice `json:"voices"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Voices, 1)
	assert.Equal(t, "ja-JP-Neural2-B", body.Voices[0].Name)
}

func TestListHeadlines(t *testing.T) {
	var gotLimit int
	lister := &mockHeadlineLister{
		latestFunc: func(_ context.Context, source domain.SourceID, limit int) ([]headlines.Headline, error) {
			gotLimit = limit
			if source != "nhk-easy" {
				return nil, &coreerrors.NotFoundError{Resource: "source", ID: string(source)}
			}
			return []headlines.Headline{{Title: "大雪", Link: articleURL, Source: source}}, nil
		},
	}
	_, api := humatest.New(t)
	NewHeadlinesHandler(lister).RegisterRoutes(api)

	resp := api.Get("/headlines?source=nhk-easy&limit=5")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, 5, gotLimit)
	assert.Contains(t, resp.Body.String(), articleURL)

	assert.Equal(t, http.StatusNotFound, api.Get("/headlines?source=bbc").Code)
	assert.Equal(t, http.StatusBadRequest, api.Get("/headlines").Code)
}

func TestPrewarm(t *testing.T) {
	jobs := &mockJobSubmitter{}
	_, api := humatest.New(t)
	NewPrewarmHandler(jobs).RegisterRoutes(api)

	resp := api.Post("/prewarm", map[string]interface{}{"source": articleURL, "voice": "ja-JP-Neural2-B", "speed": 1.0})
	require.Equal(t, http.StatusAccepted, resp.Code, resp.Body.String())
	require.Len(t, jobs.jobs, 1)
	assert.Equal(t, articleURL, jobs.jobs[0].SourceURL)
	assert.Equal(t, "ja-JP-Neural2-B", jobs.jobs[0].Voice)

	assert.Equal(t, http.StatusBadRequest, api.Post("/prewarm", map[string]interface{}{"source": "ftp://x"}).Code)
	assert.Equal(t, http.StatusBadRequest, api.Post("/prewarm", map[string]interface{}{"source": ""}).Code)
}

func TestPrewarm_QueueFull(t *testing.T) {
	_, api := humatest.New(t)
	NewPrewarmHandler(&mockJobSubmitter{err: workers.ErrQueueFull}).RegisterRoutes(api)

	resp := api.Post("/prewarm", map[string]interface{}{"source": articleURL})
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestHealth(t *testing.T) {
	sources := []adapters.Adapter{
		stubAdapter{id: "yasashii", hosts: []string{"www.yasashii-news.jp"}},
		stubAdapter{id: "nhk-easy", hosts: []string{"www3.nhk.or.jp"}, feed: "https://www3.nhk.or.jp/news/easy/rss"},
	}
	flags := func() map[string]bool { return map[string]bool{"tts_enabled": true} }
	_, api := humatest.New(t)
	NewHealthHandler(sources, flags).RegisterRoutes(api)

	resp := api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Status  string `json:"status"`
		Sources []struct {
			ID string `json:"id"`
		} `json:"sources"`
		Flags map[string]bool `json:"flags"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	require.Len(t, body.Sources, 2)
	assert.Equal(t, "nhk-easy", body.Sources[0].ID)
	assert.True(t, body.Flags["tts_enabled"])
}
