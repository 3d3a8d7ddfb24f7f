package handlers

import (
	"context"

	"yomu-news-api/core/domain"
	"yomu-news-api/core/headlines"
	"yomu-news-api/core/interfaces"
	"yomu-news-api/core/workers"
)

type mockArticleService struct {
	fetchNewsFunc func(ctx context.Context, sourceURL string) (*interfaces.FetchNewsResult, error)
}

func (m *mockArticleService) FetchNews(ctx context.Context, sourceURL string) (*interfaces.FetchNewsResult, error) {
	return m.fetchNewsFunc(ctx, sourceURL)
}

type mockSpeechService struct {
	synthesizeFunc func(ctx context.Context, req domain.SpeechRequest) ([]byte, error)
	listVoicesFunc func(ctx context.Context) ([]domain.Voice, error)
}

func (m *mockSpeechService) Synthesize(ctx context.Context, req domain.SpeechRequest) ([]byte, error) {
	return m.synthesizeFunc(ctx, req)
}

func (m *mockSpeechService) ListVoices(ctx context.Context) ([]domain.Voice, error) {
	return m.listVoicesFunc(ctx)
}

type mockHeadlineLister struct {
	latestFunc func(ctx context.Context, source domain.SourceID, limit int) ([]headlines.Headline, error)
}

func (m *mockHeadlineLister) Latest(ctx context.Context, source domain.SourceID, limit int) ([]headlines.Headline, error) {
	return m.latestFunc(ctx, source, limit)
}

type mockJobSubmitter struct {
	jobs []*workers.PrewarmJob
	err  error
}

func (m *mockJobSubmitter) SubmitJob(job *workers.PrewarmJob) error {
	if m.err != nil {
		return m.err
	}
	m.jobs = append(m.jobs, job)
	return nil
}

type stubAdapter struct {
	id    domain.SourceID
	hosts []string
	feed  string
}

func (a stubAdapter) ID() domain.SourceID { return a.id }
func (a stubAdapter) Hosts() []string     { return a.hosts }
func (a stubAdapter) FeedURL() string     { return a.feed }
func (a stubAdapter) Parse(interfaces.ParsedHTML) *domain.ParsedArticle {
	return &domain.ParsedArticle{}
}
