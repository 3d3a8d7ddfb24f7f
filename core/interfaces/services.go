// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for services used throughout the application

package interfaces

import (
	"context"
	"time"

	"yomu-news-api/core/domain"
)

// PageFetcher downloads the raw HTML of an article page
type PageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Synthesizer converts text to speech audio
type Synthesizer interface {
	// Synthesize returns encoded audio for the request
	Synthesize(ctx context.Context, req domain.SpeechRequest) ([]byte, error)

	// ListVoices returns the voices available for the language code
	ListVoices(ctx context.Context, languageCode string) ([]domain.Voice, error)
}

// FetchNewsResult is the shaped result of an article fetch
type FetchNewsResult struct {
	Article       *domain.ParsedArticle
	SourceDomain  string
	FetchCount    int
	LastFetchedAt time.Time
}

// ArticleService fetches, parses and persists articles
type ArticleService interface {
	FetchNews(ctx context.Context, sourceURL string) (*FetchNewsResult, error)
}

// SpeechService synthesizes sentence audio
type SpeechService interface {
	Synthesize(ctx context.Context, req domain.SpeechRequest) ([]byte, error)
	ListVoices(ctx context.Context) ([]domain.Voice, error)
}
