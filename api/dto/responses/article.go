// ABOUTME: Response DTOs for article, sentence and headline endpoints
// ABOUTME: Field names follow the snake_case wire contract of the reader clients

package responses

import (
	"time"

	"yomu-news-api/core/domain"
)

// FetchNewsResponse is the body of GET /fetch-news
type FetchNewsResponse struct {
	Title         []domain.ContentNode `json:"title"`
	Labels        []string             `json:"labels"`
	Content       []domain.Paragraph   `json:"content"`
	PublishedDate *time.Time           `json:"published_date"`
	Images        []string             `json:"images"`
	Source        domain.SourceID      `json:"source"`
	SourceDomain  string               `json:"source_domain"`
	FetchCount    int                  `json:"fetch_count"`
	LastFetchedAt time.Time            `json:"last_fetched_at"`
}

// SentenceResponse is one segmented sentence
type SentenceResponse struct {
	Index     int                  `json:"index"`
	Paragraph int                  `json:"paragraph"`
	Text      string               `json:"text" doc:"Flattened text sent to TTS"`
	Reading   string               `json:"reading" doc:"Kana rendering"`
	Nodes     []domain.ContentNode `json:"nodes"`
}

// SentencesResponse is the body of GET /sentences
type SentencesResponse struct {
	Source    string             `json:"source"`
	Title     string             `json:"title"`
	Sentences []SentenceResponse `json:"sentences"`
}

// HeadlineResponse is one feed entry
type HeadlineResponse struct {
	Title     string     `json:"title"`
	Link      string     `json:"link"`
	Published *time.Time `json:"published,omitempty"`
	Source    string     `json:"source"`
}

// HeadlinesResponse is the body of GET /headlines
type HeadlinesResponse struct {
	Source    string             `json:"source"`
	Headlines []HeadlineResponse `json:"headlines"`
}
