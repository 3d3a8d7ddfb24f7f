// ABOUTME: Stored article record and speech-related domain types
// ABOUTME: Title and content are kept as serialized JSON strings, decoded on read

package domain

import "time"

// StoredArticle is the persisted form of a parsed article, keyed by its source URL
type StoredArticle struct {
	URL           string
	Title         string // serialized []ContentNode
	Labels        []string
	Content       string // serialized []Paragraph
	PublishedDate *time.Time
	Images        []string
	Source        SourceID
	SourceDomain  string
	FetchCount    int
	LastFetchedAt time.Time
}

// IsFresh reports whether the record was fetched less than maxAge before now
func (a *StoredArticle) IsFresh(now time.Time, maxAge time.Duration) bool {
	if a == nil || a.LastFetchedAt.IsZero() {
		return false
	}
	return now.Sub(a.LastFetchedAt) <= maxAge
}

// Decode turns the stored record back into a ParsedArticle
func (a *StoredArticle) Decode() (*ParsedArticle, error) {
	title, err := DecodeNodes(a.Title)
	if err != nil {
		return nil, err
	}
	content, err := DecodeParagraphs(a.Content)
	if err != nil {
		return nil, err
	}
	labels := a.Labels
	if labels == nil {
		labels = []string{}
	}
	images := a.Images
	if images == nil {
		images = []string{}
	}
	return &ParsedArticle{
		Title:         title,
		Labels:        labels,
		Content:       content,
		PublishedDate: a.PublishedDate,
		Images:        images,
		Source:        a.Source,
	}, nil
}

// Sentence is a contiguous run of nodes from one paragraph
type Sentence struct {
	// Paragraph is the index of the paragraph the sentence was taken from
	Paragraph int

	// Nodes are the content nodes, shared with the paragraph
	Nodes []ContentNode
}

// Text returns the flattened sentence text used for TTS
func (s Sentence) Text() string {
	return FlattenText(s.Nodes)
}

// Voice describes a TTS voice
type Voice struct {
	Name          string   `json:"name"`
	Gender        string   `json:"gender"`
	LanguageCodes []string `json:"language_codes"`
	SampleRateHz  int32    `json:"sample_rate_hz,omitempty"`
}

// SpeechRequest is a request to synthesize one piece of text
type SpeechRequest struct {
	Text  string
	Voice string
	Speed float64
}
