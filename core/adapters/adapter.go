// ABOUTME: Source adapter contract: one variant per publisher
// ABOUTME: Adapters are pure functions of the parsed document

package adapters

import (
	"time"

	"yomu-news-api/core/domain"
	"yomu-news-api/core/interfaces"
)

// Adapter converts a publisher's article page into the canonical content model
type Adapter interface {
	// ID identifies the source
	ID() domain.SourceID

	// Hosts lists the URL hosts served by this adapter
	Hosts() []string

	// FeedURL is the source's RSS/Atom feed of recent articles, or "" when it has none
	FeedURL() string

	// Parse extracts the article. It never fails: fields that cannot be found are empty or nil.
	Parse(doc interfaces.ParsedHTML) *domain.ParsedArticle
}

// ListingParser is implemented by sources whose FeedURL serves an article list
// that is not RSS or Atom
type ListingParser interface {
	ParseListing(body []byte) ([]ListingItem, error)
}

// ListingItem is one entry of a source's article list
type ListingItem struct {
	Title     string
	Link      string
	Published *time.Time
}
