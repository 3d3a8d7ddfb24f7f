// ABOUTME: Headlines service lists the latest articles of a source from its feed
// ABOUTME: RSS/Atom feeds are parsed with gofeed, other article lists by their adapter; results are cached briefly

package headlines

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"yomu-news-api/core/adapters"
	"yomu-news-api/core/domain"
	coreerrors "yomu-news-api/core/errors"
	"yomu-news-api/core/interfaces"
)

const (
	cacheKeyPrefix = "headlines:"
	cacheTTL       = 10 * time.Minute

	// DefaultLimit is the number of headlines returned when no limit is given
	DefaultLimit = 20
)

// Headline is one feed entry
type Headline struct {
	Title     string          `json:"title"`
	Link      string          `json:"link"`
	Published *time.Time      `json:"published,omitempty"`
	Source    domain.SourceID `json:"source"`
}

// Service fetches source feeds
type Service struct {
	deps     interfaces.Dependencies
	selector *adapters.Selector
}

// NewService creates a new headlines service
func NewService(deps interfaces.Dependencies, selector *adapters.Selector) *Service {
	return &Service{deps: deps, selector: selector}
}

// Latest returns up to limit headlines for the source, newest first
func (s *Service) Latest(ctx context.Context, source domain.SourceID, limit int) ([]Headline, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	adapter, ok := s.selector.ByID(source)
	if !ok {
		return nil, &coreerrors.NotFoundError{Resource: "source", ID: string(source)}
	}
	if adapter.FeedURL() == "" {
		return nil, &coreerrors.ValidationError{Field: "source", Message: "source has no feed"}
	}

	items, err := s.cached(ctx, source)
	if err != nil {
		items, err = s.fetch(ctx, adapter)
		if err != nil {
			return nil, err
		}
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Service) cached(ctx context.Context, source domain.SourceID) ([]Headline, error) {
	if s.deps.Cache == nil {
		return nil, &coreerrors.NotFoundError{Resource: "headlines", ID: string(source)}
	}
	raw, err := s.deps.Cache.Get(ctx, cacheKeyPrefix+string(source))
	if err != nil {
		return nil, err
	}
	var items []Headline
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) fetch(ctx context.Context, adapter adapters.Adapter) ([]Headline, error) {
	if s.deps.HTTPClient == nil {
		return nil, fmt.Errorf("HTTP client not configured")
	}
	resp, err := s.deps.HTTPClient.Get(ctx, adapter.FeedURL())
	if err != nil {
		return nil, &coreerrors.ExternalAPIError{API: string(adapter.ID()), Message: err.Error()}
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return nil, &coreerrors.ExternalAPIError{API: string(adapter.ID()), StatusCode: resp.StatusCode(), Message: "feed request failed"}
	}
	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, err
	}

	var items []Headline
	if lister, ok := adapter.(adapters.ListingParser); ok {
		listing, err := lister.ParseListing(body)
		if err != nil {
			return nil, fmt.Errorf("parse %s listing: %w", adapter.ID(), err)
		}
		items = fromListing(listing, adapter.ID())
	} else {
		feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("parse %s feed: %w", adapter.ID(), err)
		}
		items = toHeadlines(feed, adapter.ID())
	}
	sortNewest(items)

	if s.deps.Cache != nil {
		if raw, err := json.Marshal(items); err == nil {
			if err := s.deps.Cache.Set(ctx, cacheKeyPrefix+string(adapter.ID()), raw, cacheTTL); err != nil && s.deps.Logger != nil {
				s.deps.Logger.Warn("Failed to cache headlines", map[string]interface{}{
					"source": string(adapter.ID()),
					"error":  err.Error(),
				})
			}
		}
	}
	return items, nil
}

func toHeadlines(feed *gofeed.Feed, source domain.SourceID) []Headline {
	items := make([]Headline, 0, len(feed.Items))
	for _, item := range feed.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" {
			continue
		}
		published := item.PublishedParsed
		if published == nil {
			published = item.UpdatedParsed
		}
		items = append(items, Headline{
			Title:     domain.FlattenText(adapters.ExtractInlineFurigana(strings.TrimSpace(item.Title))),
			Link:      link,
			Published: published,
			Source:    source,
		})
	}
	return items
}

func fromListing(listing []adapters.ListingItem, source domain.SourceID) []Headline {
	items := make([]Headline, 0, len(listing))
	for _, item := range listing {
		if item.Link == "" {
			continue
		}
		items = append(items, Headline{
			Title:     item.Title,
			Link:      item.Link,
			Published: item.Published,
			Source:    source,
		})
	}
	return items
}

// sortNewest orders headlines newest first, undated entries last
func sortNewest(items []Headline) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Published, items[j].Published
		if a == nil || b == nil {
			return a != nil
		}
		return a.After(*b)
	})
}
