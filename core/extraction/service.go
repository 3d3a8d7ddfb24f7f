// ABOUTME: Extraction service turns an article URL into a parsed, persisted article
// ABOUTME: Serves fresh stored copies, otherwise fetches, selects an adapter, parses and upserts

package extraction

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"yomu-news-api/core/adapters"
	"yomu-news-api/core/domain"
	coreerrors "yomu-news-api/core/errors"
	"yomu-news-api/core/interfaces"
)

// DefaultFreshness is how long a stored article is served without re-fetching
const DefaultFreshness = 24 * time.Hour

// Options configures the extraction service
type Options struct {
	Store     interfaces.ArticleStore
	Fetcher   interfaces.PageFetcher
	Selector  *adapters.Selector
	Parse     adapters.HTMLParser
	Freshness time.Duration

	// Now is the clock, time.Now when nil
	Now func() time.Time
}

// Service orchestrates article fetching and parsing
type Service struct {
	deps      interfaces.Dependencies
	store     interfaces.ArticleStore
	fetcher   interfaces.PageFetcher
	selector  *adapters.Selector
	parse     adapters.HTMLParser
	freshness time.Duration
	now       func() time.Time
}

// NewService creates a new extraction service
func NewService(deps interfaces.Dependencies, opts Options) *Service {
	s := &Service{
		deps:      deps,
		store:     opts.Store,
		fetcher:   opts.Fetcher,
		selector:  opts.Selector,
		parse:     opts.Parse,
		freshness: opts.Freshness,
		now:       opts.Now,
	}
	if s.freshness <= 0 {
		s.freshness = DefaultFreshness
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// FetchNews returns the parsed article for sourceURL
func (s *Service) FetchNews(ctx context.Context, sourceURL string) (*interfaces.FetchNewsResult, error) {
	u, err := ValidateSourceURL(sourceURL)
	if err != nil {
		return nil, err
	}
	key := u.String()
	now := s.now()

	var previous *domain.StoredArticle
	if s.store != nil {
		stored, err := s.store.Get(ctx, key)
		switch {
		case err == nil:
			previous = stored
			if result, ok := s.fromStore(stored, now); ok {
				return result, nil
			}
		case !coreerrors.IsNotFound(err):
			s.log().Warn("Article store lookup failed", map[string]interface{}{
				"url":   key,
				"error": err.Error(),
			})
		}
	}

	article, err := s.extract(ctx, key)
	if err != nil {
		return nil, err
	}

	record, err := toRecord(key, u.Hostname(), article, now)
	if err != nil {
		return nil, err
	}
	if previous != nil {
		record.FetchCount = previous.FetchCount
	}

	saved := s.persist(ctx, record)
	return &interfaces.FetchNewsResult{
		Article:       article,
		SourceDomain:  saved.SourceDomain,
		FetchCount:    saved.FetchCount,
		LastFetchedAt: saved.LastFetchedAt,
	}, nil
}

// fromStore serves a fresh stored record. Stale or undecodable records report false.
func (s *Service) fromStore(stored *domain.StoredArticle, now time.Time) (*interfaces.FetchNewsResult, bool) {
	if !stored.IsFresh(now, s.freshness) {
		return nil, false
	}
	article, err := stored.Decode()
	if err != nil {
		s.log().Warn("Stored article could not be decoded, re-fetching", map[string]interface{}{
			"url":   stored.URL,
			"error": err.Error(),
		})
		return nil, false
	}
	s.log().Debug("Serving stored article", map[string]interface{}{
		"url":         stored.URL,
		"fetch_count": stored.FetchCount,
	})
	return &interfaces.FetchNewsResult{
		Article:       article,
		SourceDomain:  stored.SourceDomain,
		FetchCount:    stored.FetchCount,
		LastFetchedAt: stored.LastFetchedAt,
	}, true
}

// extract fetches the page and runs the selected adapter
func (s *Service) extract(ctx context.Context, sourceURL string) (*domain.ParsedArticle, error) {
	if s.selector == nil || s.fetcher == nil || s.parse == nil {
		return nil, errors.New("extraction service not configured")
	}
	adapter, err := s.selector.Select(sourceURL)
	if err != nil {
		return nil, err
	}

	start := s.now()
	body, err := s.fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		s.log().Error("Failed to fetch article", map[string]interface{}{
			"url":   sourceURL,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("fetch article: %w", err)
	}

	doc, err := s.parse(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse article html: %w", err)
	}
	article := adapter.Parse(doc)

	s.log().Info("Article extracted", map[string]interface{}{
		"url":        sourceURL,
		"source":     string(adapter.ID()),
		"paragraphs": len(article.Content),
		"duration":   s.now().Sub(start).String(),
	})
	return article, nil
}

// persist upserts the record. A failing store is logged and the unsaved record is
// returned with the count it would have had.
func (s *Service) persist(ctx context.Context, record *domain.StoredArticle) *domain.StoredArticle {
	if s.store == nil {
		record.FetchCount++
		return record
	}
	saved, err := s.store.Upsert(ctx, record)
	if err != nil {
		s.log().Error("Failed to persist article", map[string]interface{}{
			"url":   record.URL,
			"error": err.Error(),
		})
		record.FetchCount++
		return record
	}
	return saved
}

func (s *Service) log() interfaces.Logger {
	if s.deps.Logger == nil {
		return interfaces.NopLogger{}
	}
	return s.deps.Logger
}

// ValidateSourceURL checks that raw is an absolute http(s) URL
func ValidateSourceURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &coreerrors.ValidationError{Field: "source", Message: "is required"}
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, &coreerrors.ValidationError{Field: "source", Message: "must be an absolute http or https URL"}
	}
	return u, nil
}

func toRecord(sourceURL, host string, article *domain.ParsedArticle, now time.Time) (*domain.StoredArticle, error) {
	title, err := domain.EncodeNodes(article.Title)
	if err != nil {
		return nil, fmt.Errorf("encode title: %w", err)
	}
	content, err := domain.EncodeParagraphs(article.Content)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}
	return &domain.StoredArticle{
		URL:           sourceURL,
		Title:         title,
		Labels:        article.Labels,
		Content:       content,
		PublishedDate: article.PublishedDate,
		Images:        article.Images,
		Source:        article.Source,
		SourceDomain:  host,
		LastFetchedAt: now,
	}, nil
}
