// ABOUTME: Generic adapter for hosts without a dedicated adapter
// ABOUTME: Uses go-readability to locate the article body, then the shared furigana extraction

package adapters

import (
	"net/url"
	"strings"
	"time"

	"yomu-news-api/core/domain"
	"yomu-news-api/core/interfaces"

	readability "github.com/go-shiori/go-readability"
)

// GenericID identifies articles parsed by the generic adapter
const GenericID domain.SourceID = "generic"

// HTMLParser parses an HTML fragment into the document abstraction
type HTMLParser func(html string) (interfaces.ParsedHTML, error)

// Generic extracts articles from arbitrary pages with readability heuristics
type Generic struct {
	parse HTMLParser
}

// NewGeneric creates the generic adapter. parse is used to re-read the
// readability output so ruby markup survives.
func NewGeneric(parse HTMLParser) *Generic {
	return &Generic{parse: parse}
}

func (a *Generic) ID() domain.SourceID { return GenericID }

func (a *Generic) Hosts() []string { return nil }

func (a *Generic) FeedURL() string { return "" }

// Parse implements Adapter
func (a *Generic) Parse(doc interfaces.ParsedHTML) *domain.ParsedArticle {
	result := &domain.ParsedArticle{
		Title:         []domain.ContentNode{},
		Labels:        []string{},
		Content:       []domain.Paragraph{},
		PublishedDate: a.date(doc),
		Images:        extractImages(doc, imageRules{origin: a.baseURL(doc).String()}),
		Source:        GenericID,
	}

	article, err := readability.FromReader(strings.NewReader(doc.HTML()), a.baseURL(doc))
	if err == nil {
		if title := strings.TrimSpace(article.Title); title != "" {
			result.Title = ExtractInlineFurigana(title)
		}
		result.Content = a.paragraphs(article.Content)
		if len(result.Images) == 0 && article.Image != "" {
			result.Images = []string{article.Image}
		}
	}

	if len(result.Title) == 0 {
		if og := ogTitle(doc); og != "" {
			result.Title = ExtractInlineFurigana(og)
		}
	}
	if len(result.Content) == 0 {
		result.Content = extractBody(doc, bodyRules{
			container:     "article, main",
			paragraphTags: map[string]bool{"p": true},
			nodes:         ExtractRubyNodes,
		})
	}
	return result
}

// paragraphs re-parses readability's cleaned HTML and extracts each paragraph
func (a *Generic) paragraphs(content string) []domain.Paragraph {
	if a.parse == nil || strings.TrimSpace(content) == "" {
		return []domain.Paragraph{}
	}
	cleaned, err := a.parse(content)
	if err != nil {
		return []domain.Paragraph{}
	}
	paragraphs := []domain.Paragraph{}
	for _, el := range cleaned.Select("p, h2, h3") {
		if nodes := ExtractRubyNodes(el); len(nodes) > 0 {
			paragraphs = append(paragraphs, domain.Paragraph{Content: nodes})
		}
	}
	return paragraphs
}

// baseURL is the page's canonical URL, used to resolve relative references
func (a *Generic) baseURL(doc interfaces.ParsedHTML) *url.URL {
	candidates := []string{metaContent(doc, `meta[property="og:url"]`)}
	if link, ok := doc.SelectFirst(`link[rel="canonical"]`); ok {
		if href, ok := link.Attr("href"); ok {
			candidates = append([]string{href}, candidates...)
		}
	}
	for _, c := range candidates {
		if u, err := url.Parse(strings.TrimSpace(c)); err == nil && u.IsAbs() {
			return u
		}
	}
	return &url.URL{}
}

func (a *Generic) date(doc interfaces.ParsedHTML) *time.Time {
	raw := metaContent(doc, `meta[property="article:published_time"]`, `meta[name="date"]`, `meta[itemprop="datePublished"]`)
	if raw == "" {
		if el, ok := doc.SelectFirst("time[datetime]"); ok {
			raw, _ = el.Attr("datetime")
		}
	}
	if raw == "" {
		return nil
	}
	if t := ParseISODate(raw); t != nil {
		return t
	}
	return ParseKanjiDate(raw)
}
