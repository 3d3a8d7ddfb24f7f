// ABOUTME: Adapter for Yasashii News article pages
// ABOUTME: Furigana written inline as 漢字（かんじ）, labels derived from the title prefix

package adapters

import (
	"strings"
	"time"

	"yomu-news-api/core/domain"
	"yomu-news-api/core/interfaces"
)

// YasashiiID identifies Yasashii News
const YasashiiID domain.SourceID = "yasashii-news"

const yasashiiOrigin = "https://www.yasashii-news.jp"

// Yasashii parses Yasashii News articles
type Yasashii struct{}

// NewYasashii creates the Yasashii News adapter
func NewYasashii() *Yasashii {
	return &Yasashii{}
}

func (a *Yasashii) ID() domain.SourceID { return YasashiiID }

func (a *Yasashii) Hosts() []string {
	return []string{"www.yasashii-news.jp", "yasashii-news.jp"}
}

func (a *Yasashii) FeedURL() string {
	return yasashiiOrigin + "/feed/"
}

// Parse implements Adapter
func (a *Yasashii) Parse(doc interfaces.ParsedHTML) *domain.ParsedArticle {
	title, rawTitle := a.title(doc)
	return &domain.ParsedArticle{
		Title:         title,
		Labels:        a.labels(doc, rawTitle),
		Content:       extractBody(doc, a.bodyRules()),
		PublishedDate: a.date(doc),
		Images: extractImages(doc, imageRules{
			origin:    yasashiiOrigin,
			mainImage: ".eyecatch",
			figure:    ".entry-content figure",
		}),
		Source: YasashiiID,
	}
}

// title returns the title nodes and the raw title text they came from
func (a *Yasashii) title(doc interfaces.ParsedHTML) ([]domain.ContentNode, string) {
	if el, ok := doc.SelectFirst("h1.entry-title"); ok {
		raw := strings.TrimSpace(el.Text())
		if nodes := ExtractInlineFurigana(raw); len(nodes) > 0 {
			return nodes, raw
		}
	}
	if og := ogTitle(doc); og != "" {
		return ExtractInlineFurigana(og), og
	}
	return []domain.ContentNode{}, ""
}

// labels derives labels from "prefix：category title" or "prefix：title" plus the category meta tag
func (a *Yasashii) labels(doc interfaces.ParsedHTML, rawTitle string) []string {
	var labels []string
	flat := domain.FlattenText(ExtractInlineFurigana(rawTitle))
	if prefix, rest, ok := strings.Cut(flat, "："); ok {
		labels = append(labels, prefix)
		rest = strings.TrimSpace(strings.ReplaceAll(rest, "　", " "))
		if category, _, ok := strings.Cut(rest, " "); ok {
			labels = append(labels, category)
		}
	}
	labels = append(labels, metaContent(doc, `meta[name="category"]`, `meta[property="article:section"]`))
	return dedupe(labels)
}

func (a *Yasashii) date(doc interfaces.ParsedHTML) *time.Time {
	if el, ok := doc.SelectFirst("time.entry-date"); ok {
		if dt, ok := el.Attr("datetime"); ok {
			if t := ParseISODate(dt); t != nil {
				return t
			}
		}
		if t := ParseISODate(el.Text()); t != nil {
			return t
		}
	}
	if raw := metaContent(doc, `meta[property="article:published_time"]`, `meta[name="date"]`); raw != "" {
		return ParseISODate(raw)
	}
	return nil
}

func (a *Yasashii) bodyRules() bodyRules {
	return bodyRules{
		container:     "div.entry-content",
		paragraphTags: map[string]bool{"p": true, "h2": true, "h3": true, "blockquote": true},
		nodes: func(el interfaces.HTMLElement) []domain.ContentNode {
			return ExtractInlineFurigana(el.RawText())
		},
	}
}
