// ABOUTME: Adapter for NHK News Web Easy article pages
// ABOUTME: Ruby markup in title and body, dates written as 2024年12月18日 11時45分

package adapters

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"yomu-news-api/core/domain"
	"yomu-news-api/core/interfaces"
)

// NHKEasyID identifies NHK News Web Easy
const NHKEasyID domain.SourceID = "nhk-easy"

const nhkEasyOrigin = "https://www3.nhk.or.jp"

// NHKEasy parses NHK News Web Easy articles
type NHKEasy struct{}

// NewNHKEasy creates the NHK News Web Easy adapter
func NewNHKEasy() *NHKEasy {
	return &NHKEasy{}
}

func (a *NHKEasy) ID() domain.SourceID { return NHKEasyID }

func (a *NHKEasy) Hosts() []string {
	return []string{"www3.nhk.or.jp", "news.web.nhk", "www.nhk.or.jp"}
}

// FeedURL is the Easy article list. NHK publishes no RSS feed for News Web Easy.
func (a *NHKEasy) FeedURL() string {
	return nhkEasyOrigin + "/news/easy/news-list.json"
}

// nhkEasyListEntry is one article in news-list.json, which groups entries by day:
// [{"2024-12-18": [{...}, ...], "2024-12-17": [...]}]
type nhkEasyListEntry struct {
	NewsID          string `json:"news_id"`
	Title           string `json:"title"`
	PrearrangedTime string `json:"news_prearranged_time"`
}

// ParseListing implements ListingParser for news-list.json
func (a *NHKEasy) ParseListing(body []byte) ([]ListingItem, error) {
	var days []map[string][]nhkEasyListEntry
	if err := json.Unmarshal(body, &days); err != nil {
		return nil, fmt.Errorf("decode news list: %w", err)
	}
	items := []ListingItem{}
	for _, day := range days {
		for _, entries := range day {
			for _, e := range entries {
				id := strings.TrimSpace(e.NewsID)
				if id == "" {
					continue
				}
				items = append(items, ListingItem{
					Title:     strings.TrimSpace(e.Title),
					Link:      fmt.Sprintf("%s/news/easy/%s/%s.html", nhkEasyOrigin, id, id),
					Published: ParseISODate(e.PrearrangedTime),
				})
			}
		}
	}
	return items, nil
}

// Parse implements Adapter
func (a *NHKEasy) Parse(doc interfaces.ParsedHTML) *domain.ParsedArticle {
	return &domain.ParsedArticle{
		Title:         a.title(doc),
		Labels:        []string{},
		Content:       extractBody(doc, a.bodyRules()),
		PublishedDate: a.date(doc),
		Images: extractImages(doc, imageRules{
			origin:    nhkEasyOrigin,
			mainImage: ".article-main__img",
			figure:    "figure",
		}),
		Source: NHKEasyID,
	}
}

func (a *NHKEasy) title(doc interfaces.ParsedHTML) []domain.ContentNode {
	for _, rule := range []string{"h1.article-title", "h1.article-main__title", ".article-main__title"} {
		if el, ok := doc.SelectFirst(rule); ok {
			if nodes := ExtractRubyNodes(el); len(nodes) > 0 {
				return nodes
			}
		}
	}
	if og := ogTitle(doc); og != "" {
		return ExtractInlineFurigana(og)
	}
	return []domain.ContentNode{}
}

func (a *NHKEasy) date(doc interfaces.ParsedHTML) *time.Time {
	for _, rule := range []string{"p.article-date", ".article-main__date", "time"} {
		if el, ok := doc.SelectFirst(rule); ok {
			if t := ParseKanjiDate(el.Text()); t != nil {
				return t
			}
			if dt, ok := el.Attr("datetime"); ok {
				if t := ParseKanjiDate(dt); t != nil {
					return t
				}
			}
		}
	}
	if raw := metaContent(doc, `meta[property="article:published_time"]`, `meta[name="article:published_time"]`); raw != "" {
		return ParseKanjiDate(raw)
	}
	return nil
}

func (a *NHKEasy) bodyRules() bodyRules {
	return bodyRules{
		container:     "div.article-body, #js-article-body, .article-main__body",
		paragraphTags: map[string]bool{"p": true},
		nodes:         ExtractRubyNodes,
	}
}
