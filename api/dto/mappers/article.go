// ABOUTME: Mappers from service results to API response DTOs
// ABOUTME: Keeps empty collections as [] so clients never see null lists

package mappers

import (
	"yomu-news-api/api/dto/responses"
	"yomu-news-api/core/domain"
	"yomu-news-api/core/headlines"
	"yomu-news-api/core/interfaces"
	"yomu-news-api/core/segment"
)

// ToFetchNewsResponse shapes an extraction result
func ToFetchNewsResponse(result *interfaces.FetchNewsResult) responses.FetchNewsResponse {
	a := result.Article
	return responses.FetchNewsResponse{
		Title:         nonNilNodes(a.Title),
		Labels:        nonNilStrings(a.Labels),
		Content:       nonNilParagraphs(a.Content),
		PublishedDate: a.PublishedDate,
		Images:        nonNilStrings(a.Images),
		Source:        a.Source,
		SourceDomain:  result.SourceDomain,
		FetchCount:    result.FetchCount,
		LastFetchedAt: result.LastFetchedAt,
	}
}

// ToSentencesResponse segments the article body into sentences
func ToSentencesResponse(source string, article *domain.ParsedArticle) responses.SentencesResponse {
	sentences := segment.Segment(article.Content)
	out := make([]responses.SentenceResponse, len(sentences))
	for i, s := range sentences {
		out[i] = responses.SentenceResponse{
			Index:     i,
			Paragraph: s.Paragraph,
			Text:      s.Text(),
			Reading:   domain.FlattenReading(s.Nodes),
			Nodes:     s.Nodes,
		}
	}
	return responses.SentencesResponse{
		Source:    source,
		Title:     domain.FlattenText(article.Title),
		Sentences: out,
	}
}

// ToHeadlinesResponse converts feed entries
func ToHeadlinesResponse(source domain.SourceID, items []headlines.Headline) responses.HeadlinesResponse {
	out := make([]responses.HeadlineResponse, len(items))
	for i, h := range items {
		out[i] = responses.HeadlineResponse{
			Title:     h.Title,
			Link:      h.Link,
			Published: h.Published,
			Source:    string(h.Source),
		}
	}
	return responses.HeadlinesResponse{Source: string(source), Headlines: out}
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func nonNilNodes(v []domain.ContentNode) []domain.ContentNode {
	if v == nil {
		return []domain.ContentNode{}
	}
	return v
}

func nonNilParagraphs(v []domain.Paragraph) []domain.Paragraph {
	if v == nil {
		return []domain.Paragraph{}
	}
	return v
}
