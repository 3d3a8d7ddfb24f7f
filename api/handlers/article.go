// ABOUTME: Article handler for the Huma API
// ABOUTME: Serves parsed articles and their sentence segmentation

package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"yomu-news-api/api/dto/mappers"
	"yomu-news-api/api/dto/responses"
	"yomu-news-api/core/interfaces"
)

// ArticleHandler handles article extraction requests
type ArticleHandler struct {
	articles interfaces.ArticleService
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(articles interfaces.ArticleService) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

// RegisterRoutes registers all article-related routes
func (h *ArticleHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "fetchNews",
		Method:      http.MethodGet,
		Path:        "/fetch-news",
		Summary:     "Fetch and parse a news article",
		Description: "Returns the article with furigana preserved as ruby nodes. Stored copies younger than the freshness window are served without re-fetching.",
		Tags:        []string{"Articles"},
	}, h.FetchNews)

	huma.Register(api, huma.Operation{
		OperationID: "getSentences",
		Method:      http.MethodGet,
		Path:        "/sentences",
		Summary:     "Split an article into sentences",
		Description: "Segments the article body at sentence-ending punctuation, the unit of audio playback",
		Tags:        []string{"Articles"},
	}, h.GetSentences)
}

// SourceInput carries the article URL query parameter. It is checked by the handler so a
// missing value maps to a plain 400.
type SourceInput struct {
	Source string `query:"source" doc:"Article URL"`
}

// FetchNewsOutput defines the output for the FetchNews operation
type FetchNewsOutput struct {
	Body responses.FetchNewsResponse
}

// FetchNews handles GET /fetch-news
func (h *ArticleHandler) FetchNews(ctx context.Context, input *SourceInput) (*FetchNewsOutput, error) {
	source := strings.TrimSpace(input.Source)
	if source == "" {
		return nil, badRequest("source parameter is required")
	}

	result, err := h.articles.FetchNews(ctx, source)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &FetchNewsOutput{Body: mappers.ToFetchNewsResponse(result)}, nil
}

// SentencesOutput defines the output for the GetSentences operation
type SentencesOutput struct {
	Body responses.SentencesResponse
}

// GetSentences handles GET /sentences
func (h *ArticleHandler) GetSentences(ctx context.Context, input *SourceInput) (*SentencesOutput, error) {
	source := strings.TrimSpace(input.Source)
	if source == "" {
		return nil, badRequest("source parameter is required")
	}

	result, err := h.articles.FetchNews(ctx, source)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &SentencesOutput{Body: mappers.ToSentencesResponse(source, result.Article)}, nil
}
