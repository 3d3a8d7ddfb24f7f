// ABOUTME: Headlines handler for the Huma API
// ABOUTME: Lists the latest articles of a registered source

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"yomu-news-api/api/dto/mappers"
	"yomu-news-api/api/dto/responses"
	"yomu-news-api/core/domain"
	"yomu-news-api/core/headlines"
)

// HeadlineLister returns recent feed entries for a source
type HeadlineLister interface {
	Latest(ctx context.Context, source domain.SourceID, limit int) ([]headlines.Headline, error)
}

// HeadlinesHandler handles headline requests
type HeadlinesHandler struct {
	headlines HeadlineLister
}

// NewHeadlinesHandler creates a new headlines handler
func NewHeadlinesHandler(headlines HeadlineLister) *HeadlinesHandler {
	return &HeadlinesHandler{headlines: headlines}
}

// RegisterRoutes registers the headline routes
func (h *HeadlinesHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "listHeadlines",
		Method:      http.MethodGet,
		Path:        "/headlines",
		Summary:     "Latest articles of a source",
		Tags:        []string{"Articles"},
	}, h.ListHeadlines)
}

// HeadlinesInput defines the input for the ListHeadlines operation
type HeadlinesInput struct {
	Source string `query:"source" doc:"Source ID such as nhk-easy"`
	Limit  int    `query:"limit" minimum:"0" maximum:"100" doc:"Maximum number of items; 20 when omitted"`
}

// HeadlinesOutput defines the output for the ListHeadlines operation
type HeadlinesOutput struct {
	Body responses.HeadlinesResponse
}

// ListHeadlines handles GET /headlines
func (h *HeadlinesHandler) ListHeadlines(ctx context.Context, input *HeadlinesInput) (*HeadlinesOutput, error) {
	if input.Source == "" {
		return nil, badRequest("source parameter is required")
	}
	source := domain.SourceID(input.Source)
	items, err := h.headlines.Latest(ctx, source, input.Limit)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &HeadlinesOutput{Body: mappers.ToHeadlinesResponse(source, items)}, nil
}
