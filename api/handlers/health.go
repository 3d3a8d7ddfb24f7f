// ABOUTME: Health handler reports liveness and the registered news sources
// ABOUTME: Also exposes the active feature flags for operators

package handlers

import (
	"context"
	"net/http"
	"sort"

	"github.com/danielgtaylor/huma/v2"

	"yomu-news-api/api/dto/responses"
	"yomu-news-api/core/adapters"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// HealthHandler handles health checks
type HealthHandler struct {
	sources []adapters.Adapter
	flags   func() map[string]bool
}

// NewHealthHandler creates a health handler. flags may be nil.
func NewHealthHandler(sources []adapters.Adapter, flags func() map[string]bool) *HealthHandler {
	return &HealthHandler{sources: sources, flags: flags}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"System"},
	}, h.Health)
}

// HealthOutput defines the output for the Health operation
type HealthOutput struct {
	Body responses.HealthResponse
}

// Health handles GET /health
func (h *HealthHandler) Health(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	sources := make([]responses.SourceSummary, 0, len(h.sources))
	for _, a := range h.sources {
		sources = append(sources, responses.SourceSummary{
			ID:    string(a.ID()),
			Hosts: a.Hosts(),
			Feed:  a.FeedURL(),
		})
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].ID < sources[j].ID })

	body := responses.HealthResponse{Status: "ok", Version: Version, Sources: sources}
	if h.flags != nil {
		body.Flags = h.flags()
	}
	return &HealthOutput{Body: body}, nil
}
