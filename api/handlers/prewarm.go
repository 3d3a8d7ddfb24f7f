// ABOUTME: Prewarm handler queues background synthesis of an article's sentences
// ABOUTME: Responds 202 immediately; the worker pool fills the speech cache

package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"yomu-news-api/api/dto/requests"
	"yomu-news-api/api/dto/responses"
	"yomu-news-api/core/extraction"
	"yomu-news-api/core/workers"
)

// JobSubmitter enqueues prewarm jobs
type JobSubmitter interface {
	SubmitJob(job *workers.PrewarmJob) error
}

// PrewarmHandler handles prewarm requests
type PrewarmHandler struct {
	jobs JobSubmitter
}

// NewPrewarmHandler creates a new prewarm handler
func NewPrewarmHandler(jobs JobSubmitter) *PrewarmHandler {
	return &PrewarmHandler{jobs: jobs}
}

// RegisterRoutes registers the prewarm route
func (h *PrewarmHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "prewarmArticle",
		Method:        http.MethodPost,
		Path:          "/prewarm",
		Summary:       "Synthesize an article ahead of playback",
		DefaultStatus: http.StatusAccepted,
		Tags:          []string{"Speech"},
	}, h.Prewarm)
}

// PrewarmInput defines the input for the Prewarm operation
type PrewarmInput struct {
	Body requests.PrewarmRequest
}

// PrewarmOutput defines the output for the Prewarm operation
type PrewarmOutput struct {
	Body responses.PrewarmResponse
}

// Prewarm handles POST /prewarm
func (h *PrewarmHandler) Prewarm(ctx context.Context, input *PrewarmInput) (*PrewarmOutput, error) {
	source := strings.TrimSpace(input.Body.Source)
	if source == "" {
		return nil, badRequest("source is required")
	}
	if _, err := extraction.ValidateSourceURL(source); err != nil {
		return nil, toHumaError(err)
	}

	err := h.jobs.SubmitJob(&workers.PrewarmJob{
		SourceURL: source,
		Voice:     input.Body.Voice,
		Speed:     input.Body.Speed,
	})
	switch {
	case errors.Is(err, workers.ErrQueueFull):
		return nil, newError(http.StatusServiceUnavailable, "Prewarm queue is full", err)
	case err != nil:
		return nil, newError(http.StatusServiceUnavailable, "Prewarm unavailable", err)
	}

	return &PrewarmOutput{Body: responses.PrewarmResponse{Status: "queued", Source: source}}, nil
}
