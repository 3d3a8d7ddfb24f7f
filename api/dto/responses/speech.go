// ABOUTME: Response DTOs for the voices, prewarm and health endpoints
// ABOUTME: Audio from /tts is returned as raw bytes, not wrapped in a DTO

package responses

import "yomu-news-api/core/domain"

// VoicesResponse is the body of GET /voices
type VoicesResponse struct {
	Voices []domain.Voice `json:"voices"`
}

// PrewarmResponse acknowledges a queued prewarm job
type PrewarmResponse struct {
	Status string `json:"status"`
	Source string `json:"source"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status  string          `json:"status"`
	Version string          `json:"version"`
	Sources []SourceSummary `json:"sources"`
	Flags   map[string]bool `json:"flags,omitempty"`
}

// SourceSummary describes one registered source adapter
type SourceSummary struct {
	ID    string   `json:"id"`
	Hosts []string `json:"hosts"`
	Feed  string   `json:"feed,omitempty"`
}
