// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation and request/response validation

package api

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"yomu-news-api/api/middleware"
	"yomu-news-api/core/interfaces"
)

const (
	title       = "Yomu News API"
	version     = "1.0.0"
	description = "Fetches Japanese news articles with furigana, splits them into sentences and synthesizes sentence audio"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger         interfaces.Logger
	RateLimit      int           // requests per window
	RateWindow     time.Duration // rate limit window
	AllowedOrigins []string
}

// NewAPI creates and configures a new Huma API instance
func NewAPI() (huma.API, chi.Router) {
	return NewAPIWithMiddleware(APIConfig{})
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	// CORS goes first so preflight requests are never rate limited
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Content-Length"},
		MaxAge:         300,
	}))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.RateLimit > 0 && cfg.RateWindow > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	config := huma.DefaultConfig(title, version)
	config.Info.Description = description

	// The OpenAPI spec is served at /openapi.json and the docs UI at /docs
	api := humachi.New(router, config)

	return api, router
}
