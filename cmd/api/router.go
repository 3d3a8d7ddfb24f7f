// ABOUTME: Route registration for the API server, gated by feature flags
// ABOUTME: Kept separate from main so the assembled router can be tested without cloud credentials

package main

import (
	"context"
	"net/http"

	"yomu-news-api/api"
	"yomu-news-api/api/handlers"
	"yomu-news-api/core/adapters"
	"yomu-news-api/core/interfaces"
	"yomu-news-api/pkg/config"
	"yomu-news-api/pkg/featureflags"
)

// services are the collaborators the handlers are built from. Speech and Prewarm are nil
// when the backend is unavailable.
type services struct {
	Articles  interfaces.ArticleService
	Speech    interfaces.SpeechService
	Headlines handlers.HeadlineLister
	Prewarm   handlers.JobSubmitter
	Sources   []adapters.Adapter
}

func newRouter(cfg *config.Config, flags featureflags.Manager, logger interfaces.Logger, svc services) http.Handler {
	ctx := context.Background()

	apiConfig := api.APIConfig{
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}
	if flags.IsEnabled(ctx, featureflags.RateLimitEnabled) {
		apiConfig.RateLimit = cfg.Server.RateLimit
		apiConfig.RateWindow = cfg.Server.RateWindow
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)

	handlers.NewArticleHandler(svc.Articles).RegisterRoutes(humaAPI)

	if svc.Speech != nil && flags.IsEnabled(ctx, featureflags.TTSEnabled) {
		handlers.NewSpeechHandler(svc.Speech).RegisterRoutes(humaAPI)
	} else {
		logger.Warn("Speech routes disabled", nil)
	}

	if svc.Headlines != nil && flags.IsEnabled(ctx, featureflags.HeadlinesEnabled) {
		handlers.NewHeadlinesHandler(svc.Headlines).RegisterRoutes(humaAPI)
	}

	if svc.Prewarm != nil && flags.IsEnabled(ctx, featureflags.PrewarmEnabled) {
		handlers.NewPrewarmHandler(svc.Prewarm).RegisterRoutes(humaAPI)
	}

	handlers.NewHealthHandler(svc.Sources, func() map[string]bool {
		return featureflags.Snapshot(flags)
	}).RegisterRoutes(humaAPI)

	return router
}
