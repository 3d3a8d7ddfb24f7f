// ABOUTME: Builds the cache, article store, adapters and services from configuration
// ABOUTME: Every backend that holds a resource registers a closer for shutdown

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"yomu-news-api/core/adapters"
	"yomu-news-api/core/extraction"
	"yomu-news-api/core/headlines"
	"yomu-news-api/core/interfaces"
	"yomu-news-api/core/speech"
	"yomu-news-api/core/workers"
	"yomu-news-api/infrastructure/cache/memory"
	"yomu-news-api/infrastructure/cache/redis"
	"yomu-news-api/infrastructure/cache/sqlite"
	"yomu-news-api/infrastructure/fetch/colly"
	"yomu-news-api/infrastructure/html/dom"
	stdhttp "yomu-news-api/infrastructure/http/standard"
	memstore "yomu-news-api/infrastructure/storage/memory"
	sqlstore "yomu-news-api/infrastructure/storage/sqlite"
	"yomu-news-api/infrastructure/tts/google"
	"yomu-news-api/pkg/config"
)

// app holds the wired services and the resources to release on shutdown
type app struct {
	services services
	worker   *workers.PrewarmWorker
	closers  []io.Closer
}

func (a *app) Close() {
	if a.worker != nil {
		_ = a.worker.Stop()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
}

func parseHTML(s string) (interfaces.ParsedHTML, error) { return dom.ParseString(s) }

func buildApp(ctx context.Context, cfg *config.Config, logger interfaces.Logger, prewarm bool) (*app, error) {
	a := &app{}

	cache, err := newCache(cfg, logger)
	if err != nil {
		return nil, err
	}
	if c, ok := cache.(io.Closer); ok {
		a.closers = append(a.closers, c)
	}

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: stdhttp.NewStandardHTTPClient(30 * time.Second),
		Logger:     logger,
	}

	store, err := newStore(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	if c, ok := store.(io.Closer); ok {
		a.closers = append(a.closers, c)
	}

	policy, err := adapters.ParsePolicy(cfg.Store.UnknownSourcePolicy)
	if err != nil {
		a.Close()
		return nil, err
	}
	selector := adapters.NewSelector(policy, adapters.NewGeneric(parseHTML),
		adapters.NewNHKEasy(),
		adapters.NewYasashii(),
	)

	articles := extraction.NewService(deps, extraction.Options{
		Store:     store,
		Fetcher:   colly.NewFetcher(colly.Options{}),
		Selector:  selector,
		Parse:     parseHTML,
		Freshness: cfg.Store.Freshness,
	})

	a.services = services{
		Articles:  articles,
		Headlines: headlines.NewService(deps, selector),
		Sources:   selector.Adapters(),
	}

	synth, err := google.NewSynthesizer(ctx)
	if err != nil {
		logger.Error("Text-to-speech client unavailable, speech routes disabled", map[string]interface{}{
			"error": err.Error(),
		})
		return a, nil
	}
	a.closers = append(a.closers, synth)

	speechService := speech.NewService(deps, speech.Options{
		Synthesizer:  synth,
		LanguageCode: cfg.Speech.LanguageCode,
		DefaultVoice: cfg.Speech.DefaultVoice,
		AudioTTL:     cfg.Speech.AudioTTL,
	})
	a.services.Speech = speechService

	if prewarm {
		workerConfig := workers.DefaultWorkerConfig()
		workerConfig.MaxWorkers = cfg.Server.PrewarmWorkers
		a.worker = workers.NewPrewarmWorker(articles, speechService, logger, workerConfig)
		if err := a.worker.Start(); err != nil {
			a.Close()
			return nil, fmt.Errorf("start prewarm worker: %w", err)
		}
		a.services.Prewarm = a.worker
	}

	return a, nil
}

func newCache(cfg *config.Config, logger interfaces.Logger) (interfaces.Cache, error) {
	switch cfg.Cache.Type {
	case "redis":
		c, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memory.NewMemoryCache(), nil
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Cache.Redis.Address,
		})
		return c, nil
	case "sqlite":
		c, err := sqlite.NewSQLiteCache(cfg.Cache.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite cache: %w", err)
		}
		logger.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.Cache.SQLitePath,
		})
		return c, nil
	default:
		logger.Info("Using memory cache", nil)
		return memory.NewMemoryCache(), nil
	}
}

func newStore(cfg *config.Config) (interfaces.ArticleStore, error) {
	if cfg.Store.Type == "memory" {
		return memstore.NewStore(), nil
	}
	s, err := sqlstore.NewStore(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open article store: %w", err)
	}
	return s, nil
}
