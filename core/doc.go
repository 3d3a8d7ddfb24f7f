// Package core contains the business logic of the Yomu News reader.
// It is framework-agnostic and can be used without the HTTP layer.
//
// The core package is organized into several sub-packages:
//
// - domain: content nodes, paragraphs, parsed and stored articles, sentences
// - adapters: one parser per news source plus URL-based selection
// - segment: sentence splitting over content nodes
// - extraction: fetch, parse and persist articles
// - speech: text-to-speech with an audio cache
// - playback: the sentence player state machine
// - headlines: latest articles from source feeds
// - workers: audio prewarming pool
// - errors: typed errors mapped to HTTP statuses by the api package
// - interfaces: contracts for external dependencies (cache, HTTP, logger, store)
//
// # Usage Example
//
//	import (
//	    "yomu-news-api/core/adapters"
//	    "yomu-news-api/core/extraction"
//	    "yomu-news-api/core/interfaces"
//	)
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	articles := extraction.NewService(deps, extraction.Options{
//	    Store:    myStore,
//	    Fetcher:  myFetcher,
//	    Selector: adapters.NewSelector(adapters.PolicyDefault, nil, adapters.NewNHKEasy()),
//	    Parse:    myParser,
//	})
//
//	result, err := articles.FetchNews(ctx, "https://www3.nhk.or.jp/news/easy/k10014669321000/k10014669321000.html")
package core
