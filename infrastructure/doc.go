// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package: caches, the article store, page fetching, HTML
// parsing, speech synthesis, audio playback and logging.
//
// Packages are organized by concern:
//
// - cache/memory: in-process cache on patrickmn/go-cache
// - cache/redis: shared cache on redis/go-redis, keys prefixed per deployment
// - cache/sqlite: persistent single-node cache on mattn/go-sqlite3
// - storage/memory, storage/sqlite: article stores keyed by source URL
// - sqlitedb: opens SQLite files with WAL enabled
// - fetch/colly: article page fetcher with charset detection
// - html/dom: goquery implementation of interfaces.ParsedHTML
// - http/standard: HTTP client with retries on network errors and 5xx
// - tts/google: Google Cloud Text-to-Speech synthesizer
// - audio/exec: CLI audio player driving an external command
// - logger/logrus: logrus logger with optional lumberjack file rotation
//
// # Caches
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "tts:3f2a...", audio, 24*time.Hour)
//	audio, err := cache.Get(ctx, "tts:3f2a...")
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{
//	    Address:   "localhost:6379",
//	    KeyPrefix: "yomu:",
//	})
//
// # Articles
//
//	store, err := sqlite.NewStore("data/articles.db")
//	defer store.Close()
//
//	fetcher := colly.NewFetcher(colly.Options{})
//	body, err := fetcher.Fetch(ctx, "https://www3.nhk.or.jp/news/easy/k10014670681000/k10014670681000.html")
//	doc, err := dom.ParseString(string(body))
//
// # Speech
//
//	synth, err := google.NewSynthesizer(ctx)
//	defer synth.Close()
//	audio, err := synth.Synthesize(ctx, domain.SpeechRequest{Text: "日本", Voice: "ja-JP-Neural2-B", Speed: 1})
//
//	player := exec.NewPlayer([]string{"mpg123", "-q"})
//
// # Logger
//
//	logger := logrus.New(logrus.Options{Level: "info", Format: "json"})
//	logger.Info("Article parsed", map[string]interface{}{
//	    "source":     "nhk-easy",
//	    "paragraphs": 6,
//	})
package infrastructure
