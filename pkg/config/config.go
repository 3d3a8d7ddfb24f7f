// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, cache, article store, speech and logging

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Store contains article persistence configuration
	Store StoreConfig

	// Speech contains text-to-speech configuration
	Speech SpeechConfig

	// Log contains logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RateLimit is the number of requests allowed per RateWindow and client
	RateLimit int

	// RateWindow is the rate limit window
	RateWindow time.Duration

	// AllowedOrigins lists CORS origins; empty allows all
	AllowedOrigins []string

	// PrewarmWorkers is the size of the audio prewarm pool
	PrewarmWorkers int
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLitePath is the database file of the sqlite cache
	SQLitePath string
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int

	// KeyPrefix namespaces every key written by this service
	KeyPrefix string
}

// StoreConfig holds article store configuration
type StoreConfig struct {
	// Type specifies the store backend (memory/sqlite)
	Type string

	// Path is the sqlite database file
	Path string

	// Freshness is how long a stored article is served without re-fetching
	Freshness time.Duration

	// UnknownSourcePolicy decides how hosts without an adapter are handled (default/generic/reject)
	UnknownSourcePolicy string
}

// SpeechConfig holds text-to-speech configuration
type SpeechConfig struct {
	// LanguageCode filters the voice list
	LanguageCode string

	// DefaultVoice is used when a request names no voice
	DefaultVoice string

	// AudioTTL is how long synthesized audio stays cached
	AudioTTL time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	var errs []error

	rateWindow, err := getEnvAsDurationOrDefault("RATE_WINDOW", time.Minute)
	errs = append(errs, err)
	freshness, err := getEnvAsDurationOrDefault("ARTICLE_FRESHNESS", 24*time.Hour)
	errs = append(errs, err)
	audioTTL, err := getEnvAsDurationOrDefault("AUDIO_CACHE_TTL", 7*24*time.Hour)
	errs = append(errs, err)

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvOrDefault("PORT", "8000"),
			RateLimit:      getEnvAsIntOrDefault("RATE_LIMIT", 100),
			RateWindow:     rateWindow,
			AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
			PrewarmWorkers: getEnvAsIntOrDefault("PREWARM_WORKERS", 4),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:   getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password:  getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:        getEnvAsIntOrDefault("REDIS_DB", 0),
				KeyPrefix: getEnvOrDefault("REDIS_KEY_PREFIX", "yomu:"),
			},
			SQLitePath: getEnvOrDefault("SQLITE_CACHE_PATH", "data/cache.db"),
		},
		Store: StoreConfig{
			Type:                getEnvOrDefault("STORE_TYPE", "sqlite"),
			Path:                getEnvOrDefault("ARTICLE_DB_PATH", "data/articles.db"),
			Freshness:           freshness,
			UnknownSourcePolicy: getEnvOrDefault("UNKNOWN_SOURCE_POLICY", "default"),
		},
		Speech: SpeechConfig{
			LanguageCode: getEnvOrDefault("TTS_LANGUAGE", "ja-JP"),
			DefaultVoice: getEnvOrDefault("TTS_DEFAULT_VOICE", "ja-JP-Neural2-B"),
			AudioTTL:     audioTTL,
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: os.Getenv("LOG_FORMAT"),
			File:   os.Getenv("LOG_FILE"),
		},
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault parses a Go duration such as "24h"
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RateLimit < 0 {
		return errors.New("rate limit cannot be negative")
	}

	if c.Server.RateLimit > 0 && c.Server.RateWindow <= 0 {
		return errors.New("rate window must be positive")
	}

	if c.Server.PrewarmWorkers < 1 {
		return errors.New("prewarm workers must be at least 1")
	}

	switch c.Cache.Type {
	case "memory":
	case "redis":
		if c.Cache.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis cache")
		}
	case "sqlite":
		if c.Cache.SQLitePath == "" {
			return errors.New("sqlite cache path cannot be empty when using sqlite cache")
		}
	default:
		return errors.New("cache type must be 'memory', 'redis' or 'sqlite'")
	}

	switch c.Store.Type {
	case "memory":
	case "sqlite":
		if c.Store.Path == "" {
			return errors.New("article db path cannot be empty when using sqlite store")
		}
	default:
		return errors.New("store type must be 'memory' or 'sqlite'")
	}

	if c.Store.Freshness <= 0 {
		return errors.New("article freshness must be positive")
	}

	switch c.Store.UnknownSourcePolicy {
	case "default", "generic", "reject":
	default:
		return errors.New("unknown source policy must be 'default', 'generic' or 'reject'")
	}

	if c.Speech.AudioTTL < 0 {
		return errors.New("audio cache ttl cannot be negative")
	}

	return nil
}
