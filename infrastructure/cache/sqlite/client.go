// ABOUTME: SQLite-based cache implementation for persistent caching
// ABOUTME: Synthesized audio survives restarts of a single-node deployment

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"yomu-news-api/infrastructure/sqlitedb"
)

// ErrCacheMiss is returned for absent or expired keys
var ErrCacheMiss = errors.New("key not found or expired")

const cleanupInterval = 5 * time.Minute

// Client implements the Cache interface using SQLite
type Client struct {
	db       *sql.DB
	filePath string
	now      func() time.Time
	done     chan struct{}
	once     sync.Once
}

// NewSQLiteCache opens or creates the cache database and starts expiry cleanup
func NewSQLiteCache(filePath string) (*Client, error) {
	if filePath == "" {
		filePath = "cache.db"
	}

	db, err := sqlitedb.Open(filePath)
	if err != nil {
		return nil, err
	}

	client := &Client{
		db:       db,
		filePath: filePath,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	if err := client.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	go client.cleanupRoutine()
	return client, nil
}

// initSchema creates the cache table. expiry 0 never expires.
func (c *Client) initSchema() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS cache (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			expiry INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_cache_expiry ON cache(expiry);
	`)
	return err
}

// Get retrieves a value from the cache
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.New("key cannot be empty")
	}

	var value []byte
	err := c.db.QueryRowContext(ctx,
		"SELECT value FROM cache WHERE key = ? AND (expiry = 0 OR expiry > ?)",
		key, c.now().UnixNano(),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get value: %w", err)
	}
	return value, nil
}

// Set stores a value with TTL. Zero means no expiration.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if len(value) == 0 {
		return errors.New("value cannot be empty")
	}

	var expiry int64
	if ttl > 0 {
		expiry = c.now().Add(ttl).UnixNano()
	}

	_, err := c.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO cache (key, value, expiry) VALUES (?, ?, ?)",
		key, value, expiry,
	)
	if err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}
	return nil
}

// Delete removes a value from the cache
func (c *Client) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if _, err := c.db.ExecContext(ctx, "DELETE FROM cache WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}
	return nil
}

// Clear removes all values from the cache
func (c *Client) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM cache"); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

func (c *Client) cleanupRoutine() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.done:
			return
		}
	}
}

// cleanup removes expired entries
func (c *Client) cleanup() {
	_, _ = c.db.Exec("DELETE FROM cache WHERE expiry != 0 AND expiry <= ?", c.now().UnixNano())
}

// Close stops cleanup and closes the database
func (c *Client) Close() error {
	c.once.Do(func() { close(c.done) })
	return c.db.Close()
}

// Stats returns cache statistics
func (c *Client) Stats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var count int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM cache").Scan(&count); err != nil {
		return nil, err
	}
	stats["total_entries"] = count

	var expired int
	err := c.db.QueryRow("SELECT COUNT(*) FROM cache WHERE expiry != 0 AND expiry <= ?", c.now().UnixNano()).Scan(&expired)
	if err != nil {
		return nil, err
	}
	stats["expired_entries"] = expired

	var pageCount, pageSize int
	if err := c.db.QueryRow("PRAGMA page_count").Scan(&pageCount); err == nil {
		if err := c.db.QueryRow("PRAGMA page_size").Scan(&pageSize); err == nil {
			stats["db_size_bytes"] = pageCount * pageSize
		}
	}

	stats["file_path"] = c.filePath
	return stats, nil
}
