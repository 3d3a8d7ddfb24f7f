package speech

import (
	"context"
	"errors"
	"sync"
	"time"

	"yomu-news-api/core/domain"
)

type mockSynthesizer struct {
	synthesizeFunc func(ctx context.Context, req domain.SpeechRequest) ([]byte, error)
	listVoicesFunc func(ctx context.Context, languageCode string) ([]domain.Voice, error)
	synthCalls     int
	listCalls      int
}

func (m *mockSynthesizer) Synthesize(ctx context.Context, req domain.SpeechRequest) ([]byte, error) {
	m.synthCalls++
	if m.synthesizeFunc != nil {
		return m.synthesizeFunc(ctx, req)
	}
	return []byte("audio:" + req.Text), nil
}

func (m *mockSynthesizer) ListVoices(ctx context.Context, languageCode string) ([]domain.Voice, error) {
	m.listCalls++
	if m.listVoicesFunc != nil {
		return m.listVoicesFunc(ctx, languageCode)
	}
	return nil, nil
}

var errCacheMiss = errors.New("cache miss")

// mapCache is an in-memory Cache that ignores TTLs
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, errCacheMiss
	}
	return v, nil
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}
