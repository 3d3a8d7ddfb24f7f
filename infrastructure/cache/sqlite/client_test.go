package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *Client {
	t.Helper()
	c, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache", "audio.db"))
	if err != nil {
		t.Fatalf("NewSQLiteCache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClient_SetGetDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	audio := []byte{0xff, 0xfb, 0x90, 0x00}
	if err := c.Set(ctx, "tts:abc", audio, time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "tts:abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(audio) {
		t.Errorf("Get = %v, want %v", got, audio)
	}

	if err := c.Delete(ctx, "tts:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "tts:abc"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("err = %v, want ErrCacheMiss", err)
	}
}

func TestClient_Expiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	now := time.Date(2024, 12, 18, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "short", []byte("v"), time.Minute)
	_ = c.Set(ctx, "forever", []byte("v"), 0)

	now = now.Add(2 * time.Minute)
	if _, err := c.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expired key err = %v", err)
	}
	if _, err := c.Get(ctx, "forever"); err != nil {
		t.Errorf("zero TTL should not expire: %v", err)
	}

	stats, err := c.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats["expired_entries"] != 1 {
		t.Errorf("expired_entries = %v, want 1", stats["expired_entries"])
	}

	c.cleanup()
	stats, _ = c.Stats()
	if stats["total_entries"] != 1 {
		t.Errorf("total_entries after cleanup = %v, want 1", stats["total_entries"])
	}
}

func TestClient_RejectsEmptyInput(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "", []byte("v"), 0); err == nil {
		t.Error("empty key should be rejected")
	}
	if err := c.Set(ctx, "k", nil, 0); err == nil {
		t.Error("empty value should be rejected")
	}
	if _, err := c.Get(ctx, ""); err == nil {
		t.Error("empty key should be rejected")
	}
}

func TestClient_KeysAreParameters(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	key := "x'; DROP TABLE cache; --"
	if err := c.Set(ctx, key, []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := c.Get(ctx, key); err != nil {
		t.Errorf("Get: %v", err)
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
}

func TestClient_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio.db")
	ctx := context.Background()

	first, err := NewSQLiteCache(path)
	if err != nil {
		t.Fatal(err)
	}
	_ = first.Set(ctx, "tts:keep", []byte("mp3"), 0)
	_ = first.Close()
	_ = first.Close()

	second, err := NewSQLiteCache(path)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()
	if got, err := second.Get(ctx, "tts:keep"); err != nil || string(got) != "mp3" {
		t.Errorf("Get after reopen = %q, %v", got, err)
	}
}
